package domain

import "context"

// CatalogRepository reads the lesson catalog from the content API.
type CatalogRepository interface {
	// FetchLessons returns the most recent daily lessons
	FetchLessons(ctx context.Context) ([]Lesson, error)

	// FetchCollections returns the collections (with units) for the given lesson ids.
	// An empty id list returns an empty result without a network call.
	FetchCollections(ctx context.Context, lessonIDs []string) ([]Collection, error)

	// ThumbnailURL returns the image service URL for a content unit
	ThumbnailURL(unitID string) string
}

// ThumbnailClient downloads thumbnail images
type ThumbnailClient interface {
	FetchThumbnail(ctx context.Context, url string) ([]byte, error)
}
