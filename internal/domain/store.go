package domain

// ThumbnailStore caches downloaded thumbnail images (BoltDB + memory).
type ThumbnailStore interface {
	GetThumbnail(url string) ([]byte, bool)
	SaveThumbnail(url string, data []byte) error

	Len() int
	InvalidateAll() error

	Close() error
}
