package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/mmcdole/aulas/internal/domain"
)

type fakeCatalog struct {
	lessons        []domain.Lesson
	collections    []domain.Collection
	lessonsErr     error
	collectionsErr error

	collectionCalls int
	requestedIDs    []string
}

func (f *fakeCatalog) FetchLessons(ctx context.Context) ([]domain.Lesson, error) {
	return f.lessons, f.lessonsErr
}

func (f *fakeCatalog) FetchCollections(ctx context.Context, ids []string) ([]domain.Collection, error) {
	if len(ids) == 0 {
		return []domain.Collection{}, nil
	}
	f.collectionCalls++
	f.requestedIDs = ids
	return f.collections, f.collectionsErr
}

func (f *fakeCatalog) ThumbnailURL(unitID string) string {
	return "thumb/" + unitID
}

func sampleCollections() []domain.Collection {
	return []domain.Collection{
		{ID: "L1", FilmDate: "2024-03-01", Units: []domain.ContentUnit{
			{ID: "a", Name: "Parte 1", Duration: 3661, FilmDate: "2024-03-01"},
			{ID: "b", Name: "Parte 2", Duration: 60},
			{ID: "c", Name: "Parte 3", Duration: 0, FilmDate: "2024-03-01"},
		}},
		{ID: "L2", Units: []domain.ContentUnit{
			{ID: "d", Name: "Parte 1", Duration: 7322, FilmDate: "2024-02-29"},
		}},
	}
}

func TestGroupCollectionsKeepsShapeAndOrder(t *testing.T) {
	cols := sampleCollections()
	g := GroupCollections(cols, func(id string) string { return "thumb/" + id }, "pt")

	if got := g.Keys(); !reflect.DeepEqual(got, []string{"L1", "L2"}) {
		t.Fatalf("keys = %v", got)
	}
	for _, col := range cols {
		parts := g.Parts(col.ID)
		if len(parts) != len(col.Units) {
			t.Fatalf("lesson %s: %d parts, want %d", col.ID, len(parts), len(col.Units))
		}
		for i, p := range parts {
			if p.LessonID != col.ID || p.PartID != col.Units[i].ID {
				t.Fatalf("lesson %s part %d out of order: %+v", col.ID, i, p)
			}
		}
	}

	first := g.Parts("L1")[0]
	if first.Duration != "1 hora e 1 minuto" || first.Date != "01/03/2024" || first.ThumbnailURL != "thumb/a" {
		t.Fatalf("unexpected part: %+v", first)
	}
	// Units without a film date use the collection's
	if g.Parts("L1")[1].Date != "01/03/2024" {
		t.Fatalf("expected collection date fallback, got %q", g.Parts("L1")[1].Date)
	}
}

func TestGroupCollectionsIsIdempotent(t *testing.T) {
	cols := sampleCollections()
	a := GroupCollections(cols, nil, "pt")
	b := GroupCollections(cols, nil, "pt")
	if !reflect.DeepEqual(a.Rows(), b.Rows()) || !reflect.DeepEqual(a.Keys(), b.Keys()) {
		t.Fatalf("grouping differs between runs")
	}
}

func TestGroupCollectionsMergesRepeatedLesson(t *testing.T) {
	cols := []domain.Collection{
		{ID: "L1", Units: []domain.ContentUnit{{ID: "a"}}},
		{ID: "L2", Units: []domain.ContentUnit{{ID: "b"}}},
		{ID: "L1", Units: []domain.ContentUnit{{ID: "c"}}},
	}
	g := GroupCollections(cols, nil, "pt")
	if g.Len() != 2 || len(g.Parts("L1")) != 2 || g.Parts("L1")[1].PartID != "c" {
		t.Fatalf("unexpected grouping: %v %v", g.Keys(), g.Rows())
	}
}

func TestLoadGroupsCatalog(t *testing.T) {
	repo := &fakeCatalog{
		lessons:     []domain.Lesson{{ID: "L1"}, {ID: "L2"}},
		collections: sampleCollections(),
	}
	res, err := NewCatalogService(repo, "pt", nil).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(repo.requestedIDs, []string{"L1", "L2"}) {
		t.Fatalf("collections requested for %v", repo.requestedIDs)
	}
	if got := res.Grouped.Shape(); !reflect.DeepEqual(got, []int{3, 1}) {
		t.Fatalf("shape = %v", got)
	}
}

func TestLoadWithNoLessonsSkipsCollections(t *testing.T) {
	repo := &fakeCatalog{}
	res, err := NewCatalogService(repo, "pt", nil).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if repo.collectionCalls != 0 {
		t.Fatalf("expected no collection fetch, got %d", repo.collectionCalls)
	}
	if res.Grouped == nil || res.Grouped.Len() != 0 {
		t.Fatalf("expected empty grouping")
	}
}

func TestLoadCollectionsFailureKeepsLessons(t *testing.T) {
	fetchErr := &domain.FetchError{Op: "collections", Err: domain.ErrDecode}
	repo := &fakeCatalog{
		lessons:        []domain.Lesson{{ID: "L1"}},
		collections:    sampleCollections(),
		collectionsErr: fetchErr,
	}
	res, err := NewCatalogService(repo, "pt", nil).Load(context.Background())
	if !errors.Is(err, domain.ErrDecode) {
		t.Fatalf("expected decode error, got %v", err)
	}
	if len(res.Lessons) != 1 {
		t.Fatalf("expected lessons to be kept, got %v", res.Lessons)
	}
	if res.Grouped == nil || res.Grouped.Len() != 0 {
		t.Fatalf("expected empty grouping on failure")
	}
}

func TestLoadLessonsFailure(t *testing.T) {
	repo := &fakeCatalog{lessonsErr: &domain.FetchError{Op: "lessons", Err: domain.ErrServerOffline}}
	res, err := NewCatalogService(repo, "pt", nil).Load(context.Background())
	if !errors.Is(err, domain.ErrServerOffline) {
		t.Fatalf("expected offline error, got %v", err)
	}
	if repo.collectionCalls != 0 || res.Grouped.Len() != 0 {
		t.Fatalf("expected no collections and empty grouping")
	}
}
