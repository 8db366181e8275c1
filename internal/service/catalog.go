package service

import (
	"context"
	"log/slog"

	"github.com/mmcdole/aulas/internal/domain"
	"github.com/mmcdole/aulas/internal/i18n"
)

// CatalogResult is the outcome of a catalog load. Grouped is never nil.
type CatalogResult struct {
	Lessons []domain.Lesson
	Grouped *domain.GroupedLessons
}

// CatalogService loads the lesson catalog and groups it into parts
type CatalogService struct {
	repo   domain.CatalogRepository
	lang   string
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo domain.CatalogRepository, lang string, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{repo: repo, lang: lang, logger: logger}
}

// Load fetches the lessons, then their collections, and groups the result.
// On failure the returned result is still usable: its Grouped mapping is empty.
func (s *CatalogService) Load(ctx context.Context) (CatalogResult, error) {
	result := CatalogResult{Grouped: domain.NewGroupedLessons()}

	lessons, err := s.repo.FetchLessons(ctx)
	if err != nil {
		s.logger.Error("failed to load lessons", "error", err)
		return result, err
	}
	result.Lessons = lessons

	collections, err := s.repo.FetchCollections(ctx, LessonIDs(lessons))
	if err != nil {
		s.logger.Error("failed to load collections", "error", err, "lessons", len(lessons))
		return result, err
	}

	result.Grouped = GroupCollections(collections, s.repo.ThumbnailURL, s.lang)
	s.logger.Info("catalog loaded", "lessons", len(lessons), "rows", result.Grouped.Len())
	return result, nil
}

// LessonIDs extracts lesson identifiers in catalog order
func LessonIDs(lessons []domain.Lesson) []string {
	ids := make([]string, 0, len(lessons))
	for _, l := range lessons {
		ids = append(ids, l.ID)
	}
	return ids
}

// GroupCollections builds one Part per content unit and appends it to the
// group of its collection, preserving arrival order. thumb maps a unit id to
// its thumbnail URL and may be nil.
func GroupCollections(collections []domain.Collection, thumb func(unitID string) string, lang string) *domain.GroupedLessons {
	grouped := domain.NewGroupedLessons()
	for _, col := range collections {
		for _, unit := range col.Units {
			grouped.Append(NewPart(col, unit, thumb, lang))
		}
	}
	return grouped
}

// NewPart derives the view record of a content unit
func NewPart(col domain.Collection, unit domain.ContentUnit, thumb func(string) string, lang string) domain.Part {
	date := unit.FilmDate
	if date == "" {
		date = col.FilmDate
	}
	p := domain.Part{
		LessonID: col.ID,
		PartID:   unit.ID,
		Title:    unit.Name,
		Duration: i18n.FormatDuration(unit.Duration),
		Date:     i18n.FormatDate(date, lang),
	}
	if thumb != nil {
		p.ThumbnailURL = thumb(unit.ID)
	}
	return p
}
