package kmedia

import (
	"math"

	"github.com/mmcdole/aulas/internal/domain"
)

// MapLessons converts lesson summaries to domain lessons, skipping entries without id
func MapLessons(items []Collection) []domain.Lesson {
	lessons := make([]domain.Lesson, 0, len(items))
	for _, c := range items {
		if c.ID == "" {
			continue
		}
		lessons = append(lessons, domain.Lesson{
			ID:       c.ID,
			FilmDate: c.FilmDate,
		})
	}
	return lessons
}

// MapCollections converts API collections to domain collections, keeping unit order
func MapCollections(items []Collection) []domain.Collection {
	collections := make([]domain.Collection, 0, len(items))
	for _, c := range items {
		units := make([]domain.ContentUnit, 0, len(c.ContentUnits))
		for _, u := range c.ContentUnits {
			units = append(units, MapContentUnit(u))
		}
		collections = append(collections, domain.Collection{
			ID:       c.ID,
			FilmDate: c.FilmDate,
			Units:    units,
		})
	}
	return collections
}

// MapContentUnit converts an API content unit, including its files if present
func MapContentUnit(u ContentUnit) domain.ContentUnit {
	unit := domain.ContentUnit{
		ID:       u.ID,
		Name:     u.Name,
		Duration: seconds(u.Duration),
		FilmDate: u.FilmDate,
	}
	if len(u.Files) > 0 {
		unit.Files = make([]domain.File, 0, len(u.Files))
		for _, f := range u.Files {
			unit.Files = append(unit.Files, domain.File{
				ID:       f.ID,
				Name:     f.Name,
				Language: f.Language,
				Type:     f.Type,
				MimeType: f.MimeType,
			})
		}
	}
	return unit
}

// seconds rounds an API duration to whole, non-negative seconds
func seconds(d float64) int {
	if d <= 0 || math.IsNaN(d) {
		return 0
	}
	return int(math.Round(d))
}
