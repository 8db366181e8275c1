package components

import "github.com/mmcdole/aulas/internal/domain"

// ThumbnailWatcher decides which card thumbnails to request. Each part is
// handed out at most once: after its first sighting it is no longer watched.
type ThumbnailWatcher struct {
	enabled    bool
	lazy       bool // false requests every thumbnail on the first Observe
	marginRows int
	marginCols int

	requested map[string]bool
}

// NewThumbnailWatcher creates a watcher. Margins widen the viewport so
// thumbnails start loading before their card scrolls in.
func NewThumbnailWatcher(enabled, lazy bool, marginRows, marginCols int) *ThumbnailWatcher {
	return &ThumbnailWatcher{
		enabled:    enabled,
		lazy:       lazy,
		marginRows: marginRows,
		marginCols: marginCols,
		requested:  make(map[string]bool),
	}
}

// Observe returns the parts of grid that became visible since the last call
func (w *ThumbnailWatcher) Observe(grid LessonGrid) []domain.Part {
	if w == nil || !w.enabled {
		return nil
	}

	var candidates []domain.Part
	if w.lazy {
		candidates = grid.VisibleParts(w.marginRows, w.marginCols)
	} else {
		candidates = grid.AllParts()
	}

	var fresh []domain.Part
	for _, p := range candidates {
		if p.ThumbnailURL == "" || w.requested[p.PartID] {
			continue
		}
		w.requested[p.PartID] = true
		fresh = append(fresh, p)
	}
	return fresh
}

// Requested returns the number of parts already handed out
func (w *ThumbnailWatcher) Requested() int {
	if w == nil {
		return 0
	}
	return len(w.requested)
}

// Reset forgets every handed out part, for a freshly loaded catalog
func (w *ThumbnailWatcher) Reset() {
	if w == nil {
		return
	}
	w.requested = make(map[string]bool)
}
