package navigation

import "math"

// CenterOffset returns the scroll offset that centers an item spanning
// [start, start+size) in a viewport of the given length, kept inside
// [0, content-viewport]
func CenterOffset(start, size, viewport, content int) int {
	if viewport <= 0 || content <= viewport {
		return 0
	}
	offset := start + size/2 - viewport/2
	return clampInt(offset, 0, content-viewport)
}

// Scroller eases a scroll position toward its target over successive steps
type Scroller struct {
	pos    float64
	target int
	// Ease is the fraction of the remaining distance covered per step
	Ease float64
}

// NewScroller creates a scroller resting at 0
func NewScroller() Scroller {
	return Scroller{Ease: 0.5}
}

// SetTarget sets where the scroll should settle. It reports whether an
// animation is needed.
func (s *Scroller) SetTarget(target int) bool {
	s.target = target
	return s.Animating()
}

// Jump moves straight to target without animation
func (s *Scroller) Jump(target int) {
	s.target = target
	s.pos = float64(target)
}

// Step advances one animation frame and reports whether more frames follow
func (s *Scroller) Step() bool {
	ease := s.Ease
	if ease <= 0 || ease > 1 {
		ease = 0.5
	}
	diff := float64(s.target) - s.pos
	if math.Abs(diff) < 1 {
		s.pos = float64(s.target)
		return false
	}
	s.pos += diff * ease
	return s.Animating()
}

// Animating reports whether the position has not reached the target
func (s Scroller) Animating() bool {
	return s.Pos() != s.target
}

// Pos returns the current position in whole cells
func (s Scroller) Pos() int {
	return int(math.Round(s.pos))
}

// Target returns the settle position
func (s Scroller) Target() int {
	return s.target
}
