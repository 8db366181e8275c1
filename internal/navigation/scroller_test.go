package navigation

import "testing"

func TestCenterOffset(t *testing.T) {
	tests := []struct {
		start, size, viewport, content int
		want                           int
	}{
		{0, 4, 20, 100, 0},   // near the top stays at 0
		{50, 4, 20, 100, 42}, // centered
		{98, 2, 20, 100, 80}, // clamped at the end
		{10, 4, 20, 15, 0},   // content fits
		{10, 4, 0, 100, 0},   // no viewport
	}
	for _, tt := range tests {
		if got := CenterOffset(tt.start, tt.size, tt.viewport, tt.content); got != tt.want {
			t.Fatalf("CenterOffset(%d,%d,%d,%d) = %d, want %d", tt.start, tt.size, tt.viewport, tt.content, got, tt.want)
		}
	}
}

func TestScrollerSettles(t *testing.T) {
	s := NewScroller()
	if !s.SetTarget(10) {
		t.Fatalf("expected animation toward 10")
	}
	last := s.Pos()
	for i := 0; i < 20 && s.Step(); i++ {
		if s.Pos() < last {
			t.Fatalf("scroll moved backwards: %d after %d", s.Pos(), last)
		}
		last = s.Pos()
	}
	if s.Pos() != 10 || s.Animating() {
		t.Fatalf("expected to settle at 10, at %d", s.Pos())
	}

	s.Jump(3)
	if s.Pos() != 3 || s.Animating() {
		t.Fatalf("expected jump to 3, at %d", s.Pos())
	}
}
