// Package navigation implements the directional cursor over a ragged grid of
// lesson rows, independent of how the grid is drawn.
package navigation

// Direction is a directional input
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Cursor is a (row, column) grid position
type Cursor struct {
	Row int
	Col int
}

// Navigator tracks the cursor over a grid whose rows may differ in length.
// The cursor always references an existing row and an in-bounds column of
// that row, unless the grid is empty, in which case it stays at (0, 0).
type Navigator struct {
	shape  []int
	cursor Cursor
}

// New creates a navigator over shape (row lengths in display order) with the
// cursor at (0, 0)
func New(shape []int) *Navigator {
	n := &Navigator{}
	n.SetShape(shape)
	return n
}

// SetShape replaces the grid shape and re-clamps the cursor into it
func (n *Navigator) SetShape(shape []int) {
	n.shape = append(n.shape[:0], shape...)
	n.clamp()
}

// Shape returns a copy of the row lengths
func (n *Navigator) Shape() []int {
	return append([]int(nil), n.shape...)
}

// Empty reports whether the grid has no rows
func (n *Navigator) Empty() bool {
	return len(n.shape) == 0
}

// Cursor returns the current position
func (n *Navigator) Cursor() Cursor {
	return n.cursor
}

// SetCursor moves the cursor to (row, col), clamped into the grid. It reports
// whether the position changed.
func (n *Navigator) SetCursor(row, col int) bool {
	before := n.cursor
	n.cursor = Cursor{Row: row, Col: col}
	n.clamp()
	return n.cursor != before
}

// Move applies a directional input. It reports whether the cursor moved;
// moves against an edge and moves on an empty grid are no-ops.
func (n *Navigator) Move(d Direction) bool {
	if n.Empty() {
		return false
	}
	c := n.cursor
	switch d {
	case Right:
		c.Col++
	case Left:
		c.Col--
	case Down:
		c.Row++
	case Up:
		c.Row--
	default:
		return false
	}
	return n.SetCursor(c.Row, c.Col)
}

// clamp pulls the row into [0, rows-1] and the column into the row's cards
func (n *Navigator) clamp() {
	if n.Empty() {
		n.cursor = Cursor{}
		return
	}
	n.cursor.Row = clampInt(n.cursor.Row, 0, len(n.shape)-1)
	n.cursor.Col = clampInt(n.cursor.Col, 0, n.shape[n.cursor.Row]-1)
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
