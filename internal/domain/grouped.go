package domain

// GroupedLessons maps lesson identifiers to their ordered parts.
// Iteration order is the order in which lessons were first appended.
type GroupedLessons struct {
	order  []string
	groups map[string][]Part
}

// NewGroupedLessons creates an empty mapping
func NewGroupedLessons() *GroupedLessons {
	return &GroupedLessons{groups: make(map[string][]Part)}
}

// Append adds a part to the group keyed by its LessonID, creating the group
// on first use.
func (g *GroupedLessons) Append(p Part) {
	if g.groups == nil {
		g.groups = make(map[string][]Part)
	}
	if _, ok := g.groups[p.LessonID]; !ok {
		g.order = append(g.order, p.LessonID)
	}
	g.groups[p.LessonID] = append(g.groups[p.LessonID], p)
}

// Keys returns lesson ids in insertion order
func (g *GroupedLessons) Keys() []string {
	if g == nil {
		return nil
	}
	keys := make([]string, len(g.order))
	copy(keys, g.order)
	return keys
}

// Parts returns the parts of one lesson
func (g *GroupedLessons) Parts(lessonID string) []Part {
	if g == nil {
		return nil
	}
	return g.groups[lessonID]
}

// Len returns the number of lessons
func (g *GroupedLessons) Len() int {
	if g == nil {
		return 0
	}
	return len(g.order)
}

// Rows returns the parts of every lesson in insertion order
func (g *GroupedLessons) Rows() [][]Part {
	if g == nil {
		return nil
	}
	rows := make([][]Part, 0, len(g.order))
	for _, id := range g.order {
		rows = append(rows, g.groups[id])
	}
	return rows
}

// Filter returns a new mapping holding only the parts accepted by keep.
// Lessons left without parts are dropped.
func (g *GroupedLessons) Filter(keep func(Part) bool) *GroupedLessons {
	out := NewGroupedLessons()
	if g == nil {
		return out
	}
	for _, id := range g.order {
		for _, p := range g.groups[id] {
			if keep(p) {
				out.Append(p)
			}
		}
	}
	return out
}

// Shape returns the number of parts of each lesson in order
func (g *GroupedLessons) Shape() []int {
	if g == nil {
		return nil
	}
	shape := make([]int, 0, len(g.order))
	for _, id := range g.order {
		shape = append(shape, len(g.groups[id]))
	}
	return shape
}
