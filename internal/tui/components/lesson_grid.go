package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mmcdole/aulas/internal/domain"
	"github.com/mmcdole/aulas/internal/i18n"
	"github.com/mmcdole/aulas/internal/navigation"
	"github.com/mmcdole/aulas/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Layout constants for lesson cards
const (
	// Border adds 1 cell on each side
	CardBorder = 2
	// Padding(0,1) inside the border
	CardPadding = 2
	// Title and duration lines under the thumbnail
	CardTextLines = 2
	// Blank cells between two cards of a row
	CardGap = 1
	// Date header above the cards, blank line below them
	RowHeaderLines = 1
	RowGapLines    = 1

	MinCardWidth = 16
)

const placeholderChar = "░"

// LessonGrid shows one row per lesson and one card per part. The cursor is
// kept by a navigation.Navigator over the rows currently shown; scrolling
// keeps the selected card centered on both axes.
type LessonGrid struct {
	all  *domain.GroupedLessons
	rows [][]domain.Part
	nav  *navigation.Navigator

	// Dimensions
	width     int
	height    int
	cardWidth int

	vscroll navigation.Scroller
	hscroll []navigation.Scroller // one per row

	thumbs map[string]string // part id -> rendered thumbnail

	lang string

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
}

// NewLessonGrid creates an empty grid with cards cardWidth cells wide
func NewLessonGrid(cardWidth int, lang string) LessonGrid {
	if cardWidth < MinCardWidth {
		cardWidth = MinCardWidth
	}
	ti := textinput.New()
	ti.Placeholder = i18n.Text(lang, i18n.MsgFilterPlaceholder)
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return LessonGrid{
		all:         domain.NewGroupedLessons(),
		nav:         navigation.New(nil),
		cardWidth:   cardWidth,
		vscroll:     navigation.NewScroller(),
		thumbs:      make(map[string]string),
		lang:        lang,
		filterInput: ti,
	}
}

// SetLessons replaces the grid content and puts the cursor on the first card
func (g *LessonGrid) SetLessons(grouped *domain.GroupedLessons) {
	if grouped == nil {
		grouped = domain.NewGroupedLessons()
	}
	g.all = grouped
	g.clearFilter()
	g.nav.SetCursor(0, 0)
	g.scrollToCursor(false)
}

// SetSize updates the component dimensions
func (g *LessonGrid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.scrollToCursor(false)
}

// ThumbSize returns the thumbnail area of a card in cells
func (g LessonGrid) ThumbSize() (cols, rows int) {
	cols = g.cardWidth - CardBorder - CardPadding
	// 16:9 with two pixels per cell, rounded
	rows = (cols*9 + 16) / 32
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

func (g LessonGrid) cardHeight() int {
	_, rows := g.ThumbSize()
	return rows + CardTextLines + 2
}

func (g LessonGrid) rowHeight() int {
	return RowHeaderLines + g.cardHeight() + RowGapLines
}

func (g LessonGrid) cardPitch() int {
	return g.cardWidth + CardGap
}

// viewportHeight is the grid area without the filter bar
func (g LessonGrid) viewportHeight() int {
	h := g.height
	if g.filterActive {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (g LessonGrid) rowWidth(row int) int {
	if row < 0 || row >= len(g.rows) || len(g.rows[row]) == 0 {
		return 0
	}
	return len(g.rows[row])*g.cardPitch() - CardGap
}

// Move moves the cursor and starts scrolling toward it. It reports whether
// the cursor changed.
func (g *LessonGrid) Move(d navigation.Direction) bool {
	if !g.nav.Move(d) {
		return false
	}
	g.scrollToCursor(true)
	return true
}

// Select puts the cursor on c and scrolls it into view. It reports whether
// the cursor moved.
func (g *LessonGrid) Select(c navigation.Cursor) bool {
	if !g.nav.SetCursor(c.Row, c.Col) {
		return false
	}
	g.scrollToCursor(true)
	return true
}

// HitTest maps a cell of the grid area (x, y relative to its top-left
// corner) to the card drawn there. Headers, gaps and the filter bar miss.
func (g LessonGrid) HitTest(x, y int) (navigation.Cursor, bool) {
	if g.nav.Empty() || x < 0 || x >= g.width || y < 0 || y >= g.viewportHeight() {
		return navigation.Cursor{}, false
	}

	rh := g.rowHeight()
	cy := g.vscroll.Pos() + y
	r := cy / rh
	if r >= len(g.rows) {
		return navigation.Cursor{}, false
	}
	line := cy - r*rh
	if line < RowHeaderLines || line >= RowHeaderLines+g.cardHeight() {
		return navigation.Cursor{}, false
	}

	cx := x
	if r < len(g.hscroll) {
		cx += g.hscroll[r].Pos()
	}
	pitch := g.cardPitch()
	c := cx / pitch
	if c >= len(g.rows[r]) || cx-c*pitch >= g.cardWidth {
		return navigation.Cursor{}, false
	}
	return navigation.Cursor{Row: r, Col: c}, true
}

// Cursor returns the selected row and column
func (g LessonGrid) Cursor() navigation.Cursor {
	return g.nav.Cursor()
}

// Selected returns the part under the cursor
func (g LessonGrid) Selected() (domain.Part, bool) {
	if g.nav.Empty() {
		return domain.Part{}, false
	}
	c := g.nav.Cursor()
	return g.rows[c.Row][c.Col], true
}

// IsEmpty reports whether no card is shown
func (g LessonGrid) IsEmpty() bool {
	return g.nav.Empty()
}

// Rows returns the rows currently shown
func (g LessonGrid) Rows() [][]domain.Part {
	return g.rows
}

// AllParts returns every part of the catalog, ignoring the filter
func (g LessonGrid) AllParts() []domain.Part {
	var parts []domain.Part
	for _, row := range g.all.Rows() {
		parts = append(parts, row...)
	}
	return parts
}

// scrollToCursor centers the selected card. Only the cursor row scrolls
// horizontally; other rows keep their offset.
func (g *LessonGrid) scrollToCursor(animate bool) {
	c := g.nav.Cursor()
	rh := g.rowHeight()
	vTarget := navigation.CenterOffset(c.Row*rh, rh, g.viewportHeight(), len(g.rows)*rh)

	var hTarget int
	if !g.nav.Empty() {
		hTarget = navigation.CenterOffset(c.Col*g.cardPitch(), g.cardWidth, g.width, g.rowWidth(c.Row))
	}

	if !animate {
		g.vscroll.Jump(vTarget)
		if c.Row < len(g.hscroll) {
			g.hscroll[c.Row].Jump(hTarget)
		}
		return
	}
	g.vscroll.SetTarget(vTarget)
	if c.Row < len(g.hscroll) {
		g.hscroll[c.Row].SetTarget(hTarget)
	}
}

// ScrollStep advances the scroll animation one frame and reports whether
// more frames are needed
func (g *LessonGrid) ScrollStep() bool {
	more := g.vscroll.Step()
	for i := range g.hscroll {
		if g.hscroll[i].Step() {
			more = true
		}
	}
	return more
}

// Animating reports whether a scroll is in progress
func (g LessonGrid) Animating() bool {
	if g.vscroll.Animating() {
		return true
	}
	for _, s := range g.hscroll {
		if s.Animating() {
			return true
		}
	}
	return false
}

// VisibleParts returns the parts whose card intersects the viewport once
// scrolling settles, widened by marginRows rows and marginCols cards
func (g LessonGrid) VisibleParts(marginRows, marginCols int) []domain.Part {
	if g.nav.Empty() || g.width <= 0 || g.height <= 0 {
		return nil
	}
	rh := g.rowHeight()
	top := g.vscroll.Target() - marginRows*rh
	bottom := g.vscroll.Target() + g.viewportHeight() + marginRows*rh

	pitch := g.cardPitch()
	var parts []domain.Part
	for r, row := range g.rows {
		rowTop := r * rh
		if rowTop+rh <= top || rowTop >= bottom {
			continue
		}
		var offset int
		if r < len(g.hscroll) {
			offset = g.hscroll[r].Target()
		}
		left := offset - marginCols*pitch
		right := offset + g.width + marginCols*pitch
		for c, p := range row {
			x := c * pitch
			if x+g.cardWidth <= left || x >= right {
				continue
			}
			parts = append(parts, p)
		}
	}
	return parts
}

// SetThumbnail stores the rendered thumbnail of a part
func (g *LessonGrid) SetThumbnail(partID, art string) {
	g.thumbs[partID] = art
}

// HasThumbnail reports whether a part's thumbnail was loaded
func (g LessonGrid) HasThumbnail(partID string) bool {
	_, ok := g.thumbs[partID]
	return ok
}

// ToggleFilter activates the filter input
func (g *LessonGrid) ToggleFilter() tea.Cmd {
	g.filterActive = true
	g.scrollToCursor(false)
	return g.filterInput.Focus()
}

// IsFiltering returns true if a filter is applied
func (g LessonGrid) IsFiltering() bool {
	return g.filterActive
}

// IsFilterTyping returns true if the filter input has focus
func (g LessonGrid) IsFilterTyping() bool {
	return g.filterActive && g.filterInput.Focused()
}

// ClearFilter shows every lesson again
func (g *LessonGrid) ClearFilter() {
	g.clearFilter()
	g.scrollToCursor(false)
}

func (g *LessonGrid) clearFilter() {
	g.filterActive = false
	g.filterQuery = ""
	g.filterInput.SetValue("")
	g.filterInput.Blur()
	g.setRows(g.all)
}

// applyFilter keeps the parts whose title fuzzy-matches the query. Lessons
// keep their order; the cursor is re-clamped to the new shape.
func (g *LessonGrid) applyFilter() {
	query := g.filterInput.Value()
	if query == g.filterQuery {
		return
	}
	g.filterQuery = query

	if query == "" {
		g.setRows(g.all)
		g.scrollToCursor(false)
		return
	}

	parts := g.AllParts()
	titles := make([]string, len(parts))
	for i, p := range parts {
		titles[i] = strings.ToLower(p.Title)
	}
	keep := make(map[string]bool)
	for _, match := range fuzzy.Find(strings.ToLower(query), titles) {
		keep[parts[match.Index].PartID] = true
	}

	g.setRows(g.all.Filter(func(p domain.Part) bool { return keep[p.PartID] }))
	g.scrollToCursor(false)
}

func (g *LessonGrid) setRows(grouped *domain.GroupedLessons) {
	g.rows = grouped.Rows()
	g.nav.SetShape(grouped.Shape())
	g.hscroll = make([]navigation.Scroller, len(g.rows))
	for i := range g.hscroll {
		g.hscroll[i] = navigation.NewScroller()
	}
}

// UpdateFilter handles a key while the filter input has focus
func (g LessonGrid) UpdateFilter(msg tea.KeyMsg) (LessonGrid, tea.Cmd) {
	switch {
	case key.Matches(msg, FilterKeys.Escape):
		g.ClearFilter()
		return g, nil
	case key.Matches(msg, FilterKeys.Accept):
		// Keep the results, give the arrows back to the grid
		g.filterInput.Blur()
		return g, nil
	case key.Matches(msg, FilterKeys.Delete):
		if g.filterInput.Value() == "" {
			g.ClearFilter()
			return g, nil
		}
	}

	var cmd tea.Cmd
	g.filterInput, cmd = g.filterInput.Update(msg)
	g.applyFilter()
	return g, cmd
}

// View renders the visible window of the grid
func (g LessonGrid) View() string {
	viewH := g.viewportHeight()
	var lines []string

	if g.nav.Empty() {
		msg := i18n.Text(g.lang, i18n.MsgNoLessons)
		if g.filterActive && g.filterQuery != "" {
			msg = i18n.Text(g.lang, i18n.MsgNoMatches)
		}
		lines = append(lines, styles.DimStyle.Render(msg))
	} else {
		rh := g.rowHeight()
		top := g.vscroll.Pos()
		first := top / rh
		cursor := g.nav.Cursor()
		for r := first; r < len(g.rows) && r*rh < top+viewH; r++ {
			block := g.renderRow(r, cursor)
			start := 0
			if r == first {
				start = top - r*rh
			}
			if start < len(block) {
				lines = append(lines, block[start:]...)
			}
		}
	}

	if len(lines) > viewH {
		lines = lines[:viewH]
	}
	for len(lines) < viewH {
		lines = append(lines, "")
	}
	if g.filterActive {
		lines = append(lines, g.renderFilterBar())
	}
	return strings.Join(lines, "\n")
}

// renderRow returns the lines of one lesson row: header, cards, gap
func (g LessonGrid) renderRow(r int, cursor navigation.Cursor) []string {
	row := g.rows[r]
	header := styles.LessonDateStyle.Render(row[0].Date) + " " +
		styles.BadgeStyle.Render(i18n.PartCount(len(row)))
	lines := []string{ansi.Truncate(header, g.width, "")}

	cards := make([]string, 0, 2*len(row))
	for c, p := range row {
		if c > 0 {
			cards = append(cards, strings.Repeat(" ", CardGap))
		}
		cards = append(cards, g.renderCard(p, r == cursor.Row && c == cursor.Col))
	}
	joined := lipgloss.JoinHorizontal(lipgloss.Top, cards...)

	var offset int
	if r < len(g.hscroll) {
		offset = g.hscroll[r].Pos()
	}
	for _, line := range strings.Split(joined, "\n") {
		lines = append(lines, ansi.Cut(line, offset, offset+g.width))
	}

	for i := 0; i < RowGapLines; i++ {
		lines = append(lines, "")
	}
	return lines
}

func (g LessonGrid) renderCard(p domain.Part, selected bool) string {
	cols, rows := g.ThumbSize()

	thumb, ok := g.thumbs[p.PartID]
	if !ok {
		fill := strings.Repeat(placeholderChar, cols)
		placeholder := make([]string, rows)
		for i := range placeholder {
			placeholder[i] = fill
		}
		thumb = styles.ThumbPlaceholderStyle.Render(strings.Join(placeholder, "\n"))
	}

	style, titleStyle := styles.CardStyle, styles.CardTitleStyle
	if selected {
		style, titleStyle = styles.CardSelectedStyle, styles.CardTitleSelectedStyle
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		thumb,
		titleStyle.Render(styles.Pad(styles.Truncate(p.Title, cols), cols)),
		styles.DimStyle.Render(styles.Pad(styles.Truncate(p.Duration, cols), cols)),
	)
	return style.Width(cols + CardPadding).Render(body)
}

// renderFilterBar renders the filter input with the match count
func (g LessonGrid) renderFilterBar() string {
	input := g.filterInput.View()
	if g.filterQuery == "" {
		return input
	}
	shown := 0
	for _, row := range g.rows {
		shown += len(row)
	}
	return input + styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", shown, len(g.AllParts())))
}
