package tui

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/aulas/internal/adapter"
	"github.com/mmcdole/aulas/internal/domain"
	"github.com/mmcdole/aulas/internal/navigation"
	"github.com/mmcdole/aulas/internal/service"
	"github.com/mmcdole/aulas/internal/tui/components"
)

type stubPlayer struct {
	stopped int
	done    chan struct{}
}

func (p *stubPlayer) Name() string          { return "mpv" }
func (p *stubPlayer) Done() <-chan struct{} { return p.done }
func (p *stubPlayer) Stop() error           { p.stopped++; return nil }

func testGrouped() *domain.GroupedLessons {
	g := domain.NewGroupedLessons()
	for i := 1; i <= 3; i++ {
		g.Append(domain.Part{LessonID: "A", PartID: fmt.Sprintf("A-%d", i), Title: fmt.Sprintf("Parte %d", i), Date: "12/05/2024", ThumbnailURL: "thumb"})
	}
	g.Append(domain.Part{LessonID: "B", PartID: "B-1", Title: "Zohar", Date: "11/05/2024", ThumbnailURL: "thumb"})
	return g
}

// newTestModel returns a browsing model over testGrouped. Commands are
// returned but never run, so the services need no backends.
func newTestModel(t *testing.T, logs *bytes.Buffer) Model {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(logs, nil))
	m := NewModel(
		service.NewCatalogService(nil, "en", logger),
		service.NewPlaybackService(nil, nil, "en", logger),
		service.NewThumbnailService(nil, nil, logger),
		&adapter.Config{
			API:        adapter.APIConfig{Language: "en"},
			UI:         adapter.UIConfig{CardWidth: 28},
			Thumbnails: adapter.ThumbnailsConfig{Enabled: true, Lazy: true},
		},
		logger,
	)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	m = update(t, m, CatalogLoadedMsg{Result: service.CatalogResult{Grouped: testGrouped()}})
	if m.State != StateBrowsing {
		t.Fatalf("expected browsing state")
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func TestCatalogLoadRequestsVisibleThumbnails(t *testing.T) {
	var logs bytes.Buffer
	m := newTestModel(t, &logs)

	if m.thumbs.Requested() != 4 {
		t.Fatalf("expected all 4 cards requested, got %d", m.thumbs.Requested())
	}

	next, cmd := m.Update(ThumbnailLoadedMsg{PartID: "A-1", Art: "ART"})
	if cmd != nil {
		t.Fatalf("unexpected command")
	}
	if !next.(Model).Grid.HasThumbnail("A-1") {
		t.Fatalf("expected thumbnail stored")
	}
}

func TestCatalogErrorShowsAlert(t *testing.T) {
	var logs bytes.Buffer
	m := newTestModel(t, &logs)

	err := &domain.FetchError{Op: "collections", Err: fmt.Errorf("%w: eof", domain.ErrDecode)}
	m = update(t, m, CatalogLoadedMsg{Result: service.CatalogResult{Grouped: domain.NewGroupedLessons()}, Err: err})

	if m.State != StateBrowsing || !m.Grid.IsEmpty() {
		t.Fatalf("expected an empty grid after a failed load")
	}
	if !m.Alert.Visible() || m.Alert.Message() != "Could not load the lesson parts. Please try again later." {
		t.Fatalf("unexpected alert %q", m.Alert.Message())
	}
}

func TestArrowKeysMoveCursor(t *testing.T) {
	var logs bytes.Buffer
	m := newTestModel(t, &logs)

	m = update(t, m, keyMsg("right"))
	m = update(t, m, keyMsg("right"))
	m = update(t, m, keyMsg("down"))

	if c := m.Grid.Cursor(); c != (navigation.Cursor{Row: 1, Col: 0}) {
		t.Fatalf("expected (1,0), got %+v", c)
	}
}

func TestAlertBlocksGridInput(t *testing.T) {
	var logs bytes.Buffer
	m := newTestModel(t, &logs)
	m.Alert.Show("boom")

	m = update(t, m, keyMsg("down"))
	if c := m.Grid.Cursor(); c != (navigation.Cursor{}) {
		t.Fatalf("grid must not move under the alert, got %+v", c)
	}

	m = update(t, m, keyMsg("enter"))
	if m.Alert.Visible() {
		t.Fatalf("expected enter to dismiss the alert")
	}
	if m.Overlay.Visible() {
		t.Fatalf("dismissing enter must not open the video")
	}

	m.Alert.Show("boom")
	m = update(t, m, keyMsg("backspace"))
	if m.Alert.Visible() {
		t.Fatalf("expected backspace to dismiss the alert")
	}
}

func TestOverlayOpenAndClose(t *testing.T) {
	var logs bytes.Buffer
	m := newTestModel(t, &logs)

	m = update(t, m, keyMsg("enter"))
	if m.Overlay.State() != components.OverlayLoading || m.session == nil {
		t.Fatalf("expected loading overlay with a session")
	}
	sess := m.session

	m = update(t, m, keyMsg("down"))
	if c := m.Grid.Cursor(); c != (navigation.Cursor{}) {
		t.Fatalf("grid must not move under the overlay, got %+v", c)
	}
	m = update(t, m, keyMsg("enter"))
	if m.session != sess {
		t.Fatalf("enter must not reopen while the overlay is open")
	}

	m = update(t, m, keyMsg("esc"))
	if m.Overlay.Visible() || m.session != nil || !sess.Closed() {
		t.Fatalf("expected overlay closed and session cancelled")
	}

	m = update(t, m, keyMsg("enter"))
	sess = m.session
	m = update(t, m, keyMsg("backspace"))
	if m.Overlay.Visible() || m.session != nil || !sess.Closed() {
		t.Fatalf("expected backspace to close the overlay")
	}
}

func TestStaleVideoResultsAreDiscarded(t *testing.T) {
	var logs bytes.Buffer
	m := newTestModel(t, &logs)

	m = update(t, m, keyMsg("enter"))
	old := m.session.ID
	m = update(t, m, keyMsg("esc"))
	m = update(t, m, keyMsg("enter"))

	late := &stubPlayer{done: make(chan struct{})}
	m = update(t, m, VideoReadyMsg{SessionID: old, Player: late})
	if late.stopped != 1 {
		t.Fatalf("expected the late player stopped")
	}
	if m.Overlay.State() != components.OverlayLoading {
		t.Fatalf("expected the new session still loading, got %s", m.Overlay.State())
	}

	m = update(t, m, VideoFailedMsg{SessionID: old, Err: context.Canceled})
	if m.Alert.Visible() {
		t.Fatalf("stale failure must not raise an alert")
	}

	player := &stubPlayer{done: make(chan struct{})}
	next, cmd := m.Update(VideoReadyMsg{SessionID: m.session.ID, Player: player})
	m = next.(Model)
	if m.Overlay.State() != components.OverlayPlaying || cmd == nil {
		t.Fatalf("expected playing state and a wait command")
	}

	m = update(t, m, PlayerExitedMsg{SessionID: m.Overlay.SessionID()})
	if m.Overlay.Visible() || player.stopped != 0 {
		t.Fatalf("expected overlay closed after the player exited")
	}
}

func TestVideoFailureClosesOverlayWithAlert(t *testing.T) {
	var logs bytes.Buffer
	m := newTestModel(t, &logs)

	m = update(t, m, keyMsg("enter"))
	id := m.session.ID
	m = update(t, m, VideoFailedMsg{SessionID: id, Err: domain.ErrVideoNotFound})

	if m.Overlay.Visible() || m.session != nil {
		t.Fatalf("expected the overlay force-closed")
	}
	if m.Alert.Message() != "Video not found." {
		t.Fatalf("unexpected alert %q", m.Alert.Message())
	}

	m = update(t, m, keyMsg("esc"))
	m = update(t, m, keyMsg("enter"))
	m = update(t, m, VideoFailedMsg{SessionID: m.session.ID, Err: fmt.Errorf("%w: mpv", adapter.ErrNoPlayer)})
	if m.Alert.Message() != "Could not open the video player." {
		t.Fatalf("unexpected alert %q", m.Alert.Message())
	}
}

func TestFilterTypingRoutesToInput(t *testing.T) {
	var logs bytes.Buffer
	m := newTestModel(t, &logs)

	m = update(t, m, keyMsg("/"))
	for _, r := range "zoh" {
		m = update(t, m, keyMsg(string(r)))
	}
	if rows := m.Grid.Rows(); len(rows) != 1 || rows[0][0].PartID != "B-1" {
		t.Fatalf("expected only Zohar left, got %v", rows)
	}

	// q is typed into the filter, not a quit
	m = update(t, m, keyMsg("q"))
	if !m.Grid.IsFilterTyping() || !m.Grid.IsEmpty() {
		t.Fatalf("expected q typed into the filter")
	}

	m = update(t, m, keyMsg("esc"))
	if m.Grid.IsFiltering() || len(m.Grid.Rows()) != 2 {
		t.Fatalf("expected filter cleared")
	}
}

func click(x, y int) []tea.MouseMsg {
	return []tea.MouseMsg{
		{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress},
		{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease},
	}
}

func TestClickOnCardOpensVideo(t *testing.T) {
	var logs bytes.Buffer
	m := newTestModel(t, &logs)

	// Second card of the first row: title line, then the row's date header
	for _, msg := range click(35, 5) {
		m = update(t, m, msg)
	}
	if c := m.Grid.Cursor(); c != (navigation.Cursor{Row: 0, Col: 1}) {
		t.Fatalf("expected click to select (0,1), got %+v", c)
	}
	if m.Overlay.State() != components.OverlayLoading || m.Overlay.Part().PartID != "A-2" {
		t.Fatalf("expected the overlay loading A-2, got %s", m.Overlay.State())
	}

	// The overlay takes the pointer away from the grid
	for _, msg := range click(5, 5) {
		m = update(t, m, msg)
	}
	if c := m.Grid.Cursor(); c != (navigation.Cursor{Row: 0, Col: 1}) {
		t.Fatalf("grid must not react under the overlay, got %+v", c)
	}
}

func TestClickOutsideCardsIsIgnored(t *testing.T) {
	var logs bytes.Buffer
	m := newTestModel(t, &logs)

	for _, pos := range [][2]int{{5, 0}, {5, 1}, {28, 5}, {50, 20}} {
		for _, msg := range click(pos[0], pos[1]) {
			m = update(t, m, msg)
		}
		if m.Overlay.Visible() {
			t.Fatalf("click at %v must not open the video", pos)
		}
	}
	if c := m.Grid.Cursor(); c != (navigation.Cursor{}) {
		t.Fatalf("expected cursor unchanged, got %+v", c)
	}
}

func TestClickUnderAlertIsIgnored(t *testing.T) {
	var logs bytes.Buffer
	m := newTestModel(t, &logs)
	m.Alert.Show("boom")

	for _, msg := range click(35, 5) {
		m = update(t, m, msg)
	}
	if m.Overlay.Visible() || m.Grid.Cursor() != (navigation.Cursor{}) {
		t.Fatalf("click under the alert must be ignored")
	}
	if !m.Alert.Visible() {
		t.Fatalf("expected the alert still shown")
	}
}

func TestWheelMovesBetweenRows(t *testing.T) {
	var logs bytes.Buffer
	m := newTestModel(t, &logs)

	m = update(t, m, tea.MouseMsg{X: 10, Y: 10, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if c := m.Grid.Cursor(); c != (navigation.Cursor{Row: 1, Col: 0}) {
		t.Fatalf("expected (1,0), got %+v", c)
	}
	m = update(t, m, tea.MouseMsg{X: 10, Y: 10, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if c := m.Grid.Cursor(); c != (navigation.Cursor{}) {
		t.Fatalf("expected (0,0), got %+v", c)
	}
}
