package tui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/aulas/internal/adapter"
	"github.com/mmcdole/aulas/internal/i18n"
	"github.com/mmcdole/aulas/internal/service"
	"github.com/mmcdole/aulas/internal/tui/components"
	"github.com/mmcdole/aulas/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateLoading ApplicationState = iota
	StateBrowsing
)

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	CatalogSvc   *service.CatalogService
	PlaybackSvc  *service.PlaybackService
	ThumbnailSvc *service.ThumbnailService

	// UI Components
	Grid    components.LessonGrid
	Overlay components.VideoOverlay
	Alert   components.Alert
	Spinner spinner.Model

	// Dimensions
	Width  int
	Height int

	Lang string

	thumbs    *components.ThumbnailWatcher
	session   *service.Session
	scrolling bool
	logger    *slog.Logger
}

// NewModel creates a new application model
func NewModel(
	catalogSvc *service.CatalogService,
	playbackSvc *service.PlaybackService,
	thumbnailSvc *service.ThumbnailService,
	cfg *adapter.Config,
	logger *slog.Logger,
) Model {
	if logger == nil {
		logger = slog.Default()
	}
	lang := cfg.API.Language
	tc := cfg.Thumbnails

	return Model{
		State:        StateLoading,
		CatalogSvc:   catalogSvc,
		PlaybackSvc:  playbackSvc,
		ThumbnailSvc: thumbnailSvc,
		Grid:         components.NewLessonGrid(cfg.UI.CardWidth, lang),
		Overlay:      components.NewVideoOverlay(lang),
		Alert:        components.NewAlert(lang, logger),
		Spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(styles.SpinnerStyle),
		),
		Lang:   lang,
		thumbs: components.NewThumbnailWatcher(tc.Enabled && thumbnailSvc != nil, tc.Lazy, tc.MarginRows, tc.MarginCols),
		logger: logger,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadCatalogCmd(m.CatalogSvc),
		m.Spinner.Tick,
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, m.observeThumbnails()

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if m.State == StateLoading {
			var cmd tea.Cmd
			m.Spinner, cmd = m.Spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		var cmd tea.Cmd
		m.Overlay, cmd = m.Overlay.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case CatalogLoadedMsg:
		// The loading screen goes away whatever the outcome
		m.State = StateBrowsing
		m.Grid.SetLessons(msg.Result.Grouped)
		m.thumbs.Reset()
		if msg.Err != nil {
			m.logger.Error("catalog load failed", "error", msg.Err, "lessons", len(msg.Result.Lessons))
			m.Alert.Show(i18n.CatalogErrorText(m.Lang, msg.Err))
		} else {
			m.logger.Info("catalog loaded", "lessons", msg.Result.Grouped.Len())
		}
		return m, m.observeThumbnails()

	case ThumbnailLoadedMsg:
		if msg.Err != nil {
			m.logger.Debug("thumbnail failed", "partID", msg.PartID, "error", msg.Err)
			return m, nil
		}
		m.Grid.SetThumbnail(msg.PartID, msg.Art)
		return m, nil

	case VideoReadyMsg:
		if !m.Overlay.SetPlaying(msg.SessionID, msg.Player.Name()) {
			// Late result of a closed session
			m.logger.Debug("discarding stale player", "session", msg.SessionID)
			_ = msg.Player.Stop()
			return m, nil
		}
		return m, WaitPlayerCmd(msg.SessionID, msg.Player)

	case VideoFailedMsg:
		if !m.Overlay.Fail(msg.SessionID) {
			m.logger.Debug("discarding stale video error", "session", msg.SessionID, "error", msg.Err)
			return m, nil
		}
		m.closeVideo()
		m.Alert.Show(m.videoErrorText(msg.Err))
		return m, nil

	case PlayerExitedMsg:
		if m.Overlay.Accepts(msg.SessionID) {
			m.logger.Info("player exited", "session", msg.SessionID)
			m.closeVideo()
		}
		return m, nil

	case ScrollTickMsg:
		if m.Grid.ScrollStep() {
			return m, ScrollTickCmd()
		}
		m.scrolling = false
		return m, nil
	}

	return m, nil
}

// videoErrorText picks the alert for a failed playback
func (m Model) videoErrorText(err error) string {
	if errors.Is(err, adapter.ErrNoPlayer) {
		return i18n.Text(m.Lang, i18n.MsgPlayerFailed)
	}
	return i18n.ErrorText(m.Lang, err, i18n.MsgLoadVideoFailed)
}

// openVideo starts a playback session for the selected card
func (m *Model) openVideo() tea.Cmd {
	part, ok := m.Grid.Selected()
	if !ok {
		return nil
	}
	m.closeVideo()
	m.session = m.PlaybackSvc.NewSession(context.Background(), part)
	m.logger.Info("opening video", "partID", part.PartID, "session", m.session.ID)
	return tea.Batch(
		m.Overlay.Open(m.session.ID, part),
		PlayPartCmd(m.PlaybackSvc, m.session),
	)
}

// closeVideo stops the player, cancels anything in flight and hides the
// overlay. Results of the closed session are discarded when they arrive.
func (m *Model) closeVideo() {
	if m.session != nil {
		m.session.Close()
		m.session = nil
	}
	m.Overlay.Close()
}

// afterMove starts the scroll animation if needed and requests thumbnails
// for cards coming into view
func (m *Model) afterMove() tea.Cmd {
	var cmds []tea.Cmd
	if !m.scrolling && m.Grid.Animating() {
		m.scrolling = true
		cmds = append(cmds, ScrollTickCmd())
	}
	cmds = append(cmds, m.observeThumbnails())
	return tea.Batch(cmds...)
}

// observeThumbnails requests thumbnails for newly visible cards
func (m *Model) observeThumbnails() tea.Cmd {
	if m.State != StateBrowsing || m.ThumbnailSvc == nil {
		return nil
	}
	parts := m.thumbs.Observe(m.Grid)
	if len(parts) == 0 {
		return nil
	}
	cols, rows := m.Grid.ThumbSize()
	cmds := make([]tea.Cmd, len(parts))
	for i, p := range parts {
		cmds[i] = LoadThumbnailCmd(m.ThumbnailSvc, p, cols, rows)
	}
	return tea.Batch(cmds...)
}
