package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/aulas/internal/domain"
	"github.com/mmcdole/aulas/internal/i18n"
	"github.com/mmcdole/aulas/internal/tui/styles"
)

// OverlayState is the video overlay lifecycle
type OverlayState int

const (
	OverlayClosed OverlayState = iota
	OverlayLoading
	OverlayPlaying
	OverlayErrored
)

func (s OverlayState) String() string {
	switch s {
	case OverlayClosed:
		return "closed"
	case OverlayLoading:
		return "loading"
	case OverlayPlaying:
		return "playing"
	case OverlayErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// VideoOverlay is the modal shown while a part is being resolved and played.
// Every opening carries a session id; results for any other id are stale and
// rejected.
type VideoOverlay struct {
	state     OverlayState
	sessionID string
	part      domain.Part
	player    string

	spinner spinner.Model
	lang    string
	width   int
}

// NewVideoOverlay creates a closed overlay
func NewVideoOverlay(lang string) VideoOverlay {
	return VideoOverlay{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(styles.SpinnerStyle),
		),
		lang: lang,
	}
}

// Open shows the overlay in the loading state for a new session
func (o *VideoOverlay) Open(sessionID string, part domain.Part) tea.Cmd {
	o.state = OverlayLoading
	o.sessionID = sessionID
	o.part = part
	o.player = ""
	return o.spinner.Tick
}

// Accepts reports whether a result for sessionID belongs to the open session
func (o VideoOverlay) Accepts(sessionID string) bool {
	return o.state != OverlayClosed && sessionID != "" && sessionID == o.sessionID
}

// SetPlaying moves a loading overlay to playing. Stale ids are ignored.
func (o *VideoOverlay) SetPlaying(sessionID, player string) bool {
	if !o.Accepts(sessionID) || o.state != OverlayLoading {
		return false
	}
	o.state = OverlayPlaying
	o.player = player
	return true
}

// Fail marks the session as errored. Stale ids are ignored.
func (o *VideoOverlay) Fail(sessionID string) bool {
	if !o.Accepts(sessionID) {
		return false
	}
	o.state = OverlayErrored
	return true
}

// Close hides the overlay and forgets the session
func (o *VideoOverlay) Close() {
	o.state = OverlayClosed
	o.sessionID = ""
	o.part = domain.Part{}
	o.player = ""
}

// State returns the lifecycle state
func (o VideoOverlay) State() OverlayState { return o.state }

// Visible reports whether the overlay is open
func (o VideoOverlay) Visible() bool { return o.state != OverlayClosed }

// SessionID returns the open session id, empty when closed
func (o VideoOverlay) SessionID() string { return o.sessionID }

// Part returns the part being played
func (o VideoOverlay) Part() domain.Part { return o.part }

// SetWidth sets the available width for the modal
func (o *VideoOverlay) SetWidth(width int) { o.width = width }

// Update advances the spinner while loading
func (o VideoOverlay) Update(msg tea.Msg) (VideoOverlay, tea.Cmd) {
	if o.state != OverlayLoading {
		return o, nil
	}
	var cmd tea.Cmd
	o.spinner, cmd = o.spinner.Update(msg)
	return o, cmd
}

// View renders the modal
func (o VideoOverlay) View() string {
	if o.state == OverlayClosed {
		return ""
	}
	inner := min(60, max(20, o.width-8))

	title := styles.ModalTitleStyle.Render(styles.Truncate(o.part.Title, inner))
	var status string
	switch o.state {
	case OverlayLoading:
		status = o.spinner.View() + " " + styles.SubtitleStyle.Render(i18n.Text(o.lang, i18n.MsgLoadingVideo))
	case OverlayPlaying:
		status = styles.AccentStyle.Render(styles.Truncate(i18n.Text(o.lang, i18n.MsgPlaying, o.player), inner))
	case OverlayErrored:
		status = styles.ErrorStyle.Render(i18n.Text(o.lang, i18n.MsgLoadVideoFailed))
	}
	meta := styles.DimStyle.Render(styles.Truncate(o.part.Date+" · "+o.part.Duration, inner))
	hint := styles.HelpDescStyle.Render(i18n.Text(o.lang, i18n.MsgCloseHint))

	return styles.ModalStyle.Width(inner + 4).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, meta, "", status, "", hint),
	)
}
