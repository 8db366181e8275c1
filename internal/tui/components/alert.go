package components

import (
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/aulas/internal/i18n"
	"github.com/mmcdole/aulas/internal/tui/styles"
)

// Alert is the single-slot error side channel. Showing a message while
// another one is open replaces it; the replaced message is logged.
type Alert struct {
	message string
	visible bool

	lang   string
	width  int
	logger *slog.Logger
}

// NewAlert creates a hidden alert
func NewAlert(lang string, logger *slog.Logger) Alert {
	if logger == nil {
		logger = slog.Default()
	}
	return Alert{lang: lang, logger: logger}
}

// Show displays message, replacing any open one
func (a *Alert) Show(message string) {
	if a.visible && a.message != message {
		a.logger.Warn("alert replaced", "previous", a.message, "message", message)
	}
	a.message = message
	a.visible = true
}

// Close hides the alert
func (a *Alert) Close() {
	a.visible = false
	a.message = ""
}

// Visible reports whether the alert is shown
func (a Alert) Visible() bool { return a.visible }

// Message returns the shown message
func (a Alert) Message() string { return a.message }

// SetWidth sets the available width for the modal
func (a *Alert) SetWidth(width int) { a.width = width }

// View renders the alert box
func (a Alert) View() string {
	if !a.visible {
		return ""
	}
	inner := min(56, max(20, a.width-8))
	body := lipgloss.NewStyle().Width(inner).Foreground(styles.White).Render(a.message)
	hint := styles.HelpDescStyle.Render(i18n.Text(a.lang, i18n.MsgDismissHint))
	return styles.AlertStyle.Render(lipgloss.JoinVertical(lipgloss.Left, body, "", hint))
}
