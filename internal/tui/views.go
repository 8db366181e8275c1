package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/aulas/internal/i18n"
	"github.com/mmcdole/aulas/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return i18n.Text(m.Lang, i18n.MsgLoading)
	}

	contentHeight := max(m.Height-ChromeHeight, 1)

	var content string
	if m.State == StateLoading {
		content = lipgloss.Place(m.Width, contentHeight,
			lipgloss.Center, lipgloss.Center,
			m.Spinner.View()+" "+styles.SubtitleStyle.Render(i18n.Text(m.Lang, i18n.MsgLoading)))
	} else {
		content = m.Grid.View()
	}

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		content,
		m.renderFooter(),
	)

	// Modals replace the screen, the alert wins over the overlay
	switch {
	case m.Alert.Visible():
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.Alert.View())
	case m.Overlay.Visible():
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.Overlay.View())
	}

	return view
}

// renderHeader renders the title line
func (m Model) renderHeader() string {
	return styles.TitleStyle.Render(styles.Truncate(i18n.Text(m.Lang, i18n.MsgTitle), m.Width))
}

// renderFooter renders the key hints, left aligned, padded to the width
func (m Model) renderFooter() string {
	help := styles.RenderHelp(
		[2]string{"←↑↓→", i18n.Text(m.Lang, i18n.MsgHelpMove)},
		[2]string{"enter", i18n.Text(m.Lang, i18n.MsgHelpPlay)},
		[2]string{"/", i18n.Text(m.Lang, i18n.MsgHelpFilter)},
		[2]string{"q", i18n.Text(m.Lang, i18n.MsgHelpQuit)},
	)
	gap := m.Width - lipgloss.Width(help)
	if gap < 0 {
		return styles.Truncate(help, m.Width)
	}
	return help + strings.Repeat(" ", gap)
}
