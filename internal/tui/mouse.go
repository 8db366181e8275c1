package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/aulas/internal/navigation"
)

// handleMouseMsg handles pointer input. A click on a card selects it and
// opens the video, like enter. The wheel moves between rows.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// The pointer only reaches the grid while nothing else has focus
	if m.Alert.Visible() || m.Overlay.Visible() || m.State == StateLoading || m.Grid.IsFilterTyping() {
		return m, nil
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		return m.move(navigation.Up)
	case msg.Button == tea.MouseButtonWheelDown:
		return m.move(navigation.Down)

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease:
		c, ok := m.Grid.HitTest(msg.X, msg.Y-HeaderHeight)
		if !ok {
			return m, nil
		}
		var cmds []tea.Cmd
		if m.Grid.Select(c) {
			cmds = append(cmds, m.afterMove())
		}
		cmds = append(cmds, m.openVideo())
		return m, tea.Batch(cmds...)
	}

	return m, nil
}
