package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/aulas/internal/navigation"
	"github.com/mmcdole/aulas/internal/tui/components"
)

// handleKeyMsg handles keyboard input. Open modals take every key: the alert
// only listens for dismissal, the video overlay only for close.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.ForceQuit) {
		m.closeVideo()
		return m, tea.Quit
	}

	if m.Alert.Visible() {
		if key.Matches(msg, components.ModalKeys.Dismiss) {
			m.Alert.Close()
		}
		return m, nil
	}

	if m.Overlay.Visible() {
		if key.Matches(msg, components.ModalKeys.Close) {
			m.closeVideo()
		}
		return m, nil
	}

	if m.State == StateLoading {
		if key.Matches(msg, Keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	// Filter input takes typed keys
	if m.Grid.IsFilterTyping() {
		var cmd tea.Cmd
		m.Grid, cmd = m.Grid.UpdateFilter(msg)
		return m, tea.Batch(cmd, m.observeThumbnails())
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		m.closeVideo()
		return m, tea.Quit

	case key.Matches(msg, Keys.Filter):
		cmd := m.Grid.ToggleFilter()
		return m, cmd

	case key.Matches(msg, Keys.Escape):
		if m.Grid.IsFiltering() {
			m.Grid.ClearFilter()
			return m, m.observeThumbnails()
		}
		return m, nil

	case key.Matches(msg, Keys.Enter):
		return m, m.openVideo()

	case key.Matches(msg, Keys.Up):
		return m.move(navigation.Up)
	case key.Matches(msg, Keys.Down):
		return m.move(navigation.Down)
	case key.Matches(msg, Keys.Left):
		return m.move(navigation.Left)
	case key.Matches(msg, Keys.Right):
		return m.move(navigation.Right)
	}

	return m, nil
}

func (m Model) move(d navigation.Direction) (tea.Model, tea.Cmd) {
	if !m.Grid.Move(d) {
		return m, nil
	}
	return m, m.afterMove()
}
