package tui

import (
	"github.com/mmcdole/aulas/internal/domain"
	"github.com/mmcdole/aulas/internal/service"
)

// Message types for the TUI

// CatalogLoadedMsg signals that the startup load finished. Result is always
// usable; Err is set when a stage failed.
type CatalogLoadedMsg struct {
	Result service.CatalogResult
	Err    error
}

// ThumbnailLoadedMsg carries the rendered thumbnail of a part
type ThumbnailLoadedMsg struct {
	PartID string
	Art    string
	Err    error
}

// VideoReadyMsg signals that the player started for a session
type VideoReadyMsg struct {
	SessionID string
	Player    domain.Player
}

// VideoFailedMsg signals that a session could not start playback
type VideoFailedMsg struct {
	SessionID string
	Err       error
}

// PlayerExitedMsg signals that the player of a session exited
type PlayerExitedMsg struct {
	SessionID string
}

// ScrollTickMsg advances the scroll animation one frame
type ScrollTickMsg struct{}
