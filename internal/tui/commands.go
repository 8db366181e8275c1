package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/aulas/internal/domain"
	"github.com/mmcdole/aulas/internal/service"
)

// Command factories for async operations

// scrollFrame is the scroll animation frame interval
const scrollFrame = 16 * time.Millisecond

// thumbnailTimeout bounds one thumbnail download and decode
const thumbnailTimeout = 30 * time.Second

// LoadCatalogCmd runs the startup load: lessons, then their collections
func LoadCatalogCmd(svc *service.CatalogService) tea.Cmd {
	return func() tea.Msg {
		result, err := svc.Load(context.Background())
		return CatalogLoadedMsg{Result: result, Err: err}
	}
}

// LoadThumbnailCmd downloads and renders the thumbnail of a part
func LoadThumbnailCmd(svc *service.ThumbnailService, part domain.Part, cols, rows int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), thumbnailTimeout)
		defer cancel()

		art, err := svc.Load(ctx, part.ThumbnailURL, cols, rows)
		return ThumbnailLoadedMsg{PartID: part.PartID, Art: art, Err: err}
	}
}

// PlayPartCmd resolves the session's part and launches the player. The
// session context cancels the request when the overlay closes.
func PlayPartCmd(svc *service.PlaybackService, sess *service.Session) tea.Cmd {
	return func() tea.Msg {
		player, err := svc.Play(sess)
		if err != nil {
			return VideoFailedMsg{SessionID: sess.ID, Err: err}
		}
		return VideoReadyMsg{SessionID: sess.ID, Player: player}
	}
}

// WaitPlayerCmd blocks until the player exits
func WaitPlayerCmd(sessionID string, player domain.Player) tea.Cmd {
	return func() tea.Msg {
		<-player.Done()
		return PlayerExitedMsg{SessionID: sessionID}
	}
}

// ScrollTickCmd schedules the next scroll animation frame
func ScrollTickCmd() tea.Cmd {
	return tea.Tick(scrollFrame, func(time.Time) tea.Msg {
		return ScrollTickMsg{}
	})
}
