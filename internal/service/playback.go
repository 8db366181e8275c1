package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/mmcdole/aulas/internal/domain"
)

// launcher abstracts media player launching (consumer-defined interface)
type launcher interface {
	Launch(url, title string) (domain.Player, error)
}

// PlaybackService resolves a part to a playable stream and starts the player
type PlaybackService struct {
	client   domain.PlaybackClient
	launcher launcher
	lang     string
	logger   *slog.Logger
}

// NewPlaybackService creates a new playback service
func NewPlaybackService(client domain.PlaybackClient, launcher launcher, lang string, logger *slog.Logger) *PlaybackService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaybackService{
		client:   client,
		launcher: launcher,
		lang:     lang,
		logger:   logger,
	}
}

// Session is one opening of the video overlay. Closing it cancels any
// request in flight and stops the player it started.
type Session struct {
	ID   string
	Part domain.Part

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	player domain.Player
	closed bool
}

// NewSession starts a session for part with a fresh token
func (s *PlaybackService) NewSession(parent context.Context, part domain.Part) *Session {
	ctx, cancel := context.WithCancel(parent)
	return &Session{
		ID:     uuid.NewString(),
		Part:   part,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Close invalidates the session. Safe to call more than once.
func (sess *Session) Close() {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		return
	}
	sess.closed = true
	sess.cancel()
	if sess.player != nil {
		_ = sess.player.Stop()
	}
}

// Closed reports whether Close was called
func (sess *Session) Closed() bool {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.closed
}

// attach binds a started player to the session; a session closed while the
// player was starting stops it right away
func (sess *Session) attach(p domain.Player) bool {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		_ = p.Stop()
		return false
	}
	sess.player = p
	return true
}

// Player returns the running player, nil before Play succeeds
func (sess *Session) Player() domain.Player {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.player
}

// Resolve fetches the part's files, picks the video in the UI language and
// checks that the media origin serves it. Returns the playable URL.
func (s *PlaybackService) Resolve(ctx context.Context, partID string) (string, error) {
	unit, err := s.client.FetchUnitWithFiles(ctx, partID)
	if err != nil {
		s.logger.Error("failed to fetch content unit", "error", err, "partID", partID)
		return "", err
	}

	file, err := domain.SelectVideoFile(unit.Files, s.lang)
	if err != nil {
		s.logger.Warn("no video in language", "partID", partID, "language", s.lang, "files", len(unit.Files))
		return "", err
	}

	mediaURL := s.client.MediaURL(file.ID)
	if err := s.client.ProbeMedia(ctx, mediaURL); err != nil {
		s.logger.Error("media probe failed", "error", err, "url", mediaURL)
		return "", err
	}
	return mediaURL, nil
}

// Play resolves the session's part and launches the player. The player is
// only reported once it has started; a session closed meanwhile returns
// context.Canceled.
func (s *PlaybackService) Play(sess *Session) (domain.Player, error) {
	mediaURL, err := s.Resolve(sess.ctx, sess.Part.PartID)
	if err != nil {
		return nil, err
	}
	if err := sess.ctx.Err(); err != nil {
		return nil, err
	}

	s.logger.Info("launching playback", "title", sess.Part.Title, "partID", sess.Part.PartID, "session", sess.ID)
	player, err := s.launcher.Launch(mediaURL, sess.Part.Title)
	if err != nil {
		s.logger.Error("failed to launch player", "error", err)
		return nil, err
	}
	if !sess.attach(player) {
		return nil, context.Canceled
	}
	return player, nil
}
