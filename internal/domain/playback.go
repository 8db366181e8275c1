package domain

import "context"

// PlaybackClient provides network operations for video playback.
type PlaybackClient interface {
	FetchUnitWithFiles(ctx context.Context, unitID string) (*ContentUnit, error)
	MediaURL(fileID string) string
	ProbeMedia(ctx context.Context, mediaURL string) error
}

// SelectVideoFile picks the video file in the given language.
// Returns ErrVideoNotFound when the unit has no such file.
func SelectVideoFile(files []File, lang string) (File, error) {
	for _, f := range files {
		if f.Language == lang && f.IsVideo() {
			return f, nil
		}
	}
	return File{}, ErrVideoNotFound
}

// Player is a running external video player
type Player interface {
	Name() string
	Done() <-chan struct{}
	Stop() error
}
