package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/aulas/internal/domain"
	"github.com/nfnt/resize"
	"golang.org/x/sync/semaphore"
)

// halfBlock draws two vertical pixels in one cell: foreground on top,
// background below
const halfBlock = "▀"

// MaxConcurrentDownloads bounds thumbnail downloads in flight
const MaxConcurrentDownloads = 6

// ThumbnailService downloads, caches and renders card thumbnails as
// half-block terminal art
type ThumbnailService struct {
	client domain.ThumbnailClient
	store  domain.ThumbnailStore
	sem    *semaphore.Weighted
	logger *slog.Logger
}

// NewThumbnailService creates a new thumbnail service. store may be nil.
func NewThumbnailService(client domain.ThumbnailClient, store domain.ThumbnailStore, logger *slog.Logger) *ThumbnailService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ThumbnailService{
		client: client,
		store:  store,
		sem:    semaphore.NewWeighted(MaxConcurrentDownloads),
		logger: logger,
	}
}

// Fetch returns the image bytes for url, from the cache when present
func (s *ThumbnailService) Fetch(ctx context.Context, url string) ([]byte, error) {
	if s.store != nil {
		if data, ok := s.store.GetThumbnail(url); ok {
			return data, nil
		}
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	data, err := s.client.FetchThumbnail(ctx, url)
	s.sem.Release(1)
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		if err := s.store.SaveThumbnail(url, data); err != nil {
			s.logger.Warn("failed to cache thumbnail", "error", err)
		}
	}
	return data, nil
}

// ClearCache drops every cached thumbnail and returns how many were removed
func (s *ThumbnailService) ClearCache() (int, error) {
	if s.store == nil {
		return 0, nil
	}
	n := s.store.Len()
	if err := s.store.InvalidateAll(); err != nil {
		return 0, fmt.Errorf("failed to clear thumbnail cache: %w", err)
	}
	s.logger.Info("thumbnail cache cleared", "entries", n)
	return n, nil
}

// Load fetches url and renders it into cols x rows terminal cells
func (s *ThumbnailService) Load(ctx context.Context, url string, cols, rows int) (string, error) {
	data, err := s.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		s.logger.Debug("thumbnail decode failed", "url", url, "error", err)
		return "", fmt.Errorf("failed to decode image: %w", err)
	}
	return RenderHalfBlocks(img, cols, rows), nil
}

// RenderHalfBlocks scales img to cols x 2*rows pixels and renders each pair
// of vertical pixels as one half-block cell
func RenderHalfBlocks(img image.Image, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	scaled := resize.Resize(uint(cols), uint(rows*2), img, resize.Bilinear)
	b := scaled.Bounds()

	var sb strings.Builder
	for y := 0; y < rows; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < cols; x++ {
			top := scaled.At(b.Min.X+x, b.Min.Y+2*y)
			bottom := scaled.At(b.Min.X+x, b.Min.Y+2*y+1)
			sb.WriteString(lipgloss.NewStyle().
				Foreground(hexColor(top)).
				Background(hexColor(bottom)).
				Render(halfBlock))
		}
	}
	return sb.String()
}

func hexColor(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}
