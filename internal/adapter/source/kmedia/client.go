package kmedia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/aulas/internal/domain"
)

const (
	userAgent = "Aulas/1.0"

	// thumbnailSource is the asset path the image service resizes from
	thumbnailSource = "http://nginx/assets/api/thumbnail/"

	maxThumbnailBytes = 4 << 20
)

// Options configures a Client
type Options struct {
	BaseURL        string        // Content API root, e.g. https://kabbalahmedia.info/backend
	ImageURL       string        // Image service endpoint
	MediaURL       string        // Media delivery origin
	Language       string        // ui_language and content_languages
	PageSize       int           // Lessons per fetch
	Timeout        time.Duration // 0 disables the per-request timeout
	ThumbnailWidth int
}

// Client implements domain.CatalogRepository, domain.PlaybackClient and
// domain.ThumbnailClient for the kabbalahmedia backend
type Client struct {
	opts       Options
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new content API client
func NewClient(opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	opts.MediaURL = strings.TrimRight(opts.MediaURL, "/")
	if opts.PageSize <= 0 {
		opts.PageSize = 56
	}
	return &Client{
		opts: opts,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		logger: logger,
	}
}

// languageQuery returns the language filters shared by every catalog call
func (c *Client) languageQuery() url.Values {
	query := url.Values{}
	query.Set("ui_language", c.opts.Language)
	query.Set("content_languages", c.opts.Language)
	return query
}

// doRequest performs a request against the content API. Every failure is
// returned as a *domain.FetchError tagged with op.
func (c *Client) doRequest(ctx context.Context, op, method, path string, query url.Values) ([]byte, error) {
	reqURL := c.opts.BaseURL + path
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}
	return c.get(ctx, op, method, reqURL, "application/json", -1)
}

// get issues a single round trip and reads at most limit bytes of the body
// (limit < 0 reads everything)
func (c *Client) get(ctx context.Context, op, method, reqURL, accept string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, &domain.FetchError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("kmedia request", "op", op, "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, &domain.FetchError{Op: op, Err: err}
		}
		c.logger.Error("kmedia request failed", "op", op, "error", err)
		return nil, &domain.FetchError{Op: op, Err: fmt.Errorf("%w: %v", domain.ErrServerOffline, err)}
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if limit >= 0 {
		reader = io.LimitReader(resp.Body, limit)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, &domain.FetchError{Op: op, Err: fmt.Errorf("%w: %v", domain.ErrServerOffline, err)}
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, &domain.FetchError{Op: op, Err: domain.ErrItemNotFound}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("kmedia request error", "op", op, "status", resp.StatusCode, "bodyLen", len(body))
		return nil, &domain.FetchError{Op: op, Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	return body, nil
}

// parseResponse decodes a JSON body into out
func (c *Client) parseResponse(op string, body []byte, out interface{}) error {
	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Error("JSON parse error", "op", op, "error", err, "bodyLen", len(body))
		return &domain.FetchError{Op: op, Err: fmt.Errorf("%w: %v", domain.ErrDecode, err)}
	}
	return nil
}

// FetchLessons returns the most recent daily lessons
func (c *Client) FetchLessons(ctx context.Context) ([]domain.Lesson, error) {
	query := c.languageQuery()
	query.Set("page_no", "1")
	query.Set("page_size", strconv.Itoa(c.opts.PageSize))
	query.Set("withViews", "true")
	query.Set("content_type", "DAILY_LESSON")

	body, err := c.doRequest(ctx, "lessons", http.MethodGet, "/lessons", query)
	if err != nil {
		return nil, err
	}

	var resp LessonsResponse
	if err := c.parseResponse("lessons", body, &resp); err != nil {
		return nil, err
	}
	return MapLessons(resp.Items), nil
}

// FetchCollections returns the collections with their units for the given
// lesson ids. No request is made for an empty id list.
func (c *Client) FetchCollections(ctx context.Context, lessonIDs []string) ([]domain.Collection, error) {
	if len(lessonIDs) == 0 {
		return []domain.Collection{}, nil
	}

	query := c.languageQuery()
	for _, id := range lessonIDs {
		query.Add("id", id)
	}
	query.Set("with_units", "true")
	query.Set("page_size", strconv.Itoa(max(c.opts.PageSize, len(lessonIDs))))

	body, err := c.doRequest(ctx, "collections", http.MethodGet, "/collections", query)
	if err != nil {
		return nil, err
	}

	var resp CollectionsResponse
	if err := c.parseResponse("collections", body, &resp); err != nil {
		return nil, err
	}
	return orderCollections(MapCollections(resp.Collections), lessonIDs), nil
}

// orderCollections sorts collections into the order of the requested ids.
// Collections the API returned but were not requested keep their relative
// order at the end.
func orderCollections(collections []domain.Collection, ids []string) []domain.Collection {
	rank := make(map[string]int, len(ids))
	for i, id := range ids {
		if _, ok := rank[id]; !ok {
			rank[id] = i
		}
	}
	ordered := make([]domain.Collection, 0, len(collections))
	byID := make(map[string][]domain.Collection, len(collections))
	var extra []domain.Collection
	for _, col := range collections {
		if _, ok := rank[col.ID]; ok {
			byID[col.ID] = append(byID[col.ID], col)
		} else {
			extra = append(extra, col)
		}
	}
	for _, id := range ids {
		ordered = append(ordered, byID[id]...)
		delete(byID, id)
	}
	return append(ordered, extra...)
}

// FetchUnitWithFiles returns a single content unit including its files
func (c *Client) FetchUnitWithFiles(ctx context.Context, unitID string) (*domain.ContentUnit, error) {
	query := c.languageQuery()
	query.Set("id", unitID)
	query.Set("with_files", "true")

	body, err := c.doRequest(ctx, "content_unit", http.MethodGet, "/content_units", query)
	if err != nil {
		return nil, err
	}

	var resp ContentUnitsResponse
	if err := c.parseResponse("content_unit", body, &resp); err != nil {
		return nil, err
	}
	for _, u := range resp.ContentUnits {
		if u.ID == unitID {
			unit := MapContentUnit(u)
			return &unit, nil
		}
	}
	return nil, domain.ErrItemNotFound
}

// ThumbnailURL returns the image service URL for a content unit
func (c *Client) ThumbnailURL(unitID string) string {
	query := url.Values{}
	query.Set("url", thumbnailSource+unitID)
	query.Set("width", strconv.Itoa(c.opts.ThumbnailWidth))
	query.Set("stripmeta", "true")
	return fmt.Sprintf("%s?%s", c.opts.ImageURL, query.Encode())
}

// MediaURL returns the playable URL of a file
func (c *Client) MediaURL(fileID string) string {
	return c.opts.MediaURL + "/" + url.PathEscape(fileID)
}

// FetchThumbnail downloads image bytes
func (c *Client) FetchThumbnail(ctx context.Context, imageURL string) ([]byte, error) {
	return c.get(ctx, "thumbnail", http.MethodGet, imageURL, "image/*", maxThumbnailBytes)
}

// ProbeMedia checks that the media origin serves the file. Servers that
// reject HEAD are treated as reachable.
func (c *Client) ProbeMedia(ctx context.Context, mediaURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, mediaURL, nil)
	if err != nil {
		return &domain.FetchError{Op: "media", Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return &domain.FetchError{Op: "media", Err: err}
		}
		return &domain.FetchError{Op: "media", Err: fmt.Errorf("%w: %v", domain.ErrServerOffline, err)}
	}
	resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusMethodNotAllowed:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return &domain.FetchError{Op: "media", Err: domain.ErrVideoNotFound}
	case resp.StatusCode >= 400:
		return &domain.FetchError{Op: "media", Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}
	return nil
}
