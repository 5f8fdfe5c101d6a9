package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yourusername/romshelf-go/internal/domain"
	"go.uber.org/zap"
)

// HTTPSourceFetcher retrieves catalog sources over HTTP and classifies
// failures into the load error taxonomy. It implements
// domain.SourceFetcher.
type HTTPSourceFetcher struct {
	client  *http.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewHTTPSourceFetcher creates a fetcher. Relative source names are
// resolved against baseURL; absolute URLs are used as-is. timeout
// bounds each individual attempt.
func NewHTTPSourceFetcher(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPSourceFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPSourceFetcher{
		client:  &http.Client{},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: timeout,
		logger:  logger,
	}
}

// sourceItem is the wire schema of one catalog entry. The download link
// is kept raw so an explicit null can be told apart from an absent key.
type sourceItem struct {
	Title        string          `json:"title"`
	Platform     string          `json:"platform"`
	Region       string          `json:"region"`
	Thumbnail    string          `json:"thumbnail"`
	DownloadLink json.RawMessage `json:"download_link"`
}

// Fetch retrieves one source, decodes the payload and returns the valid
// items. All failures come back as *domain.LoadError.
func (f *HTTPSourceFetcher) Fetch(ctx context.Context, source string) ([]domain.Item, error) {
	url := f.resolve(source)

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.NewLoadError(domain.KindNetwork, source, err)
	}
	// The catalog can be republished at any time; never serve a stale copy.
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domain.NewLoadError(domain.KindTimeout, source, err)
		}
		return nil, domain.NewLoadError(domain.KindNetwork, source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewTransportError(source, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domain.NewLoadError(domain.KindTimeout, source, err)
		}
		return nil, domain.NewLoadError(domain.KindNetwork, source, err)
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, domain.NewLoadError(domain.KindFormat, source,
			errors.New("empty response from server"))
	}

	var raw []sourceItem
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, domain.NewLoadError(domain.KindFormat, source,
			fmt.Errorf("expected JSON array of items: %w", err))
	}

	items := decodeItems(raw)
	if len(items) == 0 {
		return nil, domain.NewLoadError(domain.KindEmpty, source,
			errors.New("no valid items found in the data"))
	}

	f.logger.Debug("Fetched catalog source",
		zap.String("source", source),
		zap.Int("raw", len(raw)),
		zap.Int("valid", len(items)))

	return items, nil
}

// decodeItems converts wire entries to items, dropping invalid ones:
// missing title, platform or thumbnail, or an explicitly null download
// link. An absent link is allowed.
func decodeItems(raw []sourceItem) []domain.Item {
	items := make([]domain.Item, 0, len(raw))
	for _, r := range raw {
		link, ok := decodeLink(r.DownloadLink)
		if !ok {
			continue
		}
		it := domain.Item{
			Title:        r.Title,
			Platform:     r.Platform,
			Region:       r.Region,
			Thumbnail:    r.Thumbnail,
			DownloadLink: link,
		}
		if !it.Valid() {
			continue
		}
		items = append(items, it)
	}
	return items
}

// decodeLink returns the link string and whether the entry is
// acceptable. `"download_link": null` marks an entry invalid; a missing
// key does not.
func decodeLink(raw json.RawMessage) (string, bool) {
	if raw == nil {
		return "", true
	}
	if string(raw) == "null" {
		return "", false
	}
	var link string
	if err := json.Unmarshal(raw, &link); err != nil {
		return "", false
	}
	return link, true
}

func (f *HTTPSourceFetcher) resolve(source string) string {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return source
	}
	if f.baseURL == "" {
		return source
	}
	return f.baseURL + "/" + strings.TrimPrefix(source, "/")
}
