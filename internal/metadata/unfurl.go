package metadata

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/videokoleks/videokoleks/internal/config"
)

// Preview is resolved rich metadata for a link. Unlike the scraper's Metadata,
// a Preview is only produced when something usable was found; "nothing usable"
// is a nil Preview.
type Preview struct {
	Title     string
	Thumbnail string
	Duration  string
}

// UnfurlClient resolves link previews through a platform-neutral unfurl
// aggregator, preferring oEmbed data where the platform supplies it and
// falling back to the aggregator's Open Graph scrape otherwise.
type UnfurlClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewUnfurlClient creates an unfurl client. Returns nil when no aggregator is
// configured; callers treat a nil client as "scraping only".
func NewUnfurlClient(cfg config.UnfurlConfig, logger *slog.Logger) *UnfurlClient {
	if cfg.BaseURL == "" {
		return nil
	}
	return &UnfurlClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// Resolve queries the aggregator for target. oEmbed is authoritative when it
// carries both a title and a thumbnail; duration is scavenged from the same
// response's Open Graph video list since oEmbed does not reliably carry it.
// Without valid oEmbed the Open Graph fields are used, with the generic page
// title and favicon as last resorts. Returns nil when no title could be
// resolved through either path, and nil on any fetch or parse failure.
func (c *UnfurlClient) Resolve(ctx context.Context, target string) *Preview {
	body, err := c.fetch(ctx, target)
	if err != nil {
		c.logger.Warn("unfurl fetch failed", "url", target, "error", err)
		return nil
	}

	ogDuration := formatDuration(gjson.GetBytes(body, "openGraph.videos.0.duration").Float())

	// oEmbed path: valid iff both title and thumbnail are present.
	oembed := gjson.GetBytes(body, "oEmbed")
	if oembed.Exists() {
		title := oembed.Get("title").String()
		thumbnail := oembed.Get("thumbnail_url").String()
		if title != "" && thumbnail != "" {
			return &Preview{
				Title:     title,
				Thumbnail: thumbnail,
				Duration:  ogDuration,
			}
		}
	}

	// Open Graph / generic fallback.
	title := gjson.GetBytes(body, "openGraph.title").String()
	if title == "" {
		title = gjson.GetBytes(body, "title").String()
	}
	if title == "" {
		c.logger.Debug("unfurl found no usable title", "url", target)
		return nil
	}

	thumbnail := gjson.GetBytes(body, "openGraph.images.0.url").String()
	if thumbnail == "" {
		thumbnail = gjson.GetBytes(body, "favicon").String()
	}

	return &Preview{
		Title:     firstLine(title),
		Thumbnail: thumbnail,
		Duration:  ogDuration,
	}
}

func (c *UnfurlClient) fetch(ctx context.Context, target string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/api/v2/unfurl?url=%s&compress_image=true", c.baseURL, url.QueryEscape(target))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// formatDuration renders a duration in seconds as m:ss (or h:mm:ss).
// Zero or negative durations render as the empty string.
func formatDuration(seconds float64) string {
	total := int(seconds)
	if total <= 0 {
		return ""
	}
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
