package metadata

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/videokoleks/videokoleks/internal/config"
)

// Scraper resolves video metadata by fetching the page HTML directly and
// running the Open Graph extractor over it.
type Scraper struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
	logger       *slog.Logger
}

// NewScraper creates a scraping resolver from configuration.
func NewScraper(cfg config.ResolverConfig, logger *slog.Logger) *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		userAgent:    cfg.UserAgent,
		maxBodyBytes: cfg.MaxBodyBytes,
		logger:       logger,
	}
}

// Resolve fetches videoURL masquerading as a browser and extracts metadata
// from the response HTML. It never fails: network errors, non-2xx statuses
// and unparsable bodies all degrade to an empty result. Single attempt, no
// retries.
func (s *Scraper) Resolve(ctx context.Context, videoURL string) Metadata {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, videoURL, nil)
	if err != nil {
		s.logger.Debug("scrape request build failed", "url", videoURL, "error", err)
		return Metadata{}
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("scrape fetch failed", "url", videoURL, "error", err)
		return Metadata{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Warn("scrape fetch non-success status", "url", videoURL, "status", resp.StatusCode)
		return Metadata{}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodyBytes))
	if err != nil {
		s.logger.Warn("scrape body read failed", "url", videoURL, "error", err)
		return Metadata{}
	}

	meta := Extract(string(body))
	if meta.Title == "" {
		s.logger.Debug("scrape found no title", "url", videoURL)
	}
	return meta
}
