package service

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/videokoleks/videokoleks/internal/domain"
	"github.com/videokoleks/videokoleks/internal/metadata"
)

// MetadataService resolves display metadata for a video URL, preferring the
// oEmbed/unfurl path and falling back to raw scraping.
type MetadataService struct {
	unfurl  *metadata.UnfurlClient // nil when no aggregator is configured
	scraper *metadata.Scraper
	logger  *slog.Logger
}

// NewMetadataService creates a new metadata service.
func NewMetadataService(unfurl *metadata.UnfurlClient, scraper *metadata.Scraper, logger *slog.Logger) *MetadataService {
	return &MetadataService{
		unfurl:  unfurl,
		scraper: scraper,
		logger:  logger,
	}
}

// ResolveResult is the candidate metadata offered to the user before they
// confirm saving a video. All metadata fields may be empty; resolution is
// best-effort and failure only means the user fills the fields in by hand.
type ResolveResult struct {
	Title        string
	ThumbnailURL string
	Duration     string
	Platform     domain.Platform
}

// Resolve looks up metadata for rawURL. The only error condition is an
// unusable URL; resolution failures degrade to empty fields.
func (s *MetadataService) Resolve(ctx context.Context, rawURL string) (*ResolveResult, error) {
	if err := validateVideoURL(rawURL); err != nil {
		return nil, err
	}

	result := &ResolveResult{Platform: domain.DetectPlatform(rawURL)}

	if s.unfurl != nil {
		if preview := s.unfurl.Resolve(ctx, rawURL); preview != nil {
			result.Title = preview.Title
			result.ThumbnailURL = preview.Thumbnail
			result.Duration = preview.Duration
			return result, nil
		}
		s.logger.Debug("unfurl resolution empty, falling back to scraping", "url", rawURL)
	}

	meta := s.scraper.Resolve(ctx, rawURL)
	result.Title = meta.Title
	result.ThumbnailURL = meta.ThumbnailURL
	return result, nil
}

func validateVideoURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return domain.ErrInvalidVideoURL
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.ErrInvalidVideoURL
	}
	return nil
}
