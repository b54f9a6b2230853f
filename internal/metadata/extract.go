// Package metadata resolves display metadata (title, thumbnail, duration) for
// arbitrary video URLs: best-effort Open Graph scraping plus an
// oEmbed-preferring unfurl path.
package metadata

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Metadata is a best-guess title/thumbnail pair extracted from page markup.
// Either field may be empty; an empty Title means extraction failed.
type Metadata struct {
	Title        string
	ThumbnailURL string
}

// Extract pulls a title and thumbnail URL out of raw HTML by probing a
// prioritized list of markup locations. Pure and deterministic; malformed
// HTML yields empty fields rather than an error.
//
// Title priority: og:title, then <title>, then meta description. The selected
// title is trimmed and truncated to its first line to strip embedded
// multi-line captions. Thumbnail priority: og:image, then og:image:secure_url.
func Extract(html string) Metadata {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Metadata{}
	}

	title := metaContent(doc, `meta[property="og:title"]`)
	if title == "" {
		title = doc.Find("title").First().Text()
	}
	if title == "" {
		title = metaContent(doc, `meta[name="description"]`)
	}

	thumbnail := metaContent(doc, `meta[property="og:image"]`)
	if thumbnail == "" {
		thumbnail = metaContent(doc, `meta[property="og:image:secure_url"]`)
	}

	return Metadata{
		Title:        firstLine(title),
		ThumbnailURL: strings.TrimSpace(thumbnail),
	}
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return content
}

// firstLine trims the string and keeps everything before the first newline.
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
