package domain

import (
	"net/url"
	"strings"
)

// Platform identifies the social-media site a video link points at.
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformFacebook  Platform = "facebook"
	PlatformTwitter   Platform = "twitter"
	PlatformOther     Platform = "other"
)

// platformHosts maps hostname suffixes to platforms. A host matches when it
// equals a suffix or ends with "." + suffix.
var platformHosts = []struct {
	platform Platform
	hosts    []string
}{
	{PlatformYouTube, []string{"youtube.com", "youtu.be"}},
	{PlatformInstagram, []string{"instagram.com", "instagr.am"}},
	{PlatformTikTok, []string{"tiktok.com"}},
	{PlatformFacebook, []string{"facebook.com", "fb.watch", "fb.com"}},
	{PlatformTwitter, []string{"twitter.com", "x.com", "t.co"}},
}

// DetectPlatform derives the platform from a video URL's hostname.
// Unrecognized or unparsable URLs map to PlatformOther.
func DetectPlatform(rawURL string) Platform {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return PlatformOther
	}
	host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
	if host == "" {
		return PlatformOther
	}
	for _, p := range platformHosts {
		for _, h := range p.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return p.platform
			}
		}
	}
	return PlatformOther
}
