package platform

import (
	"fmt"
	"net/url"
	"strings"
)

// Hosts recognized as video references
const (
	ShortLinkHost   = "youtu.be"
	CanonicalDomain = "youtube.com"
)

// URL parameters and path markers
const (
	VideoIDParam    = "v"
	PlaylistIDParam = "list"
	MarkerLive      = "live"
	MarkerEmbed     = "embed"
)

// URL templates
const (
	YouTubeVideoURLTemplate    = "https://www.youtube.com/watch?v=%s"
	YouTubeEmbedURLTemplate    = "https://www.youtube.com/embed/%s?rel=0"
	YouTubePlaylistURLTemplate = "https://www.youtube.com/playlist?list=%s"
)

// ExtractVideoID returns the video identifier referenced by raw.
//
// Short links take the first path segment. Canonical links take the v query
// parameter, or the segment following the first live or embed marker. Any
// other input, including malformed URLs, yields ok == false.
func ExtractVideoID(raw string) (id string, ok bool) {
	u, host, ok := parseVideoURL(raw)
	if !ok {
		return "", false
	}

	segments := pathSegments(u.Path)

	switch {
	case host == ShortLinkHost:
		if len(segments) == 0 || segments[0] == "" {
			return "", false
		}
		return segments[0], true

	case strings.Contains(host, CanonicalDomain):
		if v := u.Query().Get(VideoIDParam); v != "" {
			return v, true
		}
		for i, seg := range segments {
			if seg != MarkerLive && seg != MarkerEmbed {
				continue
			}
			if i+1 < len(segments) && segments[i+1] != "" {
				return segments[i+1], true
			}
			return "", false
		}
	}

	return "", false
}

// ExtractPlaylistID returns the playlist identifier of a canonical link
func ExtractPlaylistID(raw string) (string, bool) {
	u, host, ok := parseVideoURL(raw)
	if !ok || !strings.Contains(host, CanonicalDomain) {
		return "", false
	}
	id := u.Query().Get(PlaylistIDParam)
	return id, id != ""
}

// WatchURL builds the canonical watch link for a video id
func WatchURL(id string) string {
	return fmt.Sprintf(YouTubeVideoURLTemplate, id)
}

// EmbedURL builds the embeddable player link for a video id
func EmbedURL(id string) string {
	return fmt.Sprintf(YouTubeEmbedURLTemplate, url.PathEscape(id))
}

func parseVideoURL(raw string) (*url.URL, string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, "", false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, "", false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	return u, host, true
}

// pathSegments splits a URL path, dropping only the leading slash so that
// empty segments stay in place.
func pathSegments(p string) []string {
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
