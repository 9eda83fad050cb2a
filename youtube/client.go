package youtube

import (
	"net/url"
	"strings"
)

// TrailerURL identifies a YouTube video referenced by a store listing.
type TrailerURL struct {
	VideoID    string
	PlaylistID string
}

func isYouTubeHost(host string) bool {
	switch strings.ToLower(host) {
	case "www.youtube.com", "youtube.com", "m.youtube.com", "www.youtube-nocookie.com", "youtube-nocookie.com":
		return true
	}
	return false
}

// ParseTrailerURL understands watch, embed and youtu.be links. Store
// listings use the embed form with extra player parameters.
func ParseTrailerURL(raw string) TrailerURL {
	parsedURL, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsedURL.Host == "" {
		return TrailerURL{}
	}

	query := parsedURL.Query()
	result := TrailerURL{PlaylistID: query.Get("list")}

	switch {
	case strings.EqualFold(parsedURL.Host, "youtu.be"):
		result.VideoID = firstSegment(parsedURL.Path)
	case isYouTubeHost(parsedURL.Host):
		switch {
		case parsedURL.Path == "/watch":
			result.VideoID = query.Get("v")
		case strings.HasPrefix(parsedURL.Path, "/embed/"):
			result.VideoID = firstSegment(strings.TrimPrefix(parsedURL.Path, "/embed"))
		case strings.HasPrefix(parsedURL.Path, "/shorts/"):
			result.VideoID = firstSegment(strings.TrimPrefix(parsedURL.Path, "/shorts"))
		}
	default:
		return TrailerURL{}
	}
	return result
}

func firstSegment(path string) string {
	path = strings.Trim(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	return path
}

// WatchURL is the canonical page for the video, or "" without a video ID.
func (t TrailerURL) WatchURL() string {
	if t.VideoID == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + url.QueryEscape(t.VideoID)
}

// ThumbnailURL is YouTube's standard still image for the video.
func (t TrailerURL) ThumbnailURL() string {
	if t.VideoID == "" {
		return ""
	}
	return "https://i.ytimg.com/vi/" + url.PathEscape(t.VideoID) + "/hqdefault.jpg"
}

// Playable reports whether raw points at a YouTube video.
func Playable(raw string) bool {
	return ParseTrailerURL(raw).VideoID != ""
}
