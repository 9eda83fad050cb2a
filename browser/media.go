package browser

import (
	"strings"

	"playcatalog/models"
)

type HeroKind int

const (
	HeroPlaceholder HeroKind = iota
	HeroTrailer
	HeroBanner
	HeroScreenshot
)

func (k HeroKind) String() string {
	switch k {
	case HeroTrailer:
		return "trailer"
	case HeroBanner:
		return "banner"
	case HeroScreenshot:
		return "screenshot"
	default:
		return "placeholder"
	}
}

// Hero is what the top of a detail view shows.
type Hero struct {
	Kind HeroKind
	URL  string
}

// ResolveHero walks trailer, banner, first screenshot, placeholder and
// returns the first one present. Blank strings count as absent.
func ResolveHero(m *models.MediaContent) Hero {
	if m == nil {
		return Hero{Kind: HeroPlaceholder}
	}
	if url := strings.TrimSpace(m.TrailerURL); url != "" {
		return Hero{Kind: HeroTrailer, URL: url}
	}
	if url := strings.TrimSpace(m.BannerImage); url != "" {
		return Hero{Kind: HeroBanner, URL: url}
	}
	if len(m.Screenshots) > 0 && strings.TrimSpace(m.Screenshots[0]) != "" {
		return Hero{Kind: HeroScreenshot, URL: m.Screenshots[0]}
	}
	return Hero{Kind: HeroPlaceholder}
}
