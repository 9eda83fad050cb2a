package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"playcatalog/browser"
	"playcatalog/models"
	"playcatalog/youtube"
)

const collapsedLines = 6

func renderTokens(tokens []browser.Token) string {
	var b strings.Builder
	text := lipgloss.NewStyle().Foreground(TextColor)
	for _, t := range tokens {
		switch t.Kind {
		case browser.TokenBreak:
			b.WriteByte('\n')
		case browser.TokenColored:
			b.WriteString(lipgloss.NewStyle().Foreground(tokenColor(t.Color)).Render(t.Value))
		default:
			b.WriteString(text.Render(t.Value))
		}
	}
	return b.String()
}

// tokenColor maps markup colors to something a terminal can show. Named
// colors have no portable ANSI equivalent and get the accent color.
func tokenColor(c string) lipgloss.TerminalColor {
	if strings.HasPrefix(c, "#") && (len(c) == 4 || len(c) == 7) {
		return lipgloss.Color(c)
	}
	return AccentColor
}

func renderDescription(raw string, expanded bool) string {
	tokens := browser.ParseDescription(raw)
	if len(tokens) == 0 {
		return HintStyle.Render("No description.")
	}
	if expanded {
		return renderTokens(tokens) + "\n" + HintStyle.Render("e: show less")
	}
	short, cut := browser.Collapse(tokens, collapsedLines)
	out := renderTokens(short)
	if cut {
		out += "\n" + HintStyle.Render("… e: show more")
	}
	return out
}

func heroLine(media *models.MediaContent, playing, muted bool) string {
	hero := browser.ResolveHero(media)
	switch hero.Kind {
	case browser.HeroTrailer:
		target := hero.URL
		if watch := youtube.ParseTrailerURL(hero.URL).WatchURL(); watch != "" {
			target = watch
		}
		state := "paused"
		if playing {
			state = "playing"
		}
		if muted {
			state += ", muted"
		}
		return fmt.Sprintf("▶ Trailer [%s]\n%s", state, SubtitleStyle.Render(target))
	case browser.HeroBanner:
		return "Banner\n" + SubtitleStyle.Render(hero.URL)
	case browser.HeroScreenshot:
		return "Screenshot\n" + SubtitleStyle.Render(hero.URL)
	default:
		return HintStyle.Render("No media available")
	}
}

// reviewsMarkdown formats reviews for glamour.
func reviewsMarkdown(reviews []models.Review) string {
	if len(reviews) == 0 {
		return "_No reviews yet._\n"
	}
	var b strings.Builder
	for _, r := range reviews {
		name := r.UserName
		if name == "" {
			name = "Anonymous"
		}
		fmt.Fprintf(&b, "### %s %s\n\n", name, stars(r.Score))
		if r.Date != "" {
			fmt.Fprintf(&b, "*%s*\n\n", dateOnly(r.Date))
		}
		if text := strings.TrimSpace(r.Text); text != "" {
			b.WriteString(text + "\n\n")
		}
		if reply := strings.TrimSpace(r.ReplyText); reply != "" {
			b.WriteString("> **Developer reply:** " + strings.ReplaceAll(reply, "\n", " ") + "\n\n")
		}
	}
	return b.String()
}

func stars(score int) string {
	score = max(0, min(score, 5))
	return strings.Repeat("★", score) + strings.Repeat("☆", 5-score)
}

func dateOnly(date string) string {
	if i := strings.IndexByte(date, 'T'); i > 0 {
		return date[:i]
	}
	return date
}

func renderHeader(app models.SearchResult) string {
	lines := []string{
		TitleStyle.Render(browser.DisplayTitle(app)),
		SubtitleStyle.Render(browser.DisplayDeveloper(app)),
		ScoreStyle.Render("★ "+browser.FormatScore(app.Score)) + "  " + browser.PriceLabel(app),
	}
	return strings.Join(lines, "\n")
}

func renderFacts(d *models.AppDetail) string {
	var facts []string
	add := func(label, value string) {
		if value != "" {
			facts = append(facts, SubtitleStyle.Render(label+": ")+value)
		}
	}
	add("Genre", d.Genre)
	add("Installs", d.Installs)
	add("Rating", d.ContentRating)
	add("Version", d.Version)
	if d.Updated > 0 {
		add("Updated", time.UnixMilli(d.Updated).UTC().Format("2006-01-02"))
	}
	add("Released", d.Released)
	if d.Ratings > 0 {
		add("Ratings", fmt.Sprintf("%d", d.Ratings))
	}
	return strings.Join(facts, "\n")
}
