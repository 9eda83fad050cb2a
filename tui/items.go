package tui

import (
	"strings"

	"playcatalog/browser"
	"playcatalog/models"
)

type appItem struct {
	app models.SearchResult
}

func (i appItem) Title() string { return browser.DisplayTitle(i.app) }

func (i appItem) Description() string {
	parts := []string{
		browser.DisplayDeveloper(i.app),
		"★ " + browser.FormatScore(i.app.Score),
		browser.PriceLabel(i.app),
	}
	if i.app.Installs != "" {
		parts = append(parts, i.app.Installs)
	}
	return strings.Join(parts, " • ")
}

func (i appItem) FilterValue() string { return i.app.Title }
