package browser

import (
	"fmt"
	"math"
	"strconv"

	"playcatalog/models"
)

// FormatScore renders a rating with one decimal, or "N/A" when absent.
func FormatScore(score *float64) string {
	if score == nil || math.IsNaN(*score) || math.IsInf(*score, 0) {
		return "N/A"
	}
	return strconv.FormatFloat(*score, 'f', 1, 64)
}

func PriceLabel(r models.SearchResult) string {
	if r.PriceText != "" {
		return r.PriceText
	}
	if r.Free || r.Price == 0 {
		return "Free"
	}
	if r.Currency != "" {
		return fmt.Sprintf("%.2f %s", r.Price, r.Currency)
	}
	return fmt.Sprintf("%.2f", r.Price)
}

func DisplayTitle(r models.SearchResult) string {
	if r.Title == "" {
		return "Unnamed App"
	}
	return r.Title
}

func DisplayDeveloper(r models.SearchResult) string {
	if r.Developer == "" {
		return "Unknown Developer"
	}
	return r.Developer
}
