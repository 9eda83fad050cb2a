package playstore

import "errors"

// Sort is the review ordering understood by the Play Store review RPC.
type Sort int

const (
	SortHelpfulness Sort = 1
	SortNewest      Sort = 2
	SortRating      Sort = 3
)

const (
	defaultCountry  = "us"
	defaultLanguage = "en"

	defaultSearchNum  = 20
	maxSearchNum      = 250
	defaultReviewsNum = 150
	reviewsPageSize   = 150
)

var (
	ErrMissingTerm  = errors.New("term missing")
	ErrMissingAppID = errors.New("appId missing")
	ErrAppNotFound  = errors.New("App not found (404)")
)

// SearchOptions mirrors the knobs of a Play Store search.
type SearchOptions struct {
	Term     string
	Num      int
	Country  string // e.g., "id"
	Language string // e.g., "id"
}

// AppOptions identifies a detail page.
type AppOptions struct {
	AppID    string
	Country  string
	Language string
}

// ReviewsOptions controls a review listing.
type ReviewsOptions struct {
	AppID    string
	Sort     Sort
	Num      int
	Country  string
	Language string
}

func locale(country, language string) (string, string) {
	if country == "" {
		country = defaultCountry
	}
	if language == "" {
		language = defaultLanguage
	}
	return country, language
}
