package playstore

import (
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"playcatalog/models"
)

// Paths inside a search result entry.
const (
	searchTitle       = "2"
	searchAppID       = "12.0"
	searchURL         = "9.4.2"
	searchIcon        = "1.1.0.3.2"
	searchDeveloper   = "4.0.0.0"
	searchDeveloperID = "4.0.0.1.4.2"
	searchCurrency    = "7.0.3.2.1.0.1"
	searchPrice       = "7.0.3.2.1.0.0"
	searchSummary     = "4.1.1.1.1"
	searchScoreText   = "6.0.2.1.0"
	searchScore       = "6.0.2.1.1"
)

// The search result list has moved around between page revisions.
var searchListPaths = []string{
	"0.1.0.22.0",
	"0.1.1.22.0",
	"0.1.0.21.0",
}

// Paths inside the detail block, relative to detailRoot.
const detailRoot = "1.2"

var detailPaths = struct {
	Title, Description, Summary, Installs                         string
	Score, ScoreText, Ratings, Reviews                            string
	Price, Currency, PriceText                                    string
	Developer, DeveloperID, DeveloperEmail, DeveloperWebsite      string
	PrivacyPolicy, Genre, GenreID, Icon, HeaderImage, Screenshots string
	Video, VideoImage, ContentRating, Released, Updated, Version  string
	RecentChanges                                                 string
}{
	Title:            "0.0",
	Description:      "72.0.1",
	Summary:          "73.0.1",
	Installs:         "13.0",
	Score:            "51.0.1",
	ScoreText:        "51.0.0",
	Ratings:          "51.2.1",
	Reviews:          "51.3.1",
	Price:            "57.0.0.0.0.1.0.0",
	Currency:         "57.0.0.0.0.1.0.1",
	PriceText:        "57.0.0.0.0.1.0.2",
	Developer:        "68.0",
	DeveloperID:      "68.1.4.2",
	DeveloperEmail:   "69.1.0",
	DeveloperWebsite: "69.0.5.2",
	PrivacyPolicy:    "99.0.5.2",
	Genre:            "79.0.0.0",
	GenreID:          "79.0.0.2",
	Icon:             "95.0.3.2",
	HeaderImage:      "96.0.3.2",
	Screenshots:      "78.0",
	Video:            "100.0.0.3.2",
	VideoImage:       "100.1.0.3.2",
	ContentRating:    "9.0",
	Released:         "10.0",
	Updated:          "145.0.1.0",
	Version:          "140.0.0.0",
	RecentChanges:    "144.1.1",
}

// Paths inside a review entry.
const (
	reviewID        = "0"
	reviewUserName  = "1.0"
	reviewUserImage = "1.1.3.2"
	reviewScore     = "2"
	reviewText      = "4"
	reviewDate      = "5.0"
	reviewThumbsUp  = "6"
	reviewReplyText = "7.1"
	reviewReplyDate = "7.2.0"
	reviewVersion   = "10"
)

func mapSearchResults(block gjson.Result, baseURL string, num int) []models.SearchResult {
	var entries []gjson.Result
	for _, path := range searchListPaths {
		if list := block.Get(path); list.IsArray() && len(list.Array()) > 0 {
			entries = list.Array()
			break
		}
	}

	results := make([]models.SearchResult, 0, len(entries))
	for _, entry := range entries {
		if len(results) >= num {
			break
		}
		// Cards without an app id are promos or section headers.
		appID := entry.Get(searchAppID).String()
		if appID == "" {
			continue
		}
		result := models.SearchResult{
			AppID:       appID,
			Title:       entry.Get(searchTitle).String(),
			URL:         absoluteURL(baseURL, entry.Get(searchURL).String()),
			Icon:        entry.Get(searchIcon).String(),
			Developer:   entry.Get(searchDeveloper).String(),
			DeveloperID: developerID(entry.Get(searchDeveloperID).String()),
			Currency:    entry.Get(searchCurrency).String(),
			Summary:     entry.Get(searchSummary).String(),
			ScoreText:   entry.Get(searchScoreText).String(),
		}
		result.Price, result.Free = price(entry.Get(searchPrice))
		result.Score = optionalFloat(entry.Get(searchScore))
		results = append(results, result)
	}
	return results
}

func mapAppDetail(block gjson.Result, appID, pageURL string) *models.AppDetail {
	root := block.Get(detailRoot)
	get := func(path string) gjson.Result {
		return root.Get(path)
	}
	p := detailPaths

	detail := &models.AppDetail{
		SearchResult: models.SearchResult{
			AppID:       appID,
			Title:       get(p.Title).String(),
			URL:         pageURL,
			Developer:   get(p.Developer).String(),
			DeveloperID: developerID(get(p.DeveloperID).String()),
			Icon:        get(p.Icon).String(),
			ScoreText:   get(p.ScoreText).String(),
			Currency:    get(p.Currency).String(),
			PriceText:   get(p.PriceText).String(),
			Installs:    get(p.Installs).String(),
			Summary:     get(p.Summary).String(),
		},
		Description:      get(p.Description).String(),
		Genre:            get(p.Genre).String(),
		GenreID:          get(p.GenreID).String(),
		ContentRating:    get(p.ContentRating).String(),
		Ratings:          get(p.Ratings).Int(),
		Reviews:          get(p.Reviews).Int(),
		Released:         get(p.Released).String(),
		Version:          get(p.Version).String(),
		RecentChanges:    get(p.RecentChanges).String(),
		HeaderImage:      get(p.HeaderImage).String(),
		Screenshots:      []string{},
		Video:            get(p.Video).String(),
		VideoImage:       get(p.VideoImage).String(),
		DeveloperEmail:   get(p.DeveloperEmail).String(),
		DeveloperWebsite: get(p.DeveloperWebsite).String(),
		PrivacyPolicy:    get(p.PrivacyPolicy).String(),
	}
	detail.Price, detail.Free = price(get(p.Price))
	detail.Score = optionalFloat(get(p.Score))
	if updated := get(p.Updated); updated.Exists() {
		detail.Updated = updated.Int() * 1000
	}
	for _, shot := range get(p.Screenshots).Array() {
		if src := shot.Get("3.2").String(); src != "" {
			detail.Screenshots = append(detail.Screenshots, src)
		}
	}
	return detail
}

func mapReview(entry gjson.Result, baseURL, appID string) models.Review {
	review := models.Review{
		ID:        entry.Get(reviewID).String(),
		UserName:  entry.Get(reviewUserName).String(),
		UserImage: entry.Get(reviewUserImage).String(),
		Score:     int(entry.Get(reviewScore).Int()),
		ScoreText: entry.Get(reviewScore).String(),
		Text:      entry.Get(reviewText).String(),
		ReplyText: entry.Get(reviewReplyText).String(),
		Version:   entry.Get(reviewVersion).String(),
		ThumbsUp:  entry.Get(reviewThumbsUp).Int(),
		Date:      unixDate(entry.Get(reviewDate)),
		ReplyDate: unixDate(entry.Get(reviewReplyDate)),
	}
	if review.ID != "" {
		q := url.Values{}
		q.Set("id", appID)
		q.Set("reviewId", review.ID)
		review.URL = baseURL + "/store/apps/details?" + q.Encode()
	}
	return review
}

// price converts micros to units; a missing price means free.
func price(r gjson.Result) (float64, bool) {
	if !r.Exists() || r.Type == gjson.Null {
		return 0, true
	}
	p := r.Float() / 1000000
	return p, p == 0
}

func optionalFloat(r gjson.Result) *float64 {
	if r.Type != gjson.Number {
		return nil
	}
	f := r.Float()
	return &f
}

func unixDate(r gjson.Result) string {
	if r.Type != gjson.Number {
		return ""
	}
	return time.Unix(r.Int(), 0).UTC().Format(time.RFC3339)
}

// developerID pulls the id out of "/store/apps/dev?id=123" style links.
func developerID(link string) string {
	if link == "" {
		return ""
	}
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return u.Query().Get("id")
}

func absoluteURL(baseURL, path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}
