package models

// SearchResult is one entry of a catalog search.
type SearchResult struct {
	AppID       string   `json:"appId"`
	Title       string   `json:"title"`
	URL         string   `json:"url,omitempty"`
	Developer   string   `json:"developer,omitempty"`
	DeveloperID string   `json:"developerId,omitempty"`
	Icon        string   `json:"icon,omitempty"`
	Score       *float64 `json:"score,omitempty"`
	ScoreText   string   `json:"scoreText,omitempty"`
	Price       float64  `json:"price"`
	Free        bool     `json:"free"`
	Currency    string   `json:"currency,omitempty"`
	PriceText   string   `json:"priceText,omitempty"`
	Installs    string   `json:"installs,omitempty"`
	Summary     string   `json:"summary,omitempty"`
}

// AppDetail is the full detail page of an app. It embeds the search fields
// so list and detail views can share rendering code.
type AppDetail struct {
	SearchResult

	Description      string   `json:"description,omitempty"`
	Genre            string   `json:"genre,omitempty"`
	GenreID          string   `json:"genreId,omitempty"`
	ContentRating    string   `json:"contentRating,omitempty"`
	Ratings          int64    `json:"ratings,omitempty"`
	Reviews          int64    `json:"reviews,omitempty"`
	Released         string   `json:"released,omitempty"`
	Updated          int64    `json:"updated,omitempty"`
	Version          string   `json:"version,omitempty"`
	RecentChanges    string   `json:"recentChanges,omitempty"`
	HeaderImage      string   `json:"headerImage,omitempty"`
	Screenshots      []string `json:"screenshots"`
	Video            string   `json:"video,omitempty"`
	VideoImage       string   `json:"videoImage,omitempty"`
	DeveloperEmail   string   `json:"developerEmail,omitempty"`
	DeveloperWebsite string   `json:"developerWebsite,omitempty"`
	PrivacyPolicy    string   `json:"privacyPolicy,omitempty"`
}

// MediaContent holds the media shown at the top of a detail view.
// Empty strings mean the field is absent.
type MediaContent struct {
	AppID        string   `json:"appId"`
	Screenshots  []string `json:"screenshots"`
	TrailerURL   string   `json:"trailerUrl,omitempty"`
	TrailerImage string   `json:"trailerImage,omitempty"`
	BannerImage  string   `json:"bannerImage,omitempty"`
}

// Review is a single user review.
type Review struct {
	ID        string `json:"id"`
	UserName  string `json:"userName"`
	UserImage string `json:"userImage,omitempty"`
	Date      string `json:"date,omitempty"`
	Score     int    `json:"score"`
	ScoreText string `json:"scoreText,omitempty"`
	URL       string `json:"url,omitempty"`
	Text      string `json:"text"`
	ReplyDate string `json:"replyDate,omitempty"`
	ReplyText string `json:"replyText,omitempty"`
	Version   string `json:"version,omitempty"`
	ThumbsUp  int64  `json:"thumbsUp"`
}

// MediaFromDetail extracts the media block of a detail page.
func MediaFromDetail(d *AppDetail) *MediaContent {
	screenshots := d.Screenshots
	if screenshots == nil {
		screenshots = []string{}
	}
	return &MediaContent{
		AppID:        d.AppID,
		Screenshots:  screenshots,
		TrailerURL:   d.Video,
		TrailerImage: d.VideoImage,
		BannerImage:  d.HeaderImage,
	}
}
