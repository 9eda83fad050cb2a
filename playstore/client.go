package playstore

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"

	"playcatalog/models"
)

// Client scrapes the public Play Store web pages.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

type Option func(*Client)

// WithBaseURL points the client at another host, mostly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(opts ...Option) *Client {
	c := &Client{
		httpClient: httpClient,
		baseURL:    BaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search runs a catalog search and returns at most opts.Num results.
func (c *Client) Search(ctx context.Context, opts SearchOptions) ([]models.SearchResult, error) {
	log.Tracef("Searching Play Store: term=%q, num=%d, country=%s, lang=%s", opts.Term, opts.Num, opts.Country, opts.Language)

	span := sentry.StartSpan(ctx, "playstore.search")
	span.Description = "Search Play Store via web scraping"
	span.SetTag("country", opts.Country)
	span.SetTag("num", strconv.Itoa(opts.Num))
	defer span.Finish()

	if opts.Term == "" {
		span.Status = sentry.SpanStatusInvalidArgument
		return nil, ErrMissingTerm
	}
	if opts.Num <= 0 {
		opts.Num = defaultSearchNum
	}
	if opts.Num > maxSearchNum {
		opts.Num = maxSearchNum
	}
	opts.Country, opts.Language = locale(opts.Country, opts.Language)

	data, err := c.fetchInitData(span.Context(), c.searchURL(opts.Term, opts.Country, opts.Language))
	if err != nil {
		log.Errorf("Failed to fetch Play Store search: %v", err)
		span.Status = sentry.SpanStatusInternalError
		return nil, err
	}

	var results []models.SearchResult
	for _, path := range searchListPaths {
		if block, ok := data.find("ds:4", path); ok {
			results = mapSearchResults(block, c.baseURL, opts.Num)
			break
		}
	}
	if results == nil {
		// A search without matches renders no result list at all.
		log.Debugf("No search results for %q", opts.Term)
		results = []models.SearchResult{}
	}

	span.Status = sentry.SpanStatusOK
	span.SetData("results_count", len(results))
	return results, nil
}

// App fetches the detail page of a single app.
func (c *Client) App(ctx context.Context, opts AppOptions) (*models.AppDetail, error) {
	log.Tracef("Fetching Play Store app: id=%s, country=%s, lang=%s", opts.AppID, opts.Country, opts.Language)

	span := sentry.StartSpan(ctx, "playstore.app")
	span.Description = "Get app detail from Play Store via web scraping"
	span.SetTag("app_id", opts.AppID)
	defer span.Finish()

	if opts.AppID == "" {
		span.Status = sentry.SpanStatusInvalidArgument
		return nil, ErrMissingAppID
	}
	opts.Country, opts.Language = locale(opts.Country, opts.Language)

	pageURL := c.detailsURL(opts.AppID, opts.Country, opts.Language)
	data, err := c.fetchInitData(span.Context(), pageURL)
	if err != nil {
		if errors.Is(err, ErrAppNotFound) {
			log.Warnf("App %s not found", opts.AppID)
			span.Status = sentry.SpanStatusNotFound
			return nil, err
		}
		log.Errorf("Failed to fetch Play Store app: %v", err)
		span.Status = sentry.SpanStatusInternalError
		return nil, err
	}

	block, ok := data.find("ds:5", detailRoot+"."+detailPaths.Title)
	if !ok {
		err := errors.New("app detail block not found in page")
		span.Status = sentry.SpanStatusInternalError
		return nil, err
	}

	detail := mapAppDetail(block, opts.AppID, pageURL)
	log.Debugf("Successfully fetched app: '%s' by %s", detail.Title, detail.Developer)
	span.Status = sentry.SpanStatusOK
	span.SetData("app_title", detail.Title)
	span.SetData("screenshots_count", len(detail.Screenshots))
	return detail, nil
}

// Reviews lists up to opts.Num reviews in the requested order.
func (c *Client) Reviews(ctx context.Context, opts ReviewsOptions) ([]models.Review, error) {
	log.Tracef("Fetching Play Store reviews: id=%s, sort=%d, num=%d", opts.AppID, opts.Sort, opts.Num)

	span := sentry.StartSpan(ctx, "playstore.reviews")
	span.Description = "Get app reviews from Play Store batchexecute RPC"
	span.SetTag("app_id", opts.AppID)
	span.SetTag("num", strconv.Itoa(opts.Num))
	defer span.Finish()

	if opts.AppID == "" {
		span.Status = sentry.SpanStatusInvalidArgument
		return nil, ErrMissingAppID
	}
	if opts.Num <= 0 {
		opts.Num = defaultReviewsNum
	}
	if opts.Sort == 0 {
		opts.Sort = SortNewest
	}
	opts.Country, opts.Language = locale(opts.Country, opts.Language)

	reviews, err := c.collectReviews(span.Context(), opts)
	if err != nil {
		log.Errorf("Failed to fetch Play Store reviews: %v", err)
		span.Status = sentry.SpanStatusInternalError
		return nil, err
	}

	span.Status = sentry.SpanStatusOK
	span.SetData("reviews_count", len(reviews))
	return reviews, nil
}

// Media returns the screenshots, trailer and banner of an app.
func (c *Client) Media(ctx context.Context, opts AppOptions) (*models.MediaContent, error) {
	detail, err := c.App(ctx, opts)
	if err != nil {
		return nil, err
	}
	return models.MediaFromDetail(detail), nil
}
