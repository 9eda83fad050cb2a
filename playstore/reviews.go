package playstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"playcatalog/models"
)

const reviewsRPCID = "UsvDTd"

// reviewsRequestBody builds the f.req form value for one page of reviews.
func reviewsRequestBody(appID string, sort Sort, num int, token string) (string, error) {
	var pageToken any
	if token != "" {
		pageToken = token
	}
	inner, err := json.Marshal([]any{
		nil,
		nil,
		[]any{2, int(sort), []any{num, nil, pageToken}, nil, []any{}},
		[]any{appID, 7},
	})
	if err != nil {
		return "", err
	}
	outer, err := json.Marshal([]any{[]any{[]any{reviewsRPCID, string(inner), nil, "generic"}}})
	if err != nil {
		return "", err
	}
	form := url.Values{}
	form.Set("f.req", string(outer))
	return form.Encode(), nil
}

// fetchReviewsPage posts one batchexecute call and returns the raw review
// entries plus the continuation token, if any.
func (c *Client) fetchReviewsPage(ctx context.Context, opts ReviewsOptions, num int, token string) ([]gjson.Result, string, error) {
	body, err := reviewsRequestBody(opts.AppID, opts.Sort, num, token)
	if err != nil {
		return nil, "", err
	}

	q := url.Values{}
	q.Set("rpcids", reviewsRPCID)
	q.Set("source-path", "/store/apps/details")
	q.Set("hl", opts.Language)
	q.Set("gl", opts.Country)
	q.Set("authuser", "")
	q.Set("soc-app", "121")
	q.Set("soc-platform", "1")
	q.Set("soc-device", "1")
	endpoint := c.baseURL + "/_/PlayStoreUi/data/batchexecute?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body))
	if err != nil {
		return nil, "", err
	}
	setBrowserHeaders(req)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=UTF-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, "", ErrAppNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read reviews response: %w", err)
	}
	return parseReviewsResponse(string(raw))
}

// parseReviewsResponse unwraps the ")]}'" guarded batchexecute envelope.
func parseReviewsResponse(raw string) ([]gjson.Result, string, error) {
	start := strings.Index(raw, "[")
	if start < 0 {
		return nil, "", fmt.Errorf("malformed reviews response")
	}
	envelope := raw[start:]
	if end := strings.Index(envelope, "\n"); end >= 0 {
		envelope = envelope[:end]
	}
	if !gjson.Valid(envelope) {
		return nil, "", fmt.Errorf("malformed reviews response")
	}

	var payload string
	gjson.Parse(envelope).ForEach(func(_, frame gjson.Result) bool {
		if frame.Get("0").String() == "wrb.fr" && frame.Get("1").String() == reviewsRPCID {
			payload = frame.Get("2").String()
			return false
		}
		return true
	})
	if payload == "" {
		// An app without reviews answers with a null payload.
		log.Tracef("Reviews response carried no payload")
		return nil, "", nil
	}

	data := gjson.Parse(payload)
	return data.Get("0").Array(), data.Get("1.1").String(), nil
}

func (c *Client) collectReviews(ctx context.Context, opts ReviewsOptions) ([]models.Review, error) {
	reviews := make([]models.Review, 0, opts.Num)
	token := ""
	for len(reviews) < opts.Num {
		pageSize := min(opts.Num-len(reviews), reviewsPageSize)
		entries, next, err := c.fetchReviewsPage(ctx, opts, pageSize, token)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if len(reviews) >= opts.Num {
				break
			}
			reviews = append(reviews, mapReview(entry, c.baseURL, opts.AppID))
		}
		if next == "" || len(entries) == 0 {
			break
		}
		token = next
	}
	return reviews, nil
}
