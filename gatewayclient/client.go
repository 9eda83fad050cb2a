// Package gatewayclient calls the query gateway's JSON API.
package gatewayclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"playcatalog/models"
)

const DefaultBaseURL = "http://localhost:5000"

// APIError is a non-200 answer from the gateway.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gateway returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("gateway returned status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *log.Entry
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  log.WithFields(log.Fields{"module": "gatewayclient"}),
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	var results []models.SearchResult
	err := c.get(ctx, "/api/search?query="+url.QueryEscape(query), &results)
	return results, err
}

func (c *Client) App(ctx context.Context, appID string) (*models.AppDetail, error) {
	var detail models.AppDetail
	if err := c.get(ctx, "/api/app/"+url.PathEscape(appID), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *Client) Media(ctx context.Context, appID string) (*models.MediaContent, error) {
	var media models.MediaContent
	if err := c.get(ctx, "/api/app-media?appId="+url.QueryEscape(appID), &media); err != nil {
		return nil, err
	}
	return &media, nil
}

func (c *Client) Reviews(ctx context.Context, appID string) ([]models.Review, error) {
	var reviews []models.Review
	err := c.get(ctx, "/api/reviews/"+url.PathEscape(appID), &reviews)
	return reviews, err
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	logger := c.logger.WithFields(log.Fields{"function": "get", "path": path})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debugf("request failed: %v", err)
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	logger.Tracef("status %d in %s", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    gjson.GetBytes(body, "error").String(),
		}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding gateway response: %w", err)
	}
	return nil
}
