package playstore

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

const BaseURL = "https://play.google.com"

var httpClient = &http.Client{
	Timeout: 10 * time.Second,
}

var (
	initDataKeyRegex  = regexp.MustCompile(`key:\s*'(ds:\d+)'`)
	initDataBodyRegex = regexp.MustCompile(`(?s)data:(.*), sideChannel: \{\}\}\)`)
)

// initData holds the AF_initDataCallback payloads of a page keyed by "ds:N".
type initData map[string]gjson.Result

func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
}

// fetchInitData downloads a store page and extracts its embedded data blocks.
func (c *Client) fetchInitData(ctx context.Context, pageURL string) (initData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	setBrowserHeaders(req)

	log.Tracef("Fetching Play Store page: %s", pageURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrAppNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	data := extractInitData(doc)
	if len(data) == 0 {
		return nil, fmt.Errorf("no AF_initDataCallback blocks found")
	}
	return data, nil
}

// extractInitData scans the page scripts for AF_initDataCallback calls.
func extractInitData(doc *goquery.Document) initData {
	data := initData{}
	doc.Find("script").Each(func(i int, s *goquery.Selection) {
		text := s.Text()
		keyMatch := initDataKeyRegex.FindStringSubmatch(text)
		if keyMatch == nil {
			return
		}
		bodyMatch := initDataBodyRegex.FindStringSubmatch(text)
		if bodyMatch == nil {
			log.Tracef("Script %d has key %s but no data payload", i, keyMatch[1])
			return
		}
		if !gjson.Valid(bodyMatch[1]) {
			log.Tracef("Script %d (%s) payload is not valid JSON", i, keyMatch[1])
			return
		}
		data[keyMatch[1]] = gjson.Parse(bodyMatch[1])
	})
	return data
}

// find returns the first block, preferred key first, where path exists.
func (d initData) find(preferred, path string) (gjson.Result, bool) {
	if block, ok := d[preferred]; ok && block.Get(path).Exists() {
		return block, true
	}
	for _, block := range d {
		if block.Get(path).Exists() {
			return block, true
		}
	}
	return gjson.Result{}, false
}

func (c *Client) searchURL(term, country, language string) string {
	q := url.Values{}
	q.Set("q", term)
	q.Set("c", "apps")
	q.Set("hl", language)
	q.Set("gl", country)
	return c.baseURL + "/store/search?" + q.Encode()
}

func (c *Client) detailsURL(appID, country, language string) string {
	q := url.Values{}
	q.Set("id", appID)
	q.Set("hl", language)
	q.Set("gl", country)
	return c.baseURL + "/store/apps/details?" + q.Encode()
}
