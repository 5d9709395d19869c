// scraper/fetcher.go
package scraper

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Fetcher retrieves one remote page as text. The sync service depends on
// this interface so tests can substitute canned pages for the live site.
type Fetcher interface {
	Get(pageURL string, headers map[string]string) (string, error)
}

// HTTPFetcher is the live implementation backed by net/http. The timeout
// bounds each individual fetch; the overall sync run has none.
type HTTPFetcher struct {
	client http.Client
}

// NewHTTPFetcher returns a fetcher whose requests time out after the given
// duration.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{client: http.Client{Timeout: timeout}}
}

// Get performs a GET request with the supplied headers and returns the
// response body as a string.
func (f *HTTPFetcher) Get(pageURL string, headers map[string]string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", pageURL, err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to GET %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to GET %s: status code %d", pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response from %s: %w", pageURL, err)
	}
	return string(body), nil
}

// StatsURL builds the usersstats ranking URL for one user and car group.
func StatsURL(baseURL, userID, groupID string) string {
	q := url.Values{}
	q.Set("user_stats", userID)
	q.Set("act", "rank")
	q.Set("cg", groupID)
	return baseURL + "?" + q.Encode()
}
