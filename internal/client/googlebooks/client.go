// Package googlebooks is a thin client for the Google Books volumes API,
// the external catalog this service proxies for book search.
package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxResults = 40

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Volume mirrors the subset of the volumes API payload we consume.
type Volume struct {
	ID         string `json:"id"`
	VolumeInfo struct {
		Title         string   `json:"title"`
		Authors       []string `json:"authors"`
		Categories    []string `json:"categories"`
		PublishedDate string   `json:"publishedDate"`
		Description   string   `json:"description"`
		ImageLinks    struct {
			Thumbnail string `json:"thumbnail"`
		} `json:"imageLinks"`
	} `json:"volumeInfo"`
}

type searchPayload struct {
	Items []Volume `json:"items"`
}

// Search queries the volumes API. filterType narrows the query to a field
// ("title", "author", "genre"); anything else searches all fields.
func (c *Client) Search(ctx context.Context, query, filterType string) ([]Volume, error) {
	formatted := query
	switch filterType {
	case "title":
		formatted = fmt.Sprintf("intitle:%q", query)
	case "author":
		formatted = fmt.Sprintf("inauthor:%q", query)
	case "genre":
		formatted = fmt.Sprintf("subject:%q", query)
	}

	params := url.Values{}
	params.Set("q", formatted)
	params.Set("maxResults", fmt.Sprintf("%d", maxResults))
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	endpoint := c.baseURL + "/volumes?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach books API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("books API returned status %d", resp.StatusCode)
	}

	var payload searchPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode books API response: %w", err)
	}

	return payload.Items, nil
}
