// Package nytimes is a thin client for the New York Times Books API,
// used to surface the current hardcover-fiction bestseller list.
package nytimes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const listName = "hardcover-fiction"

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

// Book mirrors the subset of the lists API payload we consume.
type Book struct {
	Rank        int    `json:"rank"`
	WeeksOnList int    `json:"weeks_on_list"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	BookImage   string `json:"book_image"`
	ISBN13      string `json:"primary_isbn13"`
}

type listPayload struct {
	Results struct {
		Books []Book `json:"books"`
	} `json:"results"`
}

// CurrentBestsellers fetches the current hardcover-fiction list.
func (c *Client) CurrentBestsellers(ctx context.Context) ([]Book, error) {
	params := url.Values{}
	if c.apiKey != "" {
		params.Set("api-key", c.apiKey)
	}

	endpoint := fmt.Sprintf("%s/lists/current/%s.json?%s", c.baseURL, listName, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach bestsellers API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bestsellers API returned status %d", resp.StatusCode)
	}

	var payload listPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode bestsellers API response: %w", err)
	}

	return payload.Results.Books, nil
}
