package nytimes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentBestsellers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lists/current/hardcover-fiction.json", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api-key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"results": {
				"books": [
					{
						"rank": 1,
						"weeks_on_list": 12,
						"title": "THE HOBBIT",
						"author": "J.R.R. Tolkien",
						"description": "A hole in the ground.",
						"book_image": "https://example.com/hobbit.jpg",
						"primary_isbn13": "9780000000001"
					},
					{
						"rank": 2,
						"weeks_on_list": 3,
						"title": "DUNE",
						"author": "Frank Herbert"
					}
				]
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	books, err := client.CurrentBestsellers(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, 1, books[0].Rank)
	assert.Equal(t, 12, books[0].WeeksOnList)
	assert.Equal(t, "THE HOBBIT", books[0].Title)
	assert.Equal(t, "https://example.com/hobbit.jpg", books[0].BookImage)
	assert.Equal(t, 2, books[1].Rank)
}

func TestCurrentBestsellersUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.CurrentBestsellers(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
