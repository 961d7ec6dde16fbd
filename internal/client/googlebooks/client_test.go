package googlebooks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchFormatsQueryByFilterType(t *testing.T) {
	cases := []struct {
		filterType string
		wantQuery  string
	}{
		{"title", `intitle:"dune"`},
		{"author", `inauthor:"dune"`},
		{"genre", `subject:"dune"`},
		{"all", "dune"},
	}

	for _, tc := range cases {
		var gotQuery string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query().Get("q")
			assert.Equal(t, "/volumes", r.URL.Path)
			assert.Equal(t, "40", r.URL.Query().Get("maxResults"))
			w.Write([]byte(`{"items":[]}`))
		}))

		client := NewClient(srv.URL, "")
		_, err := client.Search(context.Background(), "dune", tc.filterType)
		srv.Close()

		require.NoError(t, err)
		assert.Equal(t, tc.wantQuery, gotQuery, "filterType=%s", tc.filterType)
	}
}

func TestSearchDecodesVolumes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		w.Write([]byte(`{"items":[{"id":"vol-1","volumeInfo":{"title":"Dune","authors":["Frank Herbert"],"categories":["Fiction"],"publishedDate":"1965","imageLinks":{"thumbnail":"http://img"}}}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret")
	volumes, err := client.Search(context.Background(), "dune", "title")
	require.NoError(t, err)

	require.Len(t, volumes, 1)
	assert.Equal(t, "vol-1", volumes[0].ID)
	assert.Equal(t, "Dune", volumes[0].VolumeInfo.Title)
	assert.Equal(t, []string{"Frank Herbert"}, volumes[0].VolumeInfo.Authors)
	assert.Equal(t, "http://img", volumes[0].VolumeInfo.ImageLinks.Thumbnail)
}

func TestSearchNoItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totalItems":0}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	volumes, err := client.Search(context.Background(), "nothing", "")
	require.NoError(t, err)
	assert.Empty(t, volumes)
}

func TestSearchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.Search(context.Background(), "dune", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
