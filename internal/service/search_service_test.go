package service

import (
	"encoding/json"
	"testing"

	"github.com/meilisearch/meilisearch-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchResultFromHit(t *testing.T) {
	hit := meilisearch.Hit{
		"id":          json.RawMessage(`"0195cf1e-5f2a-7000-8000-000000000001"`),
		"catalog_id":  json.RawMessage(`"vol-dune"`),
		"title":       json.RawMessage(`"Dune"`),
		"author":      json.RawMessage(`"Frank Herbert"`),
		"genre":       json.RawMessage(`"Science Fiction"`),
		"description": json.RawMessage(`"Spice and sandworms."`),
		"image":       json.RawMessage(`"https://example.com/dune.jpg"`),
		"year":        json.RawMessage(`"1965"`),
	}

	result, err := searchResultFromHit(hit)
	require.NoError(t, err)
	assert.Equal(t, "vol-dune", result.CatalogID)
	assert.Equal(t, "Dune", result.Title)
	assert.Equal(t, "Frank Herbert", result.Author)
	assert.Equal(t, "Science Fiction", result.Genre)
	assert.Equal(t, "1965", result.Year)
	assert.Equal(t, "https://example.com/dune.jpg", result.Image)
}

func TestSearchResultFromHitMalformed(t *testing.T) {
	hit := meilisearch.Hit{
		"title": json.RawMessage(`{"not":"a string"}`),
	}

	_, err := searchResultFromHit(hit)
	assert.Error(t, err)
}
