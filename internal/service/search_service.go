package service

import (
	"log"

	"anoa.com/bookloop/internal/dto"
	"anoa.com/bookloop/internal/model"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

const booksIndex = "books"

// SearchService keeps the locally registered book catalog searchable.
// Indexing is best effort; a search outage never blocks a write path.
type SearchService interface {
	IndexBook(book *model.Book) error
	SearchBooks(query string, limit int64) ([]dto.SearchResult, error)
}

type meiliBookDoc struct {
	ID          string `json:"id"`
	CatalogID   string `json:"catalog_id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       string `json:"genre"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Year        string `json:"year"`
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

func (s *searchService) initIndexes() {
	searchableAttrs := []string{"title", "author", "genre", "description"}
	if _, err := s.client.Index(booksIndex).UpdateSearchableAttributes(&searchableAttrs); err != nil {
		log.Printf("Failed to update books searchable attributes: %v", err)
	}
}

func (s *searchService) IndexBook(book *model.Book) error {
	doc := meiliBookDoc{
		ID:          book.ID.String(),
		CatalogID:   book.CatalogID,
		Title:       s.sanitizer.Sanitize(book.Title),
		Author:      s.sanitizer.Sanitize(book.Author),
		Genre:       s.sanitizer.Sanitize(book.Genre),
		Description: s.sanitizer.Sanitize(book.Description),
		Image:       book.CoverURL,
		Year:        book.Year,
	}

	_, err := s.client.Index(booksIndex).AddDocuments([]meiliBookDoc{doc}, strPtr("id"))
	if err != nil {
		log.Printf("Failed to index book %s: %v", book.ID, err)
	}
	return err
}

func (s *searchService) SearchBooks(query string, limit int64) ([]dto.SearchResult, error) {
	resp, err := s.client.Index(booksIndex).Search(query, &meilisearch.SearchRequest{
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	results := make([]dto.SearchResult, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		result, err := searchResultFromHit(hit)
		if err != nil {
			log.Printf("Skipping malformed search hit: %v", err)
			continue
		}
		results = append(results, result)
	}
	return results, nil
}

func searchResultFromHit(hit meilisearch.Hit) (dto.SearchResult, error) {
	var doc meiliBookDoc
	if err := hit.DecodeInto(&doc); err != nil {
		return dto.SearchResult{}, err
	}
	return dto.SearchResult{
		CatalogID:   doc.CatalogID,
		Title:       doc.Title,
		Author:      doc.Author,
		Genre:       doc.Genre,
		Year:        doc.Year,
		Description: doc.Description,
		Image:       doc.Image,
	}, nil
}

func strPtr(s string) *string {
	return &s
}
