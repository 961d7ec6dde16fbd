package service

import (
	"context"
	"errors"
	"strings"

	"anoa.com/bookloop/internal/client/googlebooks"
	"anoa.com/bookloop/internal/client/nytimes"
	"anoa.com/bookloop/internal/dto"
	"anoa.com/bookloop/internal/model"
	"anoa.com/bookloop/internal/repository"
	"anoa.com/bookloop/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const searchPageSize = 10

type BookService interface {
	// Register get-or-creates the local row for an external catalog book
	// and indexes it for local search on first registration.
	Register(ctx context.Context, req dto.RegisterBookRequest) (*model.Book, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Book, error)
	// GetByCatalogID reads a locally registered book without creating it.
	GetByCatalogID(ctx context.Context, catalogID string) (*model.Book, error)
	// Search proxies the external catalog and slices the result into
	// fixed-size pages, the way the upstream view always has.
	Search(ctx context.Context, query, filterType string, page int) (*dto.SearchResponse, error)
	// SearchLocal queries the meilisearch index of registered books.
	SearchLocal(ctx context.Context, query string) ([]dto.SearchResult, error)
	// Bestsellers proxies the current NYT hardcover-fiction list.
	Bestsellers(ctx context.Context) ([]dto.BestsellerBook, error)
}

type bookService struct {
	repo          repository.BookRepository
	catalog       *googlebooks.Client
	bestsellers   *nytimes.Client
	searchService SearchService
}

func NewBookService(repo repository.BookRepository, catalog *googlebooks.Client, bestsellers *nytimes.Client, searchService SearchService) BookService {
	return &bookService{
		repo:          repo,
		catalog:       catalog,
		bestsellers:   bestsellers,
		searchService: searchService,
	}
}

func (s *bookService) Register(ctx context.Context, req dto.RegisterBookRequest) (*model.Book, error) {
	book, err := s.repo.GetOrCreateByCatalogID(ctx, &model.Book{
		CatalogID:   req.CatalogID,
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Genre:       req.Genre,
		CoverURL:    req.Image,
		Year:        req.Year,
	})
	if err != nil {
		return nil, err
	}

	if s.searchService != nil {
		_ = s.searchService.IndexBook(book)
	}
	return book, nil
}

func (s *bookService) Get(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return book, nil
}

func (s *bookService) GetByCatalogID(ctx context.Context, catalogID string) (*model.Book, error) {
	book, err := s.repo.FindByCatalogID(ctx, catalogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return book, nil
}

func (s *bookService) Bestsellers(ctx context.Context) ([]dto.BestsellerBook, error) {
	listed, err := s.bestsellers.CurrentBestsellers(ctx)
	if err != nil {
		return nil, err
	}

	books := make([]dto.BestsellerBook, 0, len(listed))
	for _, b := range listed {
		books = append(books, dto.BestsellerBook{
			Rank:        b.Rank,
			WeeksOnList: b.WeeksOnList,
			Title:       b.Title,
			Author:      b.Author,
			Description: b.Description,
			Image:       b.BookImage,
			ISBN:        b.ISBN13,
		})
	}
	return books, nil
}

func (s *bookService) Search(ctx context.Context, query, filterType string, page int) (*dto.SearchResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperror.ErrInvalidInput
	}
	if page < 1 {
		page = 1
	}

	volumes, err := s.catalog.Search(ctx, query, filterType)
	if err != nil {
		return nil, err
	}

	books := make([]dto.SearchResult, 0, len(volumes))
	for _, v := range volumes {
		year := ""
		if len(v.VolumeInfo.PublishedDate) >= 4 {
			year = v.VolumeInfo.PublishedDate[:4]
		}
		books = append(books, dto.SearchResult{
			CatalogID:   v.ID,
			Title:       defaultString(v.VolumeInfo.Title, "No Title"),
			Author:      joinOrDefault(v.VolumeInfo.Authors, "Unknown Author"),
			Genre:       joinOrDefault(v.VolumeInfo.Categories, "Unknown Genre"),
			Year:        defaultString(year, "N/A"),
			Description: defaultString(v.VolumeInfo.Description, "No Description"),
			Image:       v.VolumeInfo.ImageLinks.Thumbnail,
		})
	}

	start := (page - 1) * searchPageSize
	if start > len(books) {
		start = len(books)
	}
	end := start + searchPageSize
	if end > len(books) {
		end = len(books)
	}

	return &dto.SearchResponse{
		Books: books[start:end],
		Page:  page,
	}, nil
}

func (s *bookService) SearchLocal(ctx context.Context, query string) ([]dto.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperror.ErrInvalidInput
	}
	return s.searchService.SearchBooks(query, searchPageSize)
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func joinOrDefault(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}
