package service

import (
	"context"
	"errors"
	"math"

	"anoa.com/bookloop/internal/dto"
	"anoa.com/bookloop/internal/model"
	"anoa.com/bookloop/internal/repository"
	"anoa.com/bookloop/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RatingService interface {
	Rate(ctx context.Context, userID uuid.UUID, req dto.RateBookRequest) (*model.Rating, error)
	// Stats returns the average (rounded to one decimal) and count for a
	// book by its catalog id. Unknown books read as zero, not NotFound.
	Stats(ctx context.Context, catalogID string) (*dto.RatingStatsResponse, error)
}

type ratingService struct {
	repo        repository.InteractionRepository
	bookService BookService
	bookRepo    repository.BookRepository
}

func NewRatingService(repo repository.InteractionRepository, bookService BookService, bookRepo repository.BookRepository) RatingService {
	return &ratingService{
		repo:        repo,
		bookService: bookService,
		bookRepo:    bookRepo,
	}
}

func (s *ratingService) Rate(ctx context.Context, userID uuid.UUID, req dto.RateBookRequest) (*model.Rating, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperror.ErrInvalidInput
	}

	book, err := s.bookService.Register(ctx, req.RegisterBookRequest)
	if err != nil {
		return nil, err
	}

	rating := &model.Rating{
		UserID: userID,
		BookID: book.ID,
		Rating: req.Rating,
	}
	if err := s.repo.UpsertRating(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

func (s *ratingService) Stats(ctx context.Context, catalogID string) (*dto.RatingStatsResponse, error) {
	book, err := s.bookRepo.FindByCatalogID(ctx, catalogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.RatingStatsResponse{}, nil
		}
		return nil, err
	}

	avg, total, err := s.repo.RatingStats(ctx, book.ID)
	if err != nil {
		return nil, err
	}

	return &dto.RatingStatsResponse{
		AverageRating: math.Round(avg*10) / 10,
		TotalRatings:  total,
	}, nil
}
