package service

import (
	"context"
	"errors"
	"log"

	"anoa.com/bookloop/internal/dto"
	"anoa.com/bookloop/internal/model"
	"anoa.com/bookloop/internal/repository"
	"anoa.com/bookloop/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FavoriteService interface {
	// Add favorites a book (registering it locally first) and re-evaluates
	// the favorites achievements. Re-favoriting is a silent no-op.
	Add(ctx context.Context, userID uuid.UUID, req dto.RegisterBookRequest) error
	Remove(ctx context.Context, userID uuid.UUID, catalogID string) error
	List(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error)
}

type favoriteService struct {
	repo               repository.InteractionRepository
	bookService        BookService
	bookRepo           repository.BookRepository
	achievementService AchievementService
}

func NewFavoriteService(repo repository.InteractionRepository, bookService BookService, bookRepo repository.BookRepository, achievementService AchievementService) FavoriteService {
	return &favoriteService{
		repo:               repo,
		bookService:        bookService,
		bookRepo:           bookRepo,
		achievementService: achievementService,
	}
}

func (s *favoriteService) Add(ctx context.Context, userID uuid.UUID, req dto.RegisterBookRequest) error {
	book, err := s.bookService.Register(ctx, req)
	if err != nil {
		return err
	}

	if err := s.repo.AddFavorite(ctx, userID, book.ID); err != nil {
		return err
	}

	if granted, err := s.achievementService.Evaluate(ctx, userID, CounterFavorites); err != nil {
		log.Printf("[Favorite] achievement evaluation failed for user %s: %v", userID, err)
	} else if len(granted) > 0 {
		log.Printf("[Favorite] user %s earned: %v", userID, granted)
	}
	return nil
}

func (s *favoriteService) Remove(ctx context.Context, userID uuid.UUID, catalogID string) error {
	book, err := s.bookRepo.FindByCatalogID(ctx, catalogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if err := s.repo.RemoveFavorite(ctx, userID, book.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *favoriteService) List(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error) {
	return s.repo.FavoritesByUser(ctx, userID)
}
