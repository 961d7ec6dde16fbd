package service

import (
	"context"
	"errors"
	"log"
	"time"

	"anoa.com/bookloop/internal/dto"
	"anoa.com/bookloop/internal/model"
	"anoa.com/bookloop/internal/repository"
	"anoa.com/bookloop/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusService owns reading-status transitions. A transition to FINISHED
// is the event that feeds the whole gamification layer: achievement
// re-evaluation, the daily streak, and any joined reading challenges.
type StatusService interface {
	Set(ctx context.Context, userID uuid.UUID, req dto.SetStatusRequest) (*model.BookStatus, error)
	// GetForBook reads one user's status for a catalog book; NotFound when
	// the book is unregistered or the user never shelved it.
	GetForBook(ctx context.Context, userID uuid.UUID, catalogID string) (*model.BookStatus, error)
	List(ctx context.Context, userID uuid.UUID, status string) ([]model.BookStatus, error)
}

type statusService struct {
	repo               repository.InteractionRepository
	bookService        BookService
	achievementService AchievementService
	streakService      StreakService
	challengeService   ChallengeService
	now                func() time.Time
}

func NewStatusService(repo repository.InteractionRepository, bookService BookService, achievementService AchievementService, streakService StreakService, challengeService ChallengeService) StatusService {
	return &statusService{
		repo:               repo,
		bookService:        bookService,
		achievementService: achievementService,
		streakService:      streakService,
		challengeService:   challengeService,
		now:                time.Now,
	}
}

func (s *statusService) Set(ctx context.Context, userID uuid.UUID, req dto.SetStatusRequest) (*model.BookStatus, error) {
	switch req.Status {
	case model.StatusWantToRead, model.StatusReading, model.StatusFinished:
	default:
		return nil, apperror.ErrInvalidInput
	}

	book, err := s.bookService.Register(ctx, req.RegisterBookRequest)
	if err != nil {
		return nil, err
	}

	prev, err := s.repo.FindStatus(ctx, userID, book.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	status := &model.BookStatus{
		UserID: userID,
		BookID: book.ID,
		Status: req.Status,
	}
	if err := s.repo.UpsertStatus(ctx, status); err != nil {
		return nil, err
	}

	// Only a real transition into FINISHED counts as a finished-book
	// event; re-submitting an already-finished book must not advance
	// challenge progress.
	if req.Status == model.StatusFinished && (prev == nil || prev.Status != model.StatusFinished) {
		s.onBookFinished(ctx, userID)
	}

	status.Book = *book
	return status, nil
}

func (s *statusService) onBookFinished(ctx context.Context, userID uuid.UUID) {
	if granted, err := s.achievementService.Evaluate(ctx, userID, CounterBooksFinished); err != nil {
		log.Printf("[Status] achievement evaluation failed for user %s: %v", userID, err)
	} else if len(granted) > 0 {
		log.Printf("[Status] user %s earned: %v", userID, granted)
	}

	if _, err := s.streakService.Update(ctx, userID, s.now()); err != nil {
		log.Printf("[Status] streak update failed for user %s: %v", userID, err)
	}

	if s.challengeService != nil {
		if err := s.challengeService.AdvanceForFinished(ctx, userID, s.now()); err != nil {
			log.Printf("[Status] challenge progress failed for user %s: %v", userID, err)
		}
	}
}

func (s *statusService) GetForBook(ctx context.Context, userID uuid.UUID, catalogID string) (*model.BookStatus, error) {
	book, err := s.bookService.GetByCatalogID(ctx, catalogID)
	if err != nil {
		return nil, err
	}

	status, err := s.repo.FindStatus(ctx, userID, book.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	status.Book = *book
	return status, nil
}

func (s *statusService) List(ctx context.Context, userID uuid.UUID, status string) ([]model.BookStatus, error) {
	if status != "" {
		switch status {
		case model.StatusWantToRead, model.StatusReading, model.StatusFinished:
		default:
			return nil, apperror.ErrInvalidInput
		}
	}
	return s.repo.StatusesByUser(ctx, userID, status)
}
