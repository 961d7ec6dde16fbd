package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"anoa.com/bookloop/internal/dto"
	"anoa.com/bookloop/internal/model"
	"anoa.com/bookloop/internal/repository"
	"anoa.com/bookloop/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChallengeService interface {
	Create(ctx context.Context, req dto.CreateChallengeRequest) (*model.ReadingChallenge, error)
	ListActive(ctx context.Context) ([]model.ReadingChallenge, error)
	Join(ctx context.Context, userID, challengeID uuid.UUID) error
	MyChallenges(ctx context.Context, userID uuid.UUID) ([]model.UserChallenge, error)
	// AdvanceForFinished bumps progress on every active joined challenge
	// after a finished-book event; reaching the target completes the
	// challenge once and awards its bonus points.
	AdvanceForFinished(ctx context.Context, userID uuid.UUID, now time.Time) error
}

type challengeService struct {
	repo                repository.ChallengeRepository
	pointsService       PointsService
	notificationService NotificationService
}

func NewChallengeService(repo repository.ChallengeRepository, pointsService PointsService, notificationService NotificationService) ChallengeService {
	return &challengeService{
		repo:                repo,
		pointsService:       pointsService,
		notificationService: notificationService,
	}
}

func (s *challengeService) Create(ctx context.Context, req dto.CreateChallengeRequest) (*model.ReadingChallenge, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, apperror.ErrInvalidInput
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, apperror.ErrInvalidInput
	}
	if !end.After(start) {
		return nil, apperror.ErrInvalidInput
	}

	bonus := req.BonusPoints
	if bonus == 0 {
		bonus = 50
	}

	challenge := &model.ReadingChallenge{
		Name:        req.Name,
		Description: req.Description,
		TargetBooks: req.TargetBooks,
		BonusPoints: bonus,
		StartDate:   start,
		EndDate:     end,
	}
	if err := s.repo.Create(ctx, challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

func (s *challengeService) ListActive(ctx context.Context) ([]model.ReadingChallenge, error) {
	return s.repo.ListActive(ctx, time.Now())
}

func (s *challengeService) Join(ctx context.Context, userID, challengeID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, challengeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}
	return s.repo.Join(ctx, userID, challengeID)
}

func (s *challengeService) MyChallenges(ctx context.Context, userID uuid.UUID) ([]model.UserChallenge, error) {
	return s.repo.ByUser(ctx, userID)
}

func (s *challengeService) AdvanceForFinished(ctx context.Context, userID uuid.UUID, now time.Time) error {
	active, err := s.repo.ActiveForUser(ctx, userID, now)
	if err != nil {
		return err
	}

	for i := range active {
		uc := &active[i]
		uc.BooksRead++

		if !uc.Completed && uc.BooksRead >= uc.Challenge.TargetBooks {
			uc.Completed = true
			completedAt := now
			uc.CompletedDate = &completedAt

			if _, err := s.pointsService.Award(ctx, userID, uc.Challenge.BonusPoints,
				"Completed challenge: "+uc.Challenge.Name); err != nil {
				return err
			}
			if s.notificationService != nil {
				s.notificationService.Notify(ctx, userID, model.NotifChallenge,
					fmt.Sprintf("Challenge completed: %s (+%d points)", uc.Challenge.Name, uc.Challenge.BonusPoints))
			}
		}

		if err := s.repo.Save(ctx, uc); err != nil {
			return err
		}
	}
	return nil
}
