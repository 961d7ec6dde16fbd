package service

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/bookloop/internal/dto"
	"anoa.com/bookloop/internal/model"
	"anoa.com/bookloop/internal/repository"
	"anoa.com/bookloop/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LevelForPoints maps a running total to a level: 0-99 is level 1,
// 100-199 is level 2, and so on.
func LevelForPoints(totalPoints int) int {
	return totalPoints/100 + 1
}

type PointsService interface {
	// Award records a point-earning event: increments the account total,
	// bumps the level when the new total warrants it (the stored level is
	// never lowered, even by a negative amount), and appends a history
	// entry.
	Award(ctx context.Context, userID uuid.UUID, amount int, description string) (*model.PointsAccount, error)
	Account(ctx context.Context, userID uuid.UUID) (*dto.PointsAccountResponse, error)
	History(ctx context.Context, userID uuid.UUID) ([]dto.PointsHistoryResponse, error)
	Leaderboard(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error)
}

type pointsService struct {
	repo                repository.PointsRepository
	notificationService NotificationService
}

func NewPointsService(repo repository.PointsRepository, notificationService NotificationService) PointsService {
	return &pointsService{
		repo:                repo,
		notificationService: notificationService,
	}
}

func (s *pointsService) Award(ctx context.Context, userID uuid.UUID, amount int, description string) (*model.PointsAccount, error) {
	account, err := s.repo.AddPoints(ctx, userID, amount)
	if err != nil {
		return nil, err
	}

	newLevel := LevelForPoints(account.TotalPoints)
	if newLevel > account.Level {
		if err := s.repo.SetLevel(ctx, userID, newLevel); err != nil {
			return nil, err
		}
		account.Level = newLevel

		if s.notificationService != nil {
			s.notificationService.Notify(ctx, userID, model.NotifLevelUp,
				fmt.Sprintf("You reached level %d!", newLevel))
		}
	}

	entry := &model.PointsHistory{
		UserID:      userID,
		Amount:      amount,
		Description: description,
	}
	if err := s.repo.AppendHistory(ctx, entry); err != nil {
		return nil, err
	}

	return account, nil
}

func (s *pointsService) Account(ctx context.Context, userID uuid.UUID) (*dto.PointsAccountResponse, error) {
	account, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Never-awarded users read as the lazy default.
			return &dto.PointsAccountResponse{TotalPoints: 0, Level: 1}, nil
		}
		return nil, err
	}

	return &dto.PointsAccountResponse{
		TotalPoints: account.TotalPoints,
		Level:       account.Level,
	}, nil
}

func (s *pointsService) History(ctx context.Context, userID uuid.UUID) ([]dto.PointsHistoryResponse, error) {
	entries, err := s.repo.HistoryByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	history := make([]dto.PointsHistoryResponse, 0, len(entries))
	for _, entry := range entries {
		history = append(history, dto.PointsHistoryResponse{
			Amount:      entry.Amount,
			Description: entry.Description,
			Timestamp:   entry.CreatedAt,
		})
	}
	return history, nil
}

func (s *pointsService) Leaderboard(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		return nil, apperror.ErrInvalidInput
	}

	accounts, err := s.repo.TopAccounts(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, 0, len(accounts))
	for i, account := range accounts {
		entries = append(entries, dto.LeaderboardEntry{
			Rank:        i + 1,
			UserID:      account.UserID.String(),
			Username:    account.User.Username,
			TotalPoints: account.TotalPoints,
			Level:       account.Level,
		})
	}
	return entries, nil
}
