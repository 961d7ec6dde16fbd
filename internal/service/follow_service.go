package service

import (
	"context"
	"errors"

	"anoa.com/bookloop/internal/dto"
	"anoa.com/bookloop/internal/model"
	"anoa.com/bookloop/internal/repository"
	"anoa.com/bookloop/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FollowService interface {
	Follow(ctx context.Context, followerID, followeeID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error
	Followers(ctx context.Context, userID uuid.UUID) ([]model.User, error)
	Following(ctx context.Context, userID uuid.UUID) ([]model.User, error)
	Counts(ctx context.Context, userID uuid.UUID) (*dto.FollowCountsResponse, error)
	IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	// SearchUsers finds users by (partial) username, for building a
	// follow graph.
	SearchUsers(ctx context.Context, query string, limit int) ([]model.User, error)
}

type followService struct {
	repo                repository.FollowRepository
	userRepo            repository.UserRepository
	notificationService NotificationService
}

func NewFollowService(repo repository.FollowRepository, userRepo repository.UserRepository, notificationService NotificationService) FollowService {
	return &followService{
		repo:                repo,
		userRepo:            userRepo,
		notificationService: notificationService,
	}
}

func (s *followService) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	if followerID == followeeID {
		return apperror.ErrInvalidInput
	}

	follower, err := s.userRepo.FindByID(ctx, followerID)
	if err != nil {
		return apperror.ErrUnauthorized
	}
	if _, err := s.userRepo.FindByID(ctx, followeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if err := s.repo.Follow(ctx, followerID, followeeID); err != nil {
		return err
	}

	if s.notificationService != nil {
		s.notificationService.Notify(ctx, followeeID, model.NotifNewFollower,
			follower.Username+" started following you")
	}
	return nil
}

func (s *followService) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	if err := s.repo.Unfollow(ctx, followerID, followeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *followService) Followers(ctx context.Context, userID uuid.UUID) ([]model.User, error) {
	return s.repo.Followers(ctx, userID)
}

func (s *followService) Following(ctx context.Context, userID uuid.UUID) ([]model.User, error) {
	return s.repo.Following(ctx, userID)
}

func (s *followService) Counts(ctx context.Context, userID uuid.UUID) (*dto.FollowCountsResponse, error) {
	followers, following, err := s.repo.Counts(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.FollowCountsResponse{
		Followers: followers,
		Following: following,
	}, nil
}

func (s *followService) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	return s.repo.IsFollowing(ctx, followerID, followeeID)
}

func (s *followService) SearchUsers(ctx context.Context, query string, limit int) ([]model.User, error) {
	if query == "" {
		return nil, apperror.ErrInvalidInput
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.userRepo.SearchByUsername(ctx, query, limit)
}
