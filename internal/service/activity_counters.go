package service

import (
	"context"

	"anoa.com/bookloop/internal/repository"
	"github.com/google/uuid"
)

// ActivityCounters is the read-only view of a user's activity that drives
// achievement thresholds. The engine never writes through it.
type ActivityCounters interface {
	CountFinishedBooks(ctx context.Context, userID uuid.UUID) (int64, error)
	CountReviews(ctx context.Context, userID uuid.UUID) (int64, error)
	CountFavorites(ctx context.Context, userID uuid.UUID) (int64, error)
}

type activityCounters struct {
	interactionRepo repository.InteractionRepository
	reviewRepo      repository.ReviewRepository
}

func NewActivityCounters(interactionRepo repository.InteractionRepository, reviewRepo repository.ReviewRepository) ActivityCounters {
	return &activityCounters{
		interactionRepo: interactionRepo,
		reviewRepo:      reviewRepo,
	}
}

func (c *activityCounters) CountFinishedBooks(ctx context.Context, userID uuid.UUID) (int64, error) {
	return c.interactionRepo.CountFinishedByUser(ctx, userID)
}

func (c *activityCounters) CountReviews(ctx context.Context, userID uuid.UUID) (int64, error) {
	return c.reviewRepo.CountByUser(ctx, userID)
}

func (c *activityCounters) CountFavorites(ctx context.Context, userID uuid.UUID) (int64, error) {
	return c.interactionRepo.CountFavoritesByUser(ctx, userID)
}
