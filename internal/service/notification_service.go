package service

import (
	"context"
	"encoding/json"
	"log"

	"anoa.com/bookloop/internal/model"
	"anoa.com/bookloop/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type NotificationService interface {
	// Notify persists a notification and publishes it for live delivery.
	// Best effort: failures are logged, never propagated, so gamification
	// writes cannot fail because of a notification.
	Notify(ctx context.Context, userID uuid.UUID, notifType, message string)
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationService struct {
	repo        repository.NotificationRepository
	redisClient *redis.Client
}

func NewNotificationService(repo repository.NotificationRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{
		repo:        repo,
		redisClient: redisClient,
	}
}

// NotificationChannel is the redis pub/sub channel for one user's live feed.
func NotificationChannel(userID uuid.UUID) string {
	return "notifications:user:" + userID.String()
}

func (s *notificationService) Notify(ctx context.Context, userID uuid.UUID, notifType, message string) {
	notification := &model.Notification{
		UserID:  userID,
		Type:    notifType,
		Message: message,
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		log.Printf("[Notification] failed to persist for user %s: %v", userID, err)
		return
	}

	if s.redisClient == nil {
		return
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		log.Printf("[Notification] failed to marshal: %v", err)
		return
	}
	if err := s.redisClient.Publish(ctx, NotificationChannel(userID), payload).Err(); err != nil {
		log.Printf("[Notification] failed to publish for user %s: %v", userID, err)
	}
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, error) {
	return s.repo.FindByUser(ctx, userID, limit, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.UnreadCount(ctx, userID)
}
