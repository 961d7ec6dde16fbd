package service

import (
	"context"
	"fmt"

	"anoa.com/bookloop/internal/dto"
	"anoa.com/bookloop/internal/model"
	"anoa.com/bookloop/internal/repository"
	"github.com/google/uuid"
)

// CounterKind names the activity counter a threshold rule watches.
type CounterKind string

const (
	CounterBooksFinished CounterKind = "books_finished"
	CounterReviews       CounterKind = "reviews_written"
	CounterFavorites     CounterKind = "favorites_added"
)

// ThresholdRule grants a badge once a counter reaches Threshold. RuleID is
// the stable registry key; Name is display-only.
type ThresholdRule struct {
	RuleID      string
	Counter     CounterKind
	Threshold   int64
	Name        string
	Description string
	Points      int
}

// thresholdRules must stay in ascending threshold order per counter kind:
// Evaluate walks them in slice order and grants every rule at or below the
// current counter value.
var thresholdRules = []ThresholdRule{
	{"books_finished_1", CounterBooksFinished, 1, "First Book", "Finished your first book", 10},
	{"books_finished_5", CounterBooksFinished, 5, "Bookworm", "Finished 5 books", 20},
	{"books_finished_10", CounterBooksFinished, 10, "Book Enthusiast", "Finished 10 books", 30},
	{"books_finished_25", CounterBooksFinished, 25, "Bibliophile", "Finished 25 books", 50},
	{"books_finished_50", CounterBooksFinished, 50, "Book Master", "Finished 50 books", 100},
	{"books_finished_100", CounterBooksFinished, 100, "Literary Legend", "Finished 100 books", 200},

	{"reviews_written_1", CounterReviews, 1, "First Review", "Wrote your first review", 5},
	{"reviews_written_5", CounterReviews, 5, "Reviewer", "Wrote 5 reviews", 15},
	{"reviews_written_10", CounterReviews, 10, "Critic", "Wrote 10 reviews", 25},
	{"reviews_written_25", CounterReviews, 25, "Expert Reviewer", "Wrote 25 reviews", 50},
	{"reviews_written_50", CounterReviews, 50, "Professional Critic", "Wrote 50 reviews", 100},

	{"favorites_added_5", CounterFavorites, 5, "Collector", "Added 5 favorites", 10},
	{"favorites_added_25", CounterFavorites, 25, "Enthusiast", "Added 25 favorites", 25},
	{"favorites_added_50", CounterFavorites, 50, "Book Lover", "Added 50 favorites", 50},
}

// RulesForCounter returns the rule table slice for one counter kind, in
// ascending threshold order.
func RulesForCounter(kind CounterKind) []ThresholdRule {
	var rules []ThresholdRule
	for _, rule := range thresholdRules {
		if rule.Counter == kind {
			rules = append(rules, rule)
		}
	}
	return rules
}

type AchievementService interface {
	// Evaluate re-walks every threshold at or below the user's current
	// counter value. Grants are idempotent per (user, achievement); only
	// names granted by this call are returned.
	Evaluate(ctx context.Context, userID uuid.UUID, kind CounterKind) ([]string, error)
	EarnedByUser(ctx context.Context, userID uuid.UUID) ([]dto.EarnedAchievementResponse, error)
}

type achievementService struct {
	repo                repository.AchievementRepository
	counters            ActivityCounters
	pointsService       PointsService
	notificationService NotificationService
}

func NewAchievementService(repo repository.AchievementRepository, counters ActivityCounters, pointsService PointsService, notificationService NotificationService) AchievementService {
	return &achievementService{
		repo:                repo,
		counters:            counters,
		pointsService:       pointsService,
		notificationService: notificationService,
	}
}

func (s *achievementService) Evaluate(ctx context.Context, userID uuid.UUID, kind CounterKind) ([]string, error) {
	count, err := s.currentCount(ctx, userID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to read activity counter %s: %w", kind, err)
	}

	granted := []string{}
	for _, rule := range RulesForCounter(kind) {
		if count < rule.Threshold {
			break
		}

		achievement, err := s.repo.GetOrCreate(ctx, &model.Achievement{
			RuleID:      rule.RuleID,
			Name:        rule.Name,
			Description: rule.Description,
			Points:      rule.Points,
		})
		if err != nil {
			return granted, err
		}

		created, err := s.repo.Grant(ctx, userID, achievement.ID)
		if err != nil {
			return granted, err
		}
		if !created {
			// Already earned; silently skipped, not re-reported.
			continue
		}

		if _, err := s.pointsService.Award(ctx, userID, achievement.Points,
			"Earned achievement: "+achievement.Name); err != nil {
			return granted, err
		}

		if s.notificationService != nil {
			s.notificationService.Notify(ctx, userID, model.NotifAchievement,
				fmt.Sprintf("Achievement unlocked: %s (+%d points)", achievement.Name, achievement.Points))
		}

		granted = append(granted, achievement.Name)
	}

	return granted, nil
}

func (s *achievementService) currentCount(ctx context.Context, userID uuid.UUID, kind CounterKind) (int64, error) {
	switch kind {
	case CounterBooksFinished:
		return s.counters.CountFinishedBooks(ctx, userID)
	case CounterReviews:
		return s.counters.CountReviews(ctx, userID)
	case CounterFavorites:
		return s.counters.CountFavorites(ctx, userID)
	default:
		return 0, fmt.Errorf("unknown counter kind: %s", kind)
	}
}

func (s *achievementService) EarnedByUser(ctx context.Context, userID uuid.UUID) ([]dto.EarnedAchievementResponse, error) {
	earned, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.EarnedAchievementResponse, 0, len(earned))
	for _, ua := range earned {
		responses = append(responses, dto.EarnedAchievementResponse{
			Name:        ua.Achievement.Name,
			Description: ua.Achievement.Description,
			Points:      ua.Achievement.Points,
			DateEarned:  ua.DateEarned,
		})
	}
	return responses, nil
}
