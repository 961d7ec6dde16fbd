package service

import (
	"context"
	"time"

	"anoa.com/bookloop/internal/dto"
	"anoa.com/bookloop/internal/model"
	"anoa.com/bookloop/internal/repository"
	"github.com/google/uuid"
)

type StreakService interface {
	// Update applies a finished-book event for the given day. Repeated
	// events on the same calendar day are a no-op on the counter.
	Update(ctx context.Context, userID uuid.UUID, today time.Time) (*model.ReadingStreak, error)
	Get(ctx context.Context, userID uuid.UUID, today time.Time) (*dto.StreakResponse, error)
}

type streakService struct {
	repo repository.StreakRepository
}

func NewStreakService(repo repository.StreakRepository) StreakService {
	return &streakService{repo: repo}
}

// CalendarDay truncates a timestamp to its UTC calendar date.
func CalendarDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ApplyStreakUpdate is the pure transition function over
// (current, longest, lastReadDate). Mutates streak in place.
func ApplyStreakUpdate(streak *model.ReadingStreak, today time.Time) {
	day := CalendarDay(today)

	switch {
	case streak.LastReadDate == nil:
		streak.CurrentStreak = 1
	case CalendarDay(*streak.LastReadDate).Equal(day):
		// Already counted today.
	case CalendarDay(*streak.LastReadDate).Equal(day.AddDate(0, 0, -1)):
		streak.CurrentStreak++
	default:
		streak.CurrentStreak = 1
	}

	if streak.CurrentStreak > streak.LongestStreak {
		streak.LongestStreak = streak.CurrentStreak
	}
	streak.LastReadDate = &day
}

// StreakActive reports whether the streak is still alive on the given day:
// the last read was today or yesterday.
func StreakActive(streak *model.ReadingStreak, today time.Time) bool {
	if streak.LastReadDate == nil {
		return false
	}
	last := CalendarDay(*streak.LastReadDate)
	day := CalendarDay(today)
	return !last.Before(day.AddDate(0, 0, -1))
}

func (s *streakService) Update(ctx context.Context, userID uuid.UUID, today time.Time) (*model.ReadingStreak, error) {
	streak, err := s.repo.GetOrInit(ctx, userID)
	if err != nil {
		return nil, err
	}

	ApplyStreakUpdate(streak, today)

	if err := s.repo.Save(ctx, streak); err != nil {
		return nil, err
	}
	return streak, nil
}

func (s *streakService) Get(ctx context.Context, userID uuid.UUID, today time.Time) (*dto.StreakResponse, error) {
	streak, err := s.repo.GetOrInit(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.StreakResponse{
		CurrentStreak: streak.CurrentStreak,
		LongestStreak: streak.LongestStreak,
		LastReadDate:  streak.LastReadDate,
		Active:        StreakActive(streak, today),
	}, nil
}
