package repository

import (
	"context"

	"anoa.com/bookloop/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StreakRepository interface {
	// GetOrInit returns the user's streak row, creating the zero-value row
	// if the user has never finished a book.
	GetOrInit(ctx context.Context, userID uuid.UUID) (*model.ReadingStreak, error)
	Save(ctx context.Context, streak *model.ReadingStreak) error
}

type streakRepository struct {
	db *gorm.DB
}

func NewStreakRepository(db *gorm.DB) StreakRepository {
	return &streakRepository{db: db}
}

func (r *streakRepository) GetOrInit(ctx context.Context, userID uuid.UUID) (*model.ReadingStreak, error) {
	var streak model.ReadingStreak
	err := r.db.WithContext(ctx).
		Where(model.ReadingStreak{UserID: userID}).
		FirstOrCreate(&streak).Error
	if err != nil {
		return nil, err
	}
	return &streak, nil
}

func (r *streakRepository) Save(ctx context.Context, streak *model.ReadingStreak) error {
	return r.db.WithContext(ctx).Model(&model.ReadingStreak{}).
		Where("user_id = ?", streak.UserID).
		Updates(map[string]interface{}{
			"current_streak": streak.CurrentStreak,
			"longest_streak": streak.LongestStreak,
			"last_read_date": streak.LastReadDate,
		}).Error
}
