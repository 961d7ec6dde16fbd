package repository

import (
	"context"
	"errors"

	"anoa.com/bookloop/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementRepository interface {
	// GetOrCreate resolves the registry row for a rule, creating it on
	// first trigger anywhere in the system. Idempotent by rule id.
	GetOrCreate(ctx context.Context, achievement *model.Achievement) (*model.Achievement, error)
	// Grant inserts the (user, achievement) link. Returns created=false
	// when the pair already exists; the unique index resolves races.
	Grant(ctx context.Context, userID uuid.UUID, achievementID uint) (created bool, err error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.UserAchievement, error)
}

type achievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) GetOrCreate(ctx context.Context, achievement *model.Achievement) (*model.Achievement, error) {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "rule_id"}},
		DoNothing: true,
	}).Create(achievement).Error
	if err != nil {
		return nil, err
	}

	// DoNothing leaves the struct without an ID when the row already
	// existed, so always read back by rule id.
	var existing model.Achievement
	if err := r.db.WithContext(ctx).Where("rule_id = ?", achievement.RuleID).First(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *achievementRepository) Grant(ctx context.Context, userID uuid.UUID, achievementID uint) (bool, error) {
	link := model.UserAchievement{
		UserID:        userID,
		AchievementID: achievementID,
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
		DoNothing: true,
	}).Create(&link)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *achievementRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.UserAchievement, error) {
	var earned []model.UserAchievement
	err := r.db.WithContext(ctx).
		Preload("Achievement").
		Where("user_id = ?", userID).
		Order("date_earned DESC").
		Find(&earned).Error
	return earned, err
}
