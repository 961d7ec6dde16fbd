package repository

import (
	"context"
	"time"

	"anoa.com/bookloop/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChallengeRepository interface {
	Create(ctx context.Context, challenge *model.ReadingChallenge) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ReadingChallenge, error)
	ListActive(ctx context.Context, now time.Time) ([]model.ReadingChallenge, error)
	Join(ctx context.Context, userID, challengeID uuid.UUID) error
	// ActiveForUser returns the user's unfinished challenge rows whose
	// window contains now.
	ActiveForUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]model.UserChallenge, error)
	ByUser(ctx context.Context, userID uuid.UUID) ([]model.UserChallenge, error)
	Save(ctx context.Context, uc *model.UserChallenge) error
}

type challengeRepository struct {
	db *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) ChallengeRepository {
	return &challengeRepository{db: db}
}

func (r *challengeRepository) Create(ctx context.Context, challenge *model.ReadingChallenge) error {
	return r.db.WithContext(ctx).Create(challenge).Error
}

func (r *challengeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ReadingChallenge, error) {
	var challenge model.ReadingChallenge
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&challenge).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (r *challengeRepository) ListActive(ctx context.Context, now time.Time) ([]model.ReadingChallenge, error) {
	var challenges []model.ReadingChallenge
	err := r.db.WithContext(ctx).
		Where("start_date <= ? AND end_date >= ?", now, now).
		Order("end_date ASC").
		Find(&challenges).Error
	return challenges, err
}

func (r *challengeRepository) Join(ctx context.Context, userID, challengeID uuid.UUID) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "challenge_id"}},
		DoNothing: true,
	}).Create(&model.UserChallenge{UserID: userID, ChallengeID: challengeID}).Error
}

func (r *challengeRepository) ActiveForUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]model.UserChallenge, error) {
	var ucs []model.UserChallenge
	err := r.db.WithContext(ctx).
		Preload("Challenge").
		Joins("JOIN reading_challenges ON reading_challenges.id = user_challenges.challenge_id").
		Where("user_challenges.user_id = ? AND user_challenges.completed = false", userID).
		Where("reading_challenges.start_date <= ? AND reading_challenges.end_date >= ?", now, now).
		Find(&ucs).Error
	return ucs, err
}

func (r *challengeRepository) ByUser(ctx context.Context, userID uuid.UUID) ([]model.UserChallenge, error) {
	var ucs []model.UserChallenge
	err := r.db.WithContext(ctx).
		Preload("Challenge").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ucs).Error
	return ucs, err
}

func (r *challengeRepository) Save(ctx context.Context, uc *model.UserChallenge) error {
	// Update only the progress columns so the preloaded Challenge row is
	// never written back.
	return r.db.WithContext(ctx).Model(&model.UserChallenge{}).
		Where("id = ?", uc.ID).
		Updates(map[string]interface{}{
			"books_read":     uc.BooksRead,
			"completed":      uc.Completed,
			"completed_date": uc.CompletedDate,
		}).Error
}
