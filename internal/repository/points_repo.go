package repository

import (
	"context"

	"anoa.com/bookloop/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PointsRepository interface {
	// AddPoints increments the account total at the database so concurrent
	// awards cannot lose updates, creating the account on first award.
	// Returns the account as it stands after the increment.
	AddPoints(ctx context.Context, userID uuid.UUID, amount int) (*model.PointsAccount, error)
	SetLevel(ctx context.Context, userID uuid.UUID, level int) error
	AppendHistory(ctx context.Context, entry *model.PointsHistory) error
	GetAccount(ctx context.Context, userID uuid.UUID) (*model.PointsAccount, error)
	HistoryByUser(ctx context.Context, userID uuid.UUID) ([]model.PointsHistory, error)
	TopAccounts(ctx context.Context, limit int) ([]model.PointsAccount, error)
}

type pointsRepository struct {
	db *gorm.DB
}

func NewPointsRepository(db *gorm.DB) PointsRepository {
	return &pointsRepository{db: db}
}

func (r *pointsRepository) AddPoints(ctx context.Context, userID uuid.UUID, amount int) (*model.PointsAccount, error) {
	// Upsert with a database-side increment, same shape as an atomic
	// counter: insert {amount, level 1} or add to the existing total.
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_points": gorm.Expr("points_accounts.total_points + ?", amount),
			"updated_at":   gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&model.PointsAccount{
		UserID:      userID,
		TotalPoints: amount,
		Level:       1,
	}).Error
	if err != nil {
		return nil, err
	}

	return r.GetAccount(ctx, userID)
}

func (r *pointsRepository) SetLevel(ctx context.Context, userID uuid.UUID, level int) error {
	// Guarded update: the level column only ever moves up.
	return r.db.WithContext(ctx).Model(&model.PointsAccount{}).
		Where("user_id = ? AND level < ?", userID, level).
		UpdateColumn("level", level).Error
}

func (r *pointsRepository) AppendHistory(ctx context.Context, entry *model.PointsHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *pointsRepository) GetAccount(ctx context.Context, userID uuid.UUID) (*model.PointsAccount, error) {
	var account model.PointsAccount
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *pointsRepository) HistoryByUser(ctx context.Context, userID uuid.UUID) ([]model.PointsHistory, error) {
	var entries []model.PointsHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

// TopAccounts orders by total points descending; ties break by account
// creation order (older account first).
func (r *pointsRepository) TopAccounts(ctx context.Context, limit int) ([]model.PointsAccount, error) {
	var accounts []model.PointsAccount
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("total_points DESC, created_at ASC").
		Limit(limit).
		Find(&accounts).Error
	return accounts, err
}
