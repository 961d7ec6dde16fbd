package repository

import (
	"context"

	"anoa.com/bookloop/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InteractionRepository covers the per-(user, book) rows: ratings,
// favorites, and reading status. All three rely on unique pair indexes.
type InteractionRepository interface {
	UpsertRating(ctx context.Context, rating *model.Rating) error
	RatingStats(ctx context.Context, bookID uuid.UUID) (avg float64, total int64, err error)
	CountRatingsByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	AddFavorite(ctx context.Context, userID, bookID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, bookID uuid.UUID) error
	FavoritesByUser(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error)
	CountFavoritesByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	UpsertStatus(ctx context.Context, status *model.BookStatus) error
	FindStatus(ctx context.Context, userID, bookID uuid.UUID) (*model.BookStatus, error)
	StatusesByUser(ctx context.Context, userID uuid.UUID, status string) ([]model.BookStatus, error)
	CountFinishedByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type interactionRepository struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) UpsertRating(ctx context.Context, rating *model.Rating) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"rating":     rating.Rating,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(rating).Error
}

func (r *interactionRepository) RatingStats(ctx context.Context, bookID uuid.UUID) (float64, int64, error) {
	var total int64
	query := r.db.WithContext(ctx).Model(&model.Rating{}).Where("book_id = ?", bookID)
	if err := query.Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if total == 0 {
		return 0, 0, nil
	}

	var avg float64
	if err := query.Select("AVG(rating)").Scan(&avg).Error; err != nil {
		return 0, 0, err
	}
	return avg, total, nil
}

func (r *interactionRepository) CountRatingsByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Rating{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *interactionRepository) AddFavorite(ctx context.Context, userID, bookID uuid.UUID) error {
	// Idempotent: re-favoriting is a no-op, not a conflict.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoNothing: true,
	}).Create(&model.Favorite{UserID: userID, BookID: bookID}).Error
}

func (r *interactionRepository) RemoveFavorite(ctx context.Context, userID, bookID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&model.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *interactionRepository) FavoritesByUser(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error) {
	var favorites []model.Favorite
	err := r.db.WithContext(ctx).
		Preload("Book").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	return favorites, err
}

func (r *interactionRepository) CountFavoritesByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *interactionRepository) UpsertStatus(ctx context.Context, status *model.BookStatus) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status":     status.Status,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(status).Error
}

func (r *interactionRepository) FindStatus(ctx context.Context, userID, bookID uuid.UUID) (*model.BookStatus, error) {
	var status model.BookStatus
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&status).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *interactionRepository) StatusesByUser(ctx context.Context, userID uuid.UUID, status string) ([]model.BookStatus, error) {
	query := r.db.WithContext(ctx).
		Preload("Book").
		Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var statuses []model.BookStatus
	err := query.Order("updated_at DESC").Find(&statuses).Error
	return statuses, err
}

func (r *interactionRepository) CountFinishedByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.BookStatus{}).
		Where("user_id = ? AND status = ?", userID, model.StatusFinished).
		Count(&count).Error
	return count, err
}
