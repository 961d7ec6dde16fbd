package repository

import (
	"context"

	"anoa.com/bookloop/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error)
	// FindAllByBook returns every review and reply for a book in creation
	// order, for building reply trees in one query.
	FindAllByBook(ctx context.Context, bookID uuid.UUID) ([]*model.Review, error)
	Update(ctx context.Context, review *model.Review) error
	// DeleteSubtree removes the review and its entire reply subtree in one
	// transaction, children before parents so no orphan rows survive even
	// without database-level cascades.
	DeleteSubtree(ctx context.Context, id uuid.UUID) error
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindAllByBook(ctx context.Context, bookID uuid.UUID) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("book_id = ?", bookID).
		Order("created_at ASC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) Update(ctx context.Context, review *model.Review) error {
	// Only the text is editable; updated_at bumps via autoUpdateTime.
	return r.db.WithContext(ctx).Model(&model.Review{}).
		Where("id = ?", review.ID).
		Update("text", review.Text).Error
}

func (r *reviewRepository) DeleteSubtree(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteSubtree(tx, id)
	})
}

func deleteSubtree(tx *gorm.DB, id uuid.UUID) error {
	var childIDs []uuid.UUID
	if err := tx.Model(&model.Review{}).
		Where("parent_id = ?", id).
		Pluck("id", &childIDs).Error; err != nil {
		return err
	}

	for _, childID := range childIDs {
		if err := deleteSubtree(tx, childID); err != nil {
			return err
		}
	}

	return tx.Delete(&model.Review{}, "id = ?", id).Error
}

func (r *reviewRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
