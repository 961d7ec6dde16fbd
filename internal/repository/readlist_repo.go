package repository

import (
	"context"

	"anoa.com/bookloop/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReadlistRepository interface {
	Create(ctx context.Context, readlist *model.Readlist) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Readlist, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Readlist, error)
	Update(ctx context.Context, readlist *model.Readlist) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddItem(ctx context.Context, readlistID, bookID uuid.UUID) error
	RemoveItem(ctx context.Context, readlistID, bookID uuid.UUID) error
}

type readlistRepository struct {
	db *gorm.DB
}

func NewReadlistRepository(db *gorm.DB) ReadlistRepository {
	return &readlistRepository{db: db}
}

func (r *readlistRepository) Create(ctx context.Context, readlist *model.Readlist) error {
	return r.db.WithContext(ctx).Create(readlist).Error
}

func (r *readlistRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Readlist, error) {
	var readlist model.Readlist
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Items.Book").
		Where("id = ?", id).
		First(&readlist).Error; err != nil {
		return nil, err
	}
	return &readlist, nil
}

func (r *readlistRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Readlist, error) {
	var readlists []model.Readlist
	err := r.db.WithContext(ctx).
		Preload("Items.Book").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&readlists).Error
	return readlists, err
}

func (r *readlistRepository) Update(ctx context.Context, readlist *model.Readlist) error {
	return r.db.WithContext(ctx).Model(&model.Readlist{}).
		Where("id = ?", readlist.ID).
		Updates(map[string]interface{}{
			"name":        readlist.Name,
			"description": readlist.Description,
		}).Error
}

func (r *readlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Items").Delete(&model.Readlist{ID: id}).Error
}

func (r *readlistRepository) AddItem(ctx context.Context, readlistID, bookID uuid.UUID) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "readlist_id"}, {Name: "book_id"}},
		DoNothing: true,
	}).Create(&model.ReadlistItem{ReadlistID: readlistID, BookID: bookID}).Error
}

func (r *readlistRepository) RemoveItem(ctx context.Context, readlistID, bookID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("readlist_id = ? AND book_id = ?", readlistID, bookID).
		Delete(&model.ReadlistItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
