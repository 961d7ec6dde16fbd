package repository

import (
	"context"

	"anoa.com/bookloop/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookRepository interface {
	// GetOrCreateByCatalogID registers the book locally on first contact.
	// Later calls ignore the provided metadata and return the stored row.
	GetOrCreateByCatalogID(ctx context.Context, book *model.Book) (*model.Book, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	FindByCatalogID(ctx context.Context, catalogID string) (*model.Book, error)
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) GetOrCreateByCatalogID(ctx context.Context, book *model.Book) (*model.Book, error) {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "catalog_id"}},
		DoNothing: true,
	}).Create(book).Error
	if err != nil {
		return nil, err
	}

	return r.FindByCatalogID(ctx, book.CatalogID)
}

func (r *bookRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) FindByCatalogID(ctx context.Context, catalogID string) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).Where("catalog_id = ?", catalogID).First(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}
