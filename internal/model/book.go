package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Book is a local registry row for a volume from the external catalog.
// Rows are get-or-created by CatalogID the first time anyone interacts
// with the book (rating, review, favorite, status).
type Book struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CatalogID   string    `gorm:"size:64;uniqueIndex;not null" json:"catalog_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Author      string    `gorm:"size:255" json:"author"`
	Description string    `gorm:"type:text" json:"description"`
	Genre       string    `gorm:"size:100" json:"genre"`
	CoverURL    string    `gorm:"type:text" json:"image"`
	Year        string    `gorm:"size:10" json:"year"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Rating is one user's 1..5 star rating of a book, upserted per pair.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rating_pair,priority:1" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	BookID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rating_pair,priority:2" json:"book_id"`
	Book      Book      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Rating    int       `gorm:"not null" json:"rating"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Favorite links a user to a book at most once.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_pair,priority:1" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	BookID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_pair,priority:2" json:"book_id"`
	Book      Book      `gorm:"constraint:OnDelete:CASCADE" json:"book"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

const (
	StatusWantToRead = "WANT_TO_READ"
	StatusReading    = "READING"
	StatusFinished   = "FINISHED"
)

// BookStatus tracks where a user is with a book. One row per pair;
// transitions overwrite Status in place.
type BookStatus struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_status_pair,priority:1" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	BookID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_status_pair,priority:2" json:"book_id"`
	Book      Book      `gorm:"constraint:OnDelete:CASCADE" json:"book"`
	Status    string    `gorm:"size:20;not null" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
