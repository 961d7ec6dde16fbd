package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Readlist is a shareable, user-owned collection of books.
type Readlist struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	User        User          `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Name        string        `gorm:"size:100;not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	Items       []ReadlistItem `gorm:"foreignKey:ReadlistID" json:"items,omitempty"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *Readlist) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}

type ReadlistItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ReadlistID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_readlist_book,priority:1" json:"readlist_id"`
	BookID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_readlist_book,priority:2" json:"book_id"`
	Book       Book      `gorm:"constraint:OnDelete:CASCADE" json:"book"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
