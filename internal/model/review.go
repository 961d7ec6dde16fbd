package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a node in a threaded review tree. A row with ParentID == nil is
// a root review; replies reference their parent and always share its book.
// Cycles are impossible because a parent must already exist at creation.
type Review struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null" json:"user_id"`
	User      User       `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	BookID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"book_id"`
	Book      Book       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Parent    *Review    `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`
	Text      string     `gorm:"type:text;not null" json:"review_text"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"added_date"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}
