package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReadingChallenge is a time-boxed "read N books" goal users can join.
type ReadingChallenge struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	TargetBooks int       `gorm:"not null" json:"target_books"`
	BonusPoints int       `gorm:"default:50" json:"bonus_points"`
	StartDate   time.Time `gorm:"not null" json:"start_date"`
	EndDate     time.Time `gorm:"not null" json:"end_date"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (c *ReadingChallenge) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}

// UserChallenge tracks one user's progress in a challenge. BooksRead is
// bumped on FINISHED transitions inside the challenge window; Completed
// flips once when BooksRead reaches the target.
type UserChallenge struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	UserID        uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_user_challenge,priority:1" json:"user_id"`
	User          User             `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ChallengeID   uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_user_challenge,priority:2" json:"challenge_id"`
	Challenge     ReadingChallenge `gorm:"constraint:OnDelete:CASCADE" json:"challenge"`
	BooksRead     int              `gorm:"default:0" json:"books_read"`
	Completed     bool             `gorm:"default:false" json:"completed"`
	CompletedDate *time.Time       `json:"completed_date,omitempty"`
	CreatedAt     time.Time        `gorm:"autoCreateTime" json:"joined_at"`
}
