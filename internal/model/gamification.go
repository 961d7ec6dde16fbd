package model

import (
	"time"

	"github.com/google/uuid"
)

// PointsAccount is the derived view over a user's points history: running
// total plus level. Level is total/100 + 1 but never decreases once reached.
type PointsAccount struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	TotalPoints int       `gorm:"default:0" json:"total_points"`
	Level       int       `gorm:"default:1" json:"level"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// PointsHistory is append-only; rows are never updated or deleted.
type PointsHistory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index:idx_points_user_date,priority:1;not null" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"-"`
	Amount      int       `gorm:"not null" json:"amount"`
	Description string    `gorm:"size:255;not null" json:"description"`
	CreatedAt   time.Time `gorm:"index:idx_points_user_date,priority:2" json:"timestamp"`
}

// Achievement is a global badge registry row, created lazily the first time
// its rule fires for anyone. RuleID is the stable key; Name is display-only
// but kept unique as well.
type Achievement struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RuleID      string    `gorm:"size:64;uniqueIndex;not null" json:"rule_id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"size:255;not null" json:"description"`
	Points      int       `gorm:"default:0" json:"points"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// UserAchievement records a grant. The unique pair index is the sole
// concurrency-correctness mechanism: a racing duplicate insert loses and
// observes the existing row.
type UserAchievement struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	UserID        uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_user_achievement,priority:1" json:"user_id"`
	User          User        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	AchievementID uint        `gorm:"not null;uniqueIndex:idx_user_achievement,priority:2" json:"achievement_id"`
	Achievement   Achievement `gorm:"constraint:OnDelete:CASCADE" json:"achievement"`
	DateEarned    time.Time   `gorm:"autoCreateTime" json:"date_earned"`
}

// ReadingStreak is one per user. LastReadDate is a calendar date, stored
// truncated to midnight UTC.
type ReadingStreak struct {
	UserID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	User          User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CurrentStreak int        `gorm:"default:0" json:"current_streak"`
	LongestStreak int        `gorm:"default:0" json:"longest_streak"`
	LastReadDate  *time.Time `json:"last_read_date,omitempty"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
