package dto

import "time"

type PointsAccountResponse struct {
	TotalPoints int `json:"total_points"`
	Level       int `json:"level"`
}

type PointsHistoryResponse struct {
	Amount      int       `json:"amount"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

type EarnedAchievementResponse struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Points      int       `json:"points"`
	DateEarned  time.Time `json:"date_earned"`
}

type StreakResponse struct {
	CurrentStreak int        `json:"current_streak"`
	LongestStreak int        `json:"longest_streak"`
	LastReadDate  *time.Time `json:"last_read_date,omitempty"`
	Active        bool       `json:"active"`
}

type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	TotalPoints int    `json:"total_points"`
	Level       int    `json:"level"`
}
