package dto

import "time"

type CreateReviewRequest struct {
	BookID   string `json:"book_id" binding:"required,uuid"`
	ParentID string `json:"parent_id" binding:"omitempty,uuid"`
	Text     string `json:"review_text" binding:"required"`
}

type UpdateReviewRequest struct {
	Text string `json:"review_text" binding:"required"`
}

// ReviewTree is the recursive serialization of a review and its replies,
// depth-first in creation order. Replies is never nil so leaves serialize
// as "replies": [].
type ReviewTree struct {
	ID        string       `json:"id"`
	Author    ReviewAuthor `json:"user"`
	Text      string       `json:"review_text"`
	AddedDate time.Time    `json:"added_date"`
	UpdatedAt time.Time    `json:"updated_at"`
	ParentID  *string      `json:"parent"`
	Replies   []*ReviewTree `json:"replies"`
}

type ReviewAuthor struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
