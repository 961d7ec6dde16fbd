package dto

type CreateReadlistRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

type UpdateReadlistRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

type FollowCountsResponse struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

type CreateChallengeRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	TargetBooks int    `json:"target_books" binding:"required,min=1"`
	BonusPoints int    `json:"bonus_points" binding:"omitempty,min=0"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
}
