package dto

// RegisterBookRequest carries catalog metadata the first time a user
// interacts with a book that the local registry has not seen yet.
type RegisterBookRequest struct {
	CatalogID   string `json:"catalog_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
	Image       string `json:"image"`
	Year        string `json:"year"`
}

type BookResponse struct {
	ID          string `json:"id"`
	CatalogID   string `json:"catalog_id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
	Image       string `json:"image"`
	Year        string `json:"year"`
}

// SearchResult is the compact shape the catalog proxy returns, one entry
// per volume from the external API.
type SearchResult struct {
	CatalogID   string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       string `json:"genre"`
	Year        string `json:"year"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type SearchResponse struct {
	Books []SearchResult `json:"books"`
	Page  int            `json:"page"`
}

// BestsellerBook is one entry of the proxied NYT list, rank included.
type BestsellerBook struct {
	Rank        int    `json:"rank"`
	WeeksOnList int    `json:"weeks_on_list"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Image       string `json:"image"`
	ISBN        string `json:"isbn"`
}

type RateBookRequest struct {
	RegisterBookRequest
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

type RatingStatsResponse struct {
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int64   `json:"total_ratings"`
}

type SetStatusRequest struct {
	RegisterBookRequest
	Status string `json:"status" binding:"required,oneof=WANT_TO_READ READING FINISHED"`
}
