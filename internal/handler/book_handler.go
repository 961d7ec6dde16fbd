package handler

import (
	"net/http"
	"strconv"

	"anoa.com/bookloop/internal/dto"
	"anoa.com/bookloop/internal/service"
	"anoa.com/bookloop/pkg/response"
	"anoa.com/bookloop/pkg/validator"
	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	bookService     service.BookService
	ratingService   service.RatingService
	favoriteService service.FavoriteService
	statusService   service.StatusService
}

func NewBookHandler(bookService service.BookService, ratingService service.RatingService, favoriteService service.FavoriteService, statusService service.StatusService) *BookHandler {
	return &BookHandler{
		bookService:     bookService,
		ratingService:   ratingService,
		favoriteService: favoriteService,
		statusService:   statusService,
	}
}

// Search proxies the external catalog: /books/search?q=...&filterType=title&page=1
func (h *BookHandler) Search(c *gin.Context) {
	query := c.Query("q")
	filterType := c.DefaultQuery("filterType", "title")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	resp, err := h.bookService.Search(c.Request.Context(), query, filterType, page)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *BookHandler) SearchLocal(c *gin.Context) {
	results, err := h.bookService.SearchLocal(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"books": results})
}

func (h *BookHandler) Bestsellers(c *gin.Context) {
	books, err := h.bookService.Bestsellers(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"books": books})
}

func (h *BookHandler) Register(c *gin.Context) {
	var req dto.RegisterBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	book, err := h.bookService.Register(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, book)
}

func (h *BookHandler) Rate(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.RateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	rating, err := h.ratingService.Rate(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "rating submitted successfully", "rating": rating.Rating})
}

func (h *BookHandler) RatingStats(c *gin.Context) {
	stats, err := h.ratingService.Stats(c.Request.Context(), c.Param("catalogID"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *BookHandler) AddFavorite(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.RegisterBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.favoriteService.Add(c.Request.Context(), userID, req); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "book added to favorites"})
}

func (h *BookHandler) RemoveFavorite(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.favoriteService.Remove(c.Request.Context(), userID, c.Param("catalogID")); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "book removed from favorites"})
}

func (h *BookHandler) ListFavorites(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	favorites, err := h.favoriteService.List(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": favorites})
}

func (h *BookHandler) SetStatus(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	status, err := h.statusService.Set(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *BookHandler) BookStatus(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	status, err := h.statusService.GetForBook(c.Request.Context(), userID, c.Param("catalogID"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *BookHandler) ListStatuses(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	statuses, err := h.statusService.List(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": statuses})
}
