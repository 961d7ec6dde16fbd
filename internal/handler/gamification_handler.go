package handler

import (
	"net/http"
	"strconv"
	"time"

	"anoa.com/bookloop/internal/service"
	"anoa.com/bookloop/pkg/response"
	"github.com/gin-gonic/gin"
)

type GamificationHandler struct {
	pointsService      service.PointsService
	achievementService service.AchievementService
	streakService      service.StreakService
}

func NewGamificationHandler(pointsService service.PointsService, achievementService service.AchievementService, streakService service.StreakService) *GamificationHandler {
	return &GamificationHandler{
		pointsService:      pointsService,
		achievementService: achievementService,
		streakService:      streakService,
	}
}

func (h *GamificationHandler) Account(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	account, err := h.pointsService.Account(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *GamificationHandler) History(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	history, err := h.pointsService.History(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": history})
}

func (h *GamificationHandler) Achievements(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	earned, err := h.achievementService.EarnedByUser(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": earned})
}

func (h *GamificationHandler) Streak(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	streak, err := h.streakService.Get(c.Request.Context(), userID, time.Now())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, streak)
}

func (h *GamificationHandler) Leaderboard(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	entries, err := h.pointsService.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}
