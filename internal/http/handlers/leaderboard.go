package handlers

import (
	"net/http"
	"strconv"

	"root_tycoon/internal/service"

	"github.com/gin-gonic/gin"
)

// GetLeaderboard returns the top players by ?metric=balance|experience
func (h *Handler) GetLeaderboard(c *gin.Context) {
	metric, err := service.ParseMetric(c.Query("metric"))
	if err != nil {
		badRequest(c, "metric must be balance or experience")
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	top, err := h.Ranking.Leaderboard(c.Request.Context(), metric, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"leaderboard": top,
		"metric":      metric,
	})
}

// GetMyRank returns the caller's position when the ranking cache is enabled.
func (h *Handler) GetMyRank(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	metric, err := service.ParseMetric(c.Query("metric"))
	if err != nil {
		badRequest(c, "metric must be balance or experience")
		return
	}

	entry, err := h.Ranking.Rank(c.Request.Context(), metric, userID)
	if err != nil || entry == nil {
		c.JSON(http.StatusOK, gin.H{"rank": 0, "metric": metric})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rank": entry.Rank, "score": entry.Score, "metric": metric})
}

func (h *Handler) Stats(c *gin.Context) {
	st, err := h.Ranking.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
