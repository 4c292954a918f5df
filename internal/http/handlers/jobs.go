package handlers

import (
	"net/http"

	"root_tycoon/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Jobs(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	jobs, err := h.Game.Jobs(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *Handler) StartJob(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	res, err := h.Game.StartJob(c.Request.Context(), userID, domain.JobType(c.Param("type")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
