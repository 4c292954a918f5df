package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Learning(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	view, err := h.Game.Learning(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) StartCourse(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	st, err := h.Game.StartCourse(c.Request.Context(), userID, c.Param("course"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
