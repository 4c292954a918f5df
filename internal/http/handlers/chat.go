package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ChatMessages(c *gin.Context) {
	msgs, err := h.Chat.History(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}
