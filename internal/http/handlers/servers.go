package handlers

import (
	"net/http"

	"root_tycoon/internal/service"

	"github.com/gin-gonic/gin"
)

type BuyServerRequest struct {
	Type string `json:"type" binding:"required"`
}

type UpdateServerRequest struct {
	Online *bool `json:"online"`
	Load   *int  `json:"load"`
}

func (h *Handler) Servers(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	servers, err := h.Game.Servers(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"servers": servers})
}

func (h *Handler) BuyServer(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req BuyServerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "server type is required")
		return
	}

	view, err := h.Game.BuyServer(c.Request.Context(), userID, req.Type)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *Handler) UpdateServer(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	serverID, ok := paramInt64(c, "id")
	if !ok {
		return
	}
	var req UpdateServerRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.Online == nil && req.Load == nil) {
		badRequest(c, "online or load is required")
		return
	}

	view, err := h.Game.UpdateServer(c.Request.Context(), userID, serverID, service.ServerUpdate{Online: req.Online, Load: req.Load})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) DeleteServer(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	serverID, ok := paramInt64(c, "id")
	if !ok {
		return
	}
	if err := h.Game.DeleteServer(c.Request.Context(), userID, serverID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) CollectIncome(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	res, err := h.Game.CollectIncome(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
