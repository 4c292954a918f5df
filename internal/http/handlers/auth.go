package handlers

import (
	"net/http"

	"root_tycoon/internal/service"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func requestInfo(c *gin.Context) service.RequestInfo {
	return service.RequestInfo{IP: c.ClientIP(), UserAgent: c.Request.UserAgent()}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email, username and password are required")
		return
	}

	sess, err := h.Auth.Register(c.Request.Context(), req.Email, req.Username, req.Password, requestInfo(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and password are required")
		return
	}

	sess, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password, requestInfo(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}
