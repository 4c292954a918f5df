package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"root_tycoon/internal/game"
	"root_tycoon/internal/http/middleware"
	"root_tycoon/internal/logger"
	"root_tycoon/internal/repository"
	"root_tycoon/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Auth     *service.AuthService
	Game     *service.GameService
	Payments *service.PaymentService
	Ranking  *service.RankingService
	Chat     *service.ChatService
}

func NewHandler(auth *service.AuthService, gs *service.GameService, payments *service.PaymentService, ranking *service.RankingService, chat *service.ChatService) *Handler {
	return &Handler{
		Auth:     auth,
		Game:     gs,
		Payments: payments,
		Ranking:  ranking,
		Chat:     chat,
	}
}

// getUserID извлекает user_id из контекста Gin
func getUserID(c *gin.Context) (int64, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return id, ok
}

func paramInt64(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_input", "message": "invalid " + name})
		return 0, false
	}
	return id, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_input", "message": msg})
}

// ceilSeconds rounds d up to whole seconds.
func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64((d + time.Second - 1) / time.Second)
}

// respondError maps service and rule errors to a status and error code.
func respondError(c *gin.Context, err error) {
	body := gin.H{"message": err.Error()}
	status := http.StatusInternalServerError

	var (
		funds    *game.FundsError
		cooldown *game.CooldownError
		level    *game.LevelError
		slot     *game.SlotError
	)
	switch {
	case errors.As(err, &funds):
		status = http.StatusPaymentRequired
		body["error"] = "insufficient_funds"
		body["required"] = funds.Required
		body["balance"] = funds.Balance
	case errors.As(err, &cooldown):
		status = http.StatusTooManyRequests
		body["error"] = "cooldown_active"
		body["remaining_seconds"] = ceilSeconds(cooldown.Remaining)
	case errors.As(err, &level):
		status = http.StatusForbidden
		body["error"] = "level_too_low"
		body["required_level"] = level.Required
		body["current_level"] = level.Current
	case errors.As(err, &slot):
		status = http.StatusConflict
		body["error"] = "slot_limit_reached"
		body["limit"] = slot.Limit
	case errors.Is(err, game.ErrNotFound):
		status = http.StatusNotFound
		body["error"] = "not_found"
	case errors.Is(err, game.ErrAlreadyLearning):
		status = http.StatusConflict
		body["error"] = "already_learning"
	case errors.Is(err, game.ErrAlreadyClaimed):
		status = http.StatusConflict
		body["error"] = "already_claimed"
	case errors.Is(err, game.ErrConflictingSubscription):
		status = http.StatusConflict
		body["error"] = "conflicting_subscription"
	case errors.Is(err, game.ErrCourseCompleted):
		status = http.StatusConflict
		body["error"] = "course_completed"
	case errors.Is(err, game.ErrNotCompleted):
		status = http.StatusConflict
		body["error"] = "not_completed"
	case errors.Is(err, game.ErrLocked):
		status = http.StatusForbidden
		body["error"] = "locked"
	case errors.Is(err, game.ErrTutorialIncomplete):
		status = http.StatusForbidden
		body["error"] = "tutorial_incomplete"
	case errors.Is(err, game.ErrInvalidLoad), errors.Is(err, service.ErrInvalidInput):
		status = http.StatusBadRequest
		body["error"] = "invalid_input"
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		body["error"] = "invalid_credentials"
	case errors.Is(err, service.ErrInvalidSignature):
		status = http.StatusUnauthorized
		body["error"] = "invalid_signature"
	case errors.Is(err, repository.ErrUserExists):
		status = http.StatusConflict
		body["error"] = "user_exists"
	default:
		logger.WithContext(c.Request.Context()).Error("request failed", "path", c.FullPath(), "error", err)
		body["error"] = "internal_error"
		body["message"] = "internal error"
	}

	c.JSON(status, body)
}
