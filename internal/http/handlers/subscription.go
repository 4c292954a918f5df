package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"root_tycoon/internal/domain"
	"root_tycoon/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	SignatureHeader = "X-Signature"
	maxWebhookBody  = 64 << 10
)

type CheckoutRequest struct {
	Tier string `json:"tier" binding:"required"`
}

func (h *Handler) Subscription(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	view, err := h.Game.Subscription(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) Checkout(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "tier is required")
		return
	}

	order, err := h.Payments.Checkout(c.Request.Context(), userID, domain.Tier(req.Tier))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// PaymentWebhook is called by the payment gateway. The raw body is signed,
// so it is read before decoding.
func (h *Handler) PaymentWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		badRequest(c, "cannot read body")
		return
	}
	if err := h.Payments.VerifySignature(body, c.GetHeader(SignatureHeader)); err != nil {
		respondError(c, err)
		return
	}

	var ev service.WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil || ev.Status == "" {
		badRequest(c, "order_id and status are required")
		return
	}

	res, err := h.Payments.HandleWebhook(c.Request.Context(), ev)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListPayments(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	ps, err := h.Payments.Payments(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": ps})
}
