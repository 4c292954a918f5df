package handlers

import (
	"net/http"
	"strconv"

	"root_tycoon/internal/domain"
	"root_tycoon/internal/game"

	"github.com/gin-gonic/gin"
)

// Me returns the reconciled snapshot of the caller.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	snap, err := h.Game.Snapshot(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *Handler) CompleteTutorial(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	u, err := h.Game.CompleteTutorial(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": u.Balance, "tutorial_completed": u.TutorialCompleted})
}

func (h *Handler) Catalog(c *gin.Context) {
	tiers := make([]game.TierRules, 0, len(game.TierTable))
	for _, t := range []domain.Tier{domain.TierNone, domain.TierVIP, domain.TierPremium} {
		tiers = append(tiers, game.TierTable[t])
	}
	c.JSON(http.StatusOK, gin.H{
		"servers":      game.SortedServerTypes(),
		"courses":      game.SortedCourses(),
		"jobs":         game.SortedJobs(),
		"tiers":        tiers,
		"quests":       game.DailyQuests,
		"achievements": game.Achievements,
		"rules":        h.Game.Engine().Rules(),
	})
}

func (h *Handler) Transactions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	txs, err := h.Game.Transactions(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}
