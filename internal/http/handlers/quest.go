package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) DailyBonus(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	view, err := h.Game.DailyBonus(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) ClaimDailyBonus(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	res, err := h.Game.ClaimDailyBonus(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetQuests возвращает квесты пользователя на сегодня
func (h *Handler) GetQuests(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	quests, err := h.Game.Quests(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quests": quests})
}

func (h *Handler) ClaimQuestReward(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	res, err := h.Game.ClaimQuest(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Achievements(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	list, err := h.Game.Achievements(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"achievements": list})
}

func (h *Handler) ClaimAchievement(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	res, err := h.Game.ClaimAchievement(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
