package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"www.github.com/Wanderer0074348/ShadowRoute/src/models"
	"www.github.com/Wanderer0074348/ShadowRoute/src/router"
)

// AdminHandler exposes the operator surface: traffic splits, routing stats,
// and the shadow-learning mode. All routes sit behind the admin token guard.
type AdminHandler struct {
	router *router.ModelRouter
}

func NewAdminHandler(modelRouter *router.ModelRouter) *AdminHandler {
	return &AdminHandler{router: modelRouter}
}

type setSplitRequest struct {
	Intent  string `json:"intent" binding:"required"`
	Percent *int   `json:"percent" binding:"required"`
}

func (h *AdminHandler) GetSplits(c *gin.Context) {
	c.JSON(http.StatusOK, h.router.Splits().Snapshot())
}

func (h *AdminHandler) SetSplit(c *gin.Context) {
	var req setSplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	intent := models.ParseIntent(req.Intent)
	if intent == models.IntentUnknown {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown intent: " + req.Intent})
		return
	}

	if err := h.router.Splits().SetSplit(intent, *req.Percent); err != nil {
		if errors.Is(err, router.ErrInvalidPercent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.router.Splits().Snapshot())
}

func (h *AdminHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.router.Stats().Snapshot())
}

func (h *AdminHandler) ResetStats(c *gin.Context) {
	h.router.Stats().Reset()
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

type setModeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

func (h *AdminHandler) GetMode(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"mode": h.router.Mode()})
}

func (h *AdminHandler) SetMode(c *gin.Context) {
	var req setModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch models.Mode(req.Mode) {
	case models.ModeDisabled, models.ModeShadow, models.ModeLive:
		h.router.SetMode(models.Mode(req.Mode))
		c.JSON(http.StatusOK, gin.H{"mode": h.router.Mode()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be one of disabled, shadow, live"})
	}
}
