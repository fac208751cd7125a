package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ats-analyzer/internal/observability"
)

type SystemHandler struct {
	stats          *observability.Stats
	lexiconVersion string
	aiEnabled      bool
	dbEnabled      bool
}

func NewSystemHandler(stats *observability.Stats, lexiconVersion string, aiEnabled, dbEnabled bool) *SystemHandler {
	return &SystemHandler{
		stats:          stats,
		lexiconVersion: lexiconVersion,
		aiEnabled:      aiEnabled,
		dbEnabled:      dbEnabled,
	}
}

// HandleHealth handles GET /health
func (h *SystemHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":          "healthy",
		"time":            time.Now(),
		"lexicon_version": h.lexiconVersion,
		"ai_enabled":      h.aiEnabled,
		"db_enabled":      h.dbEnabled,
	})
}

// HandleStats handles GET /stats
func (h *SystemHandler) HandleStats(c *fiber.Ctx) error {
	return c.JSON(h.stats.Snapshot())
}
