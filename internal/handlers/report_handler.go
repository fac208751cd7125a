package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ats-analyzer/internal/observability"
	"alfredoptarigan/ats-analyzer/internal/services"
)

type ReportHandler struct {
	renderer services.RendererService
	stats    *observability.Stats
}

func NewReportHandler(renderer services.RendererService, stats *observability.Stats) *ReportHandler {
	if stats == nil {
		stats = observability.NewStats()
	}
	return &ReportHandler{
		renderer: renderer,
		stats:    stats,
	}
}

// HandleGenerateReport handles POST /generate-report
func (h *ReportHandler) HandleGenerateReport(c *fiber.Ctx) error {
	var req services.RenderInput
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}

	pdf, err := h.renderer.RenderReport(req)
	if err != nil {
		return withStage(c, "render", err)
	}
	h.stats.IncReportRendered()

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, ReportFilename(req.ResumeName)))
	return c.Send(pdf)
}

// ReportFilename is the download name for a rendered report.
func ReportFilename(resumeName string) string {
	name := strings.TrimSpace(resumeName)
	if name == "" {
		name = "Resume"
	}
	name = strings.NewReplacer(" ", "_", `"`, "", "/", "_", `\`, "_").Replace(name)
	return "ATS_Report_" + name + ".pdf"
}
