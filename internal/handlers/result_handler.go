package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/repositories"
	"alfredoptarigan/ats-analyzer/internal/services"
)

type ResultHandler struct {
	analysisRepo repositories.AnalysisRepository
}

func NewResultHandler(analysisRepo repositories.AnalysisRepository) *ResultHandler {
	return &ResultHandler{
		analysisRepo: analysisRepo,
	}
}

// HandleGetResult handles GET /result/:id
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	analysisID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid analysis ID format")
	}

	analysis, err := h.analysisRepo.FindByID(analysisID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Analysis not found")
	}

	response := models.ResultResponse{
		ID:     analysis.ID.String(),
		Status: string(analysis.Status),
	}

	if analysis.Status == models.StatusCompleted {
		report, err := services.DecodeReport(analysis)
		if err != nil {
			return withStage(c, "result", err)
		}

		result := &models.AnalysisResult{Report: report}
		if analysis.OverallScore != nil {
			result.OverallScore = *analysis.OverallScore
		}
		if analysis.Summary != nil {
			result.Summary = *analysis.Summary
		}
		response.Result = result
	}

	if analysis.Status == models.StatusFailed {
		response.ErrorMessage = analysis.ErrorMessage
	}

	return c.JSON(response)
}
