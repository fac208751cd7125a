package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/repositories"
	"alfredoptarigan/ats-analyzer/internal/services"
)

type EvaluationHandler struct {
	analysisRepo repositories.AnalysisRepository
	docRepo      repositories.DocumentRepository
	worker       services.Worker
	threshold    int
}

func NewEvaluationHandler(
	analysisRepo repositories.AnalysisRepository,
	docRepo repositories.DocumentRepository,
	worker services.Worker,
	threshold int,
) *EvaluationHandler {
	return &EvaluationHandler{
		analysisRepo: analysisRepo,
		docRepo:      docRepo,
		worker:       worker,
		threshold:    threshold,
	}
}

// HandleEvaluate handles POST /evaluate
func (h *EvaluationHandler) HandleEvaluate(c *fiber.Ctx) error {
	var req models.EvaluateRequest

	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}

	req.JobDescription = strings.TrimSpace(req.JobDescription)
	if req.JobDescription == "" {
		return fiber.NewError(fiber.StatusBadRequest, "job_description is required")
	}

	if req.DocumentID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "document_id is required")
	}

	docID, err := uuid.Parse(req.DocumentID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid document_id format")
	}

	threshold := h.threshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	if threshold < 0 || threshold > 100 {
		return fiber.NewError(fiber.StatusBadRequest, "threshold must be between 0 and 100")
	}

	if _, err := h.docRepo.FindByID(docID); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Resume document not found")
	}

	analysis := &models.Analysis{
		ID:             uuid.New(),
		DocumentID:     docID,
		JobRole:        strings.TrimSpace(req.JobRole),
		JobDescription: req.JobDescription,
		Threshold:      threshold,
		Status:         models.StatusQueued,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := h.analysisRepo.Create(analysis); err != nil {
		return withStage(c, "queue", err)
	}

	h.worker.EnqueueJob(analysis.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.EvaluateResponse{
		ID:     analysis.ID.String(),
		Status: string(models.StatusQueued),
	})
}
