package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/ats-analyzer/internal/observability"
	"alfredoptarigan/ats-analyzer/internal/scoring"
	"alfredoptarigan/ats-analyzer/internal/services"
)

const stageKey = "error_stage"

// withStage tags err with the pipeline stage it came from for the stats counters.
func withStage(c *fiber.Ctx, stage string, err error) error {
	c.Locals(stageKey, stage)
	return err
}

// NewErrorHandler renders every handler error as {"error": ..., "code": ...}.
func NewErrorHandler(stats *observability.Stats, log *zap.Logger) fiber.ErrorHandler {
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := err.Error()

		var (
			fiberErr   *fiber.Error
			extractErr *services.ExtractionError
			renderErr  *services.RenderError
			coachErr   *services.CoachError
		)

		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
		case errors.As(err, &extractErr):
			code = fiber.StatusBadRequest
		case errors.Is(err, scoring.ErrInvalidThreshold):
			code = fiber.StatusBadRequest
		case errors.As(err, &coachErr):
			code = fiber.StatusBadGateway
		case errors.As(err, &renderErr):
			message = fmt.Sprintf("Error generating report: %v", renderErr.Err)
		}

		if fiberErr == nil && stats != nil {
			stage, _ := c.Locals(stageKey).(string)
			if stage == "" {
				stage = "http"
			}
			stats.RecordError(stage, err)
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("❌ Request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.String("kind", observability.ClassifyError(err)),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": message,
			"code":  code,
		})
	}
}
