package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"alfredoptarigan/ats-analyzer/internal/scoring"
)

// ErrCoachDisabled is returned when no AI backend is configured.
var ErrCoachDisabled = errors.New("ai coach is disabled")

// CoachError wraps a failed summary request.
type CoachError struct {
	Err error
}

func (e *CoachError) Error() string {
	return fmt.Sprintf("failed to generate coach summary: %v", e.Err)
}

func (e *CoachError) Unwrap() error {
	return e.Err
}

func (e *CoachError) ErrorKind() string {
	return "ai"
}

type CoachService interface {
	Summarize(ctx context.Context, report *scoring.Report, jobRole string) (string, error)
	Enabled() bool
}

type coachService struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	maxRetries    int
	log           *zap.Logger
}

// NewCoachService returns a coach backed by gemini. A nil gemini yields a
// coach that always reports ErrCoachDisabled.
func NewCoachService(gemini GeminiService, maxRetries int, log *zap.Logger) CoachService {
	if log == nil {
		log = zap.NewNop()
	}
	return &coachService{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
		log:           log,
	}
}

// Enabled implements CoachService.
func (c *coachService) Enabled() bool {
	return c.gemini != nil
}

// Summarize implements CoachService.
func (c *coachService) Summarize(ctx context.Context, report *scoring.Report, jobRole string) (string, error) {
	if c.gemini == nil {
		return "", ErrCoachDisabled
	}
	if report == nil {
		return "", &CoachError{Err: errors.New("report is required")}
	}

	prompt := c.promptBuilder.BuildCoachPrompt(report, jobRole)

	c.log.Info("🤖 Requesting coach summary",
		zap.String("model", c.gemini.Model()),
		zap.Int("overall_score", report.OverallScore),
	)

	summary, err := c.gemini.GenerateTextWithRetry(ctx, prompt, 0.4, c.maxRetries)
	if err != nil {
		return "", &CoachError{Err: err}
	}

	return summary, nil
}
