package handlers

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/ats-analyzer/internal/logger"
	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/observability"
	"alfredoptarigan/ats-analyzer/internal/scoring"
	"alfredoptarigan/ats-analyzer/internal/services"
	"alfredoptarigan/ats-analyzer/internal/session"
)

const SessionHeader = "X-Session-ID"

type SessionHandler struct {
	store       session.Store
	analyzer    *scoring.Analyzer
	extractor   services.ExtractorService
	coach       services.CoachService
	stats       *observability.Stats
	log         *zap.Logger
	maxFileSize int64
	threshold   int
}

func NewSessionHandler(
	store session.Store,
	analyzer *scoring.Analyzer,
	extractor services.ExtractorService,
	coach services.CoachService,
	stats *observability.Stats,
	log *zap.Logger,
	maxFileSize int64,
	threshold int,
) *SessionHandler {
	if log == nil {
		log = zap.NewNop()
	}
	if stats == nil {
		stats = observability.NewStats()
	}
	return &SessionHandler{
		store:       store,
		analyzer:    analyzer,
		extractor:   extractor,
		coach:       coach,
		stats:       stats,
		log:         log,
		maxFileSize: maxFileSize,
		threshold:   threshold,
	}
}

// HandleUploadResume handles POST /upload-resume
func (h *SessionHandler) HandleUploadResume(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "No file uploaded. Send the resume in the 'file' field.")
	}

	if file.Size > h.maxFileSize {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("File size exceeds %s limit.", formatSize(h.maxFileSize)))
	}

	kind, ok := services.DocumentKindFromContentType(file.Header.Get("Content-Type"))
	if !ok {
		kind, ok = services.DocumentKindFromFilename(file.Filename)
	}
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Unsupported file type. Please upload PDF or DOCX.")
	}

	src, err := file.Open()
	if err != nil {
		return withStage(c, "upload", fmt.Errorf("failed to open uploaded file: %w", err))
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return withStage(c, "upload", fmt.Errorf("failed to read uploaded file: %w", err))
	}

	text, err := h.extractor.ExtractText(data, kind)
	if err != nil {
		return withStage(c, "extract", err)
	}
	h.stats.IncResumeExtracted()

	sess := h.existingSession(c)
	if sess == nil {
		sess = &session.Session{ID: uuid.New().String()}
	}
	sess.ResumeText = text
	sess.ResumeName = file.Filename

	if err := h.store.Save(c.UserContext(), sess); err != nil {
		return withStage(c, "session", err)
	}

	h.log.Info("📄 Resume uploaded",
		zap.String("session_id", sess.ID),
		zap.String("file", logger.Truncate(file.Filename, 64)),
		zap.Int("text_length", len(text)),
	)

	return c.JSON(models.UploadResumeResponse{
		ExtractedText: text,
		SessionID:     sess.ID,
	})
}

// HandleSubmitJob handles POST /submit-job
func (h *SessionHandler) HandleSubmitJob(c *fiber.Ctx) error {
	sess := h.existingSession(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid or missing session ID. Please upload resume first.")
	}

	description := strings.TrimSpace(c.FormValue("description"))
	if description == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Job description is required.")
	}

	sess.JobText = description
	if err := h.store.Save(c.UserContext(), sess); err != nil {
		return withStage(c, "session", err)
	}

	h.log.Info("📝 Job description submitted",
		zap.String("session_id", sess.ID),
		zap.Int("length", len(description)),
	)

	return c.JSON(models.SubmitJobResponse{
		Message:           "Job description received successfully",
		DescriptionLength: len(description),
		SessionID:         sess.ID,
	})
}

// HandleMatchScore handles POST /match-score
func (h *SessionHandler) HandleMatchScore(c *fiber.Ctx) error {
	sess, err := h.completeSession(c)
	if err != nil {
		return err
	}

	threshold, err := h.parseThreshold(c)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := h.analyzer.AnalyzeMatch(sess.ResumeText, sess.JobText, threshold)
	if err != nil {
		return withStage(c, "analyze", err)
	}
	h.stats.ObserveAnalysis(time.Since(start))
	h.stats.IncMatchScore()

	return c.JSON(models.MatchScoreResponse{
		MatchScore:      result.OverallScore,
		MatchedKeywords: result.MatchedKeywords,
		MissingKeywords: result.MissingKeywords,
	})
}

// HandleDetailedReport handles POST /detailed-report
func (h *SessionHandler) HandleDetailedReport(c *fiber.Ctx) error {
	sess, err := h.completeSession(c)
	if err != nil {
		return err
	}

	threshold, err := h.parseThreshold(c)
	if err != nil {
		return err
	}

	report, err := h.detailedReport(sess, threshold)
	if err != nil {
		return withStage(c, "analyze", err)
	}

	return c.JSON(report)
}

// HandleKeywords handles GET /keywords
func (h *SessionHandler) HandleKeywords(c *fiber.Ctx) error {
	sess, err := h.requireSession(c)
	if err != nil {
		return err
	}

	return c.JSON(h.analyzer.Keywords(sess.ResumeText, sess.JobText))
}

// HandleCoachSummary handles POST /coach-summary
func (h *SessionHandler) HandleCoachSummary(c *fiber.Ctx) error {
	if h.coach == nil || !h.coach.Enabled() {
		return fiber.NewError(fiber.StatusServiceUnavailable, "AI coach is disabled")
	}

	sess, err := h.completeSession(c)
	if err != nil {
		return err
	}

	threshold, err := h.parseThreshold(c)
	if err != nil {
		return err
	}

	report, err := h.detailedReport(sess, threshold)
	if err != nil {
		return withStage(c, "analyze", err)
	}

	h.stats.IncAICall()
	summary, err := h.coach.Summarize(c.UserContext(), &report, "")
	if err != nil {
		return withStage(c, "coach", err)
	}

	return c.JSON(models.CoachSummaryResponse{
		OverallScore: report.OverallScore,
		Summary:      summary,
	})
}

func (h *SessionHandler) detailedReport(sess *session.Session, threshold int) (scoring.Report, error) {
	start := time.Now()
	report, err := h.analyzer.AnalyzeDetailed(sess.ResumeText, sess.JobText, threshold)
	if err != nil {
		return scoring.Report{}, err
	}
	h.stats.ObserveAnalysis(time.Since(start))
	h.stats.IncDetailedReport()
	return report, nil
}

// existingSession returns the session named by the header, or nil.
func (h *SessionHandler) existingSession(c *fiber.Ctx) *session.Session {
	id := strings.TrimSpace(c.Get(SessionHeader))
	if id == "" {
		return nil
	}

	sess, err := h.store.Get(c.UserContext(), id)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			h.log.Warn("⚠️ Session lookup failed", zap.String("session_id", id), zap.Error(err))
		}
		return nil
	}
	return sess
}

func (h *SessionHandler) requireSession(c *fiber.Ctx) (*session.Session, error) {
	sess := h.existingSession(c)
	if sess == nil {
		h.stats.RecordError("session", session.ErrNotFound)
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid session ID.")
	}
	return sess, nil
}

func (h *SessionHandler) completeSession(c *fiber.Ctx) (*session.Session, error) {
	sess, err := h.requireSession(c)
	if err != nil {
		return nil, err
	}
	if sess.ResumeText == "" || sess.JobText == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Resume and job description must be submitted.")
	}
	return sess, nil
}

func (h *SessionHandler) parseThreshold(c *fiber.Ctx) (int, error) {
	raw := strings.TrimSpace(c.Query("threshold"))
	if raw == "" {
		return h.threshold, nil
	}

	threshold, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "threshold must be an integer between 0 and 100")
	}
	return threshold, nil
}

func formatSize(n int64) string {
	const mb = 1024 * 1024
	if n >= mb && n%mb == 0 {
		return fmt.Sprintf("%dMB", n/mb)
	}
	return fmt.Sprintf("%d bytes", n)
}
