package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/ats-analyzer/internal/logger"
	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/observability"
	"alfredoptarigan/ats-analyzer/internal/repositories"
	"alfredoptarigan/ats-analyzer/internal/scoring"
)

type AnalysisService interface {
	ProcessAnalysis(ctx context.Context, analysisID uuid.UUID) error
}

type analysisService struct {
	analysisRepo repositories.AnalysisRepository
	docRepo      repositories.DocumentRepository
	extractor    ExtractorService
	analyzer     *scoring.Analyzer
	coach        CoachService
	stats        *observability.Stats
	log          *zap.Logger
}

func NewAnalysisService(
	analysisRepo repositories.AnalysisRepository,
	docRepo repositories.DocumentRepository,
	extractor ExtractorService,
	analyzer *scoring.Analyzer,
	coach CoachService,
	stats *observability.Stats,
	log *zap.Logger,
) AnalysisService {
	if log == nil {
		log = zap.NewNop()
	}
	if stats == nil {
		stats = observability.NewStats()
	}
	return &analysisService{
		analysisRepo: analysisRepo,
		docRepo:      docRepo,
		extractor:    extractor,
		analyzer:     analyzer,
		coach:        coach,
		stats:        stats,
		log:          log,
	}
}

// ProcessAnalysis implements AnalysisService.
func (s *analysisService) ProcessAnalysis(ctx context.Context, analysisID uuid.UUID) error {
	log := logger.WithFields(s.log, zap.String("analysis_id", analysisID.String()))

	analysis, err := s.analysisRepo.FindByID(analysisID)
	if err != nil {
		s.stats.RecordError("load", err)
		return fmt.Errorf("failed to get analysis: %w", err)
	}

	// The poller can enqueue a row that a worker already picked up.
	if analysis.Status != models.StatusQueued {
		log.Debug("⏭️ Skipping analysis", zap.String("status", string(analysis.Status)))
		return nil
	}

	claimed, err := s.analysisRepo.Claim(analysisID)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	if !claimed {
		log.Debug("⏭️ Analysis already claimed")
		return nil
	}

	log.Info("🔄 Starting analysis")

	doc, err := s.docRepo.FindByID(analysis.DocumentID)
	if err != nil {
		return s.fail(analysisID, "load", err, "resume document not found")
	}

	log.Info("📄 Extracting resume", zap.String("file", doc.OriginalFileName))
	resumeText, err := s.extractor.ExtractFile(doc.FilePath)
	if err != nil {
		return s.fail(analysisID, "extract", err, "failed to extract resume")
	}
	s.stats.IncResumeExtracted()

	start := time.Now()
	report, err := s.analyzer.AnalyzeDetailed(resumeText, analysis.JobDescription, analysis.Threshold)
	if err != nil {
		return s.fail(analysisID, "analyze", err, "failed to analyze resume")
	}
	s.stats.ObserveAnalysis(time.Since(start))
	s.stats.IncDetailedReport()

	update := &repositories.AnalysisUpdateData{OverallScore: report.OverallScore}

	// A missing summary never fails the analysis.
	if s.coach != nil && s.coach.Enabled() {
		s.stats.IncAICall()
		summary, err := s.coach.Summarize(ctx, &report, analysis.JobRole)
		switch {
		case err == nil:
			update.Summary = &summary
		case errors.Is(err, ErrCoachDisabled):
		default:
			s.stats.RecordError("coach", err)
			log.Warn("⚠️ Coach summary failed", zap.Error(err))
		}
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return s.fail(analysisID, "save", err, "failed to encode report")
	}
	update.Report = string(payload)

	log.Info("💾 Saving analysis results", zap.Int("overall_score", report.OverallScore))
	if err := s.analysisRepo.UpdateResult(analysisID, update); err != nil {
		s.stats.RecordError("save", err)
		return fmt.Errorf("failed to save results: %w", err)
	}

	log.Info("✅ Analysis completed")
	return nil
}

func (s *analysisService) fail(id uuid.UUID, stage string, err error, msg string) error {
	s.stats.RecordError(stage, err)
	if updErr := s.analysisRepo.UpdateError(id, fmt.Sprintf("%s: %v", msg, err)); updErr != nil {
		logger.WithFields(s.log, zap.String("analysis_id", id.String())).
			Error("❌ Failed to record analysis error", zap.Error(updErr))
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// DecodeReport parses the report JSON stored on an analysis.
func DecodeReport(a *models.Analysis) (*scoring.Report, error) {
	if a.Report == nil || *a.Report == "" {
		return nil, nil
	}
	var report scoring.Report
	if err := json.Unmarshal([]byte(*a.Report), &report); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &report, nil
}
