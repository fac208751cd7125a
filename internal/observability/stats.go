package observability

import (
	"sync"
	"sync/atomic"
	"time"
)

type StatsSnapshot struct {
	AnalysesTotal    uint64            `json:"analyses_total"`
	MatchScores      uint64            `json:"match_scores"`
	DetailedReports  uint64            `json:"detailed_reports"`
	ReportsRendered  uint64            `json:"reports_rendered"`
	ResumesExtracted uint64            `json:"resumes_extracted"`
	AICalls          uint64            `json:"ai_calls"`
	ErrorsTotal      uint64            `json:"errors_total"`
	AnalysisMsAvg    float64           `json:"analysis_ms_avg"`
	ErrorsByType     map[string]uint64 `json:"errors_by_type"`
	ErrorsByStage    map[string]uint64 `json:"errors_by_stage"`
	StartedAt        time.Time         `json:"started_at"`
}

// Stats counts service activity. The zero value is not usable; call NewStats.
type Stats struct {
	matchScores      atomic.Uint64
	detailedReports  atomic.Uint64
	reportsRendered  atomic.Uint64
	resumesExtracted atomic.Uint64
	aiCalls          atomic.Uint64
	errorsTotal      atomic.Uint64

	analysisCount atomic.Uint64
	analysisNanos atomic.Uint64

	mu            sync.Mutex
	errorsByType  map[string]uint64
	errorsByStage map[string]uint64
	startedAt     time.Time
}

func NewStats() *Stats {
	return &Stats{
		errorsByType:  map[string]uint64{},
		errorsByStage: map[string]uint64{},
		startedAt:     time.Now(),
	}
}

func (s *Stats) IncMatchScore() {
	s.matchScores.Add(1)
}

func (s *Stats) IncDetailedReport() {
	s.detailedReports.Add(1)
}

func (s *Stats) IncReportRendered() {
	s.reportsRendered.Add(1)
}

func (s *Stats) IncResumeExtracted() {
	s.resumesExtracted.Add(1)
}

func (s *Stats) IncAICall() {
	s.aiCalls.Add(1)
}

// ObserveAnalysis records how long one scoring run took.
func (s *Stats) ObserveAnalysis(d time.Duration) {
	if d <= 0 {
		return
	}
	s.analysisCount.Add(1)
	s.analysisNanos.Add(uint64(d.Nanoseconds()))
}

// RecordError counts err under its classification and the pipeline stage it came from.
func (s *Stats) RecordError(stage string, err error) {
	if err == nil {
		return
	}
	if stage == "" {
		stage = "unknown"
	}
	kind := ClassifyError(err)

	s.errorsTotal.Add(1)
	s.mu.Lock()
	s.errorsByType[kind]++
	s.errorsByStage[stage]++
	s.mu.Unlock()
}

func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	byType := copyMap(s.errorsByType)
	byStage := copyMap(s.errorsByStage)
	s.mu.Unlock()

	avg := 0.0
	if count := s.analysisCount.Load(); count > 0 {
		avg = float64(s.analysisNanos.Load()) / float64(count) / 1e6
	}

	match, detailed := s.matchScores.Load(), s.detailedReports.Load()
	return StatsSnapshot{
		AnalysesTotal:    match + detailed,
		MatchScores:      match,
		DetailedReports:  detailed,
		ReportsRendered:  s.reportsRendered.Load(),
		ResumesExtracted: s.resumesExtracted.Load(),
		AICalls:          s.aiCalls.Load(),
		ErrorsTotal:      s.errorsTotal.Load(),
		AnalysisMsAvg:    avg,
		ErrorsByType:     byType,
		ErrorsByStage:    byStage,
		StartedAt:        s.startedAt,
	}
}

func copyMap(src map[string]uint64) map[string]uint64 {
	out := make(map[string]uint64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
