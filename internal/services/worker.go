package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/ats-analyzer/internal/repositories"
)

const (
	jobQueueSize     = 100
	pendingBatchSize = 10
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(analysisID uuid.UUID)
}

type worker struct {
	analysisRepo    repositories.AnalysisRepository
	analysisService AnalysisService
	jobQueue        chan uuid.UUID
	concurrency     int
	pollInterval    time.Duration
	log             *zap.Logger
	wg              sync.WaitGroup
	stopChan        chan struct{}
	stopOnce        sync.Once
}

func NewWorker(
	analysisRepo repositories.AnalysisRepository,
	analysisService AnalysisService,
	concurrency int,
	pollInterval time.Duration,
	log *zap.Logger,
) Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	if pollInterval <= 0 {
		pollInterval = 10 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &worker{
		analysisRepo:    analysisRepo,
		analysisService: analysisService,
		jobQueue:        make(chan uuid.UUID, jobQueueSize),
		concurrency:     concurrency,
		pollInterval:    pollInterval,
		log:             log,
		stopChan:        make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	w.log.Info("🚀 Starting worker", zap.Int("concurrency", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingJobs(ctx)

	w.log.Info("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		w.log.Info("🛑 Stopping worker...")
		close(w.stopChan)
		w.wg.Wait()
		w.log.Info("✅ Worker stopped")
	})
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(analysisID uuid.UUID) {
	select {
	case w.jobQueue <- analysisID:
		w.log.Debug("📥 Job enqueued", zap.String("analysis_id", analysisID.String()))
	case <-w.stopChan:
		w.log.Warn("⚠️ Worker stopped, cannot enqueue job", zap.String("analysis_id", analysisID.String()))
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log := w.log.With(zap.Int("worker", workerID))

	for {
		select {
		case <-w.stopChan:
			log.Debug("👷 Worker stopped")
			return
		case <-ctx.Done():
			return
		case id := <-w.jobQueue:
			log.Info("👷 Processing job", zap.String("analysis_id", id.String()))
			if err := w.analysisService.ProcessAnalysis(ctx, id); err != nil {
				log.Error("❌ Failed to process job", zap.String("analysis_id", id.String()), zap.Error(err))
			} else {
				log.Info("✅ Completed job", zap.String("analysis_id", id.String()))
			}
		}
	}
}

func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			pending, err := w.analysisRepo.FindPendingJobs(pendingBatchSize)
			if err != nil {
				w.log.Warn("⚠️ Failed to fetch pending jobs", zap.Error(err))
				continue
			}

			if len(pending) > 0 {
				w.log.Info("📋 Found pending jobs", zap.Int("count", len(pending)))
			}

			for _, job := range pending {
				w.EnqueueJob(job.ID)
			}
		}
	}
}
