package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/ats-analyzer/internal/models"
)

type AnalysisRepository interface {
	Create(analysis *models.Analysis) error
	FindByID(id uuid.UUID) (*models.Analysis, error)
	UpdateStatus(id uuid.UUID, status models.AnalysisStatus) error
	Claim(id uuid.UUID) (bool, error)
	UpdateResult(id uuid.UUID, result *AnalysisUpdateData) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.Analysis, error)
}

type AnalysisUpdateData struct {
	OverallScore int
	Report       string
	Summary      *string
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Create(analysis *models.Analysis) error {
	if analysis.Status == "" {
		analysis.Status = models.StatusQueued
	}
	if err := r.db.Create(analysis).Error; err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	return nil
}

func (r *analysisRepository) FindByID(id uuid.UUID) (*models.Analysis, error) {
	var analysis models.Analysis
	if err := r.db.Where("id = ?", id).First(&analysis).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("analysis %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}
	return &analysis, nil
}

func (r *analysisRepository) UpdateStatus(id uuid.UUID, status models.AnalysisStatus) error {
	return r.update(id, map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}, "status")
}

// Claim moves a queued analysis to processing. It reports false when another
// worker got there first.
func (r *analysisRepository) Claim(id uuid.UUID) (bool, error) {
	result := r.db.Model(&models.Analysis{}).
		Where("id = ? AND status = ?", id, models.StatusQueued).
		Updates(map[string]interface{}{
			"status":     models.StatusProcessing,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return false, fmt.Errorf("failed to claim analysis: %w", result.Error)
	}

	return result.RowsAffected == 1, nil
}

func (r *analysisRepository) UpdateResult(id uuid.UUID, data *AnalysisUpdateData) error {
	updates := map[string]interface{}{
		"status":        models.StatusCompleted,
		"overall_score": data.OverallScore,
		"report":        data.Report,
		"updated_at":    time.Now(),
	}
	if data.Summary != nil {
		updates["summary"] = *data.Summary
	}

	return r.update(id, updates, "result")
}

func (r *analysisRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	return r.update(id, map[string]interface{}{
		"status":        models.StatusFailed,
		"error_message": errorMsg,
		"updated_at":    time.Now(),
	}, "error")
}

func (r *analysisRepository) FindPendingJobs(limit int) ([]models.Analysis, error) {
	var analyses []models.Analysis
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&analyses).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}

	return analyses, nil
}

func (r *analysisRepository) update(id uuid.UUID, updates map[string]interface{}, what string) error {
	result := r.db.Model(&models.Analysis{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update %s: %w", what, result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("analysis %s: %w", id, ErrNotFound)
	}

	return nil
}
