package models

import (
	"time"

	"github.com/google/uuid"
)

type AnalysisStatus string

const (
	StatusQueued     AnalysisStatus = "queued"
	StatusProcessing AnalysisStatus = "processing"
	StatusCompleted  AnalysisStatus = "completed"
	StatusFailed     AnalysisStatus = "failed"
)

// Analysis is a queued comparison of a stored resume against a job description.
type Analysis struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DocumentID     uuid.UUID      `gorm:"type:uuid;not null" json:"document_id"`
	JobRole        string         `gorm:"type:text" json:"job_role"`
	JobDescription string         `gorm:"type:text;not null" json:"job_description"`
	Threshold      int            `gorm:"not null;default:80" json:"threshold"`
	Status         AnalysisStatus `gorm:"not null;default:'queued'" json:"status"`
	OverallScore   *int           `json:"overall_score,omitempty"`
	Report         *string        `gorm:"type:text" json:"report,omitempty"`
	Summary        *string        `gorm:"type:text" json:"summary,omitempty"`
	ErrorMessage   *string        `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt      time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	Document Document `gorm:"foreignKey:DocumentID" json:"-"`
}

func (Analysis) TableName() string {
	return "analyses"
}
