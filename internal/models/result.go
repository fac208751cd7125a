package models

import "alfredoptarigan/ats-analyzer/internal/scoring"

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Kind         string `json:"kind"`
}

type UploadResumeResponse struct {
	ExtractedText string `json:"extracted_text"`
	SessionID     string `json:"session_id"`
}

type SubmitJobResponse struct {
	Message           string `json:"message"`
	DescriptionLength int    `json:"description_length"`
	SessionID         string `json:"session_id"`
}

type MatchScoreResponse struct {
	MatchScore      int      `json:"match_score"`
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
}

type CoachSummaryResponse struct {
	OverallScore int    `json:"overall_score"`
	Summary      string `json:"summary"`
}

type EvaluateRequest struct {
	DocumentID     string `json:"document_id"`
	JobRole        string `json:"job_role"`
	JobDescription string `json:"job_description"`
	Threshold      *int   `json:"threshold,omitempty"`
}

type EvaluateResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ResultResponse struct {
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	Result       *AnalysisResult `json:"result,omitempty"`
	ErrorMessage *string         `json:"error_message,omitempty"`
}

type AnalysisResult struct {
	OverallScore int             `json:"overall_score"`
	Report       *scoring.Report `json:"report"`
	Summary      string          `json:"summary,omitempty"`
}
