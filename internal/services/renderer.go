package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"alfredoptarigan/ats-analyzer/internal/scoring"
)

const (
	defaultResumeName = "Resume"
	defaultJobRole    = "Job Role"

	lowScoreSuggestion  = "Consider including more relevant keywords from the job description in your resume."
	highScoreSuggestion = "Your resume matches well with the job description."
)

// RenderInput is the content of one report. A nil MatchScore prints as
// "N/A" and gets the high-score suggestion.
type RenderInput struct {
	MatchScore      *int                     `json:"match_score"`
	MatchedKeywords []string                 `json:"matched_keywords"`
	MissingKeywords []string                 `json:"missing_keywords"`
	ResumeName      string                   `json:"resume_name"`
	JobRole         string                   `json:"job_role"`
	Breakdown       []scoring.CategoryResult `json:"breakdown,omitempty"`
	Summary         string                   `json:"summary,omitempty"`
}

// RenderError reports a PDF report that could not be produced.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to render report: %v", e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

func (e *RenderError) ErrorKind() string {
	return "render"
}

type RendererService interface {
	RenderReport(in RenderInput) ([]byte, error)
}

type rendererService struct{}

func NewRendererService() RendererService {
	return &rendererService{}
}

// Suggestion returns the general advice printed for a match score.
func Suggestion(score int) string {
	if score < 70 {
		return lowScoreSuggestion
	}
	return highScoreSuggestion
}

func suggestionFor(score *int) string {
	if score == nil {
		return highScoreSuggestion
	}
	return Suggestion(*score)
}

func scoreLabel(score *int) string {
	if score == nil {
		return "Match Score: N/A"
	}
	return fmt.Sprintf("Match Score: %d%%", *score)
}

// RenderReport implements RendererService.
func (r *rendererService) RenderReport(in RenderInput) ([]byte, error) {
	if s := in.MatchScore; s != nil && (*s < 0 || *s > 100) {
		return nil, &RenderError{Err: fmt.Errorf("match score out of range: %d", *s)}
	}
	if strings.TrimSpace(in.ResumeName) == "" {
		in.ResumeName = defaultResumeName
	}
	if strings.TrimSpace(in.JobRole) == "" {
		in.JobRole = defaultJobRole
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle("ATS Resume Analysis Report", true)
	pdf.SetMargins(25, 25, 25)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "ATS Resume Analysis Report", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	line(pdf, tr("Resume: "+in.ResumeName))
	line(pdf, tr("Job Role: "+in.JobRole))
	pdf.Ln(2)
	line(pdf, scoreLabel(in.MatchScore))
	pdf.Ln(2)

	keywordSection(pdf, tr, "Matched Keywords:", in.MatchedKeywords)
	keywordSection(pdf, tr, "Missing Keywords:", in.MissingKeywords)

	if len(in.Breakdown) > 0 {
		pdf.SetFont("Helvetica", "", 12)
		line(pdf, "Category Breakdown:")
		pdf.SetFont("Helvetica", "", 10)
		for _, c := range in.Breakdown {
			line(pdf, tr(fmt.Sprintf("   %s (weight %d): %d%% - %s", c.Category, c.Weight, c.Percentage, c.MatchLevel)))
		}
		pdf.Ln(3)
	}

	pdf.SetFont("Helvetica", "", 12)
	line(pdf, "Suggestions for Improvement:")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, suggestionFor(in.MatchScore), "", "L", false)

	if summary := strings.TrimSpace(in.Summary); summary != "" {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "", 12)
		line(pdf, "Coach Summary:")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(summary), "", "L", false)
	}

	if pdf.Err() {
		return nil, &RenderError{Err: pdf.Error()}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{Err: err}
	}
	return buf.Bytes(), nil
}

func line(pdf *fpdf.Fpdf, text string) {
	pdf.CellFormat(0, 7, text, "", 1, "L", false, 0, "")
}

func keywordSection(pdf *fpdf.Fpdf, tr func(string) string, title string, keywords []string) {
	pdf.SetFont("Helvetica", "", 12)
	line(pdf, title)
	pdf.SetFont("Helvetica", "", 10)
	if len(keywords) == 0 {
		pdf.CellFormat(0, 5, "   (none)", "", 1, "L", false, 0, "")
	}
	for _, kw := range keywords {
		pdf.MultiCell(0, 5, tr("   - "+kw), "", "L", false)
	}
	pdf.Ln(3)
}
