package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/ats-analyzer/internal/scoring"
)

// maxPromptKeywords caps each keyword list sent to the model.
const maxPromptKeywords = 25

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildCoachPrompt asks for a short narrative over a finished report. The
// scores are stated as facts so the model explains them instead of re-grading.
func (pb *PromptBuilder) BuildCoachPrompt(report *scoring.Report, jobRole string) string {
	if strings.TrimSpace(jobRole) == "" {
		jobRole = "the target"
	}

	var breakdown strings.Builder
	for _, c := range report.Breakdown {
		fmt.Fprintf(&breakdown, "- %s (weight %d): %d%% (%s)", c.Category, c.Weight, c.Percentage, c.MatchLevel)
		if len(c.Missing) > 0 {
			fmt.Fprintf(&breakdown, "; missing: %s", joinKeywords(c.Missing))
		}
		breakdown.WriteString("\n")
	}
	if breakdown.Len() == 0 {
		breakdown.WriteString("- no categories were extracted from the job description\n")
	}

	return fmt.Sprintf(`You are a career coach reviewing how well a resume fits a %s role.

An applicant tracking system has already scored the resume. Treat these numbers as final and do not invent new scores.

OVERALL SCORE: %d/100

CATEGORY BREAKDOWN:
%s
MATCHED KEYWORDS: %s

MISSING KEYWORDS: %s

Write 3-5 sentences of plain text for the candidate: name the strongest area, the biggest gaps, and the two most useful edits to make to the resume. Do not use markdown, headings or lists.`,
		jobRole,
		report.OverallScore,
		breakdown.String(),
		joinKeywords(report.MatchedKeywords),
		joinKeywords(report.MissingKeywords),
	)
}

func joinKeywords(keywords []string) string {
	if len(keywords) == 0 {
		return "none"
	}
	if len(keywords) > maxPromptKeywords {
		return strings.Join(keywords[:maxPromptKeywords], ", ") + fmt.Sprintf(" (+%d more)", len(keywords)-maxPromptKeywords)
	}
	return strings.Join(keywords, ", ")
}
