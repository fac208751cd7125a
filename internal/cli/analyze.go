package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/ats-analyzer/internal/scoring"
	"alfredoptarigan/ats-analyzer/internal/services"
)

func newAnalyzeCommand(rt *runtime) *cobra.Command {
	var (
		resumePath string
		jobPath    string
		detailed   bool
		coach      bool
		role       string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a resume against a job description",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resume, err := rt.readDocument(resumePath)
			if err != nil {
				return err
			}
			job, err := rt.readDocument(jobPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !detailed && !coach {
				result, err := rt.analyzer.AnalyzeMatch(resume, job, rt.cfg.Threshold)
				if err != nil {
					return err
				}
				if rt.cfg.JSON {
					return writeJSON(out, result)
				}
				printMatch(out, result)
				return nil
			}

			report, err := rt.analyzer.AnalyzeDetailed(resume, job, rt.cfg.Threshold)
			if err != nil {
				return err
			}

			var summary string
			if coach {
				summary, err = rt.summarize(cmd.Context(), &report, role)
				if err != nil {
					return err
				}
			}

			if rt.cfg.JSON {
				return writeJSON(out, struct {
					scoring.Report
					Summary string `json:"summary,omitempty"`
				}{report, summary})
			}
			printReport(out, report)
			if summary != "" {
				fmt.Fprintf(out, "\nCoach summary:\n%s\n", summary)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&resumePath, "resume", "r", "", "resume file (pdf, docx or text)")
	cmd.Flags().StringVarP(&jobPath, "job", "j", "", "job description file (pdf, docx or text)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "print the per-category report")
	cmd.Flags().BoolVar(&coach, "coach", false, "add an AI coach summary (needs ATS_GEMINI_API_KEY)")
	cmd.Flags().StringVar(&role, "role", "", "job role used in the coach summary")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("job")

	return cmd
}

func (rt *runtime) summarize(ctx context.Context, report *scoring.Report, role string) (string, error) {
	g := rt.cfg.Gemini
	if g.APIKey == "" {
		return "", services.ErrCoachDisabled
	}
	if ctx == nil {
		ctx = context.Background()
	}

	gemini, err := services.NewGeminiService(ctx, g.APIKey, g.Model, 0, rt.log.Named("gemini"))
	if err != nil {
		return "", err
	}
	rt.log.Debug("requesting coach summary", zap.String("model", gemini.Model()))

	return services.NewCoachService(gemini, g.MaxRetries, rt.log).Summarize(ctx, report, role)
}

func printMatch(w io.Writer, r scoring.MatchResult) {
	fmt.Fprintf(w, "Match score: %d%%\n", r.OverallScore)
	fmt.Fprintf(w, "Matched keywords (%d): %s\n", len(r.MatchedKeywords), joinOrNone(r.MatchedKeywords))
	fmt.Fprintf(w, "Missing keywords (%d): %s\n", len(r.MissingKeywords), joinOrNone(r.MissingKeywords))
}

func printReport(w io.Writer, r scoring.Report) {
	fmt.Fprintf(w, "Overall score: %d%%\n\n", r.OverallScore)
	for _, c := range r.Breakdown {
		fmt.Fprintf(w, "%-22s %3d%%  %-9s (weight %d)\n", c.Category, c.Percentage, c.MatchLevel, c.Weight)
		if len(c.Missing) > 0 {
			fmt.Fprintf(w, "    missing: %s\n", strings.Join(c.Missing, ", "))
		}
	}
	if len(r.Recommendations) > 0 {
		fmt.Fprintln(w, "\nRecommendations:")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(w, "  - %s\n", rec)
		}
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
