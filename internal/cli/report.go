package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"alfredoptarigan/ats-analyzer/internal/services"
)

func newReportCommand(rt *runtime) *cobra.Command {
	var (
		resumePath string
		jobPath    string
		outPath    string
		role       string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a PDF report comparing a resume to a job description",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resume, err := rt.readDocument(resumePath)
			if err != nil {
				return err
			}
			job, err := rt.readDocument(jobPath)
			if err != nil {
				return err
			}

			report, err := rt.analyzer.AnalyzeDetailed(resume, job, rt.cfg.Threshold)
			if err != nil {
				return err
			}

			pdf, err := services.NewRendererService().RenderReport(services.RenderInput{
				MatchScore:      &report.OverallScore,
				MatchedKeywords: report.MatchedKeywords,
				MissingKeywords: report.MissingKeywords,
				ResumeName:      filepath.Base(resumePath),
				JobRole:         role,
				Breakdown:       report.Breakdown,
			})
			if err != nil {
				return err
			}

			if err := os.WriteFile(outPath, pdf, 0o644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s (score %d%%)\n", outPath, report.OverallScore)
			return nil
		},
	}

	cmd.Flags().StringVarP(&resumePath, "resume", "r", "", "resume file (pdf, docx or text)")
	cmd.Flags().StringVarP(&jobPath, "job", "j", "", "job description file (pdf, docx or text)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "report.pdf", "output PDF path")
	cmd.Flags().StringVar(&role, "role", "", "job role printed on the report")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("job")

	return cmd
}
