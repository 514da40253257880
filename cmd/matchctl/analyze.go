package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"internship-backend/internal/analysis"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume against one or more job descriptions",
	Long:  "Score a resume (.txt or .pdf) against each job description file. Job descriptions are analyzed concurrently.",
	RunE:  runAnalyze,
}

var (
	analyzeResume      string
	analyzeJDs         []string
	analyzeConcurrency int
	analyzeLocalPDF    bool
)

type analyzeReport struct {
	JobDescription string           `json:"jobDescription"`
	Path           string           `json:"path,omitempty"`
	Violations     []string         `json:"violations,omitempty"`
	Result         *analysis.Result `json:"result,omitempty"`
	Error          string           `json:"error,omitempty"`
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeResume, "resume", "", "Path to the resume (.txt or .pdf, required)")
	analyzeCmd.Flags().StringSliceVar(&analyzeJDs, "jd", nil, "Path to a job description file (repeatable, required)")
	analyzeCmd.Flags().IntVar(&analyzeConcurrency, "concurrency", 3, "Maximum analyses in flight")
	analyzeCmd.Flags().BoolVar(&analyzeLocalPDF, "local-pdf", false, "Read PDF resumes with the embedded PDF reader")
	_ = analyzeCmd.MarkFlagRequired("resume")
	_ = analyzeCmd.MarkFlagRequired("jd")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	resumeText, err := readResume(cmd, analyzeResume)
	if err != nil {
		return err
	}
	gw, err := newGateway(ctx)
	if err != nil {
		return err
	}

	reports := make([]analyzeReport, len(analyzeJDs))
	g, gctx := errgroup.WithContext(ctx)
	if analyzeConcurrency > 0 {
		g.SetLimit(analyzeConcurrency)
	}
	for i, path := range analyzeJDs {
		g.Go(func() error {
			reports[i] = analyzeOne(gctx, gw, resumeText, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := writeJSON(cmd.OutOrStdout(), reports); err != nil {
		return err
	}
	for _, r := range reports {
		if r.Error != "" {
			return fmt.Errorf("one or more analyses failed")
		}
	}
	return nil
}

func analyzeOne(ctx context.Context, gw *analysis.Gateway, resumeText, path string) analyzeReport {
	report := analyzeReport{JobDescription: path}
	jd, err := os.ReadFile(path)
	if err != nil {
		report.Error = fmt.Sprintf("read job description: %v", err)
		return report
	}
	outcome, err := gw.Match(ctx, resumeText, string(jd))
	if err != nil {
		ae := analysis.AsError(err)
		report.Error = fmt.Sprintf("%s: %s", ae.Kind, ae.PublicMessage())
		return report
	}
	report.Path = outcome.Kind.String()
	report.Violations = outcome.Violations
	report.Result = &outcome.Result
	return report
}

func readResume(cmd *cobra.Command, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read resume: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractResumeText(cmd.Context(), data, analyzeLocalPDF)
	case ".txt", ".md", "":
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported resume type %q: use .txt or .pdf", filepath.Ext(path))
	}
}
