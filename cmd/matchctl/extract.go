package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"internship-backend/internal/analysis"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract the text of a resume PDF",
	RunE:  runExtract,
}

var (
	extractPDF   string
	extractLocal bool
)

func init() {
	extractCmd.Flags().StringVar(&extractPDF, "pdf", "", "Path to the resume PDF (required)")
	extractCmd.Flags().BoolVar(&extractLocal, "local", false, "Extract with the embedded PDF reader instead of the model")
	_ = extractCmd.MarkFlagRequired("pdf")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(extractPDF)
	if err != nil {
		return fmt.Errorf("read pdf: %w", err)
	}
	text, err := extractResumeText(cmd.Context(), data, extractLocal)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}

func extractResumeText(ctx context.Context, data []byte, local bool) (string, error) {
	if local {
		text, err := analysis.LocalText(data)
		if err != nil {
			return "", fmt.Errorf("local extraction: %w", err)
		}
		if strings.TrimSpace(text) == "" {
			return "", fmt.Errorf("local extraction: no text found")
		}
		return text, nil
	}

	gw, err := newGateway(ctx)
	if err != nil {
		return "", err
	}
	out, err := gw.ExtractText(ctx, data)
	if err != nil {
		return "", err
	}
	return out.Text, nil
}
