package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"nexustalent/config"
	"nexustalent/internal/database"
	"nexustalent/internal/export"
	"nexustalent/internal/pipeline"
	"nexustalent/internal/storage/postgres"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the pipeline of a job posting as an XLSX report",
	Long:  "Loads every application of a job posting, merges the optional score annotations and writes the resulting pipeline as a spreadsheet. Nothing is written back to the database.",
	RunE:  runExport,
}

var (
	exportJobID  string
	exportScores string
	exportOutput string
)

func init() {
	exportCmd.Flags().StringVarP(&exportJobID, "job", "j", "", "Job posting ID (required)")
	exportCmd.Flags().StringVarP(&exportScores, "scores", "s", "", "JSON array of score annotations, or @path to read it from a file")
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", "Path to output XLSX file (required)")

	if err := exportCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}
	if err := exportCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	jobID, err := uuid.Parse(exportJobID)
	if err != nil {
		return fmt.Errorf("invalid job ID %q: %w", exportJobID, err)
	}

	rawScores := exportScores
	if len(rawScores) > 1 && rawScores[0] == '@' {
		content, err := os.ReadFile(rawScores[1:])
		if err != nil {
			return fmt.Errorf("failed to read scores file %s: %w", rawScores[1:], err)
		}
		rawScores = string(content)
	}
	annotations, err := pipeline.ParseScoreAnnotations(rawScores)
	if err != nil {
		return fmt.Errorf("failed to parse score annotations: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	pool, err := database.NewConnectionPool(cmd.Context(), cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	board := pipeline.NewBoard(uuid.New(), postgres.NewApplicationRepo(pool), postgres.NewJobPostingRepo(pool), pipeline.NopNotifier{}, pipeline.Options{})
	board.Load(cmd.Context(), jobID)
	if err := board.LoadError(); err != nil {
		return fmt.Errorf("failed to load applications for job %s: %w", jobID, err)
	}
	if len(annotations) > 0 {
		res := board.MergeScores(annotations)
		log.Printf("Merged scores: %d matched, %d promoted, %d appended", res.Matched, res.Promoted, res.Appended)
	}

	report := export.Report{
		Posting:      board.Posting(),
		Applications: board.Snapshot(),
		GeneratedAt:  time.Now(),
	}
	if err := writeReportFile(exportOutput, report); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d applications to %s\n", len(report.Applications), exportOutput)
	return nil
}

// writeReportFile writes the report to path, creating missing directories.
func writeReportFile(path string, report export.Report) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	if err := export.WritePipelineReport(f, report); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file %s: %w", path, err)
	}
	return nil
}
