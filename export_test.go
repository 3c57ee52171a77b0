package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"nexustalent/internal/export"
	"nexustalent/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteReportFile(t *testing.T) {
	report := export.Report{
		Posting: &models.JobPosting{ID: uuid.New(), Title: "Backend Engineer"},
		Applications: []models.Application{{
			ID:              uuid.New(),
			Status:          models.StatusTriagem,
			ApplicationDate: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
			Candidate:       models.Candidate{Name: "Ana Silva"},
		}},
		GeneratedAt: time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC),
	}

	t.Run("Creates directories and a readable workbook", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "reports", "pipeline.xlsx")

		require.NoError(t, writeReportFile(path, report))

		f, err := excelize.OpenFile(path)
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, []string{"Pipeline", "Resumo"}, f.GetSheetList())
		title, err := f.GetCellValue("Resumo", "B2")
		require.NoError(t, err)
		assert.Equal(t, "Backend Engineer", title)
	})

	t.Run("Output directory cannot be created", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

		err := writeReportFile(filepath.Join(blocker, "pipeline.xlsx"), report)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create output directory")
	})
}
