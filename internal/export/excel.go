package export

import (
	"fmt"
	"io"
	"time"

	"nexustalent/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	pipelineSheet = "Pipeline"
	summarySheet  = "Resumo"
)

// Report is the data rendered into a pipeline workbook.
type Report struct {
	Posting      *models.JobPosting
	Applications []models.Application
	GeneratedAt  time.Time
}

// WritePipelineReport renders the report as an XLSX workbook into w.
func WritePipelineReport(w io.Writer, report Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", pipelineSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	if err := writePipelineSheet(f, report.Applications); err != nil {
		return fmt.Errorf("failed to create pipeline sheet: %w", err)
	}
	if err := writeSummarySheet(f, report); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
}

func writePipelineSheet(f *excelize.File, apps []models.Application) error {
	style, err := headerStyle(f)
	if err != nil {
		return err
	}

	headers := []string{"Candidato", "Status", "Pontuação", "Notas", "Data da candidatura", "Origem"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(pipelineSheet, cell, h); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(pipelineSheet, "A1", "F1", style); err != nil {
		return err
	}
	f.SetColWidth(pipelineSheet, "A", "A", 30)
	f.SetColWidth(pipelineSheet, "B", "C", 14)
	f.SetColWidth(pipelineSheet, "D", "D", 50)
	f.SetColWidth(pipelineSheet, "E", "F", 20)

	for i, app := range apps {
		row := i + 2
		origin := "Candidatura"
		if app.Synthetic {
			origin = "Pontuação externa"
		}
		values := []any{app.Candidate.Name, string(app.Status), "", app.Notes, "", origin}
		if app.Score != nil {
			values[2] = *app.Score
		}
		if !app.ApplicationDate.IsZero() {
			values[4] = app.ApplicationDate.Format("2006-01-02 15:04")
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(pipelineSheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, report Report) error {
	style, err := headerStyle(f)
	if err != nil {
		return err
	}
	f.SetColWidth(summarySheet, "A", "A", 28)
	f.SetColWidth(summarySheet, "B", "B", 40)

	title := ""
	if report.Posting != nil {
		title = report.Posting.Title
	}
	generated := report.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	rows := [][]any{
		{"Relatório do pipeline", ""},
		{"Vaga:", title},
		{"Gerado em:", generated.Format("2006-01-02 15:04:05")},
		{"Total de candidaturas:", len(report.Applications)},
		{"", ""},
		{"Status", "Candidaturas"},
	}

	counts := make(map[models.Status]int, len(models.Statuses))
	var scoreSum float64
	scored := 0
	for _, app := range report.Applications {
		counts[app.Status]++
		if app.Score != nil {
			scoreSum += *app.Score
			scored++
		}
	}
	for _, status := range models.Statuses {
		rows = append(rows, []any{string(status), counts[status]})
	}
	rows = append(rows, []any{"", ""})
	if scored > 0 {
		rows = append(rows, []any{"Pontuação média:", fmt.Sprintf("%.2f", scoreSum/float64(scored))})
	} else {
		rows = append(rows, []any{"Pontuação média:", "-"})
	}

	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", "B1", style); err != nil {
		return err
	}
	if err := f.MergeCell(summarySheet, "A1", "B1"); err != nil {
		return err
	}
	return f.SetCellStyle(summarySheet, "A6", "B6", style)
}
