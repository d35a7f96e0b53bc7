package report

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/dredding8/malibu-ui-private/models"
)

// ExportFindingsCSV writes structural findings (landmark → component rows)
// to a CSV file. Section and group lines carry no classification and are
// excluded.
func ExportFindingsCSV(path string, findings []models.Finding) error {
	rows := make([]models.Finding, 0, len(findings))
	for _, f := range findings {
		if f.Component != "" {
			rows = append(rows, f)
		}
	}
	return exportCSV(path, &rows)
}

// ExportInteractionsCSV writes per-element probe results to a CSV file.
func ExportInteractionsCSV(path string, results []models.InteractionResult) error {
	rows := make([]models.InteractionResult, len(results))
	copy(rows, results)
	return exportCSV(path, &rows)
}

func exportCSV(path string, rows any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create csv %s: %w", path, err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(rows, file); err != nil {
		return fmt.Errorf("report: write csv %s: %w", path, err)
	}
	return nil
}
