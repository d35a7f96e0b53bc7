package report

import (
	"fmt"

	"github.com/rodaine/table"

	"github.com/dredding8/malibu-ui-private/models"
)

// PrintSummary writes the end-of-run console table for an audit report.
func PrintSummary(r *models.AuditReport) {
	clean := 0
	for _, v := range r.Responsive {
		if !v.HasLayoutIssues {
			clean++
		}
	}

	navigated := 0
	for _, j := range r.Journey {
		if j.Navigated {
			navigated++
		}
	}

	tbl := table.New("Check", "Result")
	tbl.AddRow("Performance grade", r.Performance.Grade)
	tbl.AddRow("Accessibility score", fmt.Sprintf("%d%% (%s)", r.Accessibility.Score, r.Accessibility.Grade))
	tbl.AddRow("Interaction success", fmt.Sprintf("%.1f%%", r.InteractionSuccessRate()))
	tbl.AddRow("Navigation links", fmt.Sprintf("%d tested, %d navigated", len(r.Journey), navigated))
	tbl.AddRow("Responsive viewports", fmt.Sprintf("%d/%d clean", clean, len(r.Responsive)))
	tbl.AddRow("Issues found", fmt.Sprintf("%d", len(r.Issues)))
	tbl.AddRow("Console messages", fmt.Sprintf("%d", len(r.ConsoleMessages)))
	tbl.AddRow("JavaScript errors", fmt.Sprintf("%d", len(r.PageErrors)))
	tbl.Print()

	if len(r.Issues) > 0 {
		fmt.Println("\nKey issues:")
		for i, issue := range r.Issues {
			fmt.Printf("  %d. %s\n", i+1, issue)
		}
	}
	if len(r.Recommendations) > 0 {
		fmt.Println("\nRecommendations:")
		for i, rec := range r.Recommendations {
			fmt.Printf("  %d. %s\n", i+1, rec)
		}
	}
}
