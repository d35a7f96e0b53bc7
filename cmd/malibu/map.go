package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dredding8/malibu-ui-private/inspect"
	"github.com/dredding8/malibu-ui-private/models"
	"github.com/dredding8/malibu-ui-private/report"
)

var (
	mapOut       string
	mapPage      string
	mapDashboard string
	mapHistory   string
	mapCSV       string
	mapExcerpts  bool
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Build the application map from HTML snapshots",
	Long: `Map locates the expected UI landmarks in HTML snapshots of the
dashboard and history pages, classifies each by its toolkit component and
writes a single nested-bullet markdown document. Snapshot sources may be
local files or URLs; by default both pages are fetched from the configured
base URL.`,
	RunE: runMap,
}

func init() {
	mapCmd.Flags().StringVarP(&mapOut, "out", "o", "application-map.md", "Output markdown file")
	mapCmd.Flags().StringVar(&mapPage, "page", "", "Map only one page: 'dashboard' or 'history'")
	mapCmd.Flags().StringVar(&mapDashboard, "dashboard", "", "Dashboard snapshot source (file or URL)")
	mapCmd.Flags().StringVar(&mapHistory, "history", "", "History snapshot source (file or URL)")
	mapCmd.Flags().StringVar(&mapCSV, "csv", "", "Also export findings as CSV to this file")
	mapCmd.Flags().BoolVar(&mapExcerpts, "excerpts", true, "Append located table contents as markdown")
	rootCmd.AddCommand(mapCmd)
}

func runMap(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	if mapDashboard == "" {
		mapDashboard = cfg.Inspect.BaseURL + "/"
	}
	if mapHistory == "" {
		mapHistory = cfg.Inspect.BaseURL + "/history"
	}

	type target struct {
		name   string
		source string
		plan   inspect.PagePlan
	}
	targets := []target{
		{name: "dashboard", source: mapDashboard, plan: inspect.DashboardPlan()},
		{name: "history", source: mapHistory, plan: inspect.HistoryPlan()},
	}
	if mapPage != "" {
		kept := targets[:0]
		for _, t := range targets {
			if t.name == mapPage {
				kept = append(kept, t)
			}
		}
		if len(kept) == 0 {
			return fmt.Errorf("unknown page %q, want dashboard or history", mapPage)
		}
		targets = kept
	}

	cls := inspect.NewClassifier(cfg.Inspect.ComponentPrefix)
	builder := report.NewBuilder()

	var allFindings []inspect.PageMap
	for _, t := range targets {
		slog.Info("mapping page", "page", t.name, "source", t.source)

		snap, err := inspect.LoadSnapshot(ctx, t.source)
		if err != nil {
			return fmt.Errorf("load %s snapshot: %w", t.name, err)
		}

		pm, err := inspect.MapPage(snap, t.plan, cls)
		if err != nil {
			return fmt.Errorf("map %s: %w", t.name, err)
		}
		allFindings = append(allFindings, *pm)

		builder.Add(t.name, report.RenderPageMap(pm))
	}

	if mapExcerpts {
		var sb strings.Builder
		for i := range allFindings {
			sb.WriteString(report.RenderExcerpts(&allFindings[i]))
		}
		if sb.Len() > 0 {
			builder.Add("table-contents", sb.String())
		}
	}

	if err := builder.Write(mapOut); err != nil {
		return fmt.Errorf("write %s: %w", mapOut, err)
	}
	slog.Info("application map written", "path", mapOut, "sections", builder.Len())

	if mapCSV != "" {
		var rows []models.Finding
		for i := range allFindings {
			rows = append(rows, allFindings[i].Findings...)
		}
		if err := report.ExportFindingsCSV(mapCSV, rows); err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
		slog.Info("findings exported", "path", mapCSV, "rows", len(rows))
	}

	return nil
}
