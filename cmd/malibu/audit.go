package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dredding8/malibu-ui-private/audit"
	"github.com/dredding8/malibu-ui-private/browser"
	"github.com/dredding8/malibu-ui-private/report"
)

var (
	auditScreenshots      bool
	auditScreenshotDir    string
	auditSkipInteractions bool
	auditSkipJourney      bool
	auditStealth          bool
	auditJSONOut          string
	auditCSVOut           string
)

var auditCmd = &cobra.Command{
	Use:   "audit [url]",
	Short: "Run the full UX audit against a live page",
	Long: `Audit launches a browser, loads the page and measures performance,
DOM structure, accessibility, interaction health, navigation and responsive
layout. A summary table is printed to stdout; the full report can also be
written as JSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().BoolVar(&auditScreenshots, "screenshots", false, "Capture before/after and per-viewport screenshots")
	auditCmd.Flags().StringVar(&auditScreenshotDir, "screenshot-dir", "", "Directory for screenshots (default from config)")
	auditCmd.Flags().BoolVar(&auditSkipInteractions, "skip-interactions", false, "Skip the button/input probe")
	auditCmd.Flags().BoolVar(&auditSkipJourney, "skip-journey", false, "Skip the navigation-link probe")
	auditCmd.Flags().BoolVar(&auditStealth, "stealth", false, "Enable anti-detection evasions")
	auditCmd.Flags().StringVarP(&auditJSONOut, "json", "j", "", "Write the full report as JSON to this file")
	auditCmd.Flags().StringVar(&auditCSVOut, "csv", "", "Export interaction results as CSV to this file")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	url := cfg.Inspect.BaseURL
	if len(args) > 0 {
		url = args[0]
	}

	browserCfg := cfg.Browser
	browserCfg.Stealth = browserCfg.Stealth || auditStealth

	session, err := browser.NewSession(browserCfg)
	if err != nil {
		return err
	}
	defer session.Close()

	runner := audit.NewRunner(session, cfg.Audit, cfg.Inspect.ComponentPrefix)
	rep, err := runner.Run(cmd.Context(), url, audit.Options{
		Screenshots:      auditScreenshots,
		SkipInteractions: auditSkipInteractions,
		SkipJourney:      auditSkipJourney,
		ScreenshotDir:    auditScreenshotDir,
	})
	if err != nil {
		return err
	}

	report.PrintSummary(rep)

	if auditJSONOut != "" {
		if err := report.WriteJSON(auditJSONOut, rep); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		slog.Info("report written", "path", auditJSONOut)
	}
	if auditCSVOut != "" {
		if err := report.ExportInteractionsCSV(auditCSVOut, rep.Interactions); err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
		slog.Info("interactions exported", "path", auditCSVOut)
	}

	return nil
}
