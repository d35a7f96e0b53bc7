package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dredding8/malibu-ui-private/audit"
	"github.com/dredding8/malibu-ui-private/browser"
)

var (
	baselineDir     string
	baselineCompare bool
)

var baselineCmd = &cobra.Command{
	Use:   "baseline [url]",
	Short: "Capture the visual baseline screenshot set",
	Long: `Baseline loads the page and captures the numbered reference
screenshot set: full page, isolated table, four responsive viewports and the
table's sub-components, plus a manifest with a DOM fingerprint. With
--compare, the page is instead fingerprinted against an earlier capture and
the command exits non-zero when the structure has drifted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBaseline,
}

func init() {
	baselineCmd.Flags().StringVarP(&baselineDir, "dir", "d", "screenshots", "Directory for baseline screenshots")
	baselineCmd.Flags().BoolVar(&baselineCompare, "compare", false, "Compare the page against an existing baseline instead of capturing")
	rootCmd.AddCommand(baselineCmd)
}

func runBaseline(cmd *cobra.Command, args []string) error {
	url := cfg.Inspect.BaseURL
	if len(args) > 0 {
		url = args[0]
	}

	session, err := browser.NewSession(cfg.Browser)
	if err != nil {
		return err
	}
	defer session.Close()

	navCtx, cancel := context.WithTimeout(cmd.Context(), cfg.Audit.NavTimeout)
	defer cancel()
	if err := session.Navigate(navCtx, url, cfg.Audit.IdleWindow); err != nil {
		return err
	}

	if baselineCompare {
		distance, drifted, err := audit.CompareBaseline(session, baselineDir)
		if err != nil {
			return err
		}
		// Returning errCheckFailed (instead of exiting here) lets the deferred
		// session close run before the process reports drift.
		return printCompareVerdict(cmd.OutOrStdout(), distance, drifted)
	}

	manifest, err := audit.CaptureBaseline(session, url, baselineDir)
	if err != nil {
		return err
	}

	fmt.Printf("Captured %d baseline screenshots in %s:\n", len(manifest.Screenshots), baselineDir)
	for _, path := range manifest.Screenshots {
		fmt.Printf("  %s\n", path)
	}
	return nil
}

// printCompareVerdict reports the fingerprint comparison and returns
// errCheckFailed when the page has drifted from its baseline.
func printCompareVerdict(w io.Writer, distance int, drifted bool) error {
	if drifted {
		fmt.Fprintf(w, "DRIFT: page structure differs from baseline (distance %d)\n", distance)
		return errCheckFailed
	}
	fmt.Fprintf(w, "OK: page structure matches baseline (distance %d)\n", distance)
	return nil
}
