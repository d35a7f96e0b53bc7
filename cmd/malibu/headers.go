package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dredding8/malibu-ui-private/audit"
	"github.com/dredding8/malibu-ui-private/browser"
	"github.com/dredding8/malibu-ui-private/models"
)

var headersCmd = &cobra.Command{
	Use:   "headers [url]",
	Short: "Validate the history table's column headers",
	Long: `Headers loads the history page and checks that every expected
column header appears exactly once, inside a thead. Exits non-zero when any
header is missing, duplicated or misplaced, so the check can gate CI.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHeaders,
}

func init() {
	rootCmd.AddCommand(headersCmd)
}

func runHeaders(cmd *cobra.Command, args []string) error {
	url := cfg.Inspect.BaseURL + "/history"
	if len(args) > 0 {
		url = args[0]
	}

	session, err := browser.NewSession(cfg.Browser)
	if err != nil {
		return err
	}
	defer session.Close()

	runner := audit.NewRunner(session, cfg.Audit, cfg.Inspect.ComponentPrefix)
	check, err := runner.RunHeaderCheck(cmd.Context(), url)
	if err != nil {
		return err
	}

	// Returning errCheckFailed (instead of exiting here) lets the deferred
	// session close run before the process reports failure.
	return printHeaderCheck(cmd.OutOrStdout(), url, check)
}

// printHeaderCheck reports the verdict and returns errCheckFailed when any
// header is missing, duplicated or misplaced.
func printHeaderCheck(w io.Writer, url string, check models.HeaderCheck) error {
	fmt.Fprintf(w, "Header check for %s\n\n", url)
	for _, header := range audit.HistoryHeaders {
		mark := "ok"
		switch n := check.Counts[header]; {
		case n == 0:
			mark = "MISSING"
		case n > 1:
			mark = fmt.Sprintf("DUPLICATED x%d", n)
		}
		fmt.Fprintf(w, "  %-20s %s\n", header, mark)
	}
	fmt.Fprintf(w, "\n  tables: %d  theads: %d  all in thead: %v\n",
		check.TableCount, check.TheadCount, check.AllInThead)

	for header, placements := range check.Placements {
		var locs []string
		for _, p := range placements {
			locs = append(locs, fmt.Sprintf("<%s> in <%s>", p.Tag, p.Parent))
		}
		fmt.Fprintf(w, "  %s found at: %s\n", header, strings.Join(locs, ", "))
	}

	if !check.Passed() {
		fmt.Fprintf(w, "\nFAIL: %d issue(s) found\n", check.Issues)
		return errCheckFailed
	}
	fmt.Fprintln(w, "\nPASS: all headers present exactly once")
	return nil
}
