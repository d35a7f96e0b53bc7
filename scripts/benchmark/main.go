// Benchmark harness for the map endpoint. Hammers a running malibu server
// with repeated map requests for both landmark plans and reports average
// timings, so mapping-pipeline changes can be compared run to run.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
	"time"
)

// CLI flags
var (
	apiURL = flag.String("api-url", "http://localhost:8080", "Malibu API base URL")
	apiKey = flag.String("api-key", "", "API key for authenticated requests")
	runs   = flag.Int("runs", 5, "Number of runs per page for averaging")
	output = flag.String("output", "benchmark-results.json", "JSON output file path")
	target = flag.String("target", "", "Snapshot URL to map (default: server's configured base URL)")
)

var pages = []string{"dashboard", "history"}

// --- Request / Response types (mirrors models package) ---

type mapRequest struct {
	URL  string `json:"url"`
	Page string `json:"page"`
}

type mapResponse struct {
	Success  bool              `json:"success"`
	Findings []json.RawMessage `json:"findings"`
	Markdown string            `json:"markdown"`
	Timing   timingInfo        `json:"timing"`
	Error    *errorDetail      `json:"error,omitempty"`
}

type timingInfo struct {
	TotalMs      int64 `json:"total_ms"`
	NavigationMs int64 `json:"navigation_ms"`
	AnalysisMs   int64 `json:"analysis_ms"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// --- Benchmark result types ---

type runResult struct {
	Run          int    `json:"run"`
	TotalMs      int64  `json:"total_ms"`
	NavigationMs int64  `json:"navigation_ms"`
	AnalysisMs   int64  `json:"analysis_ms"`
	Findings     int    `json:"findings"`
	MarkdownLen  int    `json:"markdown_len"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
}

type pageAverages struct {
	TotalMs      float64 `json:"total_ms"`
	NavigationMs float64 `json:"navigation_ms"`
	AnalysisMs   float64 `json:"analysis_ms"`
}

type pageResult struct {
	Page     string        `json:"page"`
	Runs     []runResult   `json:"runs"`
	Averages *pageAverages `json:"averages,omitempty"`
}

type benchmarkReport struct {
	Timestamp   string       `json:"timestamp"`
	APIURL      string       `json:"api_url"`
	RunsPerPage int          `json:"runs_per_page"`
	Results     []pageResult `json:"results"`
}

func main() {
	flag.Parse()

	fmt.Println("=== Malibu Map Benchmark ===")
	fmt.Printf("API URL:    %s\n", *apiURL)
	fmt.Printf("Runs/page:  %d\n", *runs)
	fmt.Printf("Output:     %s\n", *output)
	fmt.Println()

	if err := checkAPI(*apiURL); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot reach API at %s: %v\n", *apiURL, err)
		fmt.Fprintf(os.Stderr, "Make sure malibu serve is running\n")
		os.Exit(1)
	}

	snapshotURL := *target
	if snapshotURL == "" {
		snapshotURL = "http://localhost:3000/"
	}

	rep := benchmarkReport{
		Timestamp:   time.Now().Format(time.RFC3339),
		APIURL:      *apiURL,
		RunsPerPage: *runs,
	}

	client := &http.Client{Timeout: 60 * time.Second}
	for _, page := range pages {
		pr := pageResult{Page: page}
		fmt.Printf("Page %q:\n", page)

		for i := 1; i <= *runs; i++ {
			rr := benchOnce(client, snapshotURL, page, i)
			pr.Runs = append(pr.Runs, rr)
			if rr.Success {
				fmt.Printf("  run %d: %dms (%d findings)\n", i, rr.TotalMs, rr.Findings)
			} else {
				fmt.Printf("  run %d: FAILED: %s\n", i, rr.Error)
			}
		}

		pr.Averages = average(pr.Runs)
		rep.Results = append(rep.Results, pr)
		fmt.Println()
	}

	printSummary(&rep)

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling results: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*output, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *output, err)
		os.Exit(1)
	}
	fmt.Printf("Results written to %s\n", *output)
}

func checkAPI(baseURL string) error {
	resp, err := http.Get(baseURL + "/api/v1/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health returned status %d", resp.StatusCode)
	}
	return nil
}

func benchOnce(client *http.Client, snapshotURL, page string, run int) runResult {
	rr := runResult{Run: run}

	body, _ := json.Marshal(mapRequest{URL: snapshotURL, Page: page})
	req, err := http.NewRequest(http.MethodPost, *apiURL+"/api/v1/map", bytes.NewReader(body))
	if err != nil {
		rr.Error = err.Error()
		return rr
	}
	req.Header.Set("Content-Type", "application/json")
	if *apiKey != "" {
		req.Header.Set("X-API-Key", *apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		rr.Error = err.Error()
		return rr
	}
	defer resp.Body.Close()

	var mr mapResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		rr.Error = err.Error()
		return rr
	}

	if !mr.Success {
		if mr.Error != nil {
			rr.Error = fmt.Sprintf("[%s] %s", mr.Error.Code, mr.Error.Message)
		} else {
			rr.Error = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return rr
	}

	rr.Success = true
	rr.TotalMs = mr.Timing.TotalMs
	rr.NavigationMs = mr.Timing.NavigationMs
	rr.AnalysisMs = mr.Timing.AnalysisMs
	rr.Findings = len(mr.Findings)
	rr.MarkdownLen = len(mr.Markdown)
	return rr
}

func average(results []runResult) *pageAverages {
	var avg pageAverages
	var ok int
	for _, r := range results {
		if !r.Success {
			continue
		}
		ok++
		avg.TotalMs += float64(r.TotalMs)
		avg.NavigationMs += float64(r.NavigationMs)
		avg.AnalysisMs += float64(r.AnalysisMs)
	}
	if ok == 0 {
		return nil
	}
	avg.TotalMs /= float64(ok)
	avg.NavigationMs /= float64(ok)
	avg.AnalysisMs /= float64(ok)
	return &avg
}

func printSummary(rep *benchmarkReport) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PAGE\tAVG TOTAL\tAVG FETCH\tAVG ANALYSIS")
	for _, pr := range rep.Results {
		if pr.Averages == nil {
			fmt.Fprintf(w, "%s\tall runs failed\t\t\n", pr.Page)
			continue
		}
		fmt.Fprintf(w, "%s\t%.0fms\t%.0fms\t%.0fms\n",
			pr.Page, pr.Averages.TotalMs, pr.Averages.NavigationMs, pr.Averages.AnalysisMs)
	}
	w.Flush()
	fmt.Println()
}
