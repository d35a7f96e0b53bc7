package audit

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dredding8/malibu-ui-private/browser"
	"github.com/dredding8/malibu-ui-private/fingerprint"
	"github.com/dredding8/malibu-ui-private/report"
)

const baselineSettle = 1 * time.Second

// driftThreshold is the Hamming distance below which two DOM fingerprints
// count as the same layout.
const driftThreshold = 3

// manifestName is the baseline manifest file within the capture directory.
const manifestName = "baseline.json"

// Manifest records one baseline capture so later runs can detect drift.
type Manifest struct {
	URL            string    `json:"url"`
	CapturedAt     time.Time `json:"captured_at"`
	DOMFingerprint uint64    `json:"dom_fingerprint"`
	Screenshots    []string  `json:"screenshots"`
}

// baselineViewports are the sizes captured by the baseline run. The working
// size for component shots is desktop.
var baselineViewports = []viewportPreset{
	{Name: "mobile", Width: 375, Height: 812},
	{Name: "tablet", Width: 768, Height: 1024},
	{Name: "desktop", Width: 1440, Height: 900},
	{Name: "large_desktop", Width: 1920, Height: 1080},
}

// baselineComponents are the table fragments captured in isolation, keyed by
// the number prefix of their output file.
var baselineComponents = []struct {
	Name     string
	Selector string
}{
	{Name: "04_table_root", Selector: ".MuiTable-root"},
	{Name: "05_table_head", Selector: ".MuiTableHead-root"},
	{Name: "06_table_body", Selector: ".MuiTableBody-root"},
}

// CaptureBaseline records the reference set for a page: the full-page
// screenshot, the table in isolation, every baseline viewport, the table's
// sub-components, and a manifest with the DOM fingerprint. Individual capture
// failures are logged and skipped so one missing element does not void the
// whole set.
func CaptureBaseline(s *browser.Session, url, dir string) (*Manifest, error) {
	captured, err := captureScreenshots(s, dir)
	if err != nil {
		return nil, err
	}

	m := &Manifest{
		URL:         url,
		CapturedAt:  time.Now().UTC(),
		Screenshots: captured,
	}
	if html, err := s.Page().HTML(); err == nil {
		m.DOMFingerprint = fingerprint.Page(html)
	} else {
		slog.Warn("baseline fingerprint failed", "error", err)
	}

	if err := report.WriteJSON(filepath.Join(dir, manifestName), m); err != nil {
		return nil, err
	}
	return m, nil
}

// CompareBaseline fingerprints the current page and reports its structural
// distance from the stored manifest. drifted is true when the distance
// exceeds the similarity threshold.
func CompareBaseline(s *browser.Session, dir string) (distance int, drifted bool, err error) {
	data, err := os.ReadFile(filepath.Join(dir, manifestName))
	if err != nil {
		return 0, false, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return 0, false, err
	}

	html, err := s.Page().HTML()
	if err != nil {
		return 0, false, err
	}
	current := fingerprint.Page(html)

	distance = fingerprint.Distance(m.DOMFingerprint, current)
	return distance, !fingerprint.Similar(m.DOMFingerprint, current, driftThreshold), nil
}

func captureScreenshots(s *browser.Session, dir string) ([]string, error) {
	var captured []string
	record := func(path string, err error) {
		if err != nil {
			slog.Warn("baseline capture failed", "path", path, "error", err)
			return
		}
		slog.Info("baseline captured", "path", path)
		captured = append(captured, path)
	}

	full := filepath.Join(dir, "01_full_page_baseline.png")
	record(full, s.Screenshot(full, true))

	table := filepath.Join(dir, "02_table_component_isolated.png")
	record(table, s.ElementScreenshot("table", table))

	for _, vp := range baselineViewports {
		if err := s.SetViewport(vp.Width, vp.Height); err != nil {
			return captured, err
		}
		time.Sleep(baselineSettle)

		path := filepath.Join(dir, fmt.Sprintf("03_responsive_%s.png", vp.Name))
		record(path, s.Screenshot(path, false))
	}

	// Component shots are taken at the desktop working size.
	if err := s.SetViewport(1440, 900); err != nil {
		return captured, err
	}
	time.Sleep(baselineSettle)

	for _, comp := range baselineComponents {
		path := filepath.Join(dir, comp.Name+".png")
		record(path, s.ElementScreenshot(comp.Selector, path))
	}

	return captured, nil
}
