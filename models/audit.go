package models

import "time"

// Unknown is the sentinel classification for nodes that are absent or carry
// no toolkit-prefixed class.
const Unknown = "Unknown"

// Finding is a named UI landmark paired with its component classification.
// Findings keep the traversal order of the page plan that produced them.
type Finding struct {
	// Name is the human label for the landmark, e.g. "Logout Button".
	Name string `json:"name" csv:"Landmark"`

	// Component is the inferred UI-toolkit family, or "Unknown".
	Component string `json:"component" csv:"Component"`

	// Page is the page the landmark belongs to, e.g. "/history".
	Page string `json:"page" csv:"Page"`

	// Indent is the nesting depth in the rendered application map.
	Indent int `json:"-" csv:"-"`
}

// MetricsSnapshot is a flat set of load/paint/DOM metrics for one page load.
type MetricsSnapshot struct {
	// TotalLoadMs is wall-clock time from navigation start to network idle.
	TotalLoadMs float64 `json:"total_load_ms"`

	// PageLoadMs and DOMReadyMs come from the page's navigation timing.
	PageLoadMs float64 `json:"page_load_ms"`
	DOMReadyMs float64 `json:"dom_ready_ms"`

	// FirstPaintMs and FirstContentfulPaintMs come from paint timing entries.
	// A missing entry is reported as 0.
	FirstPaintMs           float64 `json:"first_paint_ms"`
	FirstContentfulPaintMs float64 `json:"first_contentful_paint_ms"`

	// ResourceCount is the number of resource timing entries.
	ResourceCount int `json:"resource_count"`

	// Grade is derived from TotalLoadMs against fixed thresholds:
	// "excellent" (<2000ms), "good" (<4000ms), "needs-improvement".
	Grade string `json:"grade"`
}

// StructureCounts are element tallies gathered in a single page evaluation.
type StructureCounts struct {
	NavElements int `json:"nav_elements"`
	MenuItems   int `json:"menu_items"`
	Breadcrumbs int `json:"breadcrumbs"`

	HeadingsH1    int `json:"headings_h1"`
	HeadingsH2    int `json:"headings_h2"`
	HeadingsH3    int `json:"headings_h3"`
	HeadingsTotal int `json:"headings_total"`

	Cards  int `json:"cards"`
	Tables int `json:"tables"`
	Lists  int `json:"lists"`

	Buttons int `json:"buttons"`
	Inputs  int `json:"inputs"`
	Links   int `json:"links"`
	Forms   int `json:"forms"`

	// ToolkitComponents counts elements carrying the configured UI-toolkit
	// class prefix; Icons and Dialogs are common sub-families.
	ToolkitComponents int `json:"toolkit_components"`
	Icons             int `json:"icons"`
	Dialogs           int `json:"dialogs"`
}

// AccessibilityCounts are the raw page-wide tallies the scorer works from.
type AccessibilityCounts struct {
	ImagesTotal   int `json:"images_total"`
	ImagesWithAlt int `json:"images_with_alt"`

	InputsTotal   int `json:"inputs_total"`
	InputsLabeled int `json:"inputs_labeled"`

	// HeadingLevels holds heading levels (1-6) in document order.
	HeadingLevels []int `json:"heading_levels"`

	Landmarks int `json:"landmarks"`
	Focusable int `json:"focusable"`
	SkipLinks int `json:"skip_links"`
}

// AccessibilityReport is the counts plus the derived score and letter grade.
type AccessibilityReport struct {
	Counts AccessibilityCounts `json:"counts"`

	// HierarchyIssues is the number of skipped heading levels in order.
	HierarchyIssues int `json:"hierarchy_issues"`

	// Score is the weighted 0-100 score, rounded to the nearest integer.
	Score int `json:"score"`

	// Grade is A (>=90), B (>=80), C (>=70) or D.
	Grade string `json:"grade"`
}

// InteractionResult records the outcome of probing one element.
type InteractionResult struct {
	// Index is the 1-based position of the element among its kind.
	Index int `json:"index" csv:"Index"`

	// Kind is "button" or "input".
	Kind string `json:"kind" csv:"Kind"`

	// Text is the visible text (buttons) or type/placeholder (inputs),
	// captured before acting.
	Text string `json:"text" csv:"Text"`

	// Outcome is "clicked", "filled", "skipped" or "failed".
	Outcome string `json:"outcome" csv:"Outcome"`

	// Value is the read-back value after filling an input.
	Value string `json:"value,omitempty" csv:"Value"`

	// Error holds the truncated failure detail when Outcome is "failed".
	Error string `json:"error,omitempty" csv:"Error"`
}

// Succeeded reports whether the probe acted on the element without error.
func (r InteractionResult) Succeeded() bool {
	return r.Outcome == "clicked" || r.Outcome == "filled"
}

// InteractionSummary aggregates probe outcomes across all elements.
type InteractionSummary struct {
	ButtonsFound     int `json:"buttons_found"`
	InputsFound      int `json:"inputs_found"`
	SuccessfulClicks int `json:"successful_clicks"`
	SuccessfulFills  int `json:"successful_fills"`
}

// JourneyResult records one navigation-link probe.
type JourneyResult struct {
	Index      int    `json:"index"`
	Text       string `json:"text"`
	Href       string `json:"href"`
	Navigated  bool   `json:"navigated"`
	Error      string `json:"error,omitempty"`
	Screenshot string `json:"screenshot,omitempty"`
}

// ViewportResult records the layout check for one emulated viewport.
type ViewportResult struct {
	Name          string `json:"name"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	ContentWidth  int    `json:"content_width"`
	ViewportWidth int    `json:"viewport_width"`

	// HasLayoutIssues is true when the body overflows horizontally.
	HasLayoutIssues bool `json:"has_layout_issues"`

	Screenshot string `json:"screenshot,omitempty"`
}

// HeaderPlacement describes where one duplicated header text was found.
type HeaderPlacement struct {
	Tag    string `json:"tag"`
	Parent string `json:"parent"`
}

// HeaderCheck is the outcome of validating a table's column headers.
type HeaderCheck struct {
	// Counts maps each expected header text to how many times it appears.
	Counts map[string]int `json:"counts"`

	Missing    []string `json:"missing"`
	Duplicates []string `json:"duplicates"`

	// Placements details every occurrence of duplicated headers.
	Placements map[string][]HeaderPlacement `json:"placements,omitempty"`

	TheadCount int  `json:"thead_count"`
	TableCount int  `json:"table_count"`
	AllInThead bool `json:"all_in_thead"`

	// Issues is the total problem count; zero means the check passed.
	Issues int `json:"issues"`
}

// Passed reports whether every expected header is present exactly once and
// properly positioned.
func (h HeaderCheck) Passed() bool { return h.Issues == 0 }

// ConsoleEntry is one captured browser console message.
type ConsoleEntry struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// PageError is one captured uncaught page exception.
type PageError struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// AuditReport is the aggregate of one audit run. It is serialized exactly
// once, at the end of the run; a failed run produces no report.
type AuditReport struct {
	URL       string    `json:"url"`
	Timestamp time.Time `json:"timestamp"`

	Performance   MetricsSnapshot     `json:"performance"`
	Structure     StructureCounts     `json:"structure"`
	Interactions  []InteractionResult `json:"interactions"`
	Summary       InteractionSummary  `json:"interaction_summary"`
	Accessibility AccessibilityReport `json:"accessibility"`
	Journey       []JourneyResult     `json:"user_journey"`
	Responsive    []ViewportResult    `json:"responsive"`

	ConsoleMessages []ConsoleEntry `json:"console_messages"`
	PageErrors      []PageError    `json:"page_errors"`

	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// InteractionSuccessRate is the percentage of found buttons that were
// clicked successfully. Returns 100 when no buttons were found.
func (r *AuditReport) InteractionSuccessRate() float64 {
	if r.Summary.ButtonsFound == 0 {
		return 100
	}
	return float64(r.Summary.SuccessfulClicks) / float64(r.Summary.ButtonsFound) * 100
}
