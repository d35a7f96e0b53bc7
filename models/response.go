package models

// AuditResponse is the response for POST /api/v1/audit.
type AuditResponse struct {
	// Success indicates whether the audit completed without errors.
	Success bool `json:"success"`

	// Report is the full audit aggregate; nil when Success is false.
	Report *AuditReport `json:"report,omitempty"`

	// Timing provides duration breakdowns for the operation.
	Timing TimingInfo `json:"timing"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// MapResponse is the response for POST /api/v1/map.
type MapResponse struct {
	Success bool `json:"success"`

	// Findings are the located landmarks in traversal order.
	Findings []Finding `json:"findings,omitempty"`

	// Markdown is the rendered application-map section.
	Markdown string `json:"markdown,omitempty"`

	Timing TimingInfo   `json:"timing"`
	Error  *ErrorDetail `json:"error,omitempty"`
}

// TimingInfo breaks down the time spent in each phase.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`

	// NavigationMs is the time spent navigating and settling the page.
	NavigationMs int64 `json:"navigation_ms"`

	// AnalysisMs is the time spent running audit steps after navigation.
	AnalysisMs int64 `json:"analysis_ms"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"` // "healthy" or "busy"
	Uptime  string `json:"uptime"`
	Version string `json:"version"`

	// ActiveRuns is the number of audits currently holding the browser.
	ActiveRuns int `json:"active_runs"`
}
