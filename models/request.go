package models

// AuditRequest is the payload for POST /api/v1/audit.
type AuditRequest struct {
	// URL is the page to audit. Required.
	URL string `json:"url" binding:"required,url"`

	// Timeout is the maximum duration in seconds for navigation and
	// network-idle settling. Default: 30. Max: 120.
	Timeout int `json:"timeout,omitempty" binding:"omitempty,min=1,max=120"`

	// Stealth enables anti-bot-detection evasions before navigation.
	// Default: false.
	Stealth bool `json:"stealth,omitempty"`

	// SkipInteractions disables the interaction probe, leaving the page
	// unmutated for callers that only want passive measurements.
	SkipInteractions bool `json:"skip_interactions,omitempty"`

	// SkipJourney disables the navigation-link probe.
	SkipJourney bool `json:"skip_journey,omitempty"`

	// Screenshots enables before/after and per-viewport screenshot capture.
	// Files land in ScreenshotDir on the server host. Default: false.
	Screenshots   bool   `json:"screenshots,omitempty"`
	ScreenshotDir string `json:"screenshot_dir,omitempty"`
}

// Defaults applies default values to unset fields.
func (r *AuditRequest) Defaults() {
	if r.Timeout == 0 {
		r.Timeout = 30
	}
	if r.ScreenshotDir == "" {
		r.ScreenshotDir = "."
	}
}

// MapRequest is the payload for POST /api/v1/map.
type MapRequest struct {
	// URL is fetched over HTTP and treated as a static snapshot. Required.
	URL string `json:"url" binding:"required,url"`

	// Page selects the landmark plan: "dashboard" (default) or "history".
	Page string `json:"page,omitempty" binding:"omitempty,oneof=dashboard history"`
}

// Defaults applies default values to unset fields.
func (r *MapRequest) Defaults() {
	if r.Page == "" {
		r.Page = "dashboard"
	}
}
