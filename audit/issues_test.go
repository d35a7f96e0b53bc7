package audit

import (
	"strings"
	"testing"

	"github.com/dredding8/malibu-ui-private/models"
)

func healthyReport() *models.AuditReport {
	return &models.AuditReport{
		Performance:   models.MetricsSnapshot{TotalLoadMs: 1200, Grade: "excellent"},
		Accessibility: models.AccessibilityReport{Score: 95, Grade: "A"},
		Summary:       models.InteractionSummary{ButtonsFound: 4, SuccessfulClicks: 4},
		Responsive: []models.ViewportResult{
			{Name: "mobile", Width: 375, Height: 667},
			{Name: "desktop", Width: 1280, Height: 720},
		},
	}
}

func TestDeriveIssues_HealthyReportHasNone(t *testing.T) {
	r := healthyReport()
	DeriveIssues(r)
	if len(r.Issues) != 0 {
		t.Errorf("healthy report produced issues: %v", r.Issues)
	}
}

func TestDeriveIssues_SlowLoad(t *testing.T) {
	r := healthyReport()
	r.Performance.Grade = "needs-improvement"
	r.Performance.TotalLoadMs = 6200

	DeriveIssues(r)
	if len(r.Issues) != 1 || !strings.Contains(r.Issues[0], "6200ms") {
		t.Errorf("issues = %v, want one slow-load entry", r.Issues)
	}
	if len(r.Recommendations) != 1 {
		t.Errorf("every issue needs a recommendation, got %d", len(r.Recommendations))
	}
}

func TestDeriveIssues_LowAccessibility(t *testing.T) {
	r := healthyReport()
	r.Accessibility.Score = 65

	DeriveIssues(r)
	if len(r.Issues) != 1 || !strings.Contains(r.Issues[0], "65/100") {
		t.Errorf("issues = %v, want one accessibility entry", r.Issues)
	}
}

func TestDeriveIssues_PageErrors(t *testing.T) {
	r := healthyReport()
	r.PageErrors = []models.PageError{{Message: "boom"}, {Message: "bang"}}

	DeriveIssues(r)
	if len(r.Issues) != 1 || !strings.Contains(r.Issues[0], "2 uncaught") {
		t.Errorf("issues = %v, want one page-error entry", r.Issues)
	}
}

func TestDeriveIssues_LowInteractionRate(t *testing.T) {
	r := healthyReport()
	r.Summary = models.InteractionSummary{ButtonsFound: 4, SuccessfulClicks: 2}

	DeriveIssues(r)
	if len(r.Issues) != 1 || !strings.Contains(r.Issues[0], "50%") {
		t.Errorf("issues = %v, want a 50%% interaction entry", r.Issues)
	}
}

func TestDeriveIssues_NoButtonsIsNotAnIssue(t *testing.T) {
	r := healthyReport()
	r.Summary = models.InteractionSummary{}

	DeriveIssues(r)
	if len(r.Issues) != 0 {
		t.Errorf("a page with no buttons should not flag interaction issues: %v", r.Issues)
	}
}

func TestDeriveIssues_ResponsiveOverflow(t *testing.T) {
	r := healthyReport()
	r.Responsive[0].HasLayoutIssues = true
	r.Responsive[0].ContentWidth = 420
	r.Responsive[0].ViewportWidth = 375

	DeriveIssues(r)
	if len(r.Issues) != 1 || !strings.Contains(r.Issues[0], "mobile") {
		t.Errorf("issues = %v, want one mobile overflow entry", r.Issues)
	}
}

func TestDeriveIssues_Accumulate(t *testing.T) {
	r := healthyReport()
	r.Performance.Grade = "needs-improvement"
	r.Accessibility.Score = 70
	r.PageErrors = []models.PageError{{Message: "x"}}

	DeriveIssues(r)
	if len(r.Issues) != 3 {
		t.Errorf("issues = %d, want 3", len(r.Issues))
	}
	if len(r.Recommendations) != 3 {
		t.Errorf("recommendations = %d, want 3", len(r.Recommendations))
	}
}
