package audit

import (
	"fmt"

	"github.com/dredding8/malibu-ui-private/models"
)

// DeriveIssues inspects a finished report and fills its Issues and
// Recommendations lists. Each issue carries a matching recommendation.
func DeriveIssues(r *models.AuditReport) {
	if r.Performance.Grade == "needs-improvement" {
		r.Issues = append(r.Issues,
			fmt.Sprintf("Slow page load: %.0fms", r.Performance.TotalLoadMs))
		r.Recommendations = append(r.Recommendations,
			"Reduce bundle size and defer non-critical resources to bring load time under 4s")
	}

	if r.Accessibility.Score < 80 {
		r.Issues = append(r.Issues,
			fmt.Sprintf("Accessibility score below target: %d/100", r.Accessibility.Score))
		r.Recommendations = append(r.Recommendations,
			"Add missing alt text, input labels and landmark regions")
	}

	if len(r.PageErrors) > 0 {
		r.Issues = append(r.Issues,
			fmt.Sprintf("%d uncaught JavaScript errors on the page", len(r.PageErrors)))
		r.Recommendations = append(r.Recommendations,
			"Fix uncaught exceptions; check the page_errors section for stack traces")
	}

	if rate := r.InteractionSuccessRate(); rate < 80 {
		r.Issues = append(r.Issues,
			fmt.Sprintf("Interaction success rate low: %.0f%%", rate))
		r.Recommendations = append(r.Recommendations,
			"Investigate failing buttons; elements may be obscured or detached during interaction")
	}

	for _, vp := range r.Responsive {
		if vp.HasLayoutIssues {
			r.Issues = append(r.Issues,
				fmt.Sprintf("Horizontal overflow at %s viewport (%dx%d)", vp.Name, vp.Width, vp.Height))
			r.Recommendations = append(r.Recommendations,
				fmt.Sprintf("Constrain content width below %dpx or make the layout wrap at %s sizes", vp.ViewportWidth, vp.Name))
		}
	}
}
