// Package audit drives a live browser page through a fixed sequence of UX
// checks (performance, structure, interactions, accessibility, user
// journey, responsive layout) and aggregates the findings into a single
// report.
package audit

import (
	"time"

	"github.com/go-rod/rod"

	"github.com/dredding8/malibu-ui-private/models"
)

// Grade thresholds for total load time, in milliseconds.
const (
	gradeExcellentMs = 2000
	gradeGoodMs      = 4000
)

const perfJS = `() => {
	const timing = performance.timing;
	const paint = performance.getEntriesByType('paint');
	const at = (name) => {
		const entry = paint.find(p => p.name === name);
		return entry ? entry.startTime : 0;
	};
	return {
		pageLoad: timing.loadEventEnd - timing.navigationStart,
		domReady: timing.domContentLoadedEventEnd - timing.navigationStart,
		firstPaint: at('first-paint'),
		firstContentfulPaint: at('first-contentful-paint'),
		resourceCount: performance.getEntriesByType('resource').length
	};
}`

// CollectMetrics samples the page's own timing instrumentation. totalLoad is
// the wall-clock duration from navigation start to network idle, measured by
// the caller. Absent paint entries are reported as 0, not as errors.
func CollectMetrics(p *rod.Page, totalLoad time.Duration) (models.MetricsSnapshot, error) {
	res, err := p.Eval(perfJS)
	if err != nil {
		return models.MetricsSnapshot{}, err
	}

	totalMs := float64(totalLoad.Milliseconds())
	return models.MetricsSnapshot{
		TotalLoadMs:            totalMs,
		PageLoadMs:             res.Value.Get("pageLoad").Num(),
		DOMReadyMs:             res.Value.Get("domReady").Num(),
		FirstPaintMs:           res.Value.Get("firstPaint").Num(),
		FirstContentfulPaintMs: res.Value.Get("firstContentfulPaint").Num(),
		ResourceCount:          res.Value.Get("resourceCount").Int(),
		Grade:                  Grade(totalMs),
	}, nil
}

// Grade maps a total load time in milliseconds to its qualitative grade.
func Grade(loadMs float64) string {
	switch {
	case loadMs < gradeExcellentMs:
		return "excellent"
	case loadMs < gradeGoodMs:
		return "good"
	default:
		return "needs-improvement"
	}
}
