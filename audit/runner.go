// Package audit runs the full UX audit against a live page: performance
// metrics, DOM structure, accessibility, interaction probing, navigation
// journey and responsive layout checks, aggregated into one report.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/dredding8/malibu-ui-private/browser"
	"github.com/dredding8/malibu-ui-private/config"
	"github.com/dredding8/malibu-ui-private/models"
)

// Options selects which audit phases run and where artifacts land.
type Options struct {
	Screenshots      bool
	SkipInteractions bool
	SkipJourney      bool
	ScreenshotDir    string
}

// Runner drives one audit over one browser session.
type Runner struct {
	session *browser.Session
	cfg     config.AuditConfig
	prefix  string
}

// NewRunner binds a runner to an open session. The session's lifecycle stays
// with the caller.
func NewRunner(s *browser.Session, cfg config.AuditConfig, componentPrefix string) *Runner {
	return &Runner{session: s, cfg: cfg, prefix: componentPrefix}
}

// Run executes the audit. Navigation failure or timeout is fatal and
// returns an error with no report; failures inside individual phases are
// absorbed into the report instead.
func (r *Runner) Run(ctx context.Context, url string, opts Options) (*models.AuditReport, error) {
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = r.cfg.ScreenshotDir
	}

	report := &models.AuditReport{URL: url, Timestamp: time.Now().UTC()}

	navCtx, cancel := context.WithTimeout(ctx, r.cfg.NavTimeout)
	defer cancel()

	navStart := time.Now()
	if err := r.session.Navigate(navCtx, url, r.cfg.IdleWindow); err != nil {
		return nil, err
	}
	totalLoad := time.Since(navStart)
	slog.Info("page settled", "url", url, "load_ms", totalLoad.Milliseconds())

	if opts.Screenshots {
		path := filepath.Join(opts.ScreenshotDir, "ux-audit-initial.png")
		if err := r.session.Screenshot(path, true); err != nil {
			slog.Warn("initial screenshot failed", "error", err)
		}
	}

	p := r.session.Page()

	perf, err := CollectMetrics(p, totalLoad)
	if err != nil {
		slog.Warn("metrics collection failed", "error", err)
	}
	report.Performance = perf

	structure, err := CollectStructure(p, r.prefix)
	if err != nil {
		slog.Warn("structure collection failed", "error", err)
	}
	report.Structure = structure

	a11y, err := CollectAccessibility(p)
	if err != nil {
		slog.Warn("accessibility collection failed", "error", err)
	}
	report.Accessibility = BuildAccessibilityReport(a11y)

	if !opts.SkipInteractions {
		r.probeInteractions(report, opts)
	}

	if !opts.SkipJourney {
		journey, err := ProbeJourney(r.session, r.cfg.MaxNavLinks, opts.ScreenshotDir, opts.Screenshots)
		if err != nil {
			slog.Warn("journey probe failed", "error", err)
		}
		report.Journey = journey
	}

	origWidth, origHeight := r.session.Viewport()
	responsive, err := CheckResponsive(r.session, origWidth, origHeight, opts.ScreenshotDir, opts.Screenshots)
	if err != nil {
		slog.Warn("responsive check failed", "error", err)
	}
	report.Responsive = responsive

	if opts.Screenshots {
		path := filepath.Join(opts.ScreenshotDir, "ux-audit-final.png")
		if err := r.session.Screenshot(path, true); err != nil {
			slog.Warn("final screenshot failed", "error", err)
		}
	}

	report.ConsoleMessages, report.PageErrors = r.session.ConsoleLog()
	DeriveIssues(report)

	return report, nil
}

func (r *Runner) probeInteractions(report *models.AuditReport, opts Options) {
	probeOpts := ProbeOptions{
		ClickSettle: r.cfg.ClickSettle,
		FillSettle:  r.cfg.FillSettle,
		ProbeValue:  r.cfg.ProbeValue,
	}

	if opts.Screenshots {
		probeOpts.BeforeClick = func(index int) {
			path := filepath.Join(opts.ScreenshotDir, fmt.Sprintf("before-click-%d.png", index))
			if err := r.session.Screenshot(path, false); err != nil {
				slog.Warn("before-click screenshot failed", "index", index, "error", err)
			}
		}
		probeOpts.AfterClick = func(index int) {
			path := filepath.Join(opts.ScreenshotDir, fmt.Sprintf("after-click-%d.png", index))
			if err := r.session.Screenshot(path, false); err != nil {
				slog.Warn("after-click screenshot failed", "index", index, "error", err)
			}
		}
	}

	p := r.session.Page()

	buttons, buttonsFound, err := CollectButtons(p, r.cfg.MaxButtons)
	if err != nil {
		slog.Warn("button collection failed", "error", err)
	}
	report.Summary.ButtonsFound = buttonsFound

	clicks := ProbeButtons(buttons, probeOpts)
	for _, res := range clicks {
		if res.Succeeded() {
			report.Summary.SuccessfulClicks++
		}
	}
	report.Interactions = append(report.Interactions, clicks...)

	inputs, inputsFound, err := CollectInputs(p, r.cfg.MaxInputs)
	if err != nil {
		slog.Warn("input collection failed", "error", err)
	}
	report.Summary.InputsFound = inputsFound

	fills := ProbeInputs(inputs, probeOpts)
	for _, res := range fills {
		if res.Succeeded() {
			report.Summary.SuccessfulFills++
		}
	}
	report.Interactions = append(report.Interactions, fills...)
}

// RunHeaderCheck navigates to the history page and validates its table
// headers against the expected set.
func (r *Runner) RunHeaderCheck(ctx context.Context, url string) (models.HeaderCheck, error) {
	navCtx, cancel := context.WithTimeout(ctx, r.cfg.NavTimeout)
	defer cancel()

	if err := r.session.Navigate(navCtx, url, r.cfg.IdleWindow); err != nil {
		return models.HeaderCheck{}, err
	}

	obs, err := ObserveHeaders(r.session.Page(), HistoryHeaders)
	if err != nil {
		return models.HeaderCheck{}, err
	}
	return EvaluateHeaders(HistoryHeaders, obs), nil
}
