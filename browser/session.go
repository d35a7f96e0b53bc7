// Package browser owns the Rod browser lifecycle for one audit run: launch,
// a single exclusively-owned page, navigation with a bounded network-idle
// wait, and guaranteed shutdown on every exit path.
package browser

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"

	"github.com/dredding8/malibu-ui-private/config"
	"github.com/dredding8/malibu-ui-private/models"
)

// Session wraps one browser process and one page. A Session is owned by a
// single audit run; nothing in it is safe for concurrent use and nothing
// needs to be.
type Session struct {
	browser *rod.Browser
	page    *rod.Page
	cfg     config.BrowserConfig

	mu       sync.Mutex
	console  []models.ConsoleEntry
	pageErrs []models.PageError
}

// NewSession launches a browser and opens the audit page at the configured
// viewport. Callers must Close the session on every exit path, including
// failure, typically via defer immediately after this returns.
func NewSession(cfg config.BrowserConfig) (*Session, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox)

	if cfg.BrowserBin != "" {
		l = l.Bin(cfg.BrowserBin)
	}

	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-popup-blocking"))
	l.Set(flags.Flag("force-device-scale-factor"), "1")
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewAuditError(
			models.ErrCodeBrowserCrash,
			"failed to launch browser",
			err,
		)
	}
	slog.Info("browser launched", "controlURL", controlURL)

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return nil, models.NewAuditError(
			models.ErrCodeBrowserCrash,
			"failed to connect to browser",
			err,
		)
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = b.Close()
		return nil, models.NewAuditError(
			models.ErrCodeBrowserCrash,
			"failed to open audit page",
			err,
		)
	}

	s := &Session{browser: b, page: page, cfg: cfg}

	if err := s.SetViewport(cfg.Width, cfg.Height); err != nil {
		_ = b.Close()
		return nil, err
	}

	s.captureEvents()
	return s, nil
}

// Page returns the session's page for direct element queries and evals.
func (s *Session) Page() *rod.Page {
	return s.page
}

// Navigate loads the URL and blocks until the page's network has been idle
// for idleWindow, bounded by ctx. A deadline here is fatal for the run: the
// caller gets a timeout error instead of partially-settled page state.
func (s *Session) Navigate(ctx context.Context, url string, idleWindow time.Duration) error {
	p := s.page.Context(ctx)

	// Stealth JS and extra headers only take effect for navigations that
	// happen after they are installed.
	if s.cfg.Stealth {
		if _, err := p.EvalOnNewDocument(stealth.JS); err != nil {
			slog.Warn("stealth injection failed, proceeding without stealth", "error", err)
		}
	}
	if len(s.cfg.ExtraHeaders) > 0 {
		_ = proto.NetworkSetExtraHTTPHeaders{
			Headers: toHeadersMap(s.cfg.ExtraHeaders),
		}.Call(p)
	}

	// The idle waiter registers a CDP listener, so it must be set up
	// before Navigate or in-flight requests would be missed.
	waitIdle := p.WaitRequestIdle(idleWindow, nil, nil, nil)

	if err := p.Navigate(url); err != nil {
		return categorizeError(err, "navigation to target URL failed")
	}
	waitIdle()

	if err := ctx.Err(); err != nil {
		return categorizeError(err, "page did not reach network idle in time")
	}
	return nil
}

// NavigateBack returns to the previous history entry, best effort.
func (s *Session) NavigateBack() error {
	return s.page.NavigateBack()
}

// SetViewport overrides the emulated viewport size.
func (s *Session) SetViewport(width, height int) error {
	return s.page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1,
		Mobile:            false,
	})
}

// Viewport reports the configured default viewport size.
func (s *Session) Viewport() (width, height int) {
	return s.cfg.Width, s.cfg.Height
}

// CurrentURL reports the page's location, empty on failure.
func (s *Session) CurrentURL() string {
	res, err := s.page.Eval(`() => window.location.href`)
	if err != nil {
		return ""
	}
	return res.Value.Str()
}

// ConsoleLog returns the console messages and uncaught exceptions captured
// since the session opened.
func (s *Session) ConsoleLog() ([]models.ConsoleEntry, []models.PageError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	console := make([]models.ConsoleEntry, len(s.console))
	copy(console, s.console)
	pageErrs := make([]models.PageError, len(s.pageErrs))
	copy(pageErrs, s.pageErrs)
	return console, pageErrs
}

// Close shuts the browser down. Safe to call exactly once per session, on
// any exit path.
func (s *Session) Close() {
	slog.Info("session shutting down: closing browser")
	if err := s.browser.Close(); err != nil {
		slog.Warn("browser close failed", "error", err)
	}
}

// captureEvents subscribes to console output and uncaught exceptions for
// the lifetime of the page.
func (s *Session) captureEvents() {
	go s.page.EachEvent(
		func(e *proto.RuntimeConsoleAPICalled) {
			parts := make([]string, 0, len(e.Args))
			for _, arg := range e.Args {
				parts = append(parts, remoteObjectText(arg))
			}
			s.mu.Lock()
			s.console = append(s.console, models.ConsoleEntry{
				Type: string(e.Type),
				Text: strings.Join(parts, " "),
			})
			s.mu.Unlock()
		},
		func(e *proto.RuntimeExceptionThrown) {
			pe := models.PageError{Message: e.ExceptionDetails.Text}
			if e.ExceptionDetails.Exception != nil {
				if pe.Message == "" {
					pe.Message = e.ExceptionDetails.Exception.Description
				} else {
					pe.Stack = e.ExceptionDetails.Exception.Description
				}
			}
			s.mu.Lock()
			s.pageErrs = append(s.pageErrs, pe)
			s.mu.Unlock()
		},
	)()
}

func remoteObjectText(o *proto.RuntimeRemoteObject) string {
	if o == nil {
		return ""
	}
	if o.Value.Val() != nil {
		return o.Value.String()
	}
	return o.Description
}

// toHeadersMap converts "Name: value" entries to the proto.NetworkHeaders
// type (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(entries []string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(entries))
	for _, e := range entries {
		name, value, ok := strings.Cut(e, ":")
		if !ok {
			continue
		}
		m[strings.TrimSpace(name)] = gson.New(strings.TrimSpace(value))
	}
	return m
}

// categorizeError wraps raw errors into typed AuditErrors so callers can
// map them to exit codes or HTTP statuses.
func categorizeError(err error, msg string) *models.AuditError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewAuditError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewAuditError(models.ErrCodeTimeout, "run canceled", err)
	default:
		return models.NewAuditError(models.ErrCodeNavigation, msg, err)
	}
}
