// Package handler implements the HTTP handlers for the audit API.
package handler

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dredding8/malibu-ui-private/audit"
	"github.com/dredding8/malibu-ui-private/browser"
	"github.com/dredding8/malibu-ui-private/config"
	"github.com/dredding8/malibu-ui-private/models"
	"github.com/dredding8/malibu-ui-private/webhook"
)

// Runs counts audits currently holding a browser. Shared between the audit
// handler and the health endpoint.
type Runs struct {
	n atomic.Int64
}

// Active returns the current number of in-flight audits.
func (r *Runs) Active() int { return int(r.n.Load()) }

// Audit returns a handler for POST /api/v1/audit.
//
// Each request launches its own browser, runs the full audit and tears the
// browser down again. Navigation failure or timeout yields an error response
// with no report.
func Audit(cfg *config.Config, runs *Runs) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		var req models.AuditRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.AuditResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		req.Defaults()

		runs.n.Add(1)
		defer runs.n.Add(-1)

		browserCfg := cfg.Browser
		browserCfg.Stealth = browserCfg.Stealth || req.Stealth

		auditCfg := cfg.Audit
		auditCfg.NavTimeout = time.Duration(req.Timeout) * time.Second

		session, err := browser.NewSession(browserCfg)
		if err != nil {
			respondError(c, err, models.TimingInfo{
				TotalMs: time.Since(totalStart).Milliseconds(),
			})
			return
		}
		defer session.Close()

		runner := audit.NewRunner(session, auditCfg, cfg.Inspect.ComponentPrefix)
		rep, err := runner.Run(c.Request.Context(), req.URL, audit.Options{
			Screenshots:      req.Screenshots,
			SkipInteractions: req.SkipInteractions,
			SkipJourney:      req.SkipJourney,
			ScreenshotDir:    req.ScreenshotDir,
		})

		totalMs := time.Since(totalStart).Milliseconds()
		if err != nil {
			notifyWebhook(cfg, "audit.failed", req.URL, err.Error())
			respondError(c, err, models.TimingInfo{TotalMs: totalMs})
			return
		}
		notifyWebhook(cfg, "audit.completed", req.URL, rep)

		navMs := int64(rep.Performance.TotalLoadMs)
		c.JSON(http.StatusOK, models.AuditResponse{
			Success: true,
			Report:  rep,
			Timing: models.TimingInfo{
				TotalMs:      totalMs,
				NavigationMs: navMs,
				AnalysisMs:   totalMs - navMs,
			},
		})
	}
}

// notifyWebhook fires an audit lifecycle event when a webhook URL is
// configured. Delivery is asynchronous and never blocks the response.
func notifyWebhook(cfg *config.Config, eventType, targetURL string, data interface{}) {
	if cfg.Webhook.URL == "" {
		return
	}
	webhook.DeliverAsync(cfg.Webhook.URL, cfg.Webhook.Secret, &webhook.Event{
		Type:      eventType,
		URL:       targetURL,
		Timestamp: time.Now().Unix(),
		Data:      data,
	})
}

// respondError maps an AuditError to the correct HTTP status code and writes
// a structured JSON error response.
func respondError(c *gin.Context, err error, timing models.TimingInfo) {
	auditErr, ok := err.(*models.AuditError)
	if !ok {
		auditErr = models.NewAuditError(models.ErrCodeInternal, err.Error(), err)
	}

	c.JSON(mapErrorToStatus(auditErr), models.AuditResponse{
		Success: false,
		Error:   auditErr.ToDetail(),
		Timing:  timing,
	})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.AuditError) int {
	switch e.Code {
	case models.ErrCodeTimeout:
		return http.StatusGatewayTimeout // 504
	case models.ErrCodeNavigation:
		return http.StatusBadGateway // 502
	case models.ErrCodeSnapshot:
		return http.StatusBadGateway // 502
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	default:
		return http.StatusInternalServerError // 500
	}
}
