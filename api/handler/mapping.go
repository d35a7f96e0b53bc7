package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dredding8/malibu-ui-private/cache"
	"github.com/dredding8/malibu-ui-private/config"
	"github.com/dredding8/malibu-ui-private/inspect"
	"github.com/dredding8/malibu-ui-private/models"
	"github.com/dredding8/malibu-ui-private/report"
)

// Map returns a handler for POST /api/v1/map.
//
// The target URL is fetched once and analyzed as a static snapshot; no
// browser is involved. The response carries both the structured findings
// and the rendered markdown section. Mapping is deterministic per snapshot,
// so responses are served from cache while fresh.
func Map(cfg *config.Config, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		var req models.MapRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.MapResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		req.Defaults()

		cacheKey := cache.Key(req.URL, req.Page)
		if cc != nil {
			if cached, hit := cc.Get(cacheKey); hit {
				cached.Timing = models.TimingInfo{
					TotalMs: time.Since(totalStart).Milliseconds(),
				}
				c.JSON(http.StatusOK, cached)
				return
			}
		}

		navStart := time.Now()
		snap, err := inspect.LoadSnapshot(c.Request.Context(), req.URL)
		navMs := time.Since(navStart).Milliseconds()
		if err != nil {
			respondMapError(c, err, models.TimingInfo{
				TotalMs:      time.Since(totalStart).Milliseconds(),
				NavigationMs: navMs,
			})
			return
		}

		plan := inspect.DashboardPlan()
		if req.Page == "history" {
			plan = inspect.HistoryPlan()
		}

		cls := inspect.NewClassifier(cfg.Inspect.ComponentPrefix)
		pm, err := inspect.MapPage(snap, plan, cls)
		if err != nil {
			respondMapError(c, err, models.TimingInfo{
				TotalMs:      time.Since(totalStart).Milliseconds(),
				NavigationMs: navMs,
			})
			return
		}

		totalMs := time.Since(totalStart).Milliseconds()
		resp := models.MapResponse{
			Success:  true,
			Findings: pm.Findings,
			Markdown: report.RenderPageMap(pm),
			Timing: models.TimingInfo{
				TotalMs:      totalMs,
				NavigationMs: navMs,
				AnalysisMs:   totalMs - navMs,
			},
		}

		if cc != nil {
			stored := resp
			cc.Set(cacheKey, &stored)
		}

		c.JSON(http.StatusOK, resp)
	}
}

func respondMapError(c *gin.Context, err error, timing models.TimingInfo) {
	auditErr, ok := err.(*models.AuditError)
	if !ok {
		auditErr = models.NewAuditError(models.ErrCodeInternal, err.Error(), err)
	}

	c.JSON(mapErrorToStatus(auditErr), models.MapResponse{
		Success: false,
		Error:   auditErr.ToDetail(),
		Timing:  timing,
	})
}
