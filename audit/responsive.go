package audit

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/dredding8/malibu-ui-private/browser"
	"github.com/dredding8/malibu-ui-private/models"
)

const viewportSettle = 1 * time.Second

// viewportPreset is one emulated device size.
type viewportPreset struct {
	Name   string
	Width  int
	Height int
}

var responsivePresets = []viewportPreset{
	{Name: "mobile", Width: 375, Height: 667},
	{Name: "tablet", Width: 768, Height: 1024},
	{Name: "desktop", Width: 1280, Height: 720},
}

// CheckResponsive resizes the page through each preset and flags viewports
// where the body overflows horizontally. The original viewport is restored
// before returning.
func CheckResponsive(s *browser.Session, origWidth, origHeight int, screenshotDir string, screenshots bool) ([]models.ViewportResult, error) {
	results := make([]models.ViewportResult, 0, len(responsivePresets))

	for _, preset := range responsivePresets {
		if err := s.SetViewport(preset.Width, preset.Height); err != nil {
			return results, err
		}
		time.Sleep(viewportSettle)

		res, err := s.Page().Eval(`() => ({
			contentWidth: document.body.scrollWidth,
			viewportWidth: window.innerWidth
		})`)
		if err != nil {
			return results, err
		}

		vr := models.ViewportResult{
			Name:          preset.Name,
			Width:         preset.Width,
			Height:        preset.Height,
			ContentWidth:  res.Value.Get("contentWidth").Int(),
			ViewportWidth: res.Value.Get("viewportWidth").Int(),
		}
		vr.HasLayoutIssues = vr.ContentWidth > vr.ViewportWidth

		if vr.HasLayoutIssues {
			slog.Warn("horizontal overflow detected", "viewport", preset.Name,
				"content_width", vr.ContentWidth, "viewport_width", vr.ViewportWidth)
		}

		if screenshots {
			path := filepath.Join(screenshotDir, fmt.Sprintf("responsive-%s.png", preset.Name))
			if err := s.Screenshot(path, false); err != nil {
				slog.Warn("responsive screenshot failed", "path", path, "error", err)
			}
		}

		results = append(results, vr)
	}

	if err := s.SetViewport(origWidth, origHeight); err != nil {
		return results, err
	}
	return results, nil
}
