package audit

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod/lib/proto"

	"github.com/dredding8/malibu-ui-private/browser"
	"github.com/dredding8/malibu-ui-private/models"
)

const (
	journeyClickSettle = 1 * time.Second
	journeyBackSettle  = 500 * time.Millisecond
)

// collectNavLinks pulls up to max anchors that stay within the app: absolute
// http(s) and mailto hrefs are external and excluded.
func collectNavLinks(s *browser.Session, max int) ([]models.JourneyResult, error) {
	res, err := s.Page().Eval(`() => {
		return Array.from(document.querySelectorAll('a')).map(a => ({
			text: (a.textContent || '').trim(),
			href: a.getAttribute('href') || ''
		}));
	}`)
	if err != nil {
		return nil, err
	}

	var links []models.JourneyResult
	for _, item := range res.Value.Arr() {
		href := item.Get("href").Str()
		if href == "" || strings.HasPrefix(href, "http") || strings.HasPrefix(href, "mailto:") {
			continue
		}
		links = append(links, models.JourneyResult{
			Index: len(links) + 1,
			Text:  truncate(item.Get("text").Str(), maxTextLen),
			Href:  href,
		})
		if len(links) >= max {
			break
		}
	}
	return links, nil
}

// ProbeJourney clicks up to maxLinks in-app navigation links one at a time,
// verifying each click actually changed the URL and returning to the origin
// page before the next. Screenshot capture is optional.
func ProbeJourney(s *browser.Session, maxLinks int, screenshotDir string, screenshots bool) ([]models.JourneyResult, error) {
	startURL := s.CurrentURL()

	links, err := collectNavLinks(s, maxLinks)
	if err != nil {
		return nil, err
	}

	for i := range links {
		link := &links[i]
		slog.Info("journey step", "index", link.Index, "text", link.Text, "href", link.Href)

		sel := fmt.Sprintf(`a[href=%q]`, link.Href)
		el, err := s.Page().Timeout(5 * time.Second).Element(sel)
		if err != nil {
			link.Error = truncate(err.Error(), maxErrorLen)
			continue
		}

		if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
			link.Error = truncate(err.Error(), maxErrorLen)
			continue
		}
		time.Sleep(journeyClickSettle)

		afterURL := s.CurrentURL()
		if afterURL == "" || afterURL == startURL {
			link.Error = "url did not change"
			continue
		}
		link.Navigated = true

		if screenshots {
			path := filepath.Join(screenshotDir, fmt.Sprintf("navigation-%d.png", link.Index))
			if err := s.Screenshot(path, false); err != nil {
				slog.Warn("journey screenshot failed", "path", path, "error", err)
			} else {
				link.Screenshot = path
			}
		}

		if err := s.NavigateBack(); err != nil {
			slog.Warn("navigate back failed", "error", err)
		}
		time.Sleep(journeyBackSettle)
	}

	return links, nil
}
