package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod/lib/proto"
)

// elementWait bounds how long an element screenshot waits for its selector.
const elementWait = 10 * time.Second

// Screenshot captures the page as PNG and writes it to path. Screenshot
// files are overwritten per run.
func (s *Session) Screenshot(path string, fullPage bool) error {
	data, err := s.page.Screenshot(fullPage, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return fmt.Errorf("screenshot %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("screenshot %s: %w", path, err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// ElementScreenshot waits for the selector to appear and captures just that
// element. Returns an error when the element never shows up.
func (s *Session) ElementScreenshot(selector, path string) error {
	el, err := s.page.Timeout(elementWait).Element(selector)
	if err != nil {
		return fmt.Errorf("element screenshot %q: %w", selector, err)
	}
	data, err := el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return fmt.Errorf("element screenshot %q: %w", selector, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("element screenshot %s: %w", path, err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
