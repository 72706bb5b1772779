// Package snapshot renders the running dashboard in headless Chrome and saves
// a full-page screenshot.
package snapshot

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"

	"bestseller-dashboard/utils"
)

// readySelector is present once the page has rendered.
const readySelector = "#dashboard"

// Capturer drives a headless browser against a dashboard URL.
type Capturer struct {
	chromeBin string
	timeout   time.Duration
	logger    *utils.Logger
	retry     *utils.RetryConfig
}

// New creates a Capturer. An empty chromeBin falls back to CHROME_BIN and then
// to the usual install locations.
func New(chromeBin string, maxRetries int, logger *utils.Logger) *Capturer {
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	return &Capturer{
		chromeBin: chromeBin,
		timeout:   60 * time.Second,
		logger:    logger,
		retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Capture loads url, waits for the dashboard to render and writes a PNG of the
// whole page to outPath. Intermediate directories are created.
func (c *Capturer) Capture(ctx context.Context, url, outPath string) error {
	c.logger.Info("[snapshot] Using browser binary: %s", c.binaryLabel())

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1280, 900),
	)
	if c.chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(c.chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	var buf []byte
	err := c.retry.Do(ctx, "snapshot "+url, func() error {
		runCtx, cancel := context.WithTimeout(browserCtx, c.timeout)
		defer cancel()

		return chromedp.Run(runCtx,
			chromedp.Navigate(url),
			chromedp.WaitVisible(readySelector, chromedp.ByQuery),
			chromedp.FullScreenshot(&buf, 100),
		)
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("snapshot: create output dir: %w", err)
	}
	if err := os.WriteFile(outPath, buf, 0644); err != nil {
		return fmt.Errorf("snapshot: write %q: %w", outPath, err)
	}

	c.logger.Info("[snapshot] Saved %d bytes to %s", len(buf), outPath)
	return nil
}

func (c *Capturer) binaryLabel() string {
	if c.chromeBin == "" {
		return "chromedp default"
	}
	return c.chromeBin
}

func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	for _, name := range []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	for _, p := range []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
