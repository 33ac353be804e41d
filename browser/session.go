// Package browser provides browser automation functionality
package browser

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/chromedp"
)

const desktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Options configures a rendering session
type Options struct {
	Headless bool
	// Timeout bounds a single page load. Zero means DefaultTimeout.
	Timeout time.Duration
}

// DefaultTimeout is the page-load budget used when Options.Timeout is zero
const DefaultTimeout = 45 * time.Second

// Session owns a single headless browser for the duration of one scrape.
// Sessions are not reentrant and must not be shared between concurrent
// scrapes; each scrape acquires its own and releases it with Close.
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	timeout     time.Duration
}

// NewSession launches a browser with automation-detection countermeasures
// enabled. Failure to launch is fatal to the enclosing scrape.
func NewSession(parent context.Context, opts Options) (*Session, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(desktopUserAgent),
	)
	if p := os.Getenv("CHROME_PATH"); p != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(p))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, allocOpts...)
	ctx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(format string, args ...interface{}) {}))

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	// Start the browser process up front so launch failures surface here
	// rather than on the first navigation.
	initCtx, initCancel := context.WithTimeout(ctx, timeout)
	defer initCancel()
	if err := chromedp.Run(initCtx, chromedp.Navigate("about:blank")); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("failed to initialize browser: %w", err)
	}

	return &Session{
		ctx:         ctx,
		cancel:      cancel,
		allocCancel: allocCancel,
		timeout:     timeout,
	}, nil
}

// Close releases the browser. Safe to call on every exit path.
func (s *Session) Close() {
	s.cancel()
	s.allocCancel()
}

// Navigate loads the given URL, bounded by the session's page-load timeout
func (s *Session) Navigate(url string) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	if err := chromedp.Run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// HTML returns the fully rendered markup of the current page
func (s *Session) HTML() (string, error) {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	var html string
	if err := chromedp.Run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("failed to capture page HTML: %w", err)
	}
	return html, nil
}

// ScrollToFraction scrolls the window to step/steps of the full scrollable
// height, triggering lazy-loaded content.
func (s *Session) ScrollToFraction(step, steps int) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	script := fmt.Sprintf("window.scrollTo(0, document.body.scrollHeight/%d * %d);", steps, step)
	if err := chromedp.Run(ctx, chromedp.Evaluate(script, nil)); err != nil {
		return fmt.Errorf("failed to scroll: %w", err)
	}
	return nil
}
