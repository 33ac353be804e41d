package scraper

import (
	"fmt"
	"log/slog"
	"time"

	"linkedinsights/browser"
)

const pageURLTemplate = "https://www.linkedin.com/company/%s/"

// PageURL builds the canonical company page URL for a page ID
func PageURL(pageID string) string {
	return fmt.Sprintf(pageURLTemplate, pageID)
}

// loadPage navigates to the company page and captures the rendered markup.
// The pause after navigation is a fixed jitter budget to let the initial
// render settle; no readiness condition is checked.
func (s *Scraper) loadPage(sess *browser.Session, pageID string) (string, error) {
	if err := sess.Navigate(PageURL(pageID)); err != nil {
		return "", err
	}
	s.delay.Sleep(3*time.Second, 5*time.Second)
	return sess.HTML()
}

// triggerLazyContent scrolls through the page in five steps of increasing
// depth, pausing between steps so lazily loaded posts and people sections
// get a chance to render. Scrolling is best effort: a failure stops the
// remaining steps but never fails the scrape.
func (s *Scraper) triggerLazyContent(sess *browser.Session) {
	const steps = 5
	for i := 1; i <= steps; i++ {
		if err := sess.ScrollToFraction(i, steps); err != nil {
			slog.Debug("scroll step failed", "step", i, "error", err)
			return
		}
		s.delay.Sleep(1*time.Second, 2*time.Second)
	}
}
