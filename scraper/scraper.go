// Package scraper extracts structured company data from rendered LinkedIn
// company pages.
//
// Extraction is fundamentally best effort: the markup is non-contractual,
// so every field is resolved through ordered fallback heuristics and every
// fault below the session level degrades to a default instead of failing
// the scrape. The only way a scrape yields no result is a session-level
// fault (browser launch failure or navigation timeout).
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"linkedinsights/browser"
	"linkedinsights/delay"
)

// Scraper drives one rendering session per Scrape call. It holds no state
// between calls; concurrent scrapes each acquire their own session.
type Scraper struct {
	opts  browser.Options
	delay delay.Provider
	now   func() time.Time
}

// New creates a scraper. A nil delay provider gets the production jitter
// implementation.
func New(opts browser.Options, d delay.Provider) *Scraper {
	if d == nil {
		d = delay.Jitter{}
	}
	return &Scraper{opts: opts, delay: d, now: time.Now}
}

// Scrape renders the company page for pageID and extracts a PageSnapshot.
// An error is returned only for session-level faults; all extraction
// faults degrade to empty defaults inside the snapshot. The returned
// snapshot is owned by the caller.
func (s *Scraper) Scrape(ctx context.Context, pageID string) (*PageSnapshot, error) {
	sess, err := browser.NewSession(ctx, s.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire browser session: %w", err)
	}
	defer sess.Close()

	url := PageURL(pageID)
	slog.Info("scraping company page", "url", url)

	html, err := s.loadPage(sess, pageID)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", url, err)
	}

	var info BasicInfo
	if doc, parseErr := goquery.NewDocumentFromReader(strings.NewReader(html)); parseErr == nil {
		info = extractBasicInfo(doc, pageID)
	} else {
		slog.Error("markup unparsable, using defaults", "page_id", pageID, "error", parseErr)
		info = fallbackBasicInfo(pageID)
	}

	// Second pass: scroll to surface lazily loaded posts and people
	// sections, then re-capture the markup.
	s.triggerLazyContent(sess)
	if scrolled, htmlErr := sess.HTML(); htmlErr == nil {
		html = scrolled
	} else {
		slog.Debug("re-capture after scrolling failed, reusing first pass", "error", htmlErr)
	}

	var posts []PostRecord
	var employees []EmployeeRecord
	if doc, parseErr := goquery.NewDocumentFromReader(strings.NewReader(html)); parseErr == nil {
		posts = extractPosts(doc)
		employees = extractEmployees(doc)
	}

	snapshot := &PageSnapshot{
		ID:             pageID,
		URL:            url,
		Name:           info.Name,
		ProfilePicURL:  info.ProfilePicURL,
		Description:    info.Description,
		Website:        info.Website,
		Industry:       info.Industry,
		FollowersCount: info.FollowersCount,
		EmployeesCount: info.EmployeesCount,
		EmployeesText:  info.EmployeesText,
		Specialities:   info.Specialities,
		ScrapedAt:      s.now().UTC(),
		Posts:          posts,
		Employees:      employees,
	}

	slog.Info("scrape finished", "page_id", pageID, "posts", len(posts), "employees", len(employees))
	return snapshot, nil
}
