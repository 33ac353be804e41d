// Package enrich augments a scraped company profile with metadata pulled
// from the company's own website.
package enrich

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"linkedinsights/cache"
	"linkedinsights/fetch"
	"linkedinsights/utils"
)

// WebsiteInfo holds metadata extracted from a company website's landing
// page.
type WebsiteInfo struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

const websiteTTL = 12 * time.Hour

// Website fetches the company website and extracts its title and meta
// description. Results are memoized since landing pages change rarely.
// Enrichment is best effort; callers treat errors as "no website info".
func Website(c *cache.Cache, websiteURL string) (WebsiteInfo, error) {
	if websiteURL == "" {
		return WebsiteInfo{}, fmt.Errorf("no website URL to enrich")
	}

	return cache.Memoize(c, "website:"+websiteURL, websiteTTL, func() (WebsiteInfo, error) {
		body, err := fetch.Get(websiteURL)
		if err != nil {
			slog.Debug("website fetch failed", "url", websiteURL, "error", err)
			return WebsiteInfo{}, err
		}

		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
		if err != nil {
			return WebsiteInfo{}, fmt.Errorf("failed to parse website HTML: %w", err)
		}

		info := WebsiteInfo{
			URL:   websiteURL,
			Title: utils.CleanText(doc.Find("title").First().Text()),
		}
		if content, ok := doc.Find("meta[name='description']").Attr("content"); ok {
			info.Description = strings.TrimSpace(content)
		}
		if info.Description == "" {
			if content, ok := doc.Find("meta[property='og:description']").Attr("content"); ok {
				info.Description = strings.TrimSpace(content)
			}
		}

		return info, nil
	})
}
