package scraper

import (
	"fmt"
	"hash/fnv"
	"time"
)

// Bounds applied to every scrape result. These are process-wide constants,
// not tunables: callers can rely on them as hard caps.
const (
	MaxPosts     = 25
	MaxEmployees = 50

	MaxContentLen     = 500
	MaxHeadlineLen    = 200
	MaxDescriptionLen = 1000
	MaxIndustryLen    = 100

	MinNameLen = 3
	MaxNameLen = 99
)

// PageSnapshot is the complete structured record produced by one scrape
// call. It is fully populated before being returned and never mutated
// afterwards; the pipeline keeps no reference to it.
type PageSnapshot struct {
	ID             string           `json:"id"`
	URL            string           `json:"url"`
	Name           string           `json:"name"`
	ProfilePicURL  string           `json:"profile_pic_url"`
	Description    string           `json:"description"`
	Website        string           `json:"website"`
	Industry       string           `json:"industry"`
	FollowersCount int              `json:"followers_count"`
	EmployeesCount int              `json:"employees_count"`
	EmployeesText  string           `json:"employees_text"`
	Specialities   string           `json:"specialities"`
	ScrapedAt      time.Time        `json:"scraped_at"`
	Posts          []PostRecord     `json:"posts"`
	Employees      []EmployeeRecord `json:"employees"`
}

// PostRecord is one post-like fragment recovered from the page
type PostRecord struct {
	ID            string `json:"id"`
	Content       string `json:"content"`
	LikesCount    int    `json:"likes_count"`
	CommentsCount int    `json:"comments_count"`
	SharesCount   int    `json:"shares_count"`
}

// EmployeeRecord is one person-like fragment recovered from the page
type EmployeeRecord struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Headline   string `json:"headline"`
	ProfileURL string `json:"profile_url"`
}

// truncate shortens s to at most max runes. Applying it to an already
// truncated string is a no-op.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// syntheticID builds a stable record ID from the ordinal position and a
// hash of the record's content, so re-scraping unchanged content yields the
// same IDs.
func syntheticID(prefix string, ordinal int, content string) string {
	h := fnv.New32a()
	h.Write([]byte(content))
	return fmt.Sprintf("%s_%d_%08x", prefix, ordinal, h.Sum32())
}
