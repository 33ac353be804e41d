package scraper

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"linkedinsights/utils"
)

const linkedinOrigin = "https://www.linkedin.com"

var (
	employeeClassKeywords = []string{"employee", "people", "member", "profile"}
	nameClassKeywords     = []string{"name", "title"}
	headlineClassKeywords = []string{"headline", "title", "occupation"}

	profilePathPattern = regexp.MustCompile(`/in/`)
	letterPattern      = regexp.MustCompile(`[a-zA-Z]`)
)

// extractEmployees collects up to MaxEmployees qualifying person fragments
// in document order, with the same fault isolation as extractPosts.
func extractEmployees(doc *goquery.Document) (employees []EmployeeRecord) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("employee extraction failed", "panic", r)
			employees = nil
		}
	}()

	doc.Find("li, div, article").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if !classMatches(s, employeeClassKeywords) {
			return true
		}
		if emp, ok := parseEmployee(s, len(employees)); ok {
			employees = append(employees, emp)
		}
		return len(employees) < MaxEmployees
	})

	slog.Debug("extracted employees", "count", len(employees))
	return employees
}

func parseEmployee(s *goquery.Selection, ordinal int) (emp EmployeeRecord, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("skipping unparsable employee candidate", "ordinal", ordinal, "panic", r)
			ok = false
		}
	}()

	nameSel := findChildByClass(s, "span, h3, h4, a", nameClassKeywords)
	if nameSel.Length() == 0 {
		nameSel = findProfileLink(s)
	}
	if nameSel.Length() == 0 {
		return EmployeeRecord{}, false
	}

	name := utils.CleanText(nameSel.Text())
	if !nameQualifies(name) {
		return EmployeeRecord{}, false
	}

	headline := "Employee"
	if headlineSel := findChildByClass(s, "p, div, span", headlineClassKeywords); headlineSel.Length() > 0 {
		if text := utils.CleanText(headlineSel.Text()); text != "" {
			headline = truncate(text, MaxHeadlineLen)
		}
	}

	profileURL := ""
	if link := findProfileLink(s); link.Length() > 0 {
		href := link.AttrOr("href", "")
		switch {
		case strings.HasPrefix(href, "http"):
			profileURL = href
		case strings.HasPrefix(href, "/"):
			profileURL = linkedinOrigin + href
		}
	}

	return EmployeeRecord{
		ID:         syntheticID("emp", ordinal, name+"|"+profileURL),
		Name:       name,
		Headline:   headline,
		ProfileURL: profileURL,
	}, true
}

// nameQualifies accepts names of 3 to 99 characters containing at least
// one letter, filtering out counters and icon glyphs that land in name
// slots.
func nameQualifies(name string) bool {
	n := len([]rune(name))
	return n >= MinNameLen && n <= MaxNameLen && letterPattern.MatchString(name)
}

// findChildByClass is the descendant counterpart of findByClass
func findChildByClass(root *goquery.Selection, selector string, keywords []string) *goquery.Selection {
	result := root.Find(selector).Slice(0, 0)
	root.Find(selector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		if classMatches(s, keywords) {
			result = s
			return false
		}
		return true
	})
	return result
}

// findProfileLink returns the first anchor pointing at a personal profile
// path.
func findProfileLink(root *goquery.Selection) *goquery.Selection {
	result := root.Find("a").Slice(0, 0)
	root.Find("a[href]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if profilePathPattern.MatchString(s.AttrOr("href", "")) {
			result = s
			return false
		}
		return true
	})
	return result
}
