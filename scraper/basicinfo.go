package scraper

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"linkedinsights/utils"
)

// BasicInfo holds the scalar profile fields of a company page. Each field
// is resolved independently; anything that cannot be extracted keeps its
// zero value.
type BasicInfo struct {
	Name           string
	ProfilePicURL  string
	Description    string
	Website        string
	Industry       string
	FollowersCount int
	EmployeesCount int
	EmployeesText  string
	Specialities   string
}

// A textRule is one step of an ordered fallback chain: it returns a
// candidate value or an empty string when the rule does not apply. The
// first qualifying value wins and later rules are not attempted.
type textRule func(doc *goquery.Document) string

// Name rules, in priority order. Every candidate is split on "|" and the
// first segment trimmed, so "Acme Corp | LinkedIn" resolves to "Acme Corp".
var nameRules = []textRule{
	func(doc *goquery.Document) string {
		return firstSegment(doc.Find("h1").First().Text())
	},
	func(doc *goquery.Document) string {
		content, _ := doc.Find("meta[property='og:title']").Attr("content")
		return firstSegment(content)
	},
	func(doc *goquery.Document) string {
		return firstSegment(doc.Find("title").First().Text())
	},
}

// Description rules. A candidate only qualifies when longer than 20
// characters; shorter strings are usually navigation debris.
var descriptionRules = []textRule{
	func(doc *goquery.Document) string {
		return utils.CleanText(findByClass(doc, "p", descriptionKeywords).Text())
	},
	func(doc *goquery.Document) string {
		content, _ := doc.Find("meta[name='description']").Attr("content")
		return content
	},
	func(doc *goquery.Document) string {
		content, _ := doc.Find("meta[property='og:description']").Attr("content")
		return content
	},
}

var (
	descriptionKeywords = []string{"description", "about"}
	logoKeywords        = []string{"logo"}
)

// followerPatterns are tried in order against the full page text; the
// first match wins. Decimal-suffix forms come before their integer
// counterparts so "1.2M followers" is not misread as "2M followers".
var followerPatterns = []struct {
	re         *regexp.Regexp
	multiplier float64
}{
	{regexp.MustCompile(`(?i)(\d{1,3}(?:,\d{3})+)\s*followers?`), 1},
	{regexp.MustCompile(`(?i)(\d+)\s*followers?`), 1},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*K\s*followers?`), 1000},
	{regexp.MustCompile(`(?i)(\d+\.\d+)\s*M\s*followers?`), 1000000},
	{regexp.MustCompile(`(?i)(\d+)\s*M\s*followers?`), 1000000},
}

var (
	employeeRangePattern = regexp.MustCompile(`(?i)(\d+)\s*-\s*(\d+)\s+employees?`)
	employeePlusPattern  = regexp.MustCompile(`(?i)(\d+)\+\s+employees?`)
	employeePlainPattern = regexp.MustCompile(`(?i)(\d+)\s+employees?`)
)

var industryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)industry[:\s]+([^\n\r]+)`),
	regexp.MustCompile(`(?i)sector[:\s]+([^\n\r]+)`),
}

var specialitiesPattern = regexp.MustCompile(`(?i)speciali?ties[:\s]+([^\n\r]+)`)

// extractBasicInfo resolves every scalar field via its fallback chain. A
// fault anywhere in here degrades to the identifier-derived defaults; this
// is the only path that guarantees the caller a non-nil snapshot even when
// field extraction fails completely.
func extractBasicInfo(doc *goquery.Document, pageID string) (info BasicInfo) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("basic info extraction failed", "page_id", pageID, "panic", r)
			info = fallbackBasicInfo(pageID)
		}
	}()

	for _, rule := range nameRules {
		if name := rule(doc); name != "" {
			info.Name = name
			break
		}
	}
	if info.Name == "" {
		info.Name = nameFromPageID(pageID)
	}

	info.ProfilePicURL = extractProfileImage(doc, info.Name)

	for _, rule := range descriptionRules {
		if desc := rule(doc); len(desc) > 20 {
			info.Description = truncate(desc, MaxDescriptionLen)
			break
		}
	}

	pageText := doc.Text()

	for _, p := range followerPatterns {
		match := p.re.FindStringSubmatch(pageText)
		if match == nil {
			continue
		}
		num, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", ""), 64)
		if err != nil {
			continue
		}
		info.FollowersCount = int(num * p.multiplier)
		break
	}

	// Text and count always come from the same match so they cannot
	// drift apart.
	if match := employeeRangePattern.FindStringSubmatch(pageText); match != nil {
		info.EmployeesText = match[1] + "-" + match[2]
		info.EmployeesCount, _ = strconv.Atoi(match[2])
	} else if match := employeePlusPattern.FindStringSubmatch(pageText); match != nil {
		info.EmployeesText = match[1] + "+"
		info.EmployeesCount, _ = strconv.Atoi(match[1])
	} else if match := employeePlainPattern.FindStringSubmatch(pageText); match != nil {
		info.EmployeesText = match[1]
		info.EmployeesCount, _ = strconv.Atoi(match[1])
	}

	for _, pattern := range industryPatterns {
		if match := pattern.FindStringSubmatch(pageText); match != nil {
			info.Industry = truncate(strings.TrimSpace(match[1]), MaxIndustryLen)
			break
		}
	}
	if info.Industry == "" {
		if keywords := doc.Find("meta[name='keywords']"); keywords.Length() > 0 {
			content := keywords.AttrOr("content", "Not Specified")
			info.Industry = truncate(content, MaxIndustryLen)
		}
	}

	if match := specialitiesPattern.FindStringSubmatch(pageText); match != nil {
		info.Specialities = truncate(strings.TrimSpace(match[1]), MaxDescriptionLen)
	}

	info.Website = extractWebsite(doc)

	return info
}

// fallbackBasicInfo is the all-default record used when extraction faults
// at the stage level.
func fallbackBasicInfo(pageID string) BasicInfo {
	return BasicInfo{Name: nameFromPageID(pageID)}
}

// extractProfileImage tries, in order: an image whose class looks like a
// logo, an image whose alt text matches the resolved company name, and the
// open-graph image. Only absolute URLs qualify.
func extractProfileImage(doc *goquery.Document, name string) string {
	if src := findByClass(doc, "img", logoKeywords).AttrOr("src", ""); strings.Contains(src, "http") {
		return src
	}

	var altMatch string
	lowerName := strings.ToLower(name)
	doc.Find("img").EachWithBreak(func(i int, s *goquery.Selection) bool {
		alt := strings.ToLower(s.AttrOr("alt", ""))
		if alt == "" || lowerName == "" || !strings.Contains(alt, lowerName) {
			return true
		}
		if src := s.AttrOr("src", ""); strings.Contains(src, "http") {
			altMatch = src
			return false
		}
		return true
	})
	if altMatch != "" {
		return altMatch
	}

	if content := doc.Find("meta[property='og:image']").AttrOr("content", ""); strings.Contains(content, "http") {
		return content
	}

	return ""
}

// extractWebsite returns the first external absolute link on the page
func extractWebsite(doc *goquery.Document) string {
	var website string
	doc.Find("a[href]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		href := s.AttrOr("href", "")
		if strings.Contains(href, "http") && !strings.Contains(href, "linkedin.com") && len(href) < 200 {
			website = href
			return false
		}
		return true
	})
	return website
}

// findByClass returns the first element matching the tag selector whose
// class attribute contains any of the keywords, case-insensitively.
func findByClass(doc *goquery.Document, selector string, keywords []string) *goquery.Selection {
	result := doc.Find(selector).Slice(0, 0)
	doc.Find(selector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		if classMatches(s, keywords) {
			result = s
			return false
		}
		return true
	})
	return result
}

// classMatches reports whether the selection's class attribute contains
// any of the given lowercase keywords.
func classMatches(s *goquery.Selection, keywords []string) bool {
	class, ok := s.Attr("class")
	if !ok {
		return false
	}
	class = strings.ToLower(class)
	for _, kw := range keywords {
		if strings.Contains(class, kw) {
			return true
		}
	}
	return false
}

// firstSegment trims a candidate name down to the part before any "|"
// separator, as page titles commonly carry a " | LinkedIn" suffix.
func firstSegment(text string) string {
	segment, _, _ := strings.Cut(text, "|")
	return strings.TrimSpace(segment)
}

// nameFromPageID derives a display name from the page identifier, e.g.
// "acme-corp" -> "Acme Corp".
func nameFromPageID(pageID string) string {
	cleaned := strings.NewReplacer("-", " ", "_", " ").Replace(pageID)
	words := strings.Fields(cleaned)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		if len(runes) > 0 {
			runes[0] = unicode.ToUpper(runes[0])
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
