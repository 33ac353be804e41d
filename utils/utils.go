// Package utils provides URL and text helpers shared across the service
package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var pageIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/company/([a-zA-Z0-9\-]+)`),
	regexp.MustCompile(`/in/([a-zA-Z0-9\-]+)`),
	regexp.MustCompile(`linkedin\.com/company/([a-zA-Z0-9\-]+)`),
	regexp.MustCompile(`linkedin\.com/in/([a-zA-Z0-9\-]+)`),
}

var validURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`linkedin\.com/company/[a-zA-Z0-9\-]+`),
	regexp.MustCompile(`linkedin\.com/in/[a-zA-Z0-9\-]+`),
	regexp.MustCompile(`^[a-zA-Z0-9\-]+$`),
}

// ExtractPageID extracts a LinkedIn page ID from a URL. Both company pages
// and personal profiles are supported, and a bare ID is passed through:
//
//	https://www.linkedin.com/company/deepsolv -> deepsolv
//	https://www.linkedin.com/in/aldrin-thomas/ -> aldrin-thomas
//	deepsolv -> deepsolv
//
// Returns an empty string when no ID can be extracted.
func ExtractPageID(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	if !strings.Contains(rawURL, "/") && !strings.Contains(rawURL, "linkedin.com") {
		return strings.ToLower(strings.TrimSpace(rawURL))
	}

	for _, pattern := range pageIDPatterns {
		if match := pattern.FindStringSubmatch(rawURL); match != nil {
			return strings.ToLower(strings.TrimSpace(match[1]))
		}
	}

	return ""
}

// ValidateURL reports whether the input is a LinkedIn company page URL, a
// personal profile URL, or a bare page ID.
func ValidateURL(rawURL string) bool {
	if rawURL == "" {
		return false
	}

	for _, pattern := range validURLPatterns {
		if pattern.MatchString(rawURL) {
			return true
		}
	}

	return false
}

// CleanText collapses all whitespace runs into single spaces
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "\t", " ")

	for strings.Contains(text, "  ") {
		text = strings.ReplaceAll(text, "  ", " ")
	}

	return strings.TrimSpace(text)
}

// FormatNumber formats large counts for display (e.g. 1500 -> "1.5K")
func FormatNumber(num int) string {
	if num <= 0 {
		return "0"
	}

	switch {
	case num >= 1000000:
		return fmt.Sprintf("%.1fM", float64(num)/1000000)
	case num >= 1000:
		return fmt.Sprintf("%.1fK", float64(num)/1000)
	}
	return strconv.Itoa(num)
}
