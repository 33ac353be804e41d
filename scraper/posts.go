package scraper

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"linkedinsights/utils"
)

var postClassKeywords = []string{"feed", "post", "update", "share"}

// minPostTextLen is the qualification threshold for a post candidate.
// Strictly greater than: a 50 character fragment is still noise.
const minPostTextLen = 50

var (
	likesPattern    = regexp.MustCompile(`(\d+)\s*(?:like|reaction)`)
	commentsPattern = regexp.MustCompile(`(\d+)\s*comment`)
	sharesPattern   = regexp.MustCompile(`(\d+)\s*share`)
)

// extractPosts collects up to MaxPosts qualifying post fragments in
// document order. A fault while parsing one candidate drops only that
// candidate; a fault at the stage level yields an empty list.
func extractPosts(doc *goquery.Document) (posts []PostRecord) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("post extraction failed", "panic", r)
			posts = nil
		}
	}()

	doc.Find("article, div").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if !classMatches(s, postClassKeywords) {
			return true
		}
		if post, ok := parsePost(s, len(posts)); ok {
			posts = append(posts, post)
		}
		return len(posts) < MaxPosts
	})

	slog.Debug("extracted posts", "count", len(posts))
	return posts
}

// parsePost qualifies and parses one candidate container. ok is false when
// the candidate does not qualify or its parse faulted.
func parsePost(s *goquery.Selection, ordinal int) (post PostRecord, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("skipping unparsable post candidate", "ordinal", ordinal, "panic", r)
			ok = false
		}
	}()

	content := utils.CleanText(s.Text())
	if len([]rune(content)) <= minPostTextLen {
		return PostRecord{}, false
	}

	lower := strings.ToLower(content)

	post = PostRecord{
		ID:      syntheticID("post", ordinal, content),
		Content: truncate(content, MaxContentLen),
	}
	if match := likesPattern.FindStringSubmatch(lower); match != nil {
		post.LikesCount, _ = strconv.Atoi(match[1])
	}
	if match := commentsPattern.FindStringSubmatch(lower); match != nil {
		post.CommentsCount, _ = strconv.Atoi(match[1])
	}
	if match := sharesPattern.FindStringSubmatch(lower); match != nil {
		post.SharesCount, _ = strconv.Atoi(match[1])
	}

	return post, true
}
