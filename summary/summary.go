// Package summary generates narrative company summaries from assembled
// page records, using the Groq chat-completions API when a key is
// configured and a deterministic template otherwise.
package summary

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"linkedinsights/store"
	"linkedinsights/utils"
)

const (
	groqEndpoint = "https://api.groq.com/openai/v1/chat/completions"
	groqModel    = "llama-3.3-70b-versatile"
)

// Generator produces summaries. A zero API key makes every call fall back
// to the mock template.
type Generator struct {
	apiKey string
	client *resty.Client
}

func NewGenerator(apiKey string) *Generator {
	return &Generator{
		apiKey: apiKey,
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate returns a 2-3 paragraph summary of the page. API failures fall
// back to the mock summary so callers always get text.
func (g *Generator) Generate(page *store.Page) string {
	if g.apiKey == "" {
		slog.Warn("no Groq API key configured, using mock summary")
		return MockSummary(page)
	}

	var result chatResponse
	resp, err := g.client.R().
		SetAuthToken(g.apiKey).
		SetBody(chatRequest{
			Model:       groqModel,
			Messages:    []chatMessage{{Role: "user", Content: BuildPrompt(page)}},
			MaxTokens:   500,
			Temperature: 0.7,
		}).
		SetResult(&result).
		Post(groqEndpoint)
	if err != nil || resp.IsError() || len(result.Choices) == 0 {
		slog.Error("summary generation failed, falling back to mock", "error", err)
		return MockSummary(page)
	}

	return result.Choices[0].Message.Content
}

// BuildPrompt assembles the analysis prompt from page fields and a sample
// of recent post content.
func BuildPrompt(page *store.Page) string {
	var posts strings.Builder
	for i, post := range page.Posts {
		if i >= 5 {
			break
		}
		if post.Content == "" {
			continue
		}
		content := post.Content
		if len([]rune(content)) > 100 {
			content = string([]rune(content)[:100])
		}
		posts.WriteString(content)
		posts.WriteString("\n")
	}

	postsSection := ""
	if posts.Len() > 0 {
		postsSection = "\n\nRecent Posts:\n" + posts.String()
	}

	return fmt.Sprintf(`Analyze this LinkedIn company profile and provide a professional, concise 2-3 paragraph summary:

Company Name: %s
Description: %s
Industry: %s
Followers: %s
Employees Found: %d
Website: %s
Specialties: %s%s

Please provide:
1. A brief overview of what this company does
2. Their market position and size (based on followers/employees)
3. Key insights about their industry and focus areas

Keep it professional and suitable for business analysis.`,
		orDefault(page.Name, "Unknown"),
		orDefault(page.Description, "No description available"),
		orDefault(page.Industry, "Not specified"),
		utils.FormatNumber(page.FollowersCount),
		len(page.Employees),
		orDefault(page.Website, "Not specified"),
		orDefault(page.Specialities, "Not specified"),
		postsSection,
	)
}

// MockSummary builds a summary from page fields alone, used when the API
// is not configured or unavailable.
func MockSummary(page *store.Page) string {
	name := orDefault(page.Name, "This Company")
	industry := orDefault(page.Industry, "Professional Services")
	followers := utils.FormatNumber(page.FollowersCount)
	employees := len(page.Employees)

	var b strings.Builder
	fmt.Fprintf(&b, "%s is a professional organization in the %s sector with %s followers on LinkedIn", name, industry, followers)
	if employees > 0 {
		fmt.Fprintf(&b, " and approximately %d team members featured on the platform", employees)
	}
	b.WriteString(". ")

	if page.Description != "" {
		snippet := page.Description
		if len([]rune(snippet)) > 200 {
			snippet = string([]rune(snippet)[:200]) + "..."
		}
		fmt.Fprintf(&b, "\n\nThe company describes itself as: %s\n\n", snippet)
	} else {
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "Based on their LinkedIn presence, %s maintains an active professional community with regular engagement through posts and updates. ", name)

	switch {
	case page.FollowersCount > 100000:
		fmt.Fprintf(&b, "With %s followers, the company demonstrates a significant industry presence and extensive professional network. ", followers)
	case page.FollowersCount > 10000:
		fmt.Fprintf(&b, "With %s followers, the company shows a solid market presence and growing professional community. ", followers)
	default:
		fmt.Fprintf(&b, "With %s followers, the company is building its professional network and market presence. ", followers)
	}

	switch {
	case employees > 50:
		fmt.Fprintf(&b, "The team of %d+ professionals suggests an established organization with significant operational capacity.", employees)
	case employees > 10:
		fmt.Fprintf(&b, "The team of %d professionals indicates a growing organization with focused expertise.", employees)
	default:
		b.WriteString("The company showcases a lean, focused team dedicated to their mission.")
	}

	return b.String()
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
