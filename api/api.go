// Package api exposes the LinkedIn insights service over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"linkedinsights/cache"
	"linkedinsights/enrich"
	"linkedinsights/scraper"
	"linkedinsights/store"
	"linkedinsights/summary"
	"linkedinsights/utils"
)

const version = "1.0.0"

// PageScraper abstracts the scrape pipeline so handlers can be tested
// without a browser.
type PageScraper interface {
	Scrape(ctx context.Context, pageID string) (*scraper.PageSnapshot, error)
}

// Handlers carries the service dependencies into the HTTP layer
type Handlers struct {
	Store     *store.Store
	Scraper   PageScraper
	Summaries *summary.Generator
	Cache     *cache.Cache
}

// Register mounts all API routes on the router
func (h *Handlers) Register(router *mux.Router) {
	router.HandleFunc("/api/health", h.Health).Methods("GET")
	router.HandleFunc("/api/scrape", h.ScrapePage).Methods("POST")
	router.HandleFunc("/api/pages/search", h.SearchPages).Methods("GET")
	router.HandleFunc("/api/pages", h.ListPages).Methods("GET")
	router.HandleFunc("/api/pages/{pageID}/summary", h.GetSummary).Methods("GET")
	router.HandleFunc("/api/pages/{pageID}/export", h.ExportPage).Methods("GET")
	router.HandleFunc("/api/pages/{pageID}", h.GetPage).Methods("GET")
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Endpoint not found")
	})
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   version,
	}, "")
}

// ListPages returns stored pages with optional industry and follower-count
// filters.
func (h *Handlers) ListPages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.Filter{
		Industry:     q.Get("industry"),
		FollowersMin: intParam(q.Get("followers_min"), 0),
		FollowersMax: intParam(q.Get("followers_max"), 0),
	}

	pages, pagination, err := h.Store.ListPages(r.Context(), filter, intParam(q.Get("page"), 1), intParam(q.Get("per_page"), 10))
	if err != nil {
		slog.Error("failed to list pages", "error", err)
		respondError(w, http.StatusInternalServerError, "Error: "+err.Error())
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"pages":      pages,
		"pagination": pagination,
	}, "Pages retrieved successfully")
}

// SearchPages finds pages by name
func (h *Handlers) SearchPages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "Search query required")
		return
	}

	pages, pagination, err := h.Store.SearchPages(r.Context(), query, intParam(q.Get("page"), 1), intParam(q.Get("per_page"), 10))
	if err != nil {
		slog.Error("failed to search pages", "query", query, "error", err)
		respondError(w, http.StatusInternalServerError, "Error: "+err.Error())
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"pages":      pages,
		"pagination": pagination,
	}, "Search completed")
}

// GetPage returns a single stored page. Posts and employees are included
// unless disabled via include_posts / include_employees.
func (h *Handlers) GetPage(w http.ResponseWriter, r *http.Request) {
	pageID := mux.Vars(r)["pageID"]

	page, err := h.Store.GetPage(r.Context(), pageID)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Page not found")
		return
	}
	if err != nil {
		slog.Error("failed to get page", "page_id", pageID, "error", err)
		respondError(w, http.StatusInternalServerError, "Error: "+err.Error())
		return
	}

	if !boolParam(r.URL.Query().Get("include_posts"), true) {
		page.Posts = []scraper.PostRecord{}
	}
	if !boolParam(r.URL.Query().Get("include_employees"), true) {
		page.Employees = []scraper.EmployeeRecord{}
	}

	respond(w, http.StatusOK, page, "Page retrieved successfully")
}

type scrapeRequest struct {
	URL           string `json:"url"`
	ForceRescrape bool   `json:"force_rescrape"`
}

// ScrapePage scrapes a LinkedIn company page and stores the result. An
// already stored page is returned as-is unless force_rescrape is set.
func (h *Handlers) ScrapePage(w http.ResponseWriter, r *http.Request) {
	// An empty or malformed body is treated the same as an empty URL.
	var req scrapeRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	req.URL = strings.TrimSpace(req.URL)

	if req.URL == "" {
		respondError(w, http.StatusBadRequest, "URL required")
		return
	}
	if !utils.ValidateURL(req.URL) {
		respondError(w, http.StatusBadRequest, "Invalid LinkedIn URL")
		return
	}
	pageID := utils.ExtractPageID(req.URL)
	if pageID == "" {
		respondError(w, http.StatusBadRequest, "Could not extract page ID")
		return
	}

	existing, err := h.Store.GetPage(r.Context(), pageID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusInternalServerError, "Error: "+err.Error())
		return
	}
	if existing != nil && !req.ForceRescrape {
		slog.Info("returning stored page", "page_id", pageID)
		respond(w, http.StatusOK, existing, "Page already in database")
		return
	}
	if existing != nil {
		slog.Info("force re-scraping", "page_id", pageID)
		if err := h.Store.DeletePage(r.Context(), pageID); err != nil {
			respondError(w, http.StatusInternalServerError, "Error: "+err.Error())
			return
		}
	}

	snap, err := h.Scraper.Scrape(r.Context(), pageID)
	if err != nil || snap == nil {
		slog.Error("scrape failed", "page_id", pageID, "error", err)
		respondError(w, http.StatusBadRequest, "Scraping failed")
		return
	}

	if err := h.Store.SavePage(r.Context(), snap); err != nil {
		slog.Error("failed to save page", "page_id", pageID, "error", err)
		respondError(w, http.StatusInternalServerError, "Error: "+err.Error())
		return
	}

	saved, err := h.Store.GetPage(r.Context(), pageID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error: "+err.Error())
		return
	}

	respond(w, http.StatusCreated, saved, "Page scraped successfully")
}

// GetSummary returns the page's narrative summary, generating and storing
// it on first request.
func (h *Handlers) GetSummary(w http.ResponseWriter, r *http.Request) {
	pageID := mux.Vars(r)["pageID"]

	page, err := h.Store.GetPage(r.Context(), pageID)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Page not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error: "+err.Error())
		return
	}

	if page.AISummary != "" {
		respond(w, http.StatusOK, map[string]string{"summary": page.AISummary}, "Summary retrieved")
		return
	}

	slog.Info("generating summary", "page_id", pageID)
	text := h.Summaries.Generate(page)
	if err := h.Store.SaveSummary(r.Context(), pageID, text); err != nil {
		slog.Error("failed to store summary", "page_id", pageID, "error", err)
		respondError(w, http.StatusInternalServerError, "Error: "+err.Error())
		return
	}

	respond(w, http.StatusOK, map[string]string{"summary": text}, "Summary generated successfully")
}

// ExportPage returns the full insight record as a downloadable JSON file
func (h *Handlers) ExportPage(w http.ResponseWriter, r *http.Request) {
	pageID := mux.Vars(r)["pageID"]

	page, err := h.Store.GetPage(r.Context(), pageID)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Page not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error: "+err.Error())
		return
	}

	engagement := 0
	for _, post := range page.Posts {
		engagement += post.LikesCount + post.CommentsCount
	}

	export := map[string]any{
		"export_info": map[string]any{
			"exported_at": time.Now().UTC().Format(time.RFC3339),
			"page_id":     pageID,
			"source":      "LinkedIn Insights Microservice",
		},
		"company_profile": map[string]any{
			"name":                page.Name,
			"url":                 page.URL,
			"industry":            page.Industry,
			"followers_count":     page.FollowersCount,
			"employees_count":     page.EmployeesCount,
			"description":         page.Description,
			"website":             page.Website,
			"specialities":        page.Specialities,
			"profile_picture_url": page.ProfilePicURL,
		},
		"ai_insights": map[string]any{
			"summary": page.AISummary,
			"key_metrics": map[string]any{
				"total_followers":       page.FollowersCount,
				"total_posts":           len(page.Posts),
				"total_employees_found": len(page.Employees),
				"engagement_score":      engagement,
			},
		},
		"posts":     page.Posts,
		"employees": page.Employees,
		"metadata": map[string]any{
			"last_scraped": page.LastScraped.Format(time.RFC3339),
			"created_at":   page.CreatedAt.Format(time.RFC3339),
		},
	}

	// Best effort: pull title and description from the company's own
	// website when one was extracted.
	if info, err := enrich.Website(h.Cache, page.Website); err == nil {
		export["website_info"] = info
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_insights.json", pageID))
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(export)
}

func intParam(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func boolParam(value string, fallback bool) bool {
	if value == "" {
		return fallback
	}
	return strings.EqualFold(value, "true")
}
