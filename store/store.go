// Package store persists scraped page snapshots in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "embed"

	_ "modernc.org/sqlite"

	"linkedinsights/scraper"
)

//go:embed schema.sql
var schema string

// ErrNotFound is returned when a page ID has no stored record
var ErrNotFound = errors.New("page not found")

// Page is a stored snapshot plus its service-side metadata
type Page struct {
	scraper.PageSnapshot
	AISummary   string    `json:"ai_summary"`
	LastScraped time.Time `json:"last_scraped"`
	CreatedAt   time.Time `json:"created_at"`
}

// Filter narrows ListPages results
type Filter struct {
	Industry     string
	FollowersMin int
	// FollowersMax of 0 means unbounded
	FollowersMax int
}

// Pagination describes the window a list call returned
type Pagination struct {
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Store wraps the SQLite database
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases coherent and avoids
	// SQLITE_BUSY under concurrent writes.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SavePage stores a snapshot, replacing any previous record for the same
// page ID together with its posts and employees.
func (s *Store) SavePage(ctx context.Context, snap *scraper.PageSnapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var createdAt int64
	err = tx.QueryRowContext(ctx, "SELECT created_at FROM linkedin_pages WHERE id = ?", snap.ID).Scan(&createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		createdAt = time.Now().UTC().Unix()
	} else if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM linkedin_pages WHERE id = ?", snap.ID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO linkedin_pages (
			id, name, url, profile_pic_url, description, website, industry,
			followers_count, employees_count, employees_text, specialities,
			ai_summary, last_scraped, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, '', ?, ?)`,
		snap.ID, snap.Name, snap.URL, snap.ProfilePicURL, snap.Description,
		snap.Website, snap.Industry, snap.FollowersCount, snap.EmployeesCount,
		snap.EmployeesText, snap.Specialities, snap.ScrapedAt.Unix(), createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert page: %w", err)
	}

	for i, post := range snap.Posts {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO posts (id, page_id, content, likes_count, comments_count, shares_count, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			snap.ID+"_"+post.ID, snap.ID, post.Content,
			post.LikesCount, post.CommentsCount, post.SharesCount, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert post: %w", err)
		}
	}

	for i, emp := range snap.Employees {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO employees (id, page_id, name, headline, profile_url, position)
			VALUES (?, ?, ?, ?, ?, ?)`,
			snap.ID+"_"+emp.ID, snap.ID, emp.Name, emp.Headline, emp.ProfileURL, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert employee: %w", err)
		}
	}

	return tx.Commit()
}

// GetPage loads a page with its posts and employees. Returns ErrNotFound
// when the ID is unknown.
func (s *Store) GetPage(ctx context.Context, id string) (*Page, error) {
	var p Page
	var lastScraped, createdAt int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, url, profile_pic_url, description, website, industry,
		       followers_count, employees_count, employees_text, specialities,
		       ai_summary, last_scraped, created_at
		FROM linkedin_pages WHERE id = ?`, id,
	).Scan(
		&p.ID, &p.Name, &p.URL, &p.ProfilePicURL, &p.Description, &p.Website,
		&p.Industry, &p.FollowersCount, &p.EmployeesCount, &p.EmployeesText,
		&p.Specialities, &p.AISummary, &lastScraped, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.LastScraped = time.Unix(lastScraped, 0).UTC()
	p.CreatedAt = time.Unix(createdAt, 0).UTC()
	p.ScrapedAt = p.LastScraped

	if p.Posts, err = s.loadPosts(ctx, id); err != nil {
		return nil, err
	}
	if p.Employees, err = s.loadEmployees(ctx, id); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) loadPosts(ctx context.Context, pageID string) ([]scraper.PostRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content, likes_count, comments_count, shares_count
		FROM posts WHERE page_id = ? ORDER BY position`, pageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []scraper.PostRecord{}
	for rows.Next() {
		var post scraper.PostRecord
		if err := rows.Scan(&post.ID, &post.Content, &post.LikesCount, &post.CommentsCount, &post.SharesCount); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (s *Store) loadEmployees(ctx context.Context, pageID string) ([]scraper.EmployeeRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, headline, profile_url
		FROM employees WHERE page_id = ? ORDER BY position`, pageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []scraper.EmployeeRecord{}
	for rows.Next() {
		var emp scraper.EmployeeRecord
		if err := rows.Scan(&emp.ID, &emp.Name, &emp.Headline, &emp.ProfileURL); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// ListPages returns a page of stored records matching the filter, without
// their posts and employees.
func (s *Store) ListPages(ctx context.Context, f Filter, page, perPage int) ([]Page, Pagination, error) {
	page, perPage = normalizeWindow(page, perPage)

	where := "WHERE 1=1"
	args := []any{}
	if f.Industry != "" {
		where += " AND industry LIKE ?"
		args = append(args, "%"+f.Industry+"%")
	}
	if f.FollowersMin > 0 {
		where += " AND followers_count >= ?"
		args = append(args, f.FollowersMin)
	}
	if f.FollowersMax > 0 {
		where += " AND followers_count <= ?"
		args = append(args, f.FollowersMax)
	}

	return s.queryPages(ctx, where, args, page, perPage)
}

// SearchPages finds pages whose name contains the query, case-insensitively
func (s *Store) SearchPages(ctx context.Context, query string, page, perPage int) ([]Page, Pagination, error) {
	page, perPage = normalizeWindow(page, perPage)
	return s.queryPages(ctx, "WHERE name LIKE ?", []any{"%" + query + "%"}, page, perPage)
}

func (s *Store) queryPages(ctx context.Context, where string, args []any, page, perPage int) ([]Page, Pagination, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM linkedin_pages "+where, args...).Scan(&total); err != nil {
		return nil, Pagination{}, err
	}

	listArgs := append(args, perPage, (page-1)*perPage)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, url, profile_pic_url, description, website, industry,
		       followers_count, employees_count, employees_text, specialities,
		       ai_summary, last_scraped, created_at
		FROM linkedin_pages `+where+`
		ORDER BY created_at DESC, id LIMIT ? OFFSET ?`, listArgs...)
	if err != nil {
		return nil, Pagination{}, err
	}
	defer rows.Close()

	pages := []Page{}
	for rows.Next() {
		var p Page
		var lastScraped, createdAt int64
		err := rows.Scan(
			&p.ID, &p.Name, &p.URL, &p.ProfilePicURL, &p.Description, &p.Website,
			&p.Industry, &p.FollowersCount, &p.EmployeesCount, &p.EmployeesText,
			&p.Specialities, &p.AISummary, &lastScraped, &createdAt,
		)
		if err != nil {
			return nil, Pagination{}, err
		}
		p.LastScraped = time.Unix(lastScraped, 0).UTC()
		p.CreatedAt = time.Unix(createdAt, 0).UTC()
		p.ScrapedAt = p.LastScraped
		p.Posts = []scraper.PostRecord{}
		p.Employees = []scraper.EmployeeRecord{}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, Pagination{}, err
	}

	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	return pages, Pagination{
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}, nil
}

// SaveSummary stores the generated narrative summary for a page
func (s *Store) SaveSummary(ctx context.Context, id, summary string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE linkedin_pages SET ai_summary = ? WHERE id = ?", summary, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePage removes a page and, via cascade, its posts and employees
func (s *Store) DeletePage(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM linkedin_pages WHERE id = ?", id)
	return err
}

func normalizeWindow(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	return page, perPage
}
