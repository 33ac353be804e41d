package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"linkedinsights/scraper"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleSnapshot(id string) *scraper.PageSnapshot {
	return &scraper.PageSnapshot{
		ID:             id,
		URL:            "https://www.linkedin.com/company/" + id + "/",
		Name:           "Acme Corp",
		Description:    "A maker of fine anvils.",
		Website:        "https://acme.example.com",
		Industry:       "Heavy Machinery",
		FollowersCount: 1234,
		EmployeesCount: 200,
		EmployeesText:  "51-200",
		ScrapedAt:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Posts: []scraper.PostRecord{
			{ID: "post_0_aaaa", Content: "first post", LikesCount: 10, CommentsCount: 2, SharesCount: 1},
			{ID: "post_1_bbbb", Content: "second post", LikesCount: 5},
		},
		Employees: []scraper.EmployeeRecord{
			{ID: "emp_0_cccc", Name: "Jane Doe", Headline: "Engineer", ProfileURL: "https://www.linkedin.com/in/jane"},
		},
	}
}

func TestSaveAndGetPage(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.SavePage(ctx, sampleSnapshot("acme-corp")))

	page, err := s.GetPage(ctx, "acme-corp")
	require.NoError(t, err)
	require.Equal(t, "Acme Corp", page.Name)
	require.Equal(t, 1234, page.FollowersCount)
	require.Equal(t, "51-200", page.EmployeesText)
	require.Len(t, page.Posts, 2)
	require.Len(t, page.Employees, 1)
	require.Equal(t, "first post", page.Posts[0].Content)
	require.Equal(t, "Jane Doe", page.Employees[0].Name)
	require.Equal(t, int64(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).Unix()), page.LastScraped.Unix())
}

func TestGetPageNotFound(t *testing.T) {
	s := setupStore(t)

	_, err := s.GetPage(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSavePageReplacesExisting(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.SavePage(ctx, sampleSnapshot("acme-corp")))

	updated := sampleSnapshot("acme-corp")
	updated.Name = "Acme Corporation"
	updated.Posts = updated.Posts[:1]
	require.NoError(t, s.SavePage(ctx, updated))

	page, err := s.GetPage(ctx, "acme-corp")
	require.NoError(t, err)
	require.Equal(t, "Acme Corporation", page.Name)
	require.Len(t, page.Posts, 1)
}

func TestListPagesFilters(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	snapA := sampleSnapshot("acme-corp")
	snapB := sampleSnapshot("beta-soft")
	snapB.Name = "Beta Soft"
	snapB.Industry = "Software"
	snapB.FollowersCount = 50000
	require.NoError(t, s.SavePage(ctx, snapA))
	require.NoError(t, s.SavePage(ctx, snapB))

	pages, _, err := s.ListPages(ctx, Filter{Industry: "Software"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	require.Equal(t, "beta-soft", pages[0].ID)

	pages, _, err = s.ListPages(ctx, Filter{FollowersMin: 10000}, 1, 10)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	require.Equal(t, "beta-soft", pages[0].ID)

	pages, _, err = s.ListPages(ctx, Filter{FollowersMax: 2000}, 1, 10)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	require.Equal(t, "acme-corp", pages[0].ID)
}

func TestListPagesPagination(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.SavePage(ctx, sampleSnapshot(fmt.Sprintf("company-%d", i))))
	}

	pages, pagination, err := s.ListPages(ctx, Filter{}, 1, 2)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	require.Equal(t, 5, pagination.Total)
	require.Equal(t, 3, pagination.TotalPages)
	require.True(t, pagination.HasNext)
	require.False(t, pagination.HasPrev)

	pages, pagination, err = s.ListPages(ctx, Filter{}, 3, 2)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	require.False(t, pagination.HasNext)
	require.True(t, pagination.HasPrev)
}

func TestSearchPages(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	snapA := sampleSnapshot("acme-corp")
	snapB := sampleSnapshot("beta-soft")
	snapB.Name = "Beta Soft"
	require.NoError(t, s.SavePage(ctx, snapA))
	require.NoError(t, s.SavePage(ctx, snapB))

	pages, _, err := s.SearchPages(ctx, "acme", 1, 10)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	require.Equal(t, "acme-corp", pages[0].ID)

	pages, _, err = s.SearchPages(ctx, "zzz", 1, 10)
	require.NoError(t, err)
	require.Empty(t, pages)
}

func TestSaveSummary(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.SavePage(ctx, sampleSnapshot("acme-corp")))
	require.NoError(t, s.SaveSummary(ctx, "acme-corp", "a fine company"))

	page, err := s.GetPage(ctx, "acme-corp")
	require.NoError(t, err)
	require.Equal(t, "a fine company", page.AISummary)

	require.ErrorIs(t, s.SaveSummary(ctx, "missing", "nope"), ErrNotFound)
}

func TestDeletePageCascades(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.SavePage(ctx, sampleSnapshot("acme-corp")))
	require.NoError(t, s.DeletePage(ctx, "acme-corp"))

	_, err := s.GetPage(ctx, "acme-corp")
	require.ErrorIs(t, err, ErrNotFound)

	// Re-saving after delete must not hit orphaned child rows.
	require.NoError(t, s.SavePage(ctx, sampleSnapshot("acme-corp")))
	page, err := s.GetPage(ctx, "acme-corp")
	require.NoError(t, err)
	require.Len(t, page.Posts, 2)
}
