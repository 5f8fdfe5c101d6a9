package app

import (
	"strconv"
	"strings"
	"sync"

	"github.com/yourusername/romshelf-go/internal/domain"
)

// Ellipsis is the collapse marker emitted in page control descriptions
const Ellipsis = "..."

// Filter is a catalog query: free text matched against title or
// platform, plus exact platform and region constraints. Empty fields
// impose no constraint.
type Filter struct {
	Text     string `json:"text"`
	Platform string `json:"platform"`
	Region   string `json:"region"`
}

// IsZero reports whether the filter imposes no constraints
func (f Filter) IsZero() bool {
	return f.Text == "" && f.Platform == "" && f.Region == ""
}

// Matches reports whether an item satisfies all filter predicates
func (f Filter) Matches(it domain.Item) bool {
	if f.Text != "" {
		q := strings.ToLower(f.Text)
		if !strings.Contains(strings.ToLower(it.Title), q) &&
			!strings.Contains(strings.ToLower(it.Platform), q) {
			return false
		}
	}
	if f.Platform != "" && it.Platform != f.Platform {
		return false
	}
	if f.Region != "" && it.Region != f.Region {
		return false
	}
	return true
}

// Page is one slice of the current view plus the pagination facts a
// consumer needs to render controls.
type Page struct {
	Items       []domain.Item `json:"items"`
	TotalItems  int           `json:"total_items"`
	TotalPages  int           `json:"total_pages"`
	CurrentPage int           `json:"current_page"`
}

// CatalogStore holds the full item list and the currently filtered view.
// The view is always a subset of the full list with order determined
// solely by the ranker. Handlers run concurrently, so all state access
// is serialized here.
type CatalogStore struct {
	mu          sync.RWMutex
	ranker      *Ranker
	pageSize    int
	allItems    []domain.Item
	view        []domain.Item
	filter      Filter
	currentPage int
	loaded      bool
}

// NewCatalogStore creates an empty store
func NewCatalogStore(ranker *Ranker, pageSize int) *CatalogStore {
	if pageSize < 1 {
		pageSize = 50
	}
	return &CatalogStore{
		ranker:      ranker,
		pageSize:    pageSize,
		currentPage: 1,
	}
}

// SetCatalog installs a freshly loaded, already ranked item list. The
// previous catalog, view and filter are overwritten in full.
func (s *CatalogStore) SetCatalog(items []domain.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.allItems = items
	s.view = items
	s.filter = Filter{}
	s.currentPage = 1
	s.loaded = true
}

// Loaded reports whether a catalog has been installed
func (s *CatalogStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Len returns the full catalog size
func (s *CatalogStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.allItems)
}

// ViewLen returns the current view size
func (s *CatalogStore) ViewLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.view)
}

// Query recomputes the view from the full list, re-ranks it and resets
// the current page to 1. Returns the first page of the new view.
func (s *CatalogStore) Query(f Filter) Page {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]domain.Item, 0, len(s.allItems))
	for _, it := range s.allItems {
		if f.Matches(it) {
			filtered = append(filtered, it)
		}
	}

	// Filtering never bypasses ranking.
	s.view = s.ranker.Rank(filtered)
	s.filter = f
	s.currentPage = 1

	return s.pageLocked()
}

// GoToPage navigates to the requested 1-based page. Requests outside
// [1, totalPages] are rejected: the current page slice is returned
// unchanged alongside ErrPageOutOfRange and no state changes.
func (s *CatalogStore) GoToPage(n int) (Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n < 1 || n > totalPages(len(s.view), s.pageSize) {
		return s.pageLocked(), domain.ErrPageOutOfRange
	}
	s.currentPage = n
	return s.pageLocked(), nil
}

// CurrentPage returns the slice for the current page
func (s *CatalogStore) CurrentPage() Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pageLocked()
}

// Filter returns the last applied filter
func (s *CatalogStore) Filter() Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Platforms returns the distinct platform values of the full catalog,
// in first-seen order
func (s *CatalogStore) Platforms() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uniqueValues(s.allItems, func(it domain.Item) string { return it.Platform })
}

// Regions returns the distinct region values of the full catalog, in
// first-seen order
func (s *CatalogStore) Regions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uniqueValues(s.allItems, func(it domain.Item) string { return it.Region })
}

func (s *CatalogStore) pageLocked() Page {
	total := totalPages(len(s.view), s.pageSize)
	start := (s.currentPage - 1) * s.pageSize
	end := start + s.pageSize
	if start > len(s.view) {
		start = len(s.view)
	}
	if end > len(s.view) {
		end = len(s.view)
	}
	return Page{
		Items:       s.view[start:end],
		TotalItems:  len(s.view),
		TotalPages:  total,
		CurrentPage: s.currentPage,
	}
}

// totalPages is never below 1: an empty view still has one (empty)
// page, and consumers render an empty state for it.
func totalPages(n, pageSize int) int {
	if n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// PageControls describes a compact page control: first page, last page,
// current page and current±2 appear as numbers, any other run collapses
// into a single ellipsis marker.
func PageControls(totalPages, currentPage int) []string {
	var controls []string
	for i := 1; i <= totalPages; i++ {
		switch {
		case i == 1 || i == totalPages || abs(i-currentPage) <= 2:
			controls = append(controls, strconv.Itoa(i))
		case i == currentPage-3 || i == currentPage+3:
			controls = append(controls, Ellipsis)
		}
	}
	return controls
}

func uniqueValues(items []domain.Item, field func(domain.Item) string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, it := range items {
		v := field(it)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
