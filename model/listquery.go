package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// DefaultPageSize - Rows per page on every list screen.
const DefaultPageSize = 10

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListQuery is the per-request filter/search/sort/page tuple driving
// a list view. It is recomputed from defaults on every request and
// never persisted.
type ListQuery struct {
	Search   string
	Filters  map[string]string
	DateFrom *time.Time
	DateTo   *time.Time
	SortKey  string
	SortDir  string
	Page     int
}

// ListOptions declares which columns an entity exposes to a
// ListQuery. Filter keys outside FilterColumns are ignored.
type ListOptions struct {
	SearchColumns []string
	FilterColumns map[string]bool
	SortColumns   map[string]bool
	DateColumn    string
}

func DefaultListQuery() ListQuery {
	return ListQuery{
		Filters: map[string]string{},
		SortKey: "created_at",
		SortDir: SortDesc,
		Page:    1,
	}
}

// Any mutation other than page resets page to 1, so a narrowed view
// never points at a page that no longer exists.

func (q ListQuery) WithSearch(search string) ListQuery {
	q.Search = strings.TrimSpace(search)
	q.Page = 1
	return q
}

func (q ListQuery) WithFilter(key, value string) ListQuery {
	filters := map[string]string{}
	for k, v := range q.Filters {
		filters[k] = v
	}
	filters[key] = value
	q.Filters = filters
	q.Page = 1
	return q
}

func (q ListQuery) WithDateRange(from, to *time.Time) ListQuery {
	q.DateFrom = from
	q.DateTo = to
	q.Page = 1
	return q
}

func (q ListQuery) WithSort(key, dir string) ListQuery {
	if dir != SortAsc {
		dir = SortDesc
	}
	q.SortKey = key
	q.SortDir = dir
	q.Page = 1
	return q
}

func (q ListQuery) WithPage(page int) ListQuery {
	if page < 1 {
		page = 1
	}
	q.Page = page
	return q
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * DefaultPageSize
}

// ParseListQuery builds a ListQuery from request query params using
// the reducer, so the page param only survives when nothing else
// narrowed the view after it.
func ParseListQuery(c *gin.Context, opts ListOptions) ListQuery {
	q := DefaultListQuery()

	if search := c.Query("search"); search != "" {
		q = q.WithSearch(search)
	}

	for key := range opts.FilterColumns {
		if value := c.Query(key); value != "" {
			q = q.WithFilter(key, value)
		}
	}

	from := parseTimeParam(c.Query("from"))
	to := parseTimeParam(c.Query("to"))
	if from != nil || to != nil {
		q = q.WithDateRange(from, to)
	}

	if sortKey := c.Query("sort_key"); sortKey != "" {
		q = q.WithSort(sortKey, c.Query("sort_dir"))
	}

	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		q = q.WithPage(page)
	}

	return q
}

func parseTimeParam(value string) *time.Time {
	if value == "" {
		return nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}
	return &t
}

// applyFilters narrows db by search, equality filters and date
// range. Unknown filter keys are dropped by convention.
func (q ListQuery) applyFilters(db *gorm.DB, opts ListOptions) *gorm.DB {
	if q.Search != "" && len(opts.SearchColumns) > 0 {
		conditions := make([]string, 0, len(opts.SearchColumns))
		args := make([]interface{}, 0, len(opts.SearchColumns))
		for _, col := range opts.SearchColumns {
			conditions = append(conditions, fmt.Sprintf("%s ILIKE ?", col))
			args = append(args, "%"+q.Search+"%")
		}
		db = db.Where(strings.Join(conditions, " OR "), args...)
	}

	for key, value := range q.Filters {
		if !opts.FilterColumns[key] {
			continue
		}
		db = db.Where(fmt.Sprintf("%s = ?", key), value)
	}

	if opts.DateColumn != "" {
		if q.DateFrom != nil {
			db = db.Where(fmt.Sprintf("%s >= ?", opts.DateColumn), *q.DateFrom)
		}
		if q.DateTo != nil {
			db = db.Where(fmt.Sprintf("%s <= ?", opts.DateColumn), *q.DateTo)
		}
	}

	return db
}

// applyOrderAndPage adds sort and offset pagination on top of the
// filtered query.
func (q ListQuery) applyOrderAndPage(db *gorm.DB, opts ListOptions) *gorm.DB {
	sortKey := q.SortKey
	if sortKey == "" || !opts.SortColumns[sortKey] {
		sortKey = "created_at"
	}

	dir := "DESC"
	if q.SortDir == SortAsc {
		dir = "ASC"
	}

	return db.Order(fmt.Sprintf("%s %s", sortKey, dir)).
		Offset(q.Offset()).Limit(DefaultPageSize)
}
