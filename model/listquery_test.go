package model

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestListQueryReducerResetsPage(t *testing.T) {
	q := DefaultListQuery().WithPage(7)
	assert.Equal(t, 7, q.Page)

	// Every narrowing mutation drops back to page 1.
	assert.Equal(t, 1, q.WithSearch("villa").Page)
	assert.Equal(t, 1, q.WithFilter("status", "new").Page)
	assert.Equal(t, 1, q.WithSort("updated_at", SortAsc).Page)

	from := time.Now().Add(-24 * time.Hour)
	assert.Equal(t, 1, q.WithDateRange(&from, nil).Page)

	// Page changes alone keep everything else.
	q = DefaultListQuery().WithFilter("status", "new").WithPage(3)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, "new", q.Filters["status"])
}

func TestListQueryWithPageFloor(t *testing.T) {
	assert.Equal(t, 1, DefaultListQuery().WithPage(0).Page)
	assert.Equal(t, 1, DefaultListQuery().WithPage(-5).Page)
}

func TestListQueryOffset(t *testing.T) {
	assert.Equal(t, 0, DefaultListQuery().Offset())
	assert.Equal(t, 2*DefaultPageSize, DefaultListQuery().WithPage(3).Offset())
}

func TestListQueryWithFilterDoesNotMutateOriginal(t *testing.T) {
	base := DefaultListQuery()
	narrowed := base.WithFilter("status", "won")
	assert.Equal(t, "won", narrowed.Filters["status"])
	assert.Empty(t, base.Filters["status"])
}

func TestListQueryWithSortDirFallback(t *testing.T) {
	q := DefaultListQuery().WithSort("created_at", "sideways")
	assert.Equal(t, SortDesc, q.SortDir)

	q = DefaultListQuery().WithSort("created_at", SortAsc)
	assert.Equal(t, SortAsc, q.SortDir)
}

func newListContext(t *testing.T, rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/leads?"+rawQuery, nil)
	return c
}

func TestParseListQuery(t *testing.T) {
	opts := LeadListOptions()

	// Page only.
	q := ParseListQuery(newListContext(t, "page=4"), opts)
	assert.Equal(t, 4, q.Page)

	// A filter next to an explicit page keeps the page, filters are
	// applied before the page param in the reducer.
	q = ParseListQuery(newListContext(t, "status=new&page=4"), opts)
	assert.Equal(t, 4, q.Page)
	assert.Equal(t, "new", q.Filters["status"])

	// Unknown filter keys are dropped.
	q = ParseListQuery(newListContext(t, "favorite_color=blue"), opts)
	assert.Empty(t, q.Filters["favorite_color"])

	// Search lands trimmed.
	q = ParseListQuery(newListContext(t, "search=+marina+"), opts)
	assert.Equal(t, "marina", q.Search)

	// Date params must be RFC3339, garbage is ignored.
	q = ParseListQuery(newListContext(t, "from=notadate"), opts)
	assert.Nil(t, q.DateFrom)

	q = ParseListQuery(newListContext(t, "from=2026-01-02T15:04:05Z"), opts)
	if assert.NotNil(t, q.DateFrom) {
		assert.Equal(t, 2026, q.DateFrom.Year())
	}
	assert.Equal(t, 1, q.Page)
}
