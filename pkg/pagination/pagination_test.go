package pagination_test

import (
	"net/url"
	"testing"

	"github.com/hearthworks/remodel/pkg/pagination"
	"github.com/stretchr/testify/assert"
)

func TestFromQueryDefaults(t *testing.T) {
	cases := []struct {
		name  string
		query string
	}{
		{"empty", ""},
		{"non-numeric page", "page=abc&limit=xyz"},
		{"zero page", "page=0&limit=0"},
		{"negative values", "page=-3&limit=-10"},
		{"float page", "page=1.5"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, _ := url.ParseQuery(tc.query)
			opts := pagination.FromQuery(q, 100)

			assert.Equal(t, 1, opts.Page)
			assert.Equal(t, 10, opts.Limit)
			assert.Equal(t, "createdAt", opts.SortBy)
			assert.Equal(t, pagination.SortDesc, opts.SortOrder)
			assert.Equal(t, 0, opts.Skip())
		})
	}
}

func TestFromQueryExplicit(t *testing.T) {
	q, _ := url.ParseQuery("page=3&limit=25&sortBy=price&sortOrder=asc")
	opts := pagination.FromQuery(q, 100)

	assert.Equal(t, 3, opts.Page)
	assert.Equal(t, 25, opts.Limit)
	assert.Equal(t, "price", opts.SortBy)
	assert.Equal(t, pagination.SortAsc, opts.SortOrder)
	assert.Equal(t, 50, opts.Skip())
}

func TestFromQueryClampsLimit(t *testing.T) {
	q, _ := url.ParseQuery("limit=5000")
	opts := pagination.FromQuery(q, 100)
	assert.Equal(t, 100, opts.Limit)
}

func TestFromQueryUnknownSortOrder(t *testing.T) {
	q, _ := url.ParseQuery("sortOrder=sideways")
	opts := pagination.FromQuery(q, 100)
	assert.Equal(t, pagination.SortDesc, opts.SortOrder)
}

func TestNewResultTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{99, 10, 10},
		{100, 25, 4},
		{101, 25, 5},
	}

	for _, tc := range cases {
		res := pagination.NewResult([]int{}, tc.total, 1, tc.limit)
		assert.Equal(t, tc.want, res.Meta.TotalPages, "total=%d limit=%d", tc.total, tc.limit)
		assert.Equal(t, tc.total, res.Meta.Total)
	}
}
