package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finchbooks/finch/internal/pagination"
)

func TestFromRequest(t *testing.T) {
	type testCase struct {
		name string
		url  string
		want pagination.Params
	}

	tests := []testCase{
		{
			name: "defaults",
			url:  "/customers/",
			want: pagination.Params{Page: 1, PageSize: 20, SortOrder: "desc"},
		},
		{
			name: "explicit values",
			url:  "/customers/?page=3&page_size=50&sort_by=customer_name&sort_order=asc",
			want: pagination.Params{Page: 3, PageSize: 50, SortBy: "customer_name", SortOrder: "asc"},
		},
		{
			name: "page size clamped",
			url:  "/customers/?page_size=5000",
			want: pagination.Params{Page: 1, PageSize: 100, SortOrder: "desc"},
		},
		{
			name: "malformed values fall back",
			url:  "/customers/?page=abc&page_size=-1&sort_order=sideways",
			want: pagination.Params{Page: 1, PageSize: 20, SortOrder: "desc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			assert.Equal(t, tt.want, pagination.FromRequest(r))
		})
	}
}

func TestOffset(t *testing.T) {
	p := pagination.Params{Page: 3, PageSize: 25}
	assert.Equal(t, 50, p.Offset())
}

func TestOrderBy(t *testing.T) {
	columns := map[string]string{
		"customer_name": "customer_name",
		"created_at":    "created_at",
	}

	type testCase struct {
		name   string
		params pagination.Params
		want   string
	}

	tests := []testCase{
		{
			name:   "known column ascending",
			params: pagination.Params{SortBy: "customer_name", SortOrder: "asc"},
			want:   "customer_name ASC",
		},
		{
			name:   "unknown column falls back",
			params: pagination.Params{SortBy: "robert'); DROP TABLE", SortOrder: "desc"},
			want:   "created_at DESC",
		},
		{
			name:   "empty sort key falls back",
			params: pagination.Params{SortOrder: "desc"},
			want:   "created_at DESC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.OrderBy(columns, "created_at"))
		})
	}
}
