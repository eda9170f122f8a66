package response

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageLinks(t *testing.T) {
	base := "http://localhost:8080/country"

	tests := []struct {
		name         string
		page         int
		limit        int
		count        int
		wantNext     string
		wantPrevious string
	}{
		{
			name:  "single page",
			page:  1, limit: 10, count: 5,
		},
		{
			name:  "first of many",
			page:  1, limit: 10, count: 25,
			wantNext: "http://localhost:8080/country?page=2&limit=10",
		},
		{
			name:  "middle page",
			page:  2, limit: 10, count: 25,
			wantNext:     "http://localhost:8080/country?page=3&limit=10",
			wantPrevious: "http://localhost:8080/country?page=1&limit=10",
		},
		{
			name:  "last page",
			page:  3, limit: 10, count: 25,
			wantPrevious: "http://localhost:8080/country?page=2&limit=10",
		},
		{
			name:  "page boundary exactly filled",
			page:  2, limit: 10, count: 20,
			wantPrevious: "http://localhost:8080/country?page=1&limit=10",
		},
		{
			name:  "empty result set",
			page:  1, limit: 10, count: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, previous := PageLinks(base, tt.page, tt.limit, tt.count)

			if tt.wantNext == "" {
				assert.Nil(t, next)
			} else {
				require.NotNil(t, next)
				assert.Equal(t, tt.wantNext, *next)
			}

			if tt.wantPrevious == "" {
				assert.Nil(t, previous)
			} else {
				require.NotNil(t, previous)
				assert.Equal(t, tt.wantPrevious, *previous)
			}
		})
	}
}

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{name: "defaults", query: "", wantPage: 1, wantLimit: 10},
		{name: "explicit values", query: "page=3&limit=25", wantPage: 3, wantLimit: 25},
		{name: "zero page falls back", query: "page=0", wantPage: 1, wantLimit: 10},
		{name: "negative limit falls back", query: "limit=-5", wantPage: 1, wantLimit: 10},
		{name: "garbage falls back", query: "page=abc&limit=xyz", wantPage: 1, wantLimit: 10},
		{name: "limit capped", query: "limit=5000", wantPage: 1, wantLimit: MaxLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/country?"+tt.query, nil)

			page, limit := ParsePagination(c)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}
