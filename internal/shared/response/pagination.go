package response

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Page is the envelope returned by every listing endpoint.
// Next/Previous are absolute URLs or null at the boundaries.
type Page struct {
	Results  interface{} `json:"results"`
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ParsePagination reads page/limit query params, falling back to defaults
// on absent or malformed values.
func ParsePagination(c *gin.Context) (page, limit int) {
	page = DefaultPage
	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p >= 1 {
			page = p
		}
	}

	limit = DefaultLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// PageLinks computes the next/previous URLs for the envelope.
// next is nil iff page*limit >= count; previous is nil iff page <= 1.
func PageLinks(baseURL string, page, limit, count int) (next, previous *string) {
	if page*limit < count {
		n := pageURL(baseURL, page+1, limit)
		next = &n
	}
	if page > 1 {
		p := pageURL(baseURL, page-1, limit)
		previous = &p
	}
	return next, previous
}

func pageURL(baseURL string, page, limit int) string {
	return fmt.Sprintf("%s?page=%d&limit=%d", baseURL, page, limit)
}

// Paginated writes the pagination envelope, deriving the base URL from the
// incoming request so links point back at the same endpoint.
func Paginated(c *gin.Context, results interface{}, count, page, limit int) {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	baseURL := fmt.Sprintf("%s://%s%s", scheme, c.Request.Host, c.Request.URL.Path)

	next, previous := PageLinks(baseURL, page, limit, count)

	c.JSON(http.StatusOK, Page{
		Results:  results,
		Count:    count,
		Next:     next,
		Previous: previous,
	})
}
