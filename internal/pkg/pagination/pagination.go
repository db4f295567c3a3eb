package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rahmasleam/NexusMenaV2/internal/pkg/response"
)

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 100
)

// Query holds parsed pagination parameters.
type Query struct {
	Page int
	Size int
}

// FromContext extracts and validates pagination params from the request.
func FromContext(c *gin.Context) Query {
	page := parseIntOr(c.DefaultQuery("page", "1"), DefaultPage)
	size := parseIntOr(c.DefaultQuery("size", "10"), DefaultSize)

	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}

	return Query{Page: page, Size: size}
}

// Paginate slices an in-memory result set and returns the page plus metadata.
func Paginate[T any](items []T, q Query) ([]T, response.Pagination) {
	total := int64(len(items))
	totalPage := int((total + int64(q.Size) - 1) / int64(q.Size))

	start := (q.Page - 1) * q.Size
	if start > len(items) {
		start = len(items)
	}
	end := start + q.Size
	if end > len(items) {
		end = len(items)
	}

	page := items[start:end]
	return page, response.Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPage:   totalPage,
		Size:        q.Size,
		HasNextPage: q.Page < totalPage,
	}
}

func parseIntOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
