// Package pagination implements page/size windowing for list endpoints.
package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hillcrest-academy/core/internal/pkg/response"
	"gorm.io/gorm"
)

const (
	defaultSize = 20
	maxSize     = 100
)

// Params is a validated page window.
type Params struct {
	Page int
	Size int
}

// Parse reads ?page= and ?size= from the request. Missing or malformed
// values fall back to page 1 and the default size; size is capped.
func Parse(c *gin.Context) Params {
	p := Params{
		Page: atoiClamped(c.Query("page"), 1, 1, 1<<30),
		Size: atoiClamped(c.Query("size"), defaultSize, 1, maxSize),
	}
	return p
}

// Offset returns the row offset of the window.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Size
}

// meta derives the response metadata for a window over total rows.
func (p Params) meta(total int64) response.Pagination {
	pages := int(total / int64(p.Size))
	if total%int64(p.Size) != 0 {
		pages++
	}
	return response.Pagination{
		Total:       total,
		CurrentPage: p.Page,
		TotalPage:   pages,
		Size:        p.Size,
		HasNextPage: int64(p.Offset()+p.Size) < total,
	}
}

// Paginate counts the query, loads the requested window into dest, and
// returns the metadata.
func Paginate[T any](query *gorm.DB, p Params, dest *[]T) (response.Pagination, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.Pagination{}, err
	}
	if err := query.Offset(p.Offset()).Limit(p.Size).Find(dest).Error; err != nil {
		return response.Pagination{}, err
	}
	return p.meta(total), nil
}

func atoiClamped(raw string, fallback, min, max int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < min {
		return fallback
	}
	if n > max {
		return max
	}
	return n
}
