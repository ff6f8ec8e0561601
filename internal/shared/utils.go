package shared

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseTableQuery extracts the common table view parameters from a request.
// Absent parameters stay zero-valued so callers can fall back to dataset
// defaults.
func ParseTableQuery(c *gin.Context) TableQuery {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))

	return TableQuery{
		Period:  c.DefaultQuery("period", "24h"),
		Tag:     c.Query("tag"),
		Search:  c.Query("q"),
		SortKey: c.Query("sort"),
		SortDir: c.Query("dir"),
		Page:    page,
	}
}
