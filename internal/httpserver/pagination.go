package httpserver

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// pageParams turns ?page=&size= into an offset and limit. Pages start at 1.
// Without either parameter the listing is unpaged (limit 0).
func pageParams(c echo.Context) (offset, limit int) {
	if c.QueryParam("page") == "" && c.QueryParam("size") == "" {
		return 0, 0
	}
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), defaultPageSize)
	if page < 1 {
		page = 1
	}
	if size < 1 || size > maxPageSize {
		size = defaultPageSize
	}
	return (page - 1) * size, size
}
