// internal/utils/pagination.go
package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

type Page struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// GetPage reads skip/limit from the query string. Limit is clamped to
// 1..MaxLimit; a missing or unparsable limit uses DefaultLimit.
func GetPage(c *gin.Context) Page {
	return ParsePage(c.Query("skip"), c.Query("limit"))
}

func ParsePage(skipRaw, limitRaw string) Page {
	skip, err := strconv.Atoi(skipRaw)
	if err != nil || skip < 0 {
		skip = 0
	}

	limit, err := strconv.Atoi(limitRaw)
	switch {
	case err != nil:
		limit = DefaultLimit
	case limit < 1:
		limit = 1
	case limit > MaxLimit:
		limit = MaxLimit
	}

	return Page{Skip: skip, Limit: limit}
}

// QueryLimit reads an optional positive limit, e.g. for featured listings.
func QueryLimit(c *gin.Context, fallback int) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		return fallback
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// QueryFloat returns nil when the parameter is absent or malformed.
func QueryFloat(c *gin.Context, key string) *float64 {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func QueryBool(c *gin.Context, key string) *bool {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

func SetPaginationHeaders(c *gin.Context, page Page, count int) {
	c.Header("X-Skip", strconv.Itoa(page.Skip))
	c.Header("X-Per-Page", strconv.Itoa(page.Limit))
	c.Header("X-Result-Count", strconv.Itoa(count))
}
