package http

import (
	"net/http"
	"strconv"

	apperrors "roamify/pkg/errors"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// ExtractPagination reads 1-based `page` and `limit` query parameters,
// clamping them to sane bounds.
func ExtractPagination(r *http.Request) (page int, limit int, err error) {
	query := r.URL.Query()

	page = 1
	if s := query.Get("page"); s != "" {
		v, convErr := strconv.Atoi(s)
		if convErr != nil {
			return 0, 0, apperrors.InvalidInput("invalid page parameter: " + s)
		}
		page = v
	}
	if page < 1 {
		page = 1
	}

	limit = DefaultPageSize
	if s := query.Get("limit"); s != "" {
		v, convErr := strconv.Atoi(s)
		if convErr != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}
	if limit < 1 {
		limit = DefaultPageSize
	} else if limit > MaxPageSize {
		limit = MaxPageSize
	}

	return page, limit, nil
}
