package handler

import (
	"net/http"
	"strconv"
)

const (
	defaultPage  = 1
	defaultLimit = 50
	maxLimit     = 100
)

// PageRequest holds the normalized pagination inputs for a list endpoint.
type PageRequest struct {
	Page  int
	Limit int
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination is the metadata block returned alongside every list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// ParsePagination reads page and limit query parameters. Out-of-range and
// unparsable values fall back to defaults rather than failing the request.
func ParsePagination(r *http.Request) PageRequest {
	page := defaultPage
	limit := defaultLimit

	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 1 {
			page = v
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 1 {
			limit = v
			if limit > maxLimit {
				limit = maxLimit
			}
		}
	}

	return PageRequest{Page: page, Limit: limit}
}

// NewPagination computes the metadata block for a list response. Pages is
// the ceiling of total over limit, never below one.
func NewPagination(req PageRequest, total int) Pagination {
	pages := (total + req.Limit - 1) / req.Limit
	if pages < 1 {
		pages = 1
	}
	return Pagination{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
		Pages: pages,
	}
}
