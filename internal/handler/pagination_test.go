package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func pageRequestFor(t *testing.T, target string) PageRequest {
	t.Helper()
	return ParsePagination(httptest.NewRequest(http.MethodGet, target, nil))
}

func TestParsePagination(t *testing.T) {
	t.Run("defaults to page 1 limit 50", func(t *testing.T) {
		p := pageRequestFor(t, "/api/blogs")
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 50, p.Limit)
		assert.Equal(t, 0, p.Offset())
	})

	t.Run("reads explicit values", func(t *testing.T) {
		p := pageRequestFor(t, "/api/blogs?page=3&limit=10")
		assert.Equal(t, 3, p.Page)
		assert.Equal(t, 10, p.Limit)
		assert.Equal(t, 20, p.Offset())
	})

	t.Run("caps limit at 100", func(t *testing.T) {
		p := pageRequestFor(t, "/api/blogs?limit=5000")
		assert.Equal(t, 100, p.Limit)
	})

	t.Run("ignores junk and out-of-range values", func(t *testing.T) {
		p := pageRequestFor(t, "/api/blogs?page=zero&limit=-4")
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 50, p.Limit)
	})
}

func TestNewPagination(t *testing.T) {
	t.Run("pages is the ceiling of total over limit", func(t *testing.T) {
		p := NewPagination(PageRequest{Page: 1, Limit: 10}, 41)
		assert.Equal(t, 5, p.Pages)
		assert.Equal(t, 41, p.Total)
	})

	t.Run("exact division", func(t *testing.T) {
		p := NewPagination(PageRequest{Page: 2, Limit: 10}, 40)
		assert.Equal(t, 4, p.Pages)
	})

	t.Run("empty result still reports one page", func(t *testing.T) {
		p := NewPagination(PageRequest{Page: 1, Limit: 50}, 0)
		assert.Equal(t, 1, p.Pages)
	})
}
