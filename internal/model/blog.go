package model

import (
	"time"

	"github.com/lib/pq"
)

type Blog struct {
	ID        int64          `db:"id" json:"id"`
	Slug      string         `db:"slug" json:"slug"`
	Title     string         `db:"title" json:"title"`
	Excerpt   string         `db:"excerpt" json:"excerpt"`
	Author    string         `db:"author" json:"author"`
	Date      string         `db:"date" json:"date"`
	Content   string         `db:"content" json:"content"`
	Tags      pq.StringArray `db:"tags" json:"tags"`
	ImageURL  string         `db:"image_url" json:"imageUrl"`
	IsPinned  bool           `db:"is_pinned" json:"isPinned"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time      `db:"updated_at" json:"updatedAt"`
}

type CreateBlogParams struct {
	ID       int64
	Slug     string
	Title    string
	Excerpt  string
	Author   string
	Date     string
	Content  string
	Tags     []string
	ImageURL string
	IsPinned bool
}

// UpdateBlogParams is a partial update; nil fields are left untouched.
type UpdateBlogParams struct {
	Slug     *string
	Title    *string
	Excerpt  *string
	Author   *string
	Date     *string
	Content  *string
	Tags     []string
	ImageURL *string
	IsPinned *bool
}

// BlogFilter holds the whitelisted list filters for the blog collection.
type BlogFilter struct {
	IsPinned *bool
	Tag      string
}
