package model

import (
	"time"

	"github.com/lib/pq"
)

type News struct {
	ID        int64          `db:"id" json:"id"`
	Slug      string         `db:"slug" json:"slug"`
	Title     string         `db:"title" json:"title"`
	Subtitle  string         `db:"subtitle" json:"subtitle"`
	Content   string         `db:"content" json:"content"`
	Layout    string         `db:"layout" json:"layout"`
	Author    string         `db:"author" json:"author"`
	Tags      pq.StringArray `db:"tags" json:"tags"`
	ImageURLs pq.StringArray `db:"image_urls" json:"imageUrls"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time      `db:"updated_at" json:"updatedAt"`
}

type CreateNewsParams struct {
	ID        int64
	Slug      string
	Title     string
	Subtitle  string
	Content   string
	Layout    string
	Author    string
	Tags      []string
	ImageURLs []string
}

// UpdateNewsParams is a partial update; nil fields are left untouched.
type UpdateNewsParams struct {
	Slug      *string
	Title     *string
	Subtitle  *string
	Content   *string
	Layout    *string
	Author    *string
	Tags      []string
	ImageURLs []string
}

// NewsFilter holds the whitelisted list filters for the news collection.
type NewsFilter struct {
	Layout string
	Tag    string
}
