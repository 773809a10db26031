package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/atelierhq/studio-api/internal/database"
	"github.com/atelierhq/studio-api/internal/model"
)

type BlogRepository interface {
	List(ctx context.Context, filter model.BlogFilter, limit, offset int) ([]model.Blog, error)
	Count(ctx context.Context, filter model.BlogFilter) (int, error)
	FindByID(ctx context.Context, id int64) (*model.Blog, error)
	FindBySlug(ctx context.Context, slug string) (*model.Blog, error)
	NextID(ctx context.Context) (int64, error)
	Create(ctx context.Context, params model.CreateBlogParams) (*model.Blog, error)
	Update(ctx context.Context, id int64, params model.UpdateBlogParams) (*model.Blog, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type blogRepo struct {
	db database.DBTX
}

// NewBlogRepository accepts either a live connection or a transaction.
func NewBlogRepository(db database.DBTX) BlogRepository {
	return &blogRepo{db: db}
}

func blogWhere(filter model.BlogFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.IsPinned != nil {
		args = append(args, *filter.IsPinned)
		conds = append(conds, fmt.Sprintf("is_pinned = $%d", len(args)))
	}
	if filter.Tag != "" {
		args = append(args, filter.Tag)
		conds = append(conds, fmt.Sprintf("$%d = ANY(tags)", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *blogRepo) List(ctx context.Context, filter model.BlogFilter, limit, offset int) ([]model.Blog, error) {
	where, args := blogWhere(filter)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT * FROM blogs%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	var blogs []model.Blog
	err := r.db.SelectContext(ctx, &blogs, query, args...)
	return blogs, err
}

func (r *blogRepo) Count(ctx context.Context, filter model.BlogFilter) (int, error) {
	where, args := blogWhere(filter)

	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM blogs`+where, args...)
	return count, err
}

func (r *blogRepo) FindByID(ctx context.Context, id int64) (*model.Blog, error) {
	var blog model.Blog
	err := r.db.GetContext(ctx, &blog, `SELECT * FROM blogs WHERE id = $1`, id)
	return HandleNotFound(&blog, err)
}

func (r *blogRepo) FindBySlug(ctx context.Context, slug string) (*model.Blog, error) {
	var blog model.Blog
	err := r.db.GetContext(ctx, &blog, `SELECT * FROM blogs WHERE slug = $1`, slug)
	return HandleNotFound(&blog, err)
}

func (r *blogRepo) NextID(ctx context.Context) (int64, error) {
	var next int64
	err := r.db.GetContext(ctx, &next, `SELECT COALESCE(MAX(id), 0) + 1 FROM blogs`)
	return next, err
}

func (r *blogRepo) Create(ctx context.Context, params model.CreateBlogParams) (*model.Blog, error) {
	var blog model.Blog
	err := r.db.GetContext(ctx, &blog, `
		INSERT INTO blogs
			(id, slug, title, excerpt, author, date, content, tags, image_url, is_pinned)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING *
	`, params.ID, params.Slug, params.Title, params.Excerpt, params.Author,
		params.Date, params.Content, pq.Array(params.Tags), params.ImageURL, params.IsPinned)
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepo) Update(ctx context.Context, id int64, params model.UpdateBlogParams) (*model.Blog, error) {
	var sets []string
	var args []any
	set := func(col string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if params.Slug != nil {
		set("slug", *params.Slug)
	}
	if params.Title != nil {
		set("title", *params.Title)
	}
	if params.Excerpt != nil {
		set("excerpt", *params.Excerpt)
	}
	if params.Author != nil {
		set("author", *params.Author)
	}
	if params.Date != nil {
		set("date", *params.Date)
	}
	if params.Content != nil {
		set("content", *params.Content)
	}
	if params.Tags != nil {
		set("tags", pq.Array(params.Tags))
	}
	if params.ImageURL != nil {
		set("image_url", *params.ImageURL)
	}
	if params.IsPinned != nil {
		set("is_pinned", *params.IsPinned)
	}
	set("updated_at", time.Now())

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE blogs SET %s WHERE id = $%d RETURNING *
	`, strings.Join(sets, ", "), len(args))

	var blog model.Blog
	err := r.db.GetContext(ctx, &blog, query, args...)
	return HandleNotFound(&blog, err)
}

func (r *blogRepo) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
