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

type NewsRepository interface {
	List(ctx context.Context, filter model.NewsFilter, limit, offset int) ([]model.News, error)
	Count(ctx context.Context, filter model.NewsFilter) (int, error)
	FindByID(ctx context.Context, id int64) (*model.News, error)
	FindBySlug(ctx context.Context, slug string) (*model.News, error)
	NextID(ctx context.Context) (int64, error)
	Create(ctx context.Context, params model.CreateNewsParams) (*model.News, error)
	Update(ctx context.Context, id int64, params model.UpdateNewsParams) (*model.News, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type newsRepo struct {
	db database.DBTX
}

func NewNewsRepository(db database.DBTX) NewsRepository {
	return &newsRepo{db: db}
}

func newsWhere(filter model.NewsFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.Layout != "" {
		args = append(args, filter.Layout)
		conds = append(conds, fmt.Sprintf("layout = $%d", len(args)))
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

func (r *newsRepo) List(ctx context.Context, filter model.NewsFilter, limit, offset int) ([]model.News, error) {
	where, args := newsWhere(filter)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT * FROM news%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	var items []model.News
	err := r.db.SelectContext(ctx, &items, query, args...)
	return items, err
}

func (r *newsRepo) Count(ctx context.Context, filter model.NewsFilter) (int, error) {
	where, args := newsWhere(filter)

	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM news`+where, args...)
	return count, err
}

func (r *newsRepo) FindByID(ctx context.Context, id int64) (*model.News, error) {
	var item model.News
	err := r.db.GetContext(ctx, &item, `SELECT * FROM news WHERE id = $1`, id)
	return HandleNotFound(&item, err)
}

func (r *newsRepo) FindBySlug(ctx context.Context, slug string) (*model.News, error) {
	var item model.News
	err := r.db.GetContext(ctx, &item, `SELECT * FROM news WHERE slug = $1`, slug)
	return HandleNotFound(&item, err)
}

func (r *newsRepo) NextID(ctx context.Context) (int64, error) {
	var next int64
	err := r.db.GetContext(ctx, &next, `SELECT COALESCE(MAX(id), 0) + 1 FROM news`)
	return next, err
}

func (r *newsRepo) Create(ctx context.Context, params model.CreateNewsParams) (*model.News, error) {
	var item model.News
	err := r.db.GetContext(ctx, &item, `
		INSERT INTO news
			(id, slug, title, subtitle, content, layout, author, tags, image_urls)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING *
	`, params.ID, params.Slug, params.Title, params.Subtitle, params.Content,
		params.Layout, params.Author, pq.Array(params.Tags), pq.Array(params.ImageURLs))
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *newsRepo) Update(ctx context.Context, id int64, params model.UpdateNewsParams) (*model.News, error) {
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
	if params.Subtitle != nil {
		set("subtitle", *params.Subtitle)
	}
	if params.Content != nil {
		set("content", *params.Content)
	}
	if params.Layout != nil {
		set("layout", *params.Layout)
	}
	if params.Author != nil {
		set("author", *params.Author)
	}
	if params.Tags != nil {
		set("tags", pq.Array(params.Tags))
	}
	if params.ImageURLs != nil {
		set("image_urls", pq.Array(params.ImageURLs))
	}
	set("updated_at", time.Now())

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE news SET %s WHERE id = $%d RETURNING *
	`, strings.Join(sets, ", "), len(args))

	var item model.News
	err := r.db.GetContext(ctx, &item, query, args...)
	return HandleNotFound(&item, err)
}

func (r *newsRepo) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
