package service

import (
	"context"
	"strings"

	"github.com/gosimple/slug"

	apperrors "github.com/atelierhq/studio-api/internal/errors"
	"github.com/atelierhq/studio-api/internal/model"
	"github.com/atelierhq/studio-api/internal/repository"
	"github.com/atelierhq/studio-api/internal/util"
)

// Slugify derives the URL-safe lookup key from a title. Deterministic and
// idempotent: Slugify(Slugify(s)) == Slugify(s).
func Slugify(title string) string {
	return slug.Make(title)
}

// Blog

type CreateBlogInput struct {
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

type UpdateBlogInput struct {
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

type BlogService struct {
	repo repository.BlogRepository
}

func NewBlogService(repo repository.BlogRepository) *BlogService {
	return &BlogService{repo: repo}
}

func (s *BlogService) List(ctx context.Context, filter model.BlogFilter, limit, offset int) ([]model.Blog, int, error) {
	items, err := s.repo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}
	return items, total, nil
}

func (s *BlogService) GetByID(ctx context.Context, id int64) (*model.Blog, error) {
	blog, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if blog == nil {
		return nil, apperrors.NotFound("Blog post")
	}
	return blog, nil
}

func (s *BlogService) GetBySlug(ctx context.Context, slugValue string) (*model.Blog, error) {
	blog, err := s.repo.FindBySlug(ctx, slugValue)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if blog == nil {
		return nil, apperrors.NotFound("Blog post")
	}
	return blog, nil
}

func (s *BlogService) Create(ctx context.Context, input CreateBlogInput) (*model.Blog, error) {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"title", input.Title},
		{"excerpt", input.Excerpt},
		{"author", input.Author},
		{"date", input.Date},
		{"content", input.Content},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.MissingFields(missing)
	}

	title := util.SanitizeText(strings.TrimSpace(input.Title))

	id := input.ID
	if id == 0 {
		next, err := s.repo.NextID(ctx)
		if err != nil {
			return nil, apperrors.Database(err)
		}
		id = next
	}

	slugValue := strings.TrimSpace(input.Slug)
	if slugValue == "" {
		slugValue = Slugify(title)
	} else {
		slugValue = Slugify(slugValue)
	}

	blog, err := s.repo.Create(ctx, model.CreateBlogParams{
		ID:       id,
		Slug:     slugValue,
		Title:    title,
		Excerpt:  util.SanitizeHTML(input.Excerpt),
		Author:   util.SanitizeText(input.Author),
		Date:     util.SanitizeText(input.Date),
		Content:  util.SanitizeHTML(input.Content),
		Tags:     sanitizeTags(input.Tags),
		ImageURL: util.SanitizeText(input.ImageURL),
		IsPinned: input.IsPinned,
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			if repository.UniqueConstraint(err) == "blogs_pkey" {
				return nil, apperrors.AlreadyExists("A blog post with this id")
			}
			return nil, apperrors.AlreadyExists("A blog post with this slug")
		}
		return nil, apperrors.Database(err)
	}
	return blog, nil
}

func (s *BlogService) Update(ctx context.Context, id int64, input UpdateBlogInput) (*model.Blog, error) {
	params := model.UpdateBlogParams{
		Tags:     sanitizeTags(input.Tags),
		IsPinned: input.IsPinned,
	}
	if input.Title != nil {
		title := util.SanitizeText(strings.TrimSpace(*input.Title))
		params.Title = &title
		// Slug follows the title unless the caller pinned one explicitly.
		if input.Slug == nil {
			derived := Slugify(title)
			params.Slug = &derived
		}
	}
	if input.Slug != nil {
		slugValue := Slugify(strings.TrimSpace(*input.Slug))
		params.Slug = &slugValue
	}
	if input.Excerpt != nil {
		v := util.SanitizeHTML(*input.Excerpt)
		params.Excerpt = &v
	}
	if input.Author != nil {
		v := util.SanitizeText(*input.Author)
		params.Author = &v
	}
	if input.Date != nil {
		v := util.SanitizeText(*input.Date)
		params.Date = &v
	}
	if input.Content != nil {
		v := util.SanitizeHTML(*input.Content)
		params.Content = &v
	}
	if input.ImageURL != nil {
		v := util.SanitizeText(*input.ImageURL)
		params.ImageURL = &v
	}

	blog, err := s.repo.Update(ctx, id, params)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.AlreadyExists("A blog post with this slug")
		}
		return nil, apperrors.Database(err)
	}
	if blog == nil {
		return nil, apperrors.NotFound("Blog post")
	}
	return blog, nil
}

func (s *BlogService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if !deleted {
		return apperrors.NotFound("Blog post")
	}
	return nil
}

// News

type CreateNewsInput struct {
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

type UpdateNewsInput struct {
	Slug      *string
	Title     *string
	Subtitle  *string
	Content   *string
	Layout    *string
	Author    *string
	Tags      []string
	ImageURLs []string
}

type NewsService struct {
	repo repository.NewsRepository
}

func NewNewsService(repo repository.NewsRepository) *NewsService {
	return &NewsService{repo: repo}
}

func (s *NewsService) List(ctx context.Context, filter model.NewsFilter, limit, offset int) ([]model.News, int, error) {
	items, err := s.repo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}
	return items, total, nil
}

func (s *NewsService) GetByID(ctx context.Context, id int64) (*model.News, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if item == nil {
		return nil, apperrors.NotFound("News article")
	}
	return item, nil
}

func (s *NewsService) GetBySlug(ctx context.Context, slugValue string) (*model.News, error) {
	item, err := s.repo.FindBySlug(ctx, slugValue)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if item == nil {
		return nil, apperrors.NotFound("News article")
	}
	return item, nil
}

func (s *NewsService) Create(ctx context.Context, input CreateNewsInput) (*model.News, error) {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"title", input.Title},
		{"subtitle", input.Subtitle},
		{"content", input.Content},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.MissingFields(missing)
	}

	title := util.SanitizeText(strings.TrimSpace(input.Title))

	id := input.ID
	if id == 0 {
		next, err := s.repo.NextID(ctx)
		if err != nil {
			return nil, apperrors.Database(err)
		}
		id = next
	}

	slugValue := strings.TrimSpace(input.Slug)
	if slugValue == "" {
		slugValue = Slugify(title)
	} else {
		slugValue = Slugify(slugValue)
	}

	item, err := s.repo.Create(ctx, model.CreateNewsParams{
		ID:        id,
		Slug:      slugValue,
		Title:     title,
		Subtitle:  util.SanitizeHTML(input.Subtitle),
		Content:   util.SanitizeHTML(input.Content),
		Layout:    util.SanitizeText(input.Layout),
		Author:    util.SanitizeText(input.Author),
		Tags:      sanitizeTags(input.Tags),
		ImageURLs: sanitizeTags(input.ImageURLs),
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			if repository.UniqueConstraint(err) == "news_pkey" {
				return nil, apperrors.AlreadyExists("A news article with this id")
			}
			return nil, apperrors.AlreadyExists("A news article with this slug")
		}
		return nil, apperrors.Database(err)
	}
	return item, nil
}

func (s *NewsService) Update(ctx context.Context, id int64, input UpdateNewsInput) (*model.News, error) {
	params := model.UpdateNewsParams{
		Tags:      sanitizeTags(input.Tags),
		ImageURLs: sanitizeTags(input.ImageURLs),
	}
	if input.Title != nil {
		title := util.SanitizeText(strings.TrimSpace(*input.Title))
		params.Title = &title
		if input.Slug == nil {
			derived := Slugify(title)
			params.Slug = &derived
		}
	}
	if input.Slug != nil {
		slugValue := Slugify(strings.TrimSpace(*input.Slug))
		params.Slug = &slugValue
	}
	if input.Subtitle != nil {
		v := util.SanitizeHTML(*input.Subtitle)
		params.Subtitle = &v
	}
	if input.Content != nil {
		v := util.SanitizeHTML(*input.Content)
		params.Content = &v
	}
	if input.Layout != nil {
		v := util.SanitizeText(*input.Layout)
		params.Layout = &v
	}
	if input.Author != nil {
		v := util.SanitizeText(*input.Author)
		params.Author = &v
	}

	item, err := s.repo.Update(ctx, id, params)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.AlreadyExists("A news article with this slug")
		}
		return nil, apperrors.Database(err)
	}
	if item == nil {
		return nil, apperrors.NotFound("News article")
	}
	return item, nil
}

func (s *NewsService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if !deleted {
		return apperrors.NotFound("News article")
	}
	return nil
}

// sanitizeTags strips markup from each element, preserving order. Tags are
// stored as submitted otherwise; no normalization is applied.
func sanitizeTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, util.SanitizeText(t))
	}
	return out
}
