package handler

import (
	"net/http"
	"strconv"

	"github.com/atelierhq/studio-api/internal/audit"
	"github.com/atelierhq/studio-api/internal/middleware"
	"github.com/atelierhq/studio-api/internal/model"
	"github.com/atelierhq/studio-api/internal/service"
)

type BlogHandler struct {
	blogs *service.BlogService
}

func NewBlogHandler(blogs *service.BlogService) *BlogHandler {
	return &BlogHandler{blogs: blogs}
}

type blogPayload struct {
	ID       int64    `json:"id"`
	Slug     string   `json:"slug"`
	Title    string   `json:"title"`
	Excerpt  string   `json:"excerpt"`
	Author   string   `json:"author"`
	Date     string   `json:"date"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	ImageURL string   `json:"imageUrl"`
	IsPinned bool     `json:"isPinned"`
}

type blogUpdatePayload struct {
	Slug     *string  `json:"slug"`
	Title    *string  `json:"title"`
	Excerpt  *string  `json:"excerpt"`
	Author   *string  `json:"author"`
	Date     *string  `json:"date"`
	Content  *string  `json:"content"`
	Tags     []string `json:"tags"`
	ImageURL *string  `json:"imageUrl"`
	IsPinned *bool    `json:"isPinned"`
}

// parseBoolFilter reads an optional boolean query parameter. Unparsable
// values are ignored, matching the whitelist-and-ignore filter contract.
func parseBoolFilter(r *http.Request, key string) *bool {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	page := ParsePagination(r)
	filter := model.BlogFilter{
		IsPinned: parseBoolFilter(r, "isPinned"),
		Tag:      r.URL.Query().Get("tags"),
	}

	blogs, total, err := h.blogs.List(r.Context(), filter, page.Limit, page.Offset())
	if err != nil {
		writeError(w, err)
		return
	}
	if blogs == nil {
		blogs = []model.Blog{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"blogs":      blogs,
		"pagination": NewPagination(page, total),
	})
}

func (h *BlogHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	blog, err := h.blogs.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, blog)
}

func (h *BlogHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug, err := slugParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	blog, err := h.blogs.GetBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, blog)
}

func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req blogPayload
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	blog, err := h.blogs.Create(r.Context(), service.CreateBlogInput{
		ID:       req.ID,
		Slug:     req.Slug,
		Title:    req.Title,
		Excerpt:  req.Excerpt,
		Author:   req.Author,
		Date:     req.Date,
		Content:  req.Content,
		Tags:     req.Tags,
		ImageURL: req.ImageURL,
		IsPinned: req.IsPinned,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.auditContent(r, audit.EventContentCreated, "blog", blog.ID)
	writeJSON(w, http.StatusCreated, blog)
}

func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req blogUpdatePayload
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	blog, err := h.blogs.Update(r.Context(), id, service.UpdateBlogInput{
		Slug:     req.Slug,
		Title:    req.Title,
		Excerpt:  req.Excerpt,
		Author:   req.Author,
		Date:     req.Date,
		Content:  req.Content,
		Tags:     req.Tags,
		ImageURL: req.ImageURL,
		IsPinned: req.IsPinned,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.auditContent(r, audit.EventContentUpdated, "blog", id)
	writeJSON(w, http.StatusOK, blog)
}

func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.blogs.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	h.auditContent(r, audit.EventContentDeleted, "blog", id)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Blog post deleted",
	})
}

func (h *BlogHandler) auditContent(r *http.Request, event audit.EventType, kind string, id int64) {
	username := ""
	if sess := middleware.GetSession(r.Context()); sess != nil {
		username = sess.Username
	}
	audit.Log(audit.Entry{
		Event:    event,
		Username: username,
		IP:       clientIP(r),
		Resource: kind + "/" + strconv.FormatInt(id, 10),
	})
}
