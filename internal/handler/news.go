package handler

import (
	"net/http"
	"strconv"

	"github.com/atelierhq/studio-api/internal/audit"
	"github.com/atelierhq/studio-api/internal/middleware"
	"github.com/atelierhq/studio-api/internal/model"
	"github.com/atelierhq/studio-api/internal/service"
)

type NewsHandler struct {
	news *service.NewsService
}

func NewNewsHandler(news *service.NewsService) *NewsHandler {
	return &NewsHandler{news: news}
}

type newsPayload struct {
	ID        int64    `json:"id"`
	Slug      string   `json:"slug"`
	Title     string   `json:"title"`
	Subtitle  string   `json:"subtitle"`
	Content   string   `json:"content"`
	Layout    string   `json:"layout"`
	Author    string   `json:"author"`
	Tags      []string `json:"tags"`
	ImageURLs []string `json:"imageUrls"`
}

type newsUpdatePayload struct {
	Slug      *string  `json:"slug"`
	Title     *string  `json:"title"`
	Subtitle  *string  `json:"subtitle"`
	Content   *string  `json:"content"`
	Layout    *string  `json:"layout"`
	Author    *string  `json:"author"`
	Tags      []string `json:"tags"`
	ImageURLs []string `json:"imageUrls"`
}

func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	page := ParsePagination(r)
	filter := model.NewsFilter{
		Layout: r.URL.Query().Get("layout"),
		Tag:    r.URL.Query().Get("tags"),
	}

	items, total, err := h.news.List(r.Context(), filter, page.Limit, page.Offset())
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []model.News{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"news":       items,
		"pagination": NewPagination(page, total),
	})
}

func (h *NewsHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	item, err := h.news.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *NewsHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug, err := slugParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	item, err := h.news.GetBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req newsPayload
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	item, err := h.news.Create(r.Context(), service.CreateNewsInput{
		ID:        req.ID,
		Slug:      req.Slug,
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		Content:   req.Content,
		Layout:    req.Layout,
		Author:    req.Author,
		Tags:      req.Tags,
		ImageURLs: req.ImageURLs,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.auditContent(r, audit.EventContentCreated, item.ID)
	writeJSON(w, http.StatusCreated, item)
}

func (h *NewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req newsUpdatePayload
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	item, err := h.news.Update(r.Context(), id, service.UpdateNewsInput{
		Slug:      req.Slug,
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		Content:   req.Content,
		Layout:    req.Layout,
		Author:    req.Author,
		Tags:      req.Tags,
		ImageURLs: req.ImageURLs,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.auditContent(r, audit.EventContentUpdated, id)
	writeJSON(w, http.StatusOK, item)
}

func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.news.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	h.auditContent(r, audit.EventContentDeleted, id)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "News article deleted",
	})
}

func (h *NewsHandler) auditContent(r *http.Request, event audit.EventType, id int64) {
	username := ""
	if sess := middleware.GetSession(r.Context()); sess != nil {
		username = sess.Username
	}
	audit.Log(audit.Entry{
		Event:    event,
		Username: username,
		IP:       clientIP(r),
		Resource: "news/" + strconv.FormatInt(id, 10),
	})
}
