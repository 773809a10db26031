package handler

import (
	"net/http"
	"strconv"

	"github.com/atelierhq/studio-api/internal/audit"
	apperrors "github.com/atelierhq/studio-api/internal/errors"
	"github.com/atelierhq/studio-api/internal/middleware"
	"github.com/atelierhq/studio-api/internal/model"
	"github.com/atelierhq/studio-api/internal/service"
)

type OnboardHandler struct {
	onboard *service.OnboardService
}

func NewOnboardHandler(onboard *service.OnboardService) *OnboardHandler {
	return &OnboardHandler{onboard: onboard}
}

type submitOnboardRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Organisation string `json:"organisation"`
	Title        string `json:"title"`
	Message      string `json:"message"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	MeetingID    string `json:"meetingId"`
}

func (h *OnboardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitOnboardRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.onboard.Submit(r.Context(), service.SubmitOnboardInput{
		Name:         req.Name,
		Email:        req.Email,
		Organisation: req.Organisation,
		Title:        req.Title,
		Message:      req.Message,
		Date:         req.Date,
		Time:         req.Time,
		MeetingID:    req.MeetingID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"id":      created.ID,
	})
}

func (h *OnboardHandler) List(w http.ResponseWriter, r *http.Request) {
	page := ParsePagination(r)
	filter := model.OnboardFilter{
		Approved: parseBoolFilter(r, "approved"),
		Done:     parseBoolFilter(r, "done"),
	}

	requests, total, err := h.onboard.List(r.Context(), filter, page.Limit, page.Offset())
	if err != nil {
		writeError(w, err)
		return
	}
	if requests == nil {
		requests = []model.OnboardRequest{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"requests":   requests,
		"pagination": NewPagination(page, total),
	})
}

type approveRequest struct {
	Approved    *bool  `json:"approved"`
	MeetingLink string `json:"meeting_link"`
}

func (h *OnboardHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req approveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Approved == nil {
		writeError(w, apperrors.InvalidInput("approved", "must be a boolean"))
		return
	}

	updated, err := h.onboard.Decide(r.Context(), id, *req.Approved, req.MeetingLink)
	if err != nil {
		writeError(w, err)
		return
	}

	h.auditOnboard(r, audit.EventOnboardDecided, id)
	writeJSON(w, http.StatusOK, updated)
}

type doneRequest struct {
	Done *bool `json:"done"`
}

func (h *OnboardHandler) MarkDone(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req doneRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Done == nil {
		writeError(w, apperrors.InvalidInput("done", "must be a boolean"))
		return
	}

	updated, err := h.onboard.MarkDone(r.Context(), id, *req.Done)
	if err != nil {
		writeError(w, err)
		return
	}

	h.auditOnboard(r, audit.EventOnboardCompleted, id)
	writeJSON(w, http.StatusOK, updated)
}

func (h *OnboardHandler) auditOnboard(r *http.Request, event audit.EventType, id int64) {
	username := ""
	if sess := middleware.GetSession(r.Context()); sess != nil {
		username = sess.Username
	}
	audit.Log(audit.Entry{
		Event:    event,
		Username: username,
		IP:       clientIP(r),
		Resource: "onboard/" + strconv.FormatInt(id, 10),
	})
}
