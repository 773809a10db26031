package service

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/atelierhq/studio-api/internal/errors"
	"github.com/atelierhq/studio-api/internal/mail"
	"github.com/atelierhq/studio-api/internal/model"
	"github.com/atelierhq/studio-api/internal/repository"
	"github.com/atelierhq/studio-api/internal/util"
)

type SubmitOnboardInput struct {
	Name         string
	Email        string
	Organisation string
	Title        string
	Message      string
	Date         string
	Time         string
	MeetingID    string
}

// OnboardService drives the meeting-request lifecycle:
//
//	pending --approve--> approved --done--> completed
//	pending --reject--> rejected
//
// Rejected and completed are terminal. Notification mail is published to the
// dispatcher queue after the state mutation and never blocks the caller.
type OnboardService struct {
	repo       repository.OnboardRepository
	dispatcher *mail.Dispatcher
}

func NewOnboardService(repo repository.OnboardRepository, dispatcher *mail.Dispatcher) *OnboardService {
	return &OnboardService{repo: repo, dispatcher: dispatcher}
}

// Submit validates and persists a public meeting request. Every missing
// field is reported, not just the first.
func (s *OnboardService) Submit(ctx context.Context, input SubmitOnboardInput) (*model.OnboardRequest, error) {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", input.Name},
		{"email", input.Email},
		{"organisation", input.Organisation},
		{"title", input.Title},
		{"message", input.Message},
		{"date", input.Date},
		{"time", input.Time},
		{"meetingId", input.MeetingID},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.MissingFields(missing)
	}

	email := strings.TrimSpace(input.Email)
	if !util.IsValidEmail(email) {
		return nil, apperrors.InvalidInput("email", "must be a valid email address")
	}

	day, ok := util.ParseMeetingDate(input.Date)
	if !ok {
		return nil, apperrors.InvalidDate("Meeting date must be a valid yyyy-mm-dd date")
	}
	if util.IsPastDay(day, time.Now()) {
		return nil, apperrors.InvalidDate("Meeting date cannot be in the past")
	}

	req, err := s.repo.Create(ctx, model.CreateOnboardParams{
		Name:         util.SanitizeText(input.Name),
		Email:        util.SanitizeText(email),
		Organisation: util.SanitizeText(input.Organisation),
		Title:        util.SanitizeText(input.Title),
		Message:      util.SanitizeText(input.Message),
		Date:         util.SanitizeText(input.Date),
		Time:         util.SanitizeText(input.Time),
		MeetingID:    util.SanitizeText(input.MeetingID),
	})
	if err != nil {
		return nil, apperrors.Database(err)
	}

	s.dispatcher.Enqueue(mail.Event{Type: mail.EventOnboardReceived, Request: req})

	return req, nil
}

func (s *OnboardService) List(ctx context.Context, filter model.OnboardFilter, limit, offset int) ([]model.OnboardRequest, int, error) {
	requests, err := s.repo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}
	return requests, total, nil
}

// Decide approves or rejects a pending request. meetingLink is persisted only
// when approving; a link sent alongside a rejection is discarded.
func (s *OnboardService) Decide(ctx context.Context, id int64, approved bool, meetingLink string) (*model.OnboardRequest, error) {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if req == nil {
		return nil, apperrors.NotFound("Onboard request")
	}
	if req.State() != model.OnboardPending {
		return nil, apperrors.Conflict("Request has already been decided")
	}

	var link *string
	if approved {
		if trimmed := strings.TrimSpace(meetingLink); trimmed != "" {
			sanitized := util.SanitizeText(trimmed)
			link = &sanitized
		}
	}

	updated, err := s.repo.SetDecision(ctx, id, approved, link)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if updated == nil {
		// The row existed above, so a concurrent decision won the race.
		return nil, apperrors.Conflict("Request has already been decided")
	}

	s.dispatcher.Enqueue(mail.Event{Type: mail.EventOnboardDecision, Request: updated})

	return updated, nil
}

// MarkDone completes an approved request. The legacy API accepted done on any
// request; this contract deliberately requires an approved, uncompleted one.
func (s *OnboardService) MarkDone(ctx context.Context, id int64, done bool) (*model.OnboardRequest, error) {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if req == nil {
		return nil, apperrors.NotFound("Onboard request")
	}

	switch req.State() {
	case model.OnboardApproved:
		// The only state where the done flag may change.
	case model.OnboardCompleted:
		return nil, apperrors.Conflict("Request is already completed")
	default:
		return nil, apperrors.Conflict("Request must be approved before completion")
	}

	updated, err := s.repo.SetDone(ctx, id, done)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if updated == nil {
		// Guarded update missed: completed concurrently.
		return nil, apperrors.Conflict("Request is already completed")
	}
	return updated, nil
}
