package model

import "time"

// OnboardState is the closed lifecycle of a meeting request. The wire format
// keeps the legacy nullable approved/done pair; the state is derived from it.
type OnboardState string

const (
	OnboardPending   OnboardState = "pending"
	OnboardApproved  OnboardState = "approved"
	OnboardRejected  OnboardState = "rejected"
	OnboardCompleted OnboardState = "completed"
)

type OnboardRequest struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Organisation string    `db:"organisation" json:"organisation"`
	Title        string    `db:"title" json:"title"`
	Message      string    `db:"message" json:"message"`
	Date         string    `db:"meeting_date" json:"date"`
	Time         string    `db:"meeting_time" json:"time"`
	MeetingID    string    `db:"meeting_id" json:"meetingId"`
	MeetingLink  *string   `db:"meeting_link" json:"meeting_link"`
	Approved     *bool     `db:"approved" json:"approved"`
	Done         *bool     `db:"done" json:"done"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// State derives the lifecycle state from the (approved, done) pair.
func (r *OnboardRequest) State() OnboardState {
	switch {
	case r.Approved == nil:
		return OnboardPending
	case !*r.Approved:
		return OnboardRejected
	case r.Done != nil && *r.Done:
		return OnboardCompleted
	default:
		return OnboardApproved
	}
}

type CreateOnboardParams struct {
	Name         string
	Email        string
	Organisation string
	Title        string
	Message      string
	Date         string
	Time         string
	MeetingID    string
}

// OnboardFilter holds the optional approved/done list filters.
type OnboardFilter struct {
	Approved *bool
	Done     *bool
}
