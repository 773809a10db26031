// Package mail sends onboard-lifecycle notifications. Delivery is strictly
// best-effort: the API layer publishes events to a Dispatcher queue and never
// waits on, or fails because of, the SMTP/API round-trip.
package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/atelierhq/studio-api/internal/model"
)

// Sender delivers a single notification. Implementations must be safe for
// use from the dispatcher goroutine.
type Sender interface {
	// SendOnboardConfirmation acknowledges a submitted meeting request to
	// the submitter.
	SendOnboardConfirmation(ctx context.Context, req *model.OnboardRequest) error
	// SendOnboardAlert notifies the agency inbox about a new request.
	SendOnboardAlert(ctx context.Context, req *model.OnboardRequest) error
	// SendOnboardDecision tells the submitter their request was approved
	// or rejected.
	SendOnboardDecision(ctx context.Context, req *model.OnboardRequest) error
}

type resendSender struct {
	client *resend.Client
	from   string
	inbox  string
}

// NewResendSender builds a Sender backed by the Resend API. from must be an
// address under a domain verified with Resend; inbox is the agency's internal
// notification address.
func NewResendSender(apiKey, from, inbox string) Sender {
	return &resendSender{
		client: resend.NewClient(apiKey),
		from:   from,
		inbox:  inbox,
	}
}

func (s *resendSender) send(ctx context.Context, to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Atelier Studio <%s>", s.from),
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}
	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send %q to %s: %w", subject, to, err)
	}
	return nil
}

func (s *resendSender) SendOnboardConfirmation(ctx context.Context, req *model.OnboardRequest) error {
	html := fmt.Sprintf(
		`<p>Hi %s,</p><p>We received your meeting request for %s at %s. We'll get back to you shortly.</p>`,
		req.Name, req.Date, req.Time,
	)
	return s.send(ctx, req.Email, "We received your meeting request", html)
}

func (s *resendSender) SendOnboardAlert(ctx context.Context, req *model.OnboardRequest) error {
	if s.inbox == "" {
		return nil
	}
	html := fmt.Sprintf(
		`<p>New meeting request from %s (%s, %s)</p><p>%s at %s</p><p>%s</p>`,
		req.Name, req.Email, req.Organisation, req.Date, req.Time, req.Message,
	)
	return s.send(ctx, s.inbox, fmt.Sprintf("New meeting request: %s", req.Organisation), html)
}

func (s *resendSender) SendOnboardDecision(ctx context.Context, req *model.OnboardRequest) error {
	if req.Approved != nil && *req.Approved {
		link := ""
		if req.MeetingLink != nil && *req.MeetingLink != "" {
			link = fmt.Sprintf(`<p>Join here: <a href="%s">%s</a></p>`, *req.MeetingLink, *req.MeetingLink)
		}
		html := fmt.Sprintf(
			`<p>Hi %s,</p><p>Your meeting request for %s at %s has been confirmed.</p>%s`,
			req.Name, req.Date, req.Time, link,
		)
		return s.send(ctx, req.Email, "Your meeting is confirmed", html)
	}

	html := fmt.Sprintf(
		`<p>Hi %s,</p><p>Unfortunately we can't accommodate your meeting request for %s. Feel free to propose another time.</p>`,
		req.Name, req.Date,
	)
	return s.send(ctx, req.Email, "About your meeting request", html)
}

// discardSender is used when no mail provider is configured.
type discardSender struct{}

func NewDiscardSender() Sender {
	return discardSender{}
}

func (discardSender) SendOnboardConfirmation(ctx context.Context, req *model.OnboardRequest) error {
	return nil
}

func (discardSender) SendOnboardAlert(ctx context.Context, req *model.OnboardRequest) error {
	return nil
}

func (discardSender) SendOnboardDecision(ctx context.Context, req *model.OnboardRequest) error {
	return nil
}
