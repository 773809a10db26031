// Package audit provides structured audit logging for security sensitive
// events. Audit entries are distinguishable from application logs by the
// audit=true field so they can be routed to a separate sink.
package audit

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type EventType string

const (
	EventLoginSuccess EventType = "login_success"
	EventLoginFailure EventType = "login_failure"
	EventLogout       EventType = "logout"
	EventAuthFailure  EventType = "auth_failure"

	EventContentCreated EventType = "content_created"
	EventContentUpdated EventType = "content_updated"
	EventContentDeleted EventType = "content_deleted"

	EventOnboardDecided   EventType = "onboard_decided"
	EventOnboardCompleted EventType = "onboard_completed"
)

type Entry struct {
	Event    EventType
	Username string
	IP       string
	Resource string
	Detail   string
}

// Log writes an audit entry at info level. Failures are logged at warn so
// they stand out when scanning for abuse.
func Log(entry Entry) {
	var evt *zerolog.Event
	switch entry.Event {
	case EventLoginFailure, EventAuthFailure:
		evt = log.Warn()
	default:
		evt = log.Info()
	}

	evt = evt.Bool("audit", true).Str("event", string(entry.Event))
	if entry.Username != "" {
		evt = evt.Str("username", entry.Username)
	}
	if entry.IP != "" {
		evt = evt.Str("ip", entry.IP)
	}
	if entry.Resource != "" {
		evt = evt.Str("resource", entry.Resource)
	}
	if entry.Detail != "" {
		evt = evt.Str("detail", entry.Detail)
	}
	evt.Msg("audit event")
}
