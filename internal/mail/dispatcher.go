package mail

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/atelierhq/studio-api/internal/model"
)

type EventType string

const (
	EventOnboardReceived EventType = "onboard_received"
	EventOnboardDecision EventType = "onboard_decision"
)

// Event is a notification to be delivered off the request path.
type Event struct {
	Type    EventType
	Request *model.OnboardRequest
}

// Dispatcher drains a bounded queue of notification events on a single
// worker goroutine. Enqueue never blocks the caller; a full queue or a
// failed send drops the event with a log line. There is no retry.
type Dispatcher struct {
	sender      Sender
	events      chan Event
	done        chan struct{}
	sendTimeout time.Duration
}

func NewDispatcher(sender Sender, queueSize int, sendTimeout time.Duration) *Dispatcher {
	return &Dispatcher{
		sender:      sender,
		events:      make(chan Event, queueSize),
		done:        make(chan struct{}),
		sendTimeout: sendTimeout,
	}
}

func (d *Dispatcher) Start() {
	go d.run()
	log.Info().Int("queue", cap(d.events)).Msg("mail dispatcher started")
}

func (d *Dispatcher) Stop() {
	close(d.done)
	log.Info().Msg("mail dispatcher stopped")
}

// Enqueue publishes an event without blocking. Dropped events are lost by
// design; the primary request has already succeeded.
func (d *Dispatcher) Enqueue(event Event) {
	select {
	case d.events <- event:
	default:
		log.Warn().
			Str("type", string(event.Type)).
			Msg("mail queue full, notification dropped")
	}
}

func (d *Dispatcher) run() {
	for {
		select {
		case <-d.done:
			return
		case event := <-d.events:
			d.deliver(event)
		}
	}
}

func (d *Dispatcher) deliver(event Event) {
	ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
	defer cancel()

	switch event.Type {
	case EventOnboardReceived:
		if err := d.sender.SendOnboardConfirmation(ctx, event.Request); err != nil {
			log.Error().Err(err).Int64("requestId", event.Request.ID).Msg("failed to send onboard confirmation")
		}
		if err := d.sender.SendOnboardAlert(ctx, event.Request); err != nil {
			log.Error().Err(err).Int64("requestId", event.Request.ID).Msg("failed to send onboard alert")
		}
	case EventOnboardDecision:
		if err := d.sender.SendOnboardDecision(ctx, event.Request); err != nil {
			log.Error().Err(err).Int64("requestId", event.Request.ID).Msg("failed to send onboard decision")
		}
	default:
		log.Warn().Str("type", string(event.Type)).Msg("unknown mail event type")
	}
}
