package mail

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/atelierhq/studio-api/internal/model"
)

type mockSender struct {
	mu            sync.Mutex
	confirmations int
	alerts        int
	decisions     int
	err           error
}

func (m *mockSender) SendOnboardConfirmation(ctx context.Context, req *model.OnboardRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.confirmations++
	return m.err
}

func (m *mockSender) SendOnboardAlert(ctx context.Context, req *model.OnboardRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alerts++
	return m.err
}

func (m *mockSender) SendOnboardDecision(ctx context.Context, req *model.OnboardRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decisions++
	return m.err
}

func (m *mockSender) counts() (int, int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.confirmations, m.alerts, m.decisions
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestDispatcher(t *testing.T) {
	req := &model.OnboardRequest{ID: 1, Name: "Ada", Email: "ada@example.com"}

	t.Run("received event sends confirmation and alert", func(t *testing.T) {
		sender := &mockSender{}
		d := NewDispatcher(sender, 4, time.Second)
		d.Start()
		defer d.Stop()

		d.Enqueue(Event{Type: EventOnboardReceived, Request: req})

		waitFor(t, func() bool {
			c, a, _ := sender.counts()
			return c == 1 && a == 1
		})
	})

	t.Run("decision event sends decision mail", func(t *testing.T) {
		sender := &mockSender{}
		d := NewDispatcher(sender, 4, time.Second)
		d.Start()
		defer d.Stop()

		d.Enqueue(Event{Type: EventOnboardDecision, Request: req})

		waitFor(t, func() bool {
			_, _, dec := sender.counts()
			return dec == 1
		})
	})

	t.Run("send failure is swallowed", func(t *testing.T) {
		sender := &mockSender{err: errors.New("provider down")}
		d := NewDispatcher(sender, 4, time.Second)
		d.Start()
		defer d.Stop()

		d.Enqueue(Event{Type: EventOnboardDecision, Request: req})

		waitFor(t, func() bool {
			_, _, dec := sender.counts()
			return dec == 1
		})
	})

	t.Run("enqueue does not block when queue is full", func(t *testing.T) {
		sender := &mockSender{}
		d := NewDispatcher(sender, 1, time.Second)
		// Not started: nothing drains the queue.

		done := make(chan struct{})
		go func() {
			for i := 0; i < 10; i++ {
				d.Enqueue(Event{Type: EventOnboardReceived, Request: req})
			}
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("enqueue blocked on full queue")
		}

		c, a, _ := sender.counts()
		assert.Zero(t, c)
		assert.Zero(t, a)
	})
}
