package auth

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type EventKind string

const (
	EventSignedUp  EventKind = "signed_up"
	EventSignedIn  EventKind = "signed_in"
	EventSignedOut EventKind = "signed_out"
)

// Event is an auth-state transition.
type Event struct {
	Kind     EventKind
	Identity Identity
	At       time.Time
}

// Broker fans auth events out to subscribers. Publish never blocks: a
// subscriber whose buffer is full misses the event.
type Broker struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	next   int
	closed bool
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[int]chan Event)}
}

// Subscribe returns the event channel and a func that unsubscribes and
// closes it. The func is safe to call more than once.
func (b *Broker) Subscribe(buf int) (<-chan Event, func()) {
	ch := make(chan Event, buf)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	id := b.next
	b.next++
	b.subs[id] = ch

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if c, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(c)
		}
	}
}

func (b *Broker) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Close ends every subscription. Later subscribers get a closed channel.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

// LogEvents subscribes for the lifetime of ctx and logs every transition.
// It returns nil when ctx is done or the broker closes.
func LogEvents(ctx context.Context, b *Broker, l *slog.Logger) error {
	events, unsubscribe := b.Subscribe(16)
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			l.Info("auth state changed",
				slog.String("event", string(ev.Kind)),
				slog.String("user_id", ev.Identity.UserID),
				slog.String("role", string(ev.Identity.Role)),
			)
		}
	}
}
