package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestBrokerFansOut(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := NewBroker()
	a, unsubA := b.Subscribe(1)
	c, unsubC := b.Subscribe(1)
	defer unsubC()

	b.Publish(Event{Kind: EventSignedIn, Identity: Identity{UserID: "u1"}})
	assert.Equal(t, EventSignedIn, (<-a).Kind)
	assert.Equal(t, "u1", (<-c).Identity.UserID)

	unsubA()
	unsubA()
	_, open := <-a
	assert.False(t, open)
}

func TestBrokerPublishDoesNotBlockOnFullBuffer(t *testing.T) {
	b := NewBroker()
	ch, unsub := b.Subscribe(1)
	defer unsub()

	b.Publish(Event{Kind: EventSignedUp})
	b.Publish(Event{Kind: EventSignedOut})

	assert.Equal(t, EventSignedUp, (<-ch).Kind)
	select {
	case ev := <-ch:
		t.Fatalf("unexpected second event %v", ev.Kind)
	default:
	}
}

func TestBrokerCloseEndsSubscriptions(t *testing.T) {
	b := NewBroker()
	ch, unsub := b.Subscribe(0)
	b.Close()
	b.Close()
	unsub()

	_, open := <-ch
	assert.False(t, open)

	late, _ := b.Subscribe(0)
	_, open = <-late
	assert.False(t, open)
}

func TestLogEventsStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := NewBroker()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- LogEvents(ctx, b, slog.New(slog.NewTextHandler(io.Discard, nil))) }()

	b.Publish(Event{Kind: EventSignedIn})
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("LogEvents did not return after cancel")
	}
}
