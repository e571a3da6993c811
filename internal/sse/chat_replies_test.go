package sse

import (
	"context"
	"testing"
	"time"

	"eventmatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplyEmitterDeliversToSessionSubscribers(t *testing.T) {
	e := NewReplyEmitter()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mine := e.Subscribe(ctx, "s1")
	other := e.Subscribe(ctx, "s2")
	assert.Equal(t, 1, e.ClientCount("s1"))

	e.Emit("s1", models.ChatMessage{ID: "m1", Role: models.RoleAssistant})

	select {
	case msg := <-mine:
		assert.Equal(t, "m1", msg.ID)
	case <-time.After(time.Second):
		t.Fatal("expected a message for s1")
	}

	select {
	case msg := <-other:
		t.Fatalf("s2 should not receive s1 replies, got %+v", msg)
	default:
	}
}

func TestReplyEmitterClosesOnCancel(t *testing.T) {
	e := NewReplyEmitter()
	ctx, cancel := context.WithCancel(context.Background())

	ch := e.Subscribe(ctx, "s1")
	cancel()

	select {
	case _, ok := <-ch:
		require.False(t, ok, "channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("channel was not closed after cancel")
	}
	assert.Eventually(t, func() bool { return e.ClientCount("s1") == 0 }, time.Second, 10*time.Millisecond)
}

func TestReplyEmitterDropsWhenBufferFull(t *testing.T) {
	e := NewReplyEmitter()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := e.Subscribe(ctx, "s1")
	for i := 0; i < 20; i++ {
		e.Emit("s1", models.ChatMessage{ID: "m"})
	}
	assert.Len(t, ch, 10)
}
