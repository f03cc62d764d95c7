package ws

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/replydesk/internal/domain"
	"github.com/vedran77/replydesk/internal/service"
)

var _ service.Notifier = (*HubNotifier)(nil)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub
}

func fakeClient(hub *Hub, operatorID uuid.UUID, buf int) *Client {
	return &Client{
		hub:        hub,
		operatorID: operatorID,
		send:       make(chan []byte, buf),
		done:       make(chan struct{}),
	}
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case data, ok := <-c.send:
		require.True(t, ok, "send channel closed")
		var evt Event
		require.NoError(t, json.Unmarshal(data, &evt))
		return evt
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func TestHubBroadcastReachesOnlyTheOperator(t *testing.T) {
	hub := startHub(t)
	alice, bob := uuid.New(), uuid.New()

	tab1 := fakeClient(hub, alice, 4)
	tab2 := fakeClient(hub, alice, 4)
	other := fakeClient(hub, bob, 4)
	for _, c := range []*Client{tab1, tab2, other} {
		require.True(t, hub.Register(c))
	}
	require.Eventually(t, func() bool { return hub.Connected(alice) == 2 }, time.Second, 10*time.Millisecond)

	notifier := NewHubNotifier(hub)
	notifier.NotifyConversationDeleted(alice, "conv-1")

	for _, c := range []*Client{tab1, tab2} {
		evt := receive(t, c)
		assert.Equal(t, EventTypeConversationDeleted, evt.Type)
		require.NotNil(t, evt.ConversationID)
		assert.Equal(t, "conv-1", *evt.ConversationID)
	}
	assert.Empty(t, other.send)
}

func TestHubNotifierPayloads(t *testing.T) {
	hub := startHub(t)
	op := uuid.New()
	c := fakeClient(hub, op, 4)
	require.True(t, hub.Register(c))

	notifier := NewHubNotifier(hub)

	conv := domain.NewConversation("conv-1", "Sarah Johnson", domain.PlatformMessenger)
	conv.Starred = true
	notifier.NotifyConversationUpdated(op, conv)

	evt := receive(t, c)
	assert.Equal(t, EventTypeConversationUpdated, evt.Type)
	var got domain.Conversation
	require.NoError(t, json.Unmarshal(evt.Payload, &got))
	assert.Equal(t, "conv-1", got.ID)
	assert.True(t, got.Starred)

	original := "Thanks for reaching out!"
	msg := &domain.Message{
		ID:              "conv-1-2",
		ConversationID:  "conv-1",
		Role:            domain.RoleBot,
		Content:         "Thanks, we are on it.",
		OriginalContent: &original,
	}
	notifier.NotifyMessageEdited(op, msg)

	evt = receive(t, c)
	assert.Equal(t, EventTypeMessageEdited, evt.Type)
	var gotMsg domain.Message
	require.NoError(t, json.Unmarshal(evt.Payload, &gotMsg))
	assert.Equal(t, "Thanks, we are on it.", gotMsg.Content)
	require.NotNil(t, gotMsg.OriginalContent)
	assert.Equal(t, original, *gotMsg.OriginalContent)
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := startHub(t)
	op := uuid.New()
	slow := fakeClient(hub, op, 0)
	require.True(t, hub.Register(slow))
	require.Eventually(t, func() bool { return hub.Connected(op) == 1 }, time.Second, 10*time.Millisecond)

	NewHubNotifier(hub).NotifyConversationDeleted(op, "conv-1")

	require.Eventually(t, func() bool { return hub.Connected(op) == 0 }, time.Second, 10*time.Millisecond)
	_, ok := <-slow.send
	assert.False(t, ok)

	// Queuing onto a dropped client must not panic.
	slow.enqueue([]byte("{}"))
}

func TestHubUnregister(t *testing.T) {
	hub := startHub(t)
	op := uuid.New()
	c := fakeClient(hub, op, 1)
	require.True(t, hub.Register(c))
	hub.Unregister(c)
	hub.Unregister(c)

	require.Eventually(t, func() bool { return hub.Connected(op) == 0 }, time.Second, 10*time.Millisecond)
	select {
	case <-c.done:
	case <-time.After(time.Second):
		t.Fatal("client not closed")
	}
}

func TestHubStop(t *testing.T) {
	hub := NewHub(quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	op := uuid.New()
	c := fakeClient(hub, op, 1)
	require.True(t, hub.Register(c))

	cancel()
	<-stopped

	assert.False(t, hub.Register(fakeClient(hub, op, 1)))
	assert.Equal(t, 0, hub.Connected(op))
	// Broadcasting after shutdown returns instead of blocking.
	NewHubNotifier(hub).NotifyConversationDeleted(op, "conv-1")
}
