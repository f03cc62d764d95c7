package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/replydesk/internal/domain"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const testSecret = "ws-test-secret"

func tokenFor(t *testing.T, operatorID uuid.UUID) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   operatorID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestServeWSRejectsBadTokens(t *testing.T) {
	hub := startHub(t)
	handler := ServeWS(hub, testSecret, nil, quietLogger())

	for _, target := range []string{"/ws", "/ws?token=garbage"} {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
	}
}

func TestServeWSDeliversEvents(t *testing.T) {
	hub := startHub(t)
	srv := httptest.NewServer(ServeWS(hub, testSecret, nil, quietLogger()))
	t.Cleanup(srv.Close)

	op := uuid.New()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + tokenFor(t, op)
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	require.Eventually(t, func() bool { return hub.Connected(op) == 1 }, 2*time.Second, 10*time.Millisecond)

	NewHubNotifier(hub).NotifyMessageSent(op, &domain.Message{
		ID:             "conv-1-3",
		ConversationID: "conv-1",
		Role:           domain.RoleBot,
		Content:        "Your order has shipped.",
		Timestamp:      "2:07 PM",
	})

	var evt Event
	require.NoError(t, wsjson.Read(ctx, conn, &evt))
	assert.Equal(t, EventTypeMessageNew, evt.Type)
	var msg domain.Message
	require.NoError(t, json.Unmarshal(evt.Payload, &msg))
	assert.Equal(t, "Your order has shipped.", msg.Content)
	assert.Equal(t, "2:07 PM", msg.Timestamp)

	require.NoError(t, wsjson.Write(ctx, conn, Event{Type: EventTypePing}))
	require.NoError(t, wsjson.Read(ctx, conn, &evt))
	assert.Equal(t, EventTypePong, evt.Type)

	require.NoError(t, wsjson.Write(ctx, conn, Event{Type: "subscribe"}))
	require.NoError(t, wsjson.Read(ctx, conn, &evt))
	assert.Equal(t, EventTypeError, evt.Type)
	var payload ErrorPayload
	require.NoError(t, json.Unmarshal(evt.Payload, &payload))
	assert.Equal(t, "UNKNOWN_EVENT", payload.Code)

	conn.Close(websocket.StatusNormalClosure, "bye")
	require.Eventually(t, func() bool { return hub.Connected(op) == 0 }, 2*time.Second, 10*time.Millisecond)
}
