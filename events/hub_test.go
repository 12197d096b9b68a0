package events

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salvadorperezm/ror-api-creation/internal/post/model"
)

// Helper function to read an event from a WebSocket connection with a timeout.
func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	var event Event
	// Set a deadline to avoid tests hanging forever.
	conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err, "Failed to read message from WebSocket")
	require.NoError(t, json.Unmarshal(payload, &event), "Failed to unmarshal Event JSON")
	return event
}

func TestHubBroadcastsToAllSubscribers(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, w, r)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	conn1, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err, "Client 1 failed to connect")
	defer conn1.Close()

	conn2, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err, "Client 2 failed to connect")
	defer conn2.Close()

	// Give the hub a moment to register both clients before publishing.
	time.Sleep(50 * time.Millisecond)

	published := model.PostResponse{
		ID: 1, Title: "Hola Mundo", Content: "Content", Published: true,
		Author: model.Author{ID: 1, Name: "Alice", Email: "alice@example.com"},
	}
	hub.Publish(PostCreated, published)

	for _, conn := range []*websocket.Conn{conn1, conn2} {
		event := readEvent(t, conn)
		assert.Equal(t, PostCreated, event.Type)
		assert.Equal(t, int64(1), event.Post.ID)
		assert.Equal(t, "Hola Mundo", event.Post.Title)
		assert.Equal(t, "alice@example.com", event.Post.Author.Email)
	}

	hub.Publish(PostUpdated, published)
	event := readEvent(t, conn1)
	assert.Equal(t, PostUpdated, event.Type)
}

func TestPublishOnNilHub(t *testing.T) {
	var hub *Hub
	// Services run without a hub in tests; Publish must be a no-op.
	assert.NotPanics(t, func() {
		hub.Publish(PostCreated, model.PostResponse{ID: 1})
	})
}

func TestPublishNeverBlocks(t *testing.T) {
	hub := NewHub() // Run is never started.

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			hub.Publish(PostCreated, model.PostResponse{ID: int64(i)})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked with no running hub")
	}
}
