package websocket

import (
	"chat-hub/contract"
	"chat-hub/domain/event"
	"chat-hub/infrastructure/hub"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	gws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// echoHub greets on connect and answers every call with a GroupRemoved named after the method.
type echoHub struct {
	mu           sync.Mutex
	sinks        map[string]contract.EventSink
	disconnected chan string
}

func newEchoHub() *echoHub {
	return &echoHub{sinks: make(map[string]contract.EventSink), disconnected: make(chan string, 4)}
}

func (h *echoHub) OnConnect(ctx context.Context, caller hub.Caller, sink contract.EventSink) {
	h.mu.Lock()
	h.sinks[caller.ConnectionID] = sink
	h.mu.Unlock()
	_ = sink.Consume(ctx, event.GroupRemoved{Name: "welcome " + caller.Username})
}

func (h *echoHub) OnDisconnect(connectionID string) {
	h.disconnected <- connectionID
}

func (h *echoHub) Invoke(ctx context.Context, caller hub.Caller, method string, _ json.RawMessage) {
	h.mu.Lock()
	sink := h.sinks[caller.ConnectionID]
	h.mu.Unlock()
	if method == "Kick" {
		_ = sink.Consume(ctx, event.SessionSuperseded{ConnectionID: caller.ConnectionID})
		return
	}
	_ = sink.Consume(ctx, event.GroupRemoved{Name: method})
}

type frame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func dial(t *testing.T, fake *echoHub) *gws.Conn {
	handler := NewHandler(slog.Default(), fake, Options{
		BufferSize:   8,
		WriteTimeout: time.Second,
		PongTimeout:  5 * time.Second,
		MaxFrameSize: 4096,
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = handler.Serve(w, r, r.URL.Query().Get("user"))
	}))
	t.Cleanup(srv.Close)

	conn, _, err := gws.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"?user=alice", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func read(t *testing.T, conn *gws.Conn) frame {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var f frame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func TestHandler_Calls_And_Events(t *testing.T) {
	req := require.New(t)
	conn := dial(t, newEchoHub())

	// The greeting comes first
	welcome := read(t, conn)
	req.Equal("GroupRemoved", welcome.Type)
	req.JSONEq(`{"name":"welcome alice"}`, string(welcome.Payload))

	// Calls are answered in order
	req.NoError(conn.WriteJSON(InboundFrame{Method: "First", Arguments: json.RawMessage(`{}`)}))
	req.NoError(conn.WriteJSON(InboundFrame{Method: "Second"}))
	req.JSONEq(`{"name":"First"}`, string(read(t, conn).Payload))
	req.JSONEq(`{"name":"Second"}`, string(read(t, conn).Payload))
}

func TestHandler_Rejects_Malformed_Frames(t *testing.T) {
	req := require.New(t)
	conn := dial(t, newEchoHub())
	read(t, conn)

	req.NoError(conn.WriteMessage(gws.TextMessage, []byte(`not json`)))

	rejected := read(t, conn)
	req.Equal("ReceiveError", rejected.Type)
	req.Contains(string(rejected.Payload), `"kind":"Invalid"`)
}

func TestHandler_Closes_Superseded_Session(t *testing.T) {
	req := require.New(t)
	fake := newEchoHub()
	conn := dial(t, fake)
	read(t, conn)

	req.NoError(conn.WriteJSON(InboundFrame{Method: "Kick"}))

	// The notice is delivered before the close frame
	req.Equal("SessionSuperseded", read(t, conn).Type)
	_, _, err := conn.ReadMessage()
	req.True(gws.IsCloseError(err, gws.ClosePolicyViolation))

	select {
	case <-fake.disconnected:
	case <-time.After(2 * time.Second):
		req.Fail("hub was not told about the disconnect")
	}
}

func TestHandler_Client_Close_Disconnects(t *testing.T) {
	req := require.New(t)
	fake := newEchoHub()
	conn := dial(t, fake)
	read(t, conn)

	req.NoError(conn.WriteMessage(gws.CloseMessage, gws.FormatCloseMessage(gws.CloseNormalClosure, "bye")))

	select {
	case connectionID := <-fake.disconnected:
		req.NotEmpty(connectionID)
	case <-time.After(2 * time.Second):
		req.Fail("hub was not told about the disconnect")
	}
}
