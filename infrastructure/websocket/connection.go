// Package websocket carries hub calls and events over gorilla websocket connections.
//
// Inbound frames are {"method": ..., "arguments": {...}}, outbound frames are
// {"type": ..., "payload": {...}}. Calls of one connection run in the order they are read.
package websocket

import (
	"chat-hub/contract"
	"chat-hub/domain/event"
	"chat-hub/errors"
	"chat-hub/infrastructure/hub"
	"chat-hub/sink"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	gws "github.com/gorilla/websocket"
)

// Invoker is the part of the hub a connection talks to.
type Invoker interface {
	OnConnect(ctx context.Context, caller hub.Caller, sink contract.EventSink)
	OnDisconnect(connectionID string)
	Invoke(ctx context.Context, caller hub.Caller, method string, arguments json.RawMessage)
}

type InboundFrame struct {
	Method    string          `json:"method"`
	Arguments json.RawMessage `json:"arguments"`
}

type OutboundFrame struct {
	Type    event.Type        `json:"type"`
	Payload event.DomainEvent `json:"payload"`
}

type Options struct {
	BufferSize   int
	WriteTimeout time.Duration
	PongTimeout  time.Duration
	MaxFrameSize int64
}

type Handler struct {
	log      *slog.Logger
	hub      Invoker
	upgrader gws.Upgrader
	options  Options
}

func NewHandler(log *slog.Logger, hub Invoker, options Options) *Handler {
	return &Handler{
		log: log,
		hub: hub,
		upgrader: gws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browsers connect from the static client served elsewhere
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		options: options,
	}
}

// Serve upgrades the request and runs the connection of username until it closes.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request, username string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	caller := hub.Caller{ConnectionID: uuid.NewString(), Username: username}
	out := sink.NewConnectionSink(h.log, h.options.BufferSize)
	log := h.log.With("connection", caller.ConnectionID, "username", username)
	log.Debug("Connection opened")

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		h.writePump(ctx, log, conn, out)
	}()

	h.hub.OnConnect(ctx, caller, out)
	h.readPump(ctx, log, conn, caller, out)

	out.Close()
	h.hub.OnDisconnect(caller.ConnectionID)
	cancel()
	<-writerDone
	_ = conn.Close()
	log.Debug("Connection closed")
	return nil
}

func (h *Handler) readPump(ctx context.Context, log *slog.Logger, conn *gws.Conn, caller hub.Caller, out *sink.ConnectionSink) {
	conn.SetReadLimit(h.options.MaxFrameSize)
	_ = conn.SetReadDeadline(time.Now().Add(h.options.PongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.options.PongTimeout))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if gws.IsUnexpectedCloseError(err, gws.CloseNormalClosure, gws.CloseGoingAway) {
				log.Debug("Connection lost", "error", err)
			}
			return
		}
		var frame InboundFrame
		if err := json.Unmarshal(data, &frame); err != nil || frame.Method == "" {
			_ = out.Consume(ctx, event.ErrorRaised{
				Operation: "Decode",
				Kind:      errors.KindInvalid,
				Message:   "frame must be {\"method\": ..., \"arguments\": ...}",
			})
			continue
		}
		h.hub.Invoke(ctx, caller, frame.Method, frame.Arguments)
	}
}

// writePump is the only writer of conn.
func (h *Handler) writePump(ctx context.Context, log *slog.Logger, conn *gws.Conn, out *sink.ConnectionSink) {
	ping := time.NewTicker(h.options.PongTimeout * 9 / 10)
	defer ping.Stop()
	// A dead writer must unblock the reader
	defer conn.Close()

	for {
		select {
		case <-ctx.Done():
			h.close(conn, gws.CloseNormalClosure, "")
			return
		case <-ping.C:
			if err := conn.WriteControl(gws.PingMessage, nil, time.Now().Add(h.options.WriteTimeout)); err != nil {
				log.Debug("Ping failed", "error", err)
				return
			}
		case e := <-out.Events:
			_ = conn.SetWriteDeadline(time.Now().Add(h.options.WriteTimeout))
			if err := conn.WriteJSON(OutboundFrame{Type: e.Type(), Payload: e}); err != nil {
				log.Debug("Write failed", "type", e.Type(), "error", err)
				return
			}
			if _, superseded := e.(event.SessionSuperseded); superseded {
				// The read side stops on the close frame
				h.close(conn, gws.ClosePolicyViolation, "session superseded")
				return
			}
		}
	}
}

func (h *Handler) close(conn *gws.Conn, code int, reason string) {
	message := gws.FormatCloseMessage(code, reason)
	_ = conn.WriteControl(gws.CloseMessage, message, time.Now().Add(h.options.WriteTimeout))
	_ = conn.Close()
}
