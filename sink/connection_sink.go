package sink

import (
	"chat-hub/domain/event"
	"context"
	"fmt"
	"log/slog"
	"sync"
)

var ErrSinkClosed = fmt.Errorf("sink closed")

// ConnectionSink buffers the events of one live connection.
// The transport drains Events and writes them to the wire.
type ConnectionSink struct {
	log       *slog.Logger
	Events    chan event.DomainEvent
	closeOnce sync.Once
	closed    chan struct{}
}

func NewConnectionSink(log *slog.Logger, bufferSize int) *ConnectionSink {
	return &ConnectionSink{
		log:    log,
		Events: make(chan event.DomainEvent, bufferSize),
		closed: make(chan struct{}),
	}
}

// Consume is called by the router.
// It waits for buffer space until ctx is done, so a slow reader only delays its own events.
func (s *ConnectionSink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case <-s.closed:
		return ErrSinkClosed
	default:
	}

	select {
	case s.Events <- e:
		return nil
	default:
	}

	select {
	case s.Events <- e:
		return nil
	case <-s.closed:
		return ErrSinkClosed
	case <-ctx.Done():
		s.log.Warn("Connection buffer full, event dropped", "type", e.Type(), "error", ctx.Err())
		return ctx.Err()
	}
}

// Close stops accepting events. Events already buffered stay readable.
func (s *ConnectionSink) Close() {
	s.closeOnce.Do(func() { close(s.closed) })
}

// Done is closed once Close has been called.
func (s *ConnectionSink) Done() <-chan struct{} {
	return s.closed
}
