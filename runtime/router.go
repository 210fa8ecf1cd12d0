package runtime

import (
	"chat-hub/contract"
	"chat-hub/domain/event"
	"context"
	"log/slog"
	"sync"
	"time"
)

// UserLocator resolves the live connection of a user.
type UserLocator interface {
	ConnectionOf(username string) (string, bool)
}

// Router is the in-process broadcast topology.
// It keeps the sink of each connection in one place and the rooms as sets of connections,
// so a connection that moves between rooms keeps a single sink.
//
// Sends snapshot the target sinks under the read lock and deliver after releasing it.
type Router struct {
	mu              sync.RWMutex
	log             *slog.Logger
	locator         UserLocator
	sinks           map[string]contract.EventSink // connection -> sink
	rooms           map[string]Set                // room -> connections
	deliveryTimeout time.Duration
}

func NewRouter(log *slog.Logger, locator UserLocator, deliveryTimeout time.Duration) *Router {
	return &Router{
		log:             log,
		locator:         locator,
		sinks:           make(map[string]contract.EventSink),
		rooms:           make(map[string]Set),
		deliveryTimeout: deliveryTimeout,
	}
}

func (r *Router) Register(connectionID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sinks[connectionID] = sink
}

// Unregister drops the sink of connectionID and removes it from every room.
func (r *Router) Unregister(connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sinks, connectionID)
	for room, members := range r.rooms {
		delete(members, connectionID)
		if len(members) == 0 {
			delete(r.rooms, room)
		}
	}
}

func (r *Router) JoinRoom(connectionID, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[room]; !ok {
		r.rooms[room] = make(Set)
	}
	r.rooms[room][connectionID] = struct{}{}
}

func (r *Router) LeaveRoom(connectionID, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if members, ok := r.rooms[room]; ok {
		delete(members, connectionID)
		// No empty sets left behind
		if len(members) == 0 {
			delete(r.rooms, room)
		}
	}
}

// Members returns the connections joined to room.
func (r *Router) Members(room string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	members := make([]string, 0, len(r.rooms[room]))
	for connectionID := range r.rooms[room] {
		members = append(members, connectionID)
	}
	return members
}

func (r *Router) SendToRoom(ctx context.Context, room string, e event.DomainEvent) {
	r.mu.RLock()
	var targets []contract.EventSink
	for connectionID := range r.rooms[room] {
		if sink, ok := r.sinks[connectionID]; ok {
			targets = append(targets, sink)
		}
	}
	r.mu.RUnlock()

	for _, sink := range targets {
		r.deliver(ctx, sink, e)
	}
}

// SendToUser delivers to the live connection of username. Offline users are skipped.
func (r *Router) SendToUser(ctx context.Context, username string, e event.DomainEvent) {
	connectionID, ok := r.locator.ConnectionOf(username)
	if !ok {
		r.log.Debug("User offline, event not delivered", "username", username, "type", e.Type())
		return
	}
	r.SendToConnection(ctx, connectionID, e)
}

func (r *Router) SendToConnection(ctx context.Context, connectionID string, e event.DomainEvent) {
	r.mu.RLock()
	sink, ok := r.sinks[connectionID]
	r.mu.RUnlock()
	if !ok {
		return
	}
	r.deliver(ctx, sink, e)
}

// deliver bounds each delivery by the delivery timeout only: once an operation has
// committed, the sender going away must not drop the fan-out to other connections.
func (r *Router) deliver(ctx context.Context, sink contract.EventSink, e event.DomainEvent) {
	ctx = context.WithoutCancel(ctx)
	if r.deliveryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.deliveryTimeout)
		defer cancel()
	}
	if err := sink.Consume(ctx, e); err != nil {
		r.log.Warn("Event delivery failed", "type", e.Type(), "error", err)
	}
}
