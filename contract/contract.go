//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-hub/domain/event"
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink is the outbound side of one live connection.
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// IPresenceRegistry tracks which connection belongs to which user and which room it views.
// Implementations never block on I/O.
type IPresenceRegistry interface {
	AdmitConnection(connectionID, username string) (evicted string, ok bool)
	EvictConnection(connectionID string)
	SetRoom(connectionID, room string) error
	RoomOf(connectionID string) (string, bool)
	UserOf(connectionID string) (string, bool)
	ConnectionOf(username string) (string, bool)
	UsersInRoom(room string) []string
	ConnectionsInRoom(room string) []string
	AllOnlineUsers() []string
}

// IRouter is the broadcast topology: rooms of connections, and sinks to reach them.
type IRouter interface {
	Register(connectionID string, sink EventSink)
	Unregister(connectionID string)
	JoinRoom(connectionID, room string)
	LeaveRoom(connectionID, room string)
	SendToRoom(ctx context.Context, room string, e event.DomainEvent)
	SendToUser(ctx context.Context, username string, e event.DomainEvent)
	SendToConnection(ctx context.Context, connectionID string, e event.DomainEvent)
}
