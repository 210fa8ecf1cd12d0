// Package event defines what the server pushes to live connections.
package event

import (
	"chat-hub/domain"
	"chat-hub/errors"
)

// Type is the name a client uses to route an event.
type Type string

const (
	InitializedType            Type = "Initialized"
	GroupMessageReceivedType   Type = "ReceiveGroupMessage"
	PresenceRefreshedType      Type = "PresenceRefreshed"
	RoomSnapshottedType        Type = "RoomSnapshot"
	GroupJoinedType            Type = "GroupJoined"
	GroupRemovedType           Type = "GroupRemoved"
	PrivateChatOpenedType      Type = "OpenPrivateChat"
	PrivateMessageReceivedType Type = "ReceivePrivateMessage"
	ErrorRaisedType            Type = "ReceiveError"
	SessionSupersededType      Type = "SessionSuperseded"
)

type DomainEvent interface {
	Type() Type
}

type Initialized struct {
	domain.InitialPayload
}

func (Initialized) Type() Type { return InitializedType }

type GroupMessageReceived struct {
	domain.GroupMessage
}

func (GroupMessageReceived) Type() Type { return GroupMessageReceivedType }

type PresenceRefreshed struct {
	Room  string             `json:"room"`
	Users []domain.GroupUser `json:"users"`
}

func (PresenceRefreshed) Type() Type { return PresenceRefreshedType }

type RoomSnapshotted struct {
	domain.RoomSnapshot
}

func (RoomSnapshotted) Type() Type { return RoomSnapshottedType }

type GroupJoined struct {
	domain.GroupSummary
}

func (GroupJoined) Type() Type { return GroupJoinedType }

type GroupRemoved struct {
	Name string `json:"name"`
}

func (GroupRemoved) Type() Type { return GroupRemovedType }

type PrivateChatOpened struct {
	domain.PrivateChatPayload
}

func (PrivateChatOpened) Type() Type { return PrivateChatOpenedType }

type PrivateMessageReceived struct {
	domain.PrivateMessage
}

func (PrivateMessageReceived) Type() Type { return PrivateMessageReceivedType }

// ErrorRaised only ever goes to the connection that invoked the failed operation.
type ErrorRaised struct {
	Operation string      `json:"operation"`
	Kind      errors.Kind `json:"kind"`
	Message   string      `json:"message"`
}

func (ErrorRaised) Type() Type { return ErrorRaisedType }

// SessionSuperseded tells a connection a newer one took over its username.
type SessionSuperseded struct {
	ConnectionID string `json:"connectionId"`
}

func (SessionSuperseded) Type() Type { return SessionSupersededType }
