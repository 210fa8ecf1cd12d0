package domain

import (
	"time"

	"github.com/google/uuid"
)

// GroupMessage is the display form of a group message: always sanitized plaintext.
type GroupMessage struct {
	Room      string    `json:"room"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	TimeStamp time.Time `json:"timeStamp"`
}

// PrivateMessage is the display form of a conversation message.
type PrivateMessage struct {
	ConversationID uuid.UUID `json:"conversationId"`
	Username       string    `json:"username"`
	Message        string    `json:"message"`
	TimeStamp      time.Time `json:"timeStamp"`
}

// GroupUser is the presence of one member as seen from a room.
type GroupUser struct {
	Username string `json:"username"`
	Online   bool   `json:"online"`
	Present  bool   `json:"present"`
}

type GroupSummary struct {
	Name  string `json:"name"`
	Owner string `json:"owner"`
}

type PrivateChat struct {
	ID           uuid.UUID `json:"id"`
	Participant1 string    `json:"participant1"`
	Participant2 string    `json:"participant2"`
}

// RoomSnapshot is the history and member presence returned when entering a room.
type RoomSnapshot struct {
	Room     string         `json:"room"`
	Messages []GroupMessage `json:"messages"`
	Users    []GroupUser    `json:"users"`
}

type PrivateChatPayload struct {
	ID           uuid.UUID        `json:"id"`
	Participant1 string           `json:"participant1"`
	Participant2 string           `json:"participant2"`
	Messages     []PrivateMessage `json:"messages"`
}

// InitialPayload is sent to a connection right after it is admitted.
type InitialPayload struct {
	Username      string         `json:"username"`
	Lobby         RoomSnapshot   `json:"lobby"`
	Groups        []GroupSummary `json:"groups"`
	Conversations []PrivateChat  `json:"conversations"`
}

func ToGroupSummary(g Group) GroupSummary {
	return GroupSummary{Name: g.Name, Owner: g.Owner}
}

func ToPrivateChat(c Conversation) PrivateChat {
	return PrivateChat{ID: c.ID, Participant1: c.Participant1, Participant2: c.Participant2}
}
