// Package domain contains core concepts of the chat system.
// This file defines ChatMessage records and their container rules.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is a persisted message. Body holds ciphertext at rest.
// Once stored it belongs to exactly one of Group or Conversation, except after the
// group it belonged to has been deleted: it is then detached from any container.
type ChatMessage struct {
	ID           uuid.UUID `json:"id"`
	Author       string    `json:"author"`
	Body         string    `json:"body"`
	At           time.Time `json:"at"`
	Group        string    `json:"group,omitempty"`
	Conversation uuid.UUID `json:"conversation"`
}

func (m ChatMessage) InGroup() bool {
	return m.Group != ""
}

func (m ChatMessage) InConversation() bool {
	return m.Conversation != uuid.Nil
}

// Detached reports whether the message has lost its container.
func (m ChatMessage) Detached() bool {
	return !m.InGroup() && !m.InConversation()
}
