package domain

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a private room between exactly two distinct users.
// At most one exists for any unordered pair.
type Conversation struct {
	ID           uuid.UUID `json:"id"`
	Participant1 string    `json:"participant1"`
	Participant2 string    `json:"participant2"`
	CreatedAt    time.Time `json:"created_at"`
}

func (c Conversation) Involves(username string) bool {
	return c.Participant1 == username || c.Participant2 == username
}

func (c Conversation) Participants() []string {
	return []string{c.Participant1, c.Participant2}
}

// PairKey orders the two usernames so {a,b} and {b,a} share the same key.
func PairKey(a, b string) (string, string) {
	if a <= b {
		return a, b
	}
	return b, a
}
