package domain

import (
	"slices"
	"time"
)

// Lobby is the room every connection is admitted into.
const Lobby = "Lobby"

// SystemAuthor signs notices that are broadcast but never persisted.
const SystemAuthor = "System"

// Group is a named room with an owner and a set of members.
// Name is unique and case-sensitive.
type Group struct {
	Name      string    `json:"name"`
	Owner     string    `json:"owner"`
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

func NewGroup(name, owner string, at time.Time) Group {
	return Group{
		Name:      name,
		Owner:     owner,
		Members:   []string{owner},
		CreatedAt: at,
	}
}

func (g Group) HasMember(username string) bool {
	return slices.Contains(g.Members, username)
}

// WithMember returns a copy of g including username. Adding an existing member is a no-op.
func (g Group) WithMember(username string) Group {
	if g.HasMember(username) {
		return g
	}
	members := make([]string, 0, len(g.Members)+1)
	members = append(members, g.Members...)
	g.Members = append(members, username)
	return g
}

func (g Group) IsOwnedBy(username string) bool {
	return g.Owner != "" && g.Owner == username
}
