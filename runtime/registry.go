package runtime

import (
	"chat-hub/domain"
	"chat-hub/errors"
	"slices"
	"sync"
)

type Set map[string]struct{}

// PresenceRegistry maps live connections to their user and to the room they are viewing.
// It starts empty and is never persisted: who was online is not recovered after a restart.
//
// Invariant: at most one connection per username. Admitting a connection for a username
// evicts the previous one (last connect wins).
//
// All methods are safe for concurrent use and never block on I/O. Callers must not hold
// any lock of their own that storage operations depend on while calling in.
type PresenceRegistry struct {
	mu          sync.RWMutex
	users       map[string]string // connection -> username
	rooms       map[string]string // connection -> current room
	connections map[string]string // username -> connection
}

func NewPresenceRegistry() *PresenceRegistry {
	return &PresenceRegistry{
		users:       make(map[string]string),
		rooms:       make(map[string]string),
		connections: make(map[string]string),
	}
}

// AdmitConnection registers connectionID for username in the Lobby.
// When another connection was mapped to username it is evicted and returned.
// Re-admitting the same connection refreshes its mapping and puts it back in the Lobby.
func (r *PresenceRegistry) AdmitConnection(connectionID, username string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var evicted string
	if previous, ok := r.connections[username]; ok && previous != connectionID {
		r.remove(previous)
		evicted = previous
	}
	// The same connection may have been admitted for another username before.
	if former, ok := r.users[connectionID]; ok && former != username {
		delete(r.connections, former)
	}

	r.users[connectionID] = username
	r.rooms[connectionID] = domain.Lobby
	r.connections[username] = connectionID
	return evicted, evicted != ""
}

// EvictConnection forgets connectionID. Unknown connections are ignored.
func (r *PresenceRegistry) EvictConnection(connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.remove(connectionID)
}

// SetRoom moves a known connection to room. It never admits: an evicted connection
// gets ErrConnectionNotFound, so late operations of a closed connection cannot resurrect it.
func (r *PresenceRegistry) SetRoom(connectionID, room string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[connectionID]; !ok {
		return errors.ErrConnectionNotFound
	}
	r.rooms[connectionID] = room
	return nil
}

func (r *PresenceRegistry) RoomOf(connectionID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[connectionID]
	return room, ok
}

func (r *PresenceRegistry) UserOf(connectionID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	username, ok := r.users[connectionID]
	return username, ok
}

// ConnectionOf returns the live connection of username, if the user is online.
func (r *PresenceRegistry) ConnectionOf(username string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	connectionID, ok := r.connections[username]
	return connectionID, ok
}

// UsersInRoom lists, sorted, the users whose connection currently views room.
func (r *PresenceRegistry) UsersInRoom(room string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var users []string
	for connectionID, current := range r.rooms {
		if current != room {
			continue
		}
		if username, ok := r.users[connectionID]; ok {
			users = append(users, username)
		}
	}
	slices.Sort(users)
	return users
}

// ConnectionsInRoom lists, sorted, the connections currently viewing room.
func (r *PresenceRegistry) ConnectionsInRoom(room string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var connections []string
	for connectionID, current := range r.rooms {
		if current == room {
			connections = append(connections, connectionID)
		}
	}
	slices.Sort(connections)
	return connections
}

// AllOnlineUsers lists, sorted, every user with a live connection.
func (r *PresenceRegistry) AllOnlineUsers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]string, 0, len(r.connections))
	for username := range r.connections {
		users = append(users, username)
	}
	slices.Sort(users)
	return users
}

// Count returns the number of live connections and of distinct rooms they view.
func (r *PresenceRegistry) Count() (connections int, rooms int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	distinct := make(Set)
	for _, room := range r.rooms {
		distinct[room] = struct{}{}
	}
	return len(r.users), len(distinct)
}

// remove must be called with the write lock held.
func (r *PresenceRegistry) remove(connectionID string) {
	username, ok := r.users[connectionID]
	if !ok {
		return
	}
	delete(r.users, connectionID)
	delete(r.rooms, connectionID)
	if r.connections[username] == connectionID {
		delete(r.connections, username)
	}
}
