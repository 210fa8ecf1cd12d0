package runtime

import (
	"chat-hub/domain"
	"chat-hub/errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPresenceRegistry_Admit_And_Evict(t *testing.T) {
	req := require.New(t)
	r := NewPresenceRegistry()

	// Given alice connected
	_, evicted := r.AdmitConnection("c-1", "alice")
	req.False(evicted)

	// Then she is online in the Lobby
	room, ok := r.RoomOf("c-1")
	req.True(ok)
	req.Equal(domain.Lobby, room)
	req.Equal([]string{"alice"}, r.AllOnlineUsers())
	req.Equal([]string{"alice"}, r.UsersInRoom(domain.Lobby))

	// When the connection goes away
	r.EvictConnection("c-1")

	// Then nothing is left
	req.Empty(r.AllOnlineUsers())
	_, ok = r.UserOf("c-1")
	req.False(ok)
	_, ok = r.ConnectionOf("alice")
	req.False(ok)

	// And evicting twice is harmless
	r.EvictConnection("c-1")
}

func TestPresenceRegistry_Last_Connect_Wins(t *testing.T) {
	req := require.New(t)
	r := NewPresenceRegistry()
	r.AdmitConnection("c-1", "alice")
	req.NoError(r.SetRoom("c-1", "Books"))

	// When alice connects again
	previous, evicted := r.AdmitConnection("c-2", "alice")

	// Then the first connection is gone
	req.True(evicted)
	req.Equal("c-1", previous)
	connectionID, ok := r.ConnectionOf("alice")
	req.True(ok)
	req.Equal("c-2", connectionID)
	req.Empty(r.UsersInRoom("Books"))

	// And a late disconnect of the old connection does not log her out
	r.EvictConnection("c-1")
	req.Equal([]string{"alice"}, r.AllOnlineUsers())
}

func TestPresenceRegistry_SetRoom(t *testing.T) {
	req := require.New(t)
	r := NewPresenceRegistry()
	r.AdmitConnection("c-1", "alice")
	r.AdmitConnection("c-2", "bob")

	req.NoError(r.SetRoom("c-1", "Books"))

	req.Equal([]string{"alice"}, r.UsersInRoom("Books"))
	req.Equal([]string{"bob"}, r.UsersInRoom(domain.Lobby))
	req.Equal([]string{"c-1"}, r.ConnectionsInRoom("Books"))
	connections, rooms := r.Count()
	req.Equal(2, connections)
	req.Equal(2, rooms)

	// An unknown connection is never admitted by a room change
	req.ErrorIs(r.SetRoom("c-ghost", "Books"), errors.ErrConnectionNotFound)
	_, ok := r.UserOf("c-ghost")
	req.False(ok)
}

func TestPresenceRegistry_Concurrent_Access(t *testing.T) {
	req := require.New(t)
	r := NewPresenceRegistry()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			connectionID := fmt.Sprintf("c-%d", i)
			r.AdmitConnection(connectionID, fmt.Sprintf("user-%d", i%10))
			_ = r.SetRoom(connectionID, "Books")
			r.UsersInRoom("Books")
			r.AllOnlineUsers()
		}(i)
	}
	wg.Wait()

	// One connection survives per username
	req.Len(r.AllOnlineUsers(), 10)
	connections, _ := r.Count()
	req.Equal(10, connections)
}
