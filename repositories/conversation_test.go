package repositories

import (
	"chat-hub/errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestConversationRepository_FindOrCreate_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	seedUsers(t, db, "alice", "bob", "carol")
	conversations := NewConversationRepository(db)

	first, created, err := conversations.FindOrCreate("alice", "bob", time.Now())
	req.NoError(err)
	req.True(created)
	req.Equal("alice", first.Participant1)
	req.Equal("bob", first.Participant2)

	// Same pair, both orders
	again, created, err := conversations.FindOrCreate("alice", "bob", time.Now())
	req.NoError(err)
	req.False(created)
	req.Equal(first.ID, again.ID)

	reversed, created, err := conversations.FindOrCreate("bob", "alice", time.Now())
	req.NoError(err)
	req.False(created)
	req.Equal(first.ID, reversed.ID)

	other, created, err := conversations.FindOrCreate("alice", "carol", time.Now().Add(time.Second))
	req.NoError(err)
	req.True(created)
	req.NotEqual(first.ID, other.ID)

	all, err := conversations.ListConversations()
	req.NoError(err)
	req.Len(all, 2)

	ofAlice, err := conversations.ConversationsOf("alice")
	req.NoError(err)
	req.Len(ofAlice, 2)
	req.Equal(first.ID, ofAlice[0].ID)

	ofBob, err := conversations.ConversationsOf("bob")
	req.NoError(err)
	req.Len(ofBob, 1)
}

func TestConversationRepository_FindOrCreate_Errors(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	seedUsers(t, db, "alice")
	conversations := NewConversationRepository(db)

	_, _, err := conversations.FindOrCreate("alice", "ghost", time.Now())
	req.ErrorIs(err, errors.ErrUserNotFound)

	_, _, err = conversations.FindOrCreate("alice", "alice", time.Now())
	req.ErrorIs(err, errors.ErrSelfConversation)

	_, err = conversations.GetConversation(uuid.New())
	req.ErrorIs(err, errors.ErrConversationNotFound)

	all, err := conversations.ListConversations()
	req.NoError(err)
	req.Empty(all)
}

func TestConversationRepository_Concurrent_FindOrCreate(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	seedUsers(t, db, "alice", "bob")
	conversations := NewConversationRepository(db)

	const callers = 8
	ids := make([]uuid.UUID, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			a, b := "alice", "bob"
			if i%2 == 1 {
				a, b = b, a
			}
			conversation, _, err := conversations.FindOrCreate(a, b, time.Now())
			ids[i], errs[i] = conversation.ID, err
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 0; i < callers; i++ {
		req.NoError(errs[i])
		req.Equal(ids[0], ids[i])
	}
	all, err := conversations.ListConversations()
	req.NoError(err)
	req.Len(all, 1)
}
