package repositories

import (
	"chat-hub/domain"
	"chat-hub/errors"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *badger.DB {
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedUsers(t *testing.T, db *badger.DB, usernames ...string) {
	users := NewUserRepository(db)
	for _, username := range usernames {
		require.NoError(t, users.CreateUser(domain.User{Username: username, PasswordHash: "hash", CreatedAt: time.Now().UTC()}))
	}
}

func groupMessage(group, author string, at time.Time) domain.ChatMessage {
	return domain.ChatMessage{ID: uuid.New(), Author: author, Body: "ciphertext", At: at, Group: group}
}

func Test_Record_Multiple_Message(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	seedUsers(t, db, "alice")
	req.NoError(NewGroupRepository(db, slog.Default()).CreateGroup(domain.NewGroup("Books", "alice", time.Now())))
	repository := NewMessageRepository(db, slog.Default(), nil)

	at := time.Now().UTC()
	messages := []domain.ChatMessage{
		groupMessage("Books", "Alice", at),
		groupMessage("Books", "Bob", at.Add(1*time.Minute)),
		groupMessage("Books", "Clara", at.Add(2*time.Minute)),
	}
	// Stored out of order, read back oldest first
	for _, i := range []int{2, 0, 1} {
		req.NoError(repository.StoreMessage(messages[i]))
	}

	fetched, err := repository.GroupMessages("Books")
	req.NoError(err)
	req.Len(fetched, len(messages))
	for i := range messages {
		req.Equal(messages[i].ID, fetched[i].ID)
		req.Equal(messages[i].Author, fetched[i].Author)
		req.True(messages[i].At.Equal(fetched[i].At))
	}
}

func Test_Record_Multiple_Message_And_Limit(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	seedUsers(t, db, "alice")
	req.NoError(NewGroupRepository(db, slog.Default()).CreateGroup(domain.NewGroup("Books", "alice", time.Now())))

	limit := 2
	repository := NewMessageRepository(db, slog.Default(), &limit)
	at := time.Now().UTC()
	messages := []domain.ChatMessage{
		groupMessage("Books", "Alice", at),
		groupMessage("Books", "Bob", at.Add(1*time.Minute)),
		groupMessage("Books", "Clara", at.Add(2*time.Minute)),
	}
	for _, message := range messages {
		req.NoError(repository.StoreMessage(message))
	}

	fetched, err := repository.GroupMessages("Books")
	req.NoError(err)
	req.Len(fetched, limit)
	// Then the most recent ones are kept, still oldest first
	req.Equal("Bob", fetched[0].Author)
	req.Equal("Clara", fetched[1].Author)
}

func Test_Messages_Do_Not_Leak_Between_Groups(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	seedUsers(t, db, "alice")
	groups := NewGroupRepository(db, slog.Default())
	// "Book" is a prefix of "Books"
	req.NoError(groups.CreateGroup(domain.NewGroup("Book", "alice", time.Now())))
	req.NoError(groups.CreateGroup(domain.NewGroup("Books", "alice", time.Now())))
	repository := NewMessageRepository(db, slog.Default(), nil)

	req.NoError(repository.StoreMessage(groupMessage("Book", "alice", time.Now())))
	req.NoError(repository.StoreMessage(groupMessage("Books", "alice", time.Now())))

	fetched, err := repository.GroupMessages("Book")
	req.NoError(err)
	req.Len(fetched, 1)
	req.Equal("Book", fetched[0].Group)
}

func Test_Store_Message_Requires_One_Container(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	repository := NewMessageRepository(db, slog.Default(), nil)

	neither := domain.ChatMessage{ID: uuid.New(), Author: "alice", Body: "x", At: time.Now()}
	both := domain.ChatMessage{ID: uuid.New(), Author: "alice", Body: "x", At: time.Now(), Group: "Books", Conversation: uuid.New()}

	req.ErrorIs(repository.StoreMessage(neither), errors.ErrInvalidArgument)
	req.ErrorIs(repository.StoreMessage(both), errors.ErrInvalidArgument)
	req.ErrorIs(repository.StoreMessage(groupMessage("Unknown", "alice", time.Now())), errors.ErrGroupNotFound)
}

func Test_Conversation_Messages(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	seedUsers(t, db, "alice", "bob")
	conversation, created, err := NewConversationRepository(db).FindOrCreate("alice", "bob", time.Now())
	req.NoError(err)
	req.True(created)
	repository := NewMessageRepository(db, slog.Default(), nil)

	at := time.Now().UTC()
	first := domain.ChatMessage{ID: uuid.New(), Author: "alice", Body: "hi", At: at, Conversation: conversation.ID}
	second := domain.ChatMessage{ID: uuid.New(), Author: "bob", Body: "hello", At: at.Add(time.Second), Conversation: conversation.ID}
	req.NoError(repository.StoreMessage(second))
	req.NoError(repository.StoreMessage(first))

	fetched, err := repository.ConversationMessages(conversation.ID)
	req.NoError(err)
	req.Len(fetched, 2)
	req.Equal(first.ID, fetched[0].ID)
	req.Equal(second.ID, fetched[1].ID)

	stored, err := repository.GetMessage(first.ID)
	req.NoError(err)
	req.Equal(conversation.ID, stored.Conversation)

	_, err = repository.GetMessage(uuid.New())
	req.ErrorIs(err, errors.ErrMessageNotFound)

	unknown := domain.ChatMessage{ID: uuid.New(), Author: "bob", Body: "x", At: at, Conversation: uuid.New()}
	req.ErrorIs(repository.StoreMessage(unknown), errors.ErrConversationNotFound)
}
