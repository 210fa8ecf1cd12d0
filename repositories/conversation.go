//go:generate go run go.uber.org/mock/mockgen -source=conversation.go -destination=../mocks/mock_conversation_repository.go -package=mocks
package repositories

import (
	"chat-hub/domain"
	"chat-hub/errors"
	"encoding/json"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IConversationRepository interface {
	FindOrCreate(user, target string, at time.Time) (domain.Conversation, bool, error)
	GetConversation(id uuid.UUID) (domain.Conversation, error)
	ConversationsOf(username string) ([]domain.Conversation, error)
	ListConversations() ([]domain.Conversation, error)
}

type ConversationRepository struct {
	db *badger.DB
}

func NewConversationRepository(db *badger.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// FindOrCreate returns the conversation of the unordered pair {user, target}, creating it
// when missing. The boolean reports a creation.
// The pair index is read and written in one transaction, so two concurrent calls for the
// same pair end up with a single record: the loser of the commit reads the winner's.
func (c *ConversationRepository) FindOrCreate(user, target string, at time.Time) (domain.Conversation, bool, error) {
	if user == target {
		return domain.Conversation{}, false, errors.ErrSelfConversation
	}
	var conversation domain.Conversation
	var created bool
	err := c.db.Update(func(txn *badger.Txn) error {
		found, err := findPair(txn, user, target, &conversation)
		if err != nil || found {
			return err
		}
		for _, username := range []string{user, target} {
			var u domain.User
			if err := getUser(txn, username, &u); err != nil {
				return err
			}
		}

		conversation = domain.Conversation{
			ID:           uuid.New(),
			Participant1: user,
			Participant2: target,
			CreatedAt:    at,
		}
		if err := write(txn, conversationKey(conversation.ID), conversation); err != nil {
			return err
		}
		if err := txn.Set(pairKey(user, target), []byte(conversation.ID.String())); err != nil {
			return err
		}
		for _, username := range conversation.Participants() {
			if err := txn.Set(participantKey(username, conversation.ID), nil); err != nil {
				return err
			}
		}
		created = true
		return nil
	})

	if errors.Is(err, badger.ErrConflict) {
		err = c.db.View(func(txn *badger.Txn) error {
			found, err := findPair(txn, user, target, &conversation)
			if err == nil && !found {
				return conflict(badger.ErrConflict)
			}
			return err
		})
		created = false
	}
	if err != nil {
		return domain.Conversation{}, false, err
	}
	return conversation, created, nil
}

func (c *ConversationRepository) GetConversation(id uuid.UUID) (domain.Conversation, error) {
	var conversation domain.Conversation
	err := c.db.View(func(txn *badger.Txn) error {
		return getConversation(txn, id, &conversation)
	})
	return conversation, err
}

// ConversationsOf returns the conversations username takes part in, oldest first.
func (c *ConversationRepository) ConversationsOf(username string) ([]domain.Conversation, error) {
	var conversations []domain.Conversation
	err := c.db.View(func(txn *badger.Txn) error {
		prefix := participantScan(username)
		var ids []uuid.UUID
		err := scan(txn, prefix, false, func(key, _ []byte) error {
			id, err := uuid.Parse(suffix(key, prefix))
			if err != nil {
				return err
			}
			ids = append(ids, id)
			return nil
		})
		if err != nil {
			return err
		}
		for _, id := range ids {
			var conversation domain.Conversation
			if err := getConversation(txn, id, &conversation); err != nil {
				return err
			}
			conversations = append(conversations, conversation)
		}
		return nil
	})
	sortConversations(conversations)
	return conversations, err
}

func (c *ConversationRepository) ListConversations() ([]domain.Conversation, error) {
	var conversations []domain.Conversation
	err := c.db.View(func(txn *badger.Txn) error {
		return scan(txn, []byte(conversationPrefix), true, func(_, value []byte) error {
			var conversation domain.Conversation
			if err := json.Unmarshal(value, &conversation); err != nil {
				return err
			}
			conversations = append(conversations, conversation)
			return nil
		})
	})
	sortConversations(conversations)
	return conversations, err
}

func findPair(txn *badger.Txn, a, b string, conversation *domain.Conversation) (bool, error) {
	item, err := txn.Get(pairKey(a, b))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	raw, err := item.ValueCopy(nil)
	if err != nil {
		return false, err
	}
	id, err := uuid.Parse(string(raw))
	if err != nil {
		return false, err
	}
	return true, getConversation(txn, id, conversation)
}

func getConversation(txn *badger.Txn, id uuid.UUID, conversation *domain.Conversation) error {
	err := read(txn, conversationKey(id), conversation)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return errors.ErrConversationNotFound
	}
	return err
}

func sortConversations(conversations []domain.Conversation) {
	slices.SortStableFunc(conversations, func(a, b domain.Conversation) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}
