//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"chat-hub/domain"
	"chat-hub/errors"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IMessageRepository interface {
	StoreMessage(message domain.ChatMessage) error
	GetMessage(id uuid.UUID) (domain.ChatMessage, error)
	GroupMessages(group string) ([]domain.ChatMessage, error)
	ConversationMessages(conversation uuid.UUID) ([]domain.ChatMessage, error)
	ListMessages() ([]domain.ChatMessage, error)
}

type MessageRepository struct {
	db            *badger.DB
	log           *slog.Logger
	limitMessages *int
}

// NewMessageRepository builds the repository. A nil limitMessages returns whole histories.
func NewMessageRepository(db *badger.DB, log *slog.Logger, limitMessages *int) *MessageRepository {
	return &MessageRepository{db: db, log: log, limitMessages: limitMessages}
}

// StoreMessage persists a message together with the index entry of its container.
// A message must belong to exactly one group or conversation.
func (m *MessageRepository) StoreMessage(message domain.ChatMessage) error {
	if message.InGroup() == message.InConversation() {
		return fmt.Errorf("%w: message %s needs exactly one container", errors.ErrInvalidArgument, message.ID)
	}
	err := m.db.Update(func(txn *badger.Txn) error {
		var index []byte
		if message.InGroup() {
			var group domain.Group
			if err := getGroup(txn, message.Group, &group); err != nil {
				return err
			}
			index = groupMessageKey(message.Group, message.At, message.ID)
		} else {
			var conversation domain.Conversation
			if err := getConversation(txn, message.Conversation, &conversation); err != nil {
				return err
			}
			index = convMessageKey(message.Conversation, message.At, message.ID)
		}
		if err := write(txn, messageKey(message.ID), message); err != nil {
			return err
		}
		return txn.Set(index, []byte(message.ID.String()))
	})
	return conflict(err)
}

func (m *MessageRepository) GetMessage(id uuid.UUID) (domain.ChatMessage, error) {
	var message domain.ChatMessage
	err := m.db.View(func(txn *badger.Txn) error {
		err := read(txn, messageKey(id), &message)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrMessageNotFound
		}
		return err
	})
	return message, err
}

// GroupMessages returns the history of a group, oldest first.
func (m *MessageRepository) GroupMessages(group string) ([]domain.ChatMessage, error) {
	return m.history(groupMessageScan(group))
}

// ConversationMessages returns the history of a conversation, oldest first.
func (m *MessageRepository) ConversationMessages(conversation uuid.UUID) ([]domain.ChatMessage, error) {
	return m.history(convMessageScan(conversation))
}

// ListMessages returns every stored message, detached ones included, in key order.
func (m *MessageRepository) ListMessages() ([]domain.ChatMessage, error) {
	var messages []domain.ChatMessage
	err := m.db.View(func(txn *badger.Txn) error {
		return scan(txn, []byte(messagePrefix), true, func(_, value []byte) error {
			var message domain.ChatMessage
			if err := json.Unmarshal(value, &message); err != nil {
				return err
			}
			messages = append(messages, message)
			return nil
		})
	})
	return messages, err
}

// history walks an index backwards from the newest entry so the limit keeps the most recent
// messages, then restores chronological order.
func (m *MessageRepository) history(prefix []byte) ([]domain.ChatMessage, error) {
	var messages []domain.ChatMessage
	err := m.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		// Every index key is below prefix followed by 0xFF
		seekKey := append(slices.Clone(prefix), 0xFF)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if m.limitMessages != nil && len(messages) == *m.limitMessages {
				m.log.Debug(fmt.Sprintf("Maximum of %d message reached", *m.limitMessages))
				break
			}
			id, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			var message domain.ChatMessage
			err = read(txn, []byte(messagePrefix+string(id)), &message)
			if errors.Is(err, badger.ErrKeyNotFound) {
				m.log.Warn("Dangling message index entry", "id", string(id))
				continue
			}
			if err != nil {
				return err
			}
			messages = append(messages, message)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Reverse(messages)
	return messages, nil
}
