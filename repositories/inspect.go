package repositories

import (
	"chat-hub/domain"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// Record is a primary record as the inspector shows it. Message bodies are
// shown as stored, never decrypted.
type Record struct {
	Key    string
	Kind   string
	At     string
	Detail string
}

const bodyPreview = 24

// Prefixes lists the primary record prefixes, in display order.
var Prefixes = []string{userPrefix, groupPrefix, conversationPrefix, messagePrefix}

// DescribeRecord decodes a primary record. Index keys and unknown keys return false.
func DescribeRecord(key string, value []byte) (Record, bool) {
	record := Record{Key: key, At: "--:--:--"}
	switch {
	case strings.HasPrefix(key, userPrefix):
		var user domain.User
		if json.Unmarshal(value, &user) != nil {
			return undecodable(record), true
		}
		record.Kind, record.At, record.Detail = "USER", user.CreatedAt.Format("15:04:05"), user.Username
	case strings.HasPrefix(key, groupPrefix):
		var group domain.Group
		if json.Unmarshal(value, &group) != nil {
			return undecodable(record), true
		}
		owner := group.Owner
		if owner == "" {
			owner = "-"
		}
		record.Kind, record.At = "GROUP", group.CreatedAt.Format("15:04:05")
		record.Detail = fmt.Sprintf("owner=%s members=%s", owner, strings.Join(group.Members, ","))
	case strings.HasPrefix(key, conversationPrefix):
		var conversation domain.Conversation
		if json.Unmarshal(value, &conversation) != nil {
			return undecodable(record), true
		}
		record.Kind, record.At = "CONVERSATION", conversation.CreatedAt.Format("15:04:05")
		record.Detail = conversation.Participant1 + " <-> " + conversation.Participant2
	case strings.HasPrefix(key, messagePrefix):
		var message domain.ChatMessage
		if json.Unmarshal(value, &message) != nil {
			return undecodable(record), true
		}
		container := "detached"
		switch {
		case message.InGroup():
			container = "group=" + message.Group
		case message.InConversation():
			container = "conversation=" + message.Conversation.String()
		}
		body := message.Body
		if len(body) > bodyPreview {
			body = body[:bodyPreview] + "..."
		}
		record.Kind, record.At = "MESSAGE", message.At.Format("15:04:05")
		record.Detail = fmt.Sprintf("%s author=%s body=%s", container, message.Author, body)
	default:
		return Record{}, false
	}
	return record, true
}

func undecodable(record Record) Record {
	record.Kind, record.Detail = "RAW", "Error: unmarshal failed"
	return record
}

// ScanRecords calls fn for every primary record under prefix.
func ScanRecords(db *badger.DB, prefix string, fn func(Record)) error {
	return db.View(func(txn *badger.Txn) error {
		return scan(txn, []byte(prefix), true, func(key, value []byte) error {
			if record, ok := DescribeRecord(string(key), value); ok {
				fn(record)
			}
			return nil
		})
	})
}
