package repositories

import (
	"chat-hub/errors"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// Key layout. \x00 separates names because no user or group name can contain a control character.
//
//	user:<username>                                   -> domain.User
//	group:<name>                                      -> domain.Group
//	member:<username>\x00<group>                      -> empty, reverse index of Group.Members
//	conv:<id>                                         -> domain.Conversation
//	convpair:<a>\x00<b>                               -> conversation id, a <= b
//	convuser:<username>\x00<id>                       -> empty
//	msg:<id>                                          -> domain.ChatMessage
//	grpmsg:<group>\x00<timestamp_padded>:<id>         -> message id
//	convmsg:<conversation>:<timestamp_padded>:<id>    -> message id
const (
	userPrefix         = "user:"
	groupPrefix        = "group:"
	memberPrefix       = "member:"
	conversationPrefix = "conv:"
	pairPrefix         = "convpair:"
	participantPrefix  = "convuser:"
	messagePrefix      = "msg:"
	groupMessagePrefix = "grpmsg:"
	convMessagePrefix  = "convmsg:"
	separator          = "\x00"
)

func userKey(username string) []byte { return []byte(userPrefix + username) }

func groupKey(name string) []byte { return []byte(groupPrefix + name) }

func memberKey(username, group string) []byte {
	return []byte(memberPrefix + username + separator + group)
}

func memberScan(username string) []byte { return []byte(memberPrefix + username + separator) }

func conversationKey(id uuid.UUID) []byte { return []byte(conversationPrefix + id.String()) }

func pairKey(a, b string) []byte {
	if a > b {
		a, b = b, a
	}
	return []byte(pairPrefix + a + separator + b)
}

func participantKey(username string, id uuid.UUID) []byte {
	return []byte(participantPrefix + username + separator + id.String())
}

func participantScan(username string) []byte {
	return []byte(participantPrefix + username + separator)
}

func messageKey(id uuid.UUID) []byte { return []byte(messagePrefix + id.String()) }

// The 19-digit zero padding keeps lexicographical order equal to chronological order,
// the id breaks ties between messages sharing a nanosecond.
func groupMessageKey(group string, at time.Time, id uuid.UUID) []byte {
	return []byte(fmt.Sprintf("%s%019d:%s", groupMessageScan(group), at.UnixNano(), id))
}

func groupMessageScan(group string) []byte {
	return []byte(groupMessagePrefix + group + separator)
}

func convMessageKey(conversation uuid.UUID, at time.Time, id uuid.UUID) []byte {
	return []byte(fmt.Sprintf("%s%019d:%s", convMessageScan(conversation), at.UnixNano(), id))
}

func convMessageScan(conversation uuid.UUID) []byte {
	return []byte(convMessagePrefix + conversation.String() + ":")
}

// Open opens the database at path with the library logs routed to log.
func Open(path string, log *slog.Logger, debug bool) (*badger.DB, error) {
	options := badger.DefaultOptions(path).WithLogger(badgerLogger{log: log})
	if debug {
		options = options.WithLoggingLevel(badger.DEBUG)
	} else {
		options = options.WithLoggingLevel(badger.WARNING)
	}
	return badger.Open(options)
}

// OpenInMemory opens a throwaway database.
func OpenInMemory(log *slog.Logger) (*badger.DB, error) {
	options := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(badgerLogger{log: log}).
		WithLoggingLevel(badger.ERROR)
	return badger.Open(options)
}

type badgerLogger struct {
	log *slog.Logger
}

func (b badgerLogger) Errorf(format string, args ...interface{}) {
	b.log.Error(strings.TrimSpace(fmt.Sprintf(format, args...)), "component", "badger")
}

func (b badgerLogger) Warningf(format string, args ...interface{}) {
	b.log.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)), "component", "badger")
}

func (b badgerLogger) Infof(format string, args ...interface{}) {
	b.log.Info(strings.TrimSpace(fmt.Sprintf(format, args...)), "component", "badger")
}

func (b badgerLogger) Debugf(format string, args ...interface{}) {
	b.log.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)), "component", "badger")
}

func read(txn *badger.Txn, key []byte, out any) error {
	item, err := txn.Get(key)
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}

func write(txn *badger.Txn, key []byte, in any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return txn.Set(key, data)
}

func has(txn *badger.Txn, key []byte) (bool, error) {
	_, err := txn.Get(key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return false, nil
	default:
		return false, err
	}
}

// scan calls fn for every key under prefix, in key order.
// Values are only fetched when withValues is set.
func scan(txn *badger.Txn, prefix []byte, withValues bool, fn func(key, value []byte) error) error {
	options := badger.DefaultIteratorOptions
	options.Prefix = prefix
	options.PrefetchValues = withValues
	it := txn.NewIterator(options)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		var value []byte
		if withValues {
			var err error
			if value, err = item.ValueCopy(nil); err != nil {
				return err
			}
		}
		if err := fn(item.KeyCopy(nil), value); err != nil {
			return err
		}
	}
	return nil
}

// suffix returns what follows prefix in key.
func suffix(key, prefix []byte) string {
	return string(key[len(prefix):])
}

// conflict turns an optimistic transaction conflict into a domain error.
func conflict(err error) error {
	if errors.Is(err, badger.ErrConflict) {
		return fmt.Errorf("%w: %v", errors.ErrConcurrentUpdate, err)
	}
	return err
}
