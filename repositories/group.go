//go:generate go run go.uber.org/mock/mockgen -source=group.go -destination=../mocks/mock_group_repository.go -package=mocks
package repositories

import (
	"chat-hub/domain"
	"chat-hub/errors"
	"encoding/json"
	"log/slog"
	"slices"

	"github.com/dgraph-io/badger/v4"
)

type IGroupRepository interface {
	CreateGroup(group domain.Group) error
	GetGroup(name string) (domain.Group, error)
	AddMember(name, username string) (domain.Group, error)
	DeleteGroup(name string) ([]string, error)
	GroupsOf(username string) ([]domain.Group, error)
	ListGroups() ([]domain.Group, error)
}

type GroupRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewGroupRepository(db *badger.DB, log *slog.Logger) *GroupRepository {
	return &GroupRepository{db: db, log: log}
}

// CreateGroup stores a new group and indexes its members.
// The existence check and the write share one transaction: when two callers race on the
// same name, badger rejects the second commit and only the first group survives.
// A group without owner (the Lobby) skips the owner lookup.
func (g *GroupRepository) CreateGroup(group domain.Group) error {
	err := g.db.Update(func(txn *badger.Txn) error {
		if group.Owner != "" {
			var owner domain.User
			if err := getUser(txn, group.Owner, &owner); err != nil {
				return err
			}
		}
		found, err := has(txn, groupKey(group.Name))
		if err != nil {
			return err
		}
		if found {
			return errors.ErrGroupAlreadyExists
		}
		if err := write(txn, groupKey(group.Name), group); err != nil {
			return err
		}
		for _, member := range group.Members {
			if err := txn.Set(memberKey(member, group.Name), nil); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, badger.ErrConflict) {
		if _, getErr := g.GetGroup(group.Name); getErr == nil {
			return errors.ErrGroupAlreadyExists
		}
		return conflict(err)
	}
	return err
}

func (g *GroupRepository) GetGroup(name string) (domain.Group, error) {
	var group domain.Group
	err := g.db.View(func(txn *badger.Txn) error {
		return getGroup(txn, name, &group)
	})
	return group, err
}

// AddMember adds an existing user to an existing group and returns the updated group.
// Adding a current member changes nothing.
func (g *GroupRepository) AddMember(name, username string) (domain.Group, error) {
	var group domain.Group
	err := g.db.Update(func(txn *badger.Txn) error {
		if err := getGroup(txn, name, &group); err != nil {
			return err
		}
		var user domain.User
		if err := getUser(txn, username, &user); err != nil {
			return err
		}
		if group.HasMember(username) {
			return nil
		}
		group = group.WithMember(username)
		if err := write(txn, groupKey(name), group); err != nil {
			return err
		}
		return txn.Set(memberKey(username, name), nil)
	})
	if err != nil {
		return domain.Group{}, conflict(err)
	}
	return group, nil
}

// detachChunk bounds the index entries handled by one transaction so a busy
// group stays under badger's transaction size limit.
const detachChunk = 1000

type indexEntry struct{ key, id []byte }

// DeleteGroup removes the group, its membership index and its message index.
// Its messages are kept but detached from any container.
// It returns the members the group had.
// Messages are detached in chunks and the group record goes last, so an
// interrupted delete leaves the group in place and can be retried.
func (g *GroupRepository) DeleteGroup(name string) ([]string, error) {
	var entries []indexEntry
	err := g.db.View(func(txn *badger.Txn) error {
		var group domain.Group
		if err := getGroup(txn, name, &group); err != nil {
			return err
		}
		var err error
		entries, err = groupIndex(txn, name)
		return err
	})
	if err != nil {
		return nil, err
	}

	for chunk := range slices.Chunk(entries, detachChunk) {
		err := g.db.Update(func(txn *badger.Txn) error {
			return g.detach(txn, name, chunk)
		})
		if err != nil {
			return nil, conflict(err)
		}
	}

	var group domain.Group
	err = g.db.Update(func(txn *badger.Txn) error {
		if err := getGroup(txn, name, &group); err != nil {
			return err
		}
		// Messages posted while the chunks were committed
		late, err := groupIndex(txn, name)
		if err != nil {
			return err
		}
		if err := g.detach(txn, name, late); err != nil {
			return err
		}
		for _, member := range group.Members {
			if err := txn.Delete(memberKey(member, name)); err != nil {
				return err
			}
		}
		return txn.Delete(groupKey(name))
	})
	if err != nil {
		return nil, conflict(err)
	}
	g.log.Debug("Group deleted", "group", name, "detached_messages", len(entries))
	return group.Members, nil
}

func groupIndex(txn *badger.Txn, name string) ([]indexEntry, error) {
	var entries []indexEntry
	err := scan(txn, groupMessageScan(name), true, func(key, value []byte) error {
		entries = append(entries, indexEntry{key: key, id: value})
		return nil
	})
	return entries, err
}

// detach clears the group of each indexed message and drops the index entries.
func (g *GroupRepository) detach(txn *badger.Txn, name string, entries []indexEntry) error {
	for _, entry := range entries {
		var message domain.ChatMessage
		err := read(txn, []byte(messagePrefix+string(entry.id)), &message)
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			g.log.Warn("Dangling message index entry", "group", name, "id", string(entry.id))
		case err != nil:
			return err
		default:
			message.Group = ""
			if err := write(txn, messageKey(message.ID), message); err != nil {
				return err
			}
		}
		if err := txn.Delete(entry.key); err != nil {
			return err
		}
	}
	return nil
}

// GroupsOf returns the groups username belongs to, ordered by name.
func (g *GroupRepository) GroupsOf(username string) ([]domain.Group, error) {
	var groups []domain.Group
	err := g.db.View(func(txn *badger.Txn) error {
		prefix := memberScan(username)
		var names []string
		err := scan(txn, prefix, false, func(key, _ []byte) error {
			names = append(names, suffix(key, prefix))
			return nil
		})
		if err != nil {
			return err
		}
		for _, name := range names {
			var group domain.Group
			err := getGroup(txn, name, &group)
			if errors.Is(err, errors.ErrGroupNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			groups = append(groups, group)
		}
		return nil
	})
	return groups, err
}

// ListGroups returns every group ordered by name.
func (g *GroupRepository) ListGroups() ([]domain.Group, error) {
	var groups []domain.Group
	err := g.db.View(func(txn *badger.Txn) error {
		return scan(txn, []byte(groupPrefix), true, func(_, value []byte) error {
			var group domain.Group
			if err := json.Unmarshal(value, &group); err != nil {
				return err
			}
			groups = append(groups, group)
			return nil
		})
	})
	return groups, err
}

func getGroup(txn *badger.Txn, name string, group *domain.Group) error {
	err := read(txn, groupKey(name), group)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return errors.ErrGroupNotFound
	}
	return err
}
