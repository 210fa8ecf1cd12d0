package repositories

import (
	"chat-hub/domain"
	"chat-hub/errors"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	users := NewUserRepository(db)

	req.NoError(users.CreateUser(domain.User{Username: "bob", PasswordHash: "h1"}))
	req.NoError(users.CreateUser(domain.User{Username: "alice", PasswordHash: "h2"}))
	req.ErrorIs(users.CreateUser(domain.User{Username: "bob", PasswordHash: "other"}), errors.ErrUserAlreadyExists)

	bob, err := users.GetUser("bob")
	req.NoError(err)
	req.Equal("h1", bob.PasswordHash)

	_, err = users.GetUser("carol")
	req.ErrorIs(err, errors.ErrUserNotFound)

	all, err := users.ListUsers()
	req.NoError(err)
	req.Len(all, 2)
	req.Equal("alice", all[0].Username)
	req.Equal("bob", all[1].Username)
}

func TestGroupRepository_Create(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	seedUsers(t, db, "alice", "bob")
	groups := NewGroupRepository(db, slog.Default())

	// Given a group created by alice
	req.NoError(groups.CreateGroup(domain.NewGroup("Books", "alice", time.Now())))

	// When bob creates a group with the same name
	err := groups.CreateGroup(domain.NewGroup("Books", "bob", time.Now()))

	// Then it fails and alice is still the owner
	req.ErrorIs(err, errors.ErrGroupAlreadyExists)
	group, err := groups.GetGroup("Books")
	req.NoError(err)
	req.Equal("alice", group.Owner)
	req.Equal([]string{"alice"}, group.Members)

	req.ErrorIs(groups.CreateGroup(domain.NewGroup("Music", "carol", time.Now())), errors.ErrUserNotFound)
	_, err = groups.GetGroup("Music")
	req.ErrorIs(err, errors.ErrGroupNotFound)
}

func TestGroupRepository_Create_Without_Owner(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	groups := NewGroupRepository(db, slog.Default())

	req.NoError(groups.CreateGroup(domain.Group{Name: domain.Lobby, CreatedAt: time.Now()}))

	lobby, err := groups.GetGroup(domain.Lobby)
	req.NoError(err)
	req.Empty(lobby.Owner)
	req.Empty(lobby.Members)
}

func TestGroupRepository_Concurrent_Create_Keeps_One_Group(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	owners := []string{"u0", "u1", "u2", "u3", "u4", "u5", "u6", "u7"}
	seedUsers(t, db, owners...)
	groups := NewGroupRepository(db, slog.Default())

	var wg sync.WaitGroup
	results := make([]error, len(owners))
	start := make(chan struct{})
	for i, owner := range owners {
		wg.Add(1)
		go func(i int, owner string) {
			defer wg.Done()
			<-start
			results[i] = groups.CreateGroup(domain.NewGroup("Race", owner, time.Now()))
		}(i, owner)
	}
	close(start)
	wg.Wait()

	var winner string
	successes := 0
	for i, err := range results {
		if err == nil {
			successes++
			winner = owners[i]
			continue
		}
		req.ErrorIs(err, errors.ErrGroupAlreadyExists)
	}
	req.Equal(1, successes)

	group, err := groups.GetGroup("Race")
	req.NoError(err)
	req.Equal(winner, group.Owner)
	req.Equal([]string{winner}, group.Members)

	for _, owner := range owners {
		memberOf, err := groups.GroupsOf(owner)
		req.NoError(err)
		if owner == winner {
			req.Len(memberOf, 1)
		} else {
			req.Empty(memberOf)
		}
	}
}

func TestGroupRepository_AddMember(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	seedUsers(t, db, "alice", "bob")
	groups := NewGroupRepository(db, slog.Default())
	req.NoError(groups.CreateGroup(domain.NewGroup("Books", "alice", time.Now())))

	group, err := groups.AddMember("Books", "bob")
	req.NoError(err)
	req.Equal([]string{"alice", "bob"}, group.Members)

	// Adding twice changes nothing
	group, err = groups.AddMember("Books", "bob")
	req.NoError(err)
	req.Equal([]string{"alice", "bob"}, group.Members)

	_, err = groups.AddMember("Books", "carol")
	req.ErrorIs(err, errors.ErrUserNotFound)
	_, err = groups.AddMember("Music", "bob")
	req.ErrorIs(err, errors.ErrGroupNotFound)

	memberOf, err := groups.GroupsOf("bob")
	req.NoError(err)
	req.Len(memberOf, 1)
	req.Equal("Books", memberOf[0].Name)
	req.Equal("alice", memberOf[0].Owner)
}

func TestGroupRepository_Delete_Detaches_Messages(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	seedUsers(t, db, "alice", "bob")
	groups := NewGroupRepository(db, slog.Default())
	messages := NewMessageRepository(db, slog.Default(), nil)
	req.NoError(groups.CreateGroup(domain.NewGroup("Books", "alice", time.Now())))
	_, err := groups.AddMember("Books", "bob")
	req.NoError(err)

	posted := groupMessage("Books", "alice", time.Now())
	req.NoError(messages.StoreMessage(posted))

	// When the group is deleted
	members, err := groups.DeleteGroup("Books")

	// Then its former members are returned and nothing references it anymore
	req.NoError(err)
	req.ElementsMatch([]string{"alice", "bob"}, members)

	_, err = groups.GetGroup("Books")
	req.ErrorIs(err, errors.ErrGroupNotFound)
	memberOf, err := groups.GroupsOf("bob")
	req.NoError(err)
	req.Empty(memberOf)
	history, err := messages.GroupMessages("Books")
	req.NoError(err)
	req.Empty(history)

	// And the message survives without container
	stored, err := messages.GetMessage(posted.ID)
	req.NoError(err)
	req.True(stored.Detached())

	_, err = groups.DeleteGroup("Books")
	req.ErrorIs(err, errors.ErrGroupNotFound)
}

func TestGroupRepository_Delete_Busy_Group(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	seedUsers(t, db, "alice")
	groups := NewGroupRepository(db, slog.Default())
	messages := NewMessageRepository(db, slog.Default(), nil)
	req.NoError(groups.CreateGroup(domain.NewGroup("Books", "alice", time.Now())))

	// Given a history far larger than one transaction can hold
	const total = 30000
	body := strings.Repeat("x", 200)
	batch := db.NewWriteBatch()
	at := time.Now().UTC()
	var last domain.ChatMessage
	for i := 0; i < total; i++ {
		last = domain.ChatMessage{ID: uuid.New(), Author: "alice", Body: body, At: at.Add(time.Duration(i)), Group: "Books"}
		data, err := json.Marshal(last)
		req.NoError(err)
		req.NoError(batch.Set(messageKey(last.ID), data))
		req.NoError(batch.Set(groupMessageKey("Books", last.At, last.ID), []byte(last.ID.String())))
	}
	req.NoError(batch.Flush())

	// When the group is deleted
	members, err := groups.DeleteGroup("Books")

	// Then it is gone and every message is detached
	req.NoError(err)
	req.Equal([]string{"alice"}, members)
	_, err = groups.GetGroup("Books")
	req.ErrorIs(err, errors.ErrGroupNotFound)
	history, err := messages.GroupMessages("Books")
	req.NoError(err)
	req.Empty(history)
	stored, err := messages.GetMessage(last.ID)
	req.NoError(err)
	req.True(stored.Detached())
}

func TestGroupRepository_ListGroups(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	seedUsers(t, db, "alice")
	groups := NewGroupRepository(db, slog.Default())
	for _, name := range []string{"Music", "Books", "Art"} {
		req.NoError(groups.CreateGroup(domain.NewGroup(name, "alice", time.Now())))
	}

	all, err := groups.ListGroups()
	req.NoError(err)
	req.Len(all, 3)
	req.Equal("Art", all[0].Name)
	req.Equal("Books", all[1].Name)
	req.Equal("Music", all[2].Name)
}
