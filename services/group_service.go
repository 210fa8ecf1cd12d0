package services

import (
	"chat-hub/contract"
	"chat-hub/domain"
	"chat-hub/errors"
	"chat-hub/pipeline"
	"chat-hub/repositories"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IGroupService interface {
	EnsureLobby() error
	JoinLobby(username string) error
	CreateGroup(name, requester string) Result[domain.Group]
	GetGroup(name string) Result[domain.Group]
	AddMember(groupName, target, requester string) Result[domain.Group]
	DeleteGroup(name string) Result[[]string]
	DeleteOwnedGroup(name, requester string) Result[[]string]
	PostMessage(body, groupName, author string) Result[domain.GroupMessage]
	RoomSnapshot(groupName string) Result[domain.RoomSnapshot]
	GroupUsers(group domain.Group) []domain.GroupUser
	GroupsOf(username string) Result[[]domain.GroupSummary]
}

// GroupService owns the group rules: ownership, membership, history and presence of a room.
// It never broadcasts, the caller fans out what it returns.
type GroupService struct {
	log      *slog.Logger
	users    repositories.IUserRepository
	groups   repositories.IGroupRepository
	messages repositories.IMessageRepository
	presence contract.IPresenceRegistry
	pipeline *pipeline.Pipeline
}

func NewGroupService(
	log *slog.Logger,
	users repositories.IUserRepository,
	groups repositories.IGroupRepository,
	messages repositories.IMessageRepository,
	presence contract.IPresenceRegistry,
	pipeline *pipeline.Pipeline,
) *GroupService {
	return &GroupService{
		log:      log,
		users:    users,
		groups:   groups,
		messages: messages,
		presence: presence,
		pipeline: pipeline,
	}
}

// EnsureLobby creates the ownerless Lobby on first start.
func (s *GroupService) EnsureLobby() error {
	err := s.groups.CreateGroup(domain.Group{Name: domain.Lobby, Members: []string{}, CreatedAt: time.Now().UTC()})
	if err == nil {
		s.log.Info("Lobby created")
		return nil
	}
	if errors.Is(err, errors.ErrGroupAlreadyExists) {
		return nil
	}
	return err
}

// JoinLobby makes username a member of the Lobby so lobby presence lists them.
func (s *GroupService) JoinLobby(username string) error {
	_, err := s.groups.AddMember(domain.Lobby, username)
	return err
}

func (s *GroupService) CreateGroup(name, requester string) Result[domain.Group] {
	const op = "CreateGroup"
	if !domain.ValidRoomName(name) {
		return Fail[domain.Group](s.log, op, fmt.Errorf("%w: group name %q", errors.ErrInvalidArgument, name))
	}
	// A taken name is reported before the requester is checked
	switch _, err := s.groups.GetGroup(name); {
	case err == nil:
		return Fail[domain.Group](s.log, op, errors.ErrGroupAlreadyExists)
	case !errors.Is(err, errors.ErrGroupNotFound):
		return Fail[domain.Group](s.log, op, err)
	}
	if _, err := s.users.GetUser(requester); err != nil {
		return Fail[domain.Group](s.log, op, err)
	}
	group := domain.NewGroup(name, requester, time.Now().UTC())
	if err := s.groups.CreateGroup(group); err != nil {
		return Fail[domain.Group](s.log, op, err)
	}
	s.log.Debug("Group created", "group", name, "owner", requester)
	return Ok(group)
}

func (s *GroupService) GetGroup(name string) Result[domain.Group] {
	group, err := s.groups.GetGroup(name)
	if err != nil {
		return Fail[domain.Group](s.log, "GetGroup", err)
	}
	return Ok(group)
}

// AddMember lets the owner of a group add an existing user to it.
func (s *GroupService) AddMember(groupName, target, requester string) Result[domain.Group] {
	const op = "AddMember"
	group, err := s.groups.GetGroup(groupName)
	if err != nil {
		return Fail[domain.Group](s.log, op, err)
	}
	if _, err := s.users.GetUser(target); err != nil {
		return Fail[domain.Group](s.log, op, err)
	}
	if !group.IsOwnedBy(requester) {
		return Fail[domain.Group](s.log, op, errors.ErrNotGroupOwner)
	}
	updated, err := s.groups.AddMember(groupName, target)
	if err != nil {
		return Fail[domain.Group](s.log, op, err)
	}
	return Ok(updated)
}

// DeleteGroup removes a group and returns its former members.
// Messages of the group are kept, detached from it.
func (s *GroupService) DeleteGroup(name string) Result[[]string] {
	const op = "DeleteGroup"
	if name == domain.Lobby {
		return Fail[[]string](s.log, op, errors.ErrLobbyIsProtected)
	}
	members, err := s.groups.DeleteGroup(name)
	if err != nil {
		return Fail[[]string](s.log, op, err)
	}
	s.log.Debug("Group deleted", "group", name, "members", len(members))
	return Ok(members)
}

// DeleteOwnedGroup is DeleteGroup restricted to the owner of the group.
func (s *GroupService) DeleteOwnedGroup(name, requester string) Result[[]string] {
	group, err := s.groups.GetGroup(name)
	if err != nil {
		return Fail[[]string](s.log, "DeleteOwnedGroup", err)
	}
	if name != domain.Lobby && !group.IsOwnedBy(requester) {
		return Fail[[]string](s.log, "DeleteOwnedGroup", errors.ErrNotGroupOwner)
	}
	return s.DeleteGroup(name)
}

// PostMessage stores the ciphertext and returns the sanitized plaintext for display.
func (s *GroupService) PostMessage(body, groupName, author string) Result[domain.GroupMessage] {
	const op = "PostMessage"
	if _, err := s.groups.GetGroup(groupName); err != nil {
		return Fail[domain.GroupMessage](s.log, op, err)
	}
	if _, err := s.users.GetUser(author); err != nil {
		return Fail[domain.GroupMessage](s.log, op, err)
	}
	prepared, err := s.pipeline.Prepare(body)
	if err != nil {
		return Fail[domain.GroupMessage](s.log, op, err)
	}
	message := domain.ChatMessage{
		ID:     uuid.New(),
		Author: author,
		Body:   prepared.Stored,
		At:     time.Now().UTC(),
		Group:  groupName,
	}
	if err := s.messages.StoreMessage(message); err != nil {
		return Fail[domain.GroupMessage](s.log, op, err)
	}
	return Ok(domain.GroupMessage{
		Room:      groupName,
		Username:  author,
		Message:   prepared.Display,
		TimeStamp: message.At,
	})
}

// RoomSnapshot returns the decrypted history of a group and the presence of its members.
func (s *GroupService) RoomSnapshot(groupName string) Result[domain.RoomSnapshot] {
	const op = "RoomSnapshot"
	group, err := s.groups.GetGroup(groupName)
	if err != nil {
		return Fail[domain.RoomSnapshot](s.log, op, err)
	}
	history, err := s.messages.GroupMessages(groupName)
	if err != nil {
		return Fail[domain.RoomSnapshot](s.log, op, err)
	}
	messages := lo.Map(history, func(m domain.ChatMessage, _ int) domain.GroupMessage {
		return domain.GroupMessage{
			Room:      groupName,
			Username:  m.Author,
			Message:   s.pipeline.Reveal(m.Body),
			TimeStamp: m.At,
		}
	})
	return Ok(domain.RoomSnapshot{
		Room:     groupName,
		Messages: messages,
		Users:    s.GroupUsers(group),
	})
}

// GroupUsers joins the durable membership of group with live presence.
func (s *GroupService) GroupUsers(group domain.Group) []domain.GroupUser {
	online := lo.KeyBy(s.presence.AllOnlineUsers(), func(u string) string { return u })
	present := lo.KeyBy(s.presence.UsersInRoom(group.Name), func(u string) string { return u })
	return lo.Map(group.Members, func(member string, _ int) domain.GroupUser {
		_, isOnline := online[member]
		_, isPresent := present[member]
		return domain.GroupUser{Username: member, Online: isOnline, Present: isPresent}
	})
}

func (s *GroupService) GroupsOf(username string) Result[[]domain.GroupSummary] {
	groups, err := s.groups.GroupsOf(username)
	if err != nil {
		return Fail[[]domain.GroupSummary](s.log, "GroupsOf", err)
	}
	return Ok(lo.Map(groups, func(g domain.Group, _ int) domain.GroupSummary {
		return domain.ToGroupSummary(g)
	}))
}
