// Package hub runs the operations a live connection invokes and fans their results out.
//
// Every operation computes all of its payloads before the first send, so a failure never
// leaves a broadcast half done. Failures only ever reach the invoking connection.
package hub

import (
	"chat-hub/contract"
	"chat-hub/domain"
	"chat-hub/domain/event"
	"chat-hub/errors"
	"chat-hub/pipeline"
	"chat-hub/services"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	MethodStartGroup         = "StartGroup"
	MethodAddUserToGroup     = "AddUserToGroup"
	MethodSendGroupMessage   = "SendGroupMessage"
	MethodSwitchGroup        = "SwitchGroup"
	MethodDeleteGroup        = "DeleteGroup"
	MethodStartPrivateChat   = "StartPrivateChat"
	MethodSendPrivateMessage = "SendPrivateMessage"
)

// Caller is the connection an operation runs for, with its authenticated username.
type Caller struct {
	ConnectionID string
	Username     string
}

type handler func(ctx context.Context, caller Caller, arguments json.RawMessage)

type Hub struct {
	log      *slog.Logger
	presence contract.IPresenceRegistry
	router   contract.IRouter
	groups   services.IGroupService
	private  services.IPrivateConversationService
	validate *validator.Validate
	handlers map[string]handler
}

func New(
	log *slog.Logger,
	presence contract.IPresenceRegistry,
	router contract.IRouter,
	groups services.IGroupService,
	private services.IPrivateConversationService,
	validate *validator.Validate,
) *Hub {
	h := &Hub{
		log:      log,
		presence: presence,
		router:   router,
		groups:   groups,
		private:  private,
		validate: validate,
	}
	h.handlers = map[string]handler{
		MethodStartGroup:         bind(h, MethodStartGroup, h.StartGroup),
		MethodAddUserToGroup:     bind(h, MethodAddUserToGroup, h.AddUserToGroup),
		MethodSendGroupMessage:   bind(h, MethodSendGroupMessage, h.SendGroupMessage),
		MethodSwitchGroup:        bind(h, MethodSwitchGroup, h.SwitchGroup),
		MethodDeleteGroup:        bind(h, MethodDeleteGroup, h.DeleteGroup),
		MethodStartPrivateChat:   bind(h, MethodStartPrivateChat, h.StartPrivateChat),
		MethodSendPrivateMessage: bind(h, MethodSendPrivateMessage, h.SendPrivateMessage),
	}
	return h
}

// bind decodes and validates the arguments of method before running op.
func bind[T any](h *Hub, method string, op func(context.Context, Caller, T)) handler {
	return func(ctx context.Context, caller Caller, arguments json.RawMessage) {
		var cmd T
		if len(arguments) == 0 {
			arguments = json.RawMessage("{}")
		}
		if err := json.Unmarshal(arguments, &cmd); err != nil {
			h.reject(ctx, caller, method, fmt.Errorf("%w: malformed arguments", errors.ErrInvalidArgument))
			return
		}
		if err := h.validate.Struct(cmd); err != nil {
			h.reject(ctx, caller, method, fmt.Errorf("%w: %v", errors.ErrInvalidArgument, err))
			return
		}
		op(ctx, caller, cmd)
	}
}

// Invoke runs one inbound call. Unknown methods are reported to the caller.
func (h *Hub) Invoke(ctx context.Context, caller Caller, method string, arguments json.RawMessage) {
	run, ok := h.handlers[method]
	if !ok {
		h.reject(ctx, caller, method, fmt.Errorf("%w: unknown method %q", errors.ErrInvalidArgument, method))
		return
	}
	h.log.Debug("Invocation", "method", method, "username", caller.Username)
	run(ctx, caller, arguments)
}

// OnConnect admits the connection into the Lobby and sends it its initial payload.
// A previous connection of the same user is told it was superseded and detached.
func (h *Hub) OnConnect(ctx context.Context, caller Caller, sink contract.EventSink) {
	if evicted, ok := h.presence.AdmitConnection(caller.ConnectionID, caller.Username); ok {
		h.log.Info("Session superseded", "username", caller.Username, "evicted", evicted)
		h.router.SendToConnection(ctx, evicted, event.SessionSuperseded{ConnectionID: evicted})
		h.router.Unregister(evicted)
	}
	h.router.Register(caller.ConnectionID, sink)
	h.router.JoinRoom(caller.ConnectionID, domain.Lobby)

	lobby := h.groups.RoomSnapshot(domain.Lobby)
	if !lobby.Success {
		h.fail(ctx, caller, "OnConnect", lobby.Kind, lobby.Message)
		return
	}
	groups := h.groups.GroupsOf(caller.Username)
	if !groups.Success {
		h.fail(ctx, caller, "OnConnect", groups.Kind, groups.Message)
		return
	}
	conversations := h.private.ConversationsOf(caller.Username)
	if !conversations.Success {
		h.fail(ctx, caller, "OnConnect", conversations.Kind, conversations.Message)
		return
	}

	h.router.SendToConnection(ctx, caller.ConnectionID, event.Initialized{InitialPayload: domain.InitialPayload{
		Username:      caller.Username,
		Lobby:         lobby.Payload,
		Groups:        groups.Payload,
		Conversations: conversations.Payload,
	}})
}

// OnDisconnect forgets the connection. Nothing is broadcast.
func (h *Hub) OnDisconnect(connectionID string) {
	h.presence.EvictConnection(connectionID)
	h.router.Unregister(connectionID)
}

// StartGroup creates a group owned by the caller. Only the caller is told.
func (h *Hub) StartGroup(ctx context.Context, caller Caller, cmd domain.StartGroupCommand) {
	created := h.groups.CreateGroup(cmd.GroupName, caller.Username)
	if !created.Success {
		h.fail(ctx, caller, MethodStartGroup, created.Kind, created.Message)
		return
	}
	h.router.SendToConnection(ctx, caller.ConnectionID, event.GroupJoined{GroupSummary: domain.ToGroupSummary(created.Payload)})
}

// AddUserToGroup announces the new member in the room, refreshes its presence
// and notifies the added user.
func (h *Hub) AddUserToGroup(ctx context.Context, caller Caller, cmd domain.AddUserToGroupCommand) {
	added := h.groups.AddMember(cmd.GroupName, cmd.Username, caller.Username)
	if !added.Success {
		h.fail(ctx, caller, MethodAddUserToGroup, added.Kind, added.Message)
		return
	}
	group := added.Payload
	notice := event.GroupMessageReceived{GroupMessage: domain.GroupMessage{
		Room:      group.Name,
		Username:  domain.SystemAuthor,
		Message:   pipeline.Sanitize(fmt.Sprintf("%s has added %s to the room.", caller.Username, cmd.Username)),
		TimeStamp: time.Now().UTC(),
	}}
	presence := event.PresenceRefreshed{Room: group.Name, Users: h.groups.GroupUsers(group)}
	joined := event.GroupJoined{GroupSummary: domain.ToGroupSummary(group)}

	h.router.SendToRoom(ctx, group.Name, notice)
	h.router.SendToRoom(ctx, group.Name, presence)
	h.router.SendToUser(ctx, cmd.Username, joined)
}

func (h *Hub) SendGroupMessage(ctx context.Context, caller Caller, cmd domain.SendGroupMessageCommand) {
	posted := h.groups.PostMessage(cmd.Message, cmd.GroupName, caller.Username)
	if !posted.Success {
		h.fail(ctx, caller, MethodSendGroupMessage, posted.Kind, posted.Message)
		return
	}
	h.router.SendToRoom(ctx, cmd.GroupName, event.GroupMessageReceived{GroupMessage: posted.Payload})
}

// SwitchGroup moves the caller to another room: leave, then join, then snapshot.
func (h *Hub) SwitchGroup(ctx context.Context, caller Caller, cmd domain.SwitchGroupCommand) {
	target := h.groups.GetGroup(cmd.GroupName)
	if !target.Success {
		h.fail(ctx, caller, MethodSwitchGroup, target.Kind, target.Message)
		return
	}
	previous, ok := h.presence.RoomOf(caller.ConnectionID)
	if !ok {
		h.log.Debug("Switch ignored, connection gone", "connection", caller.ConnectionID)
		return
	}

	h.router.LeaveRoom(caller.ConnectionID, previous)
	if err := h.presence.SetRoom(caller.ConnectionID, cmd.GroupName); err != nil {
		// Disconnected meanwhile: presence must not come back
		h.log.Debug("Switch aborted", "connection", caller.ConnectionID, "error", err)
		return
	}
	h.router.JoinRoom(caller.ConnectionID, cmd.GroupName)

	snapshot := h.groups.RoomSnapshot(cmd.GroupName)
	if !snapshot.Success {
		h.fail(ctx, caller, MethodSwitchGroup, snapshot.Kind, snapshot.Message)
		return
	}
	refreshes := []event.PresenceRefreshed{{Room: cmd.GroupName, Users: snapshot.Payload.Users}}
	if previous != cmd.GroupName {
		if old, ok := h.presenceOf(previous); ok {
			refreshes = append(refreshes, old)
		}
	}

	h.router.SendToConnection(ctx, caller.ConnectionID, event.RoomSnapshotted{RoomSnapshot: snapshot.Payload})
	for _, refresh := range refreshes {
		h.router.SendToRoom(ctx, refresh.Room, refresh)
	}
}

// DeleteGroup lets the owner delete a group. Former members are notified and
// connections viewing the group are moved back to the Lobby.
func (h *Hub) DeleteGroup(ctx context.Context, caller Caller, cmd domain.DeleteGroupCommand) {
	deleted := h.groups.DeleteOwnedGroup(cmd.GroupName, caller.Username)
	if !deleted.Success {
		h.fail(ctx, caller, MethodDeleteGroup, deleted.Kind, deleted.Message)
		return
	}

	var moved []string
	for _, connectionID := range h.presence.ConnectionsInRoom(cmd.GroupName) {
		h.router.LeaveRoom(connectionID, cmd.GroupName)
		if err := h.presence.SetRoom(connectionID, domain.Lobby); err != nil {
			continue
		}
		h.router.JoinRoom(connectionID, domain.Lobby)
		moved = append(moved, connectionID)
	}

	removed := event.GroupRemoved{Name: cmd.GroupName}
	var lobby domain.RoomSnapshot
	refreshLobby := len(moved) > 0
	if refreshLobby {
		snapshot := h.groups.RoomSnapshot(domain.Lobby)
		if snapshot.Success {
			lobby = snapshot.Payload
		} else {
			// The group is gone already: members are still told, only the Lobby refresh is skipped
			h.log.Error("Lobby snapshot failed after group deletion", "group", cmd.GroupName, "kind", snapshot.Kind)
			refreshLobby = false
		}
	}

	for _, member := range deleted.Payload {
		h.router.SendToUser(ctx, member, removed)
	}
	if refreshLobby {
		for _, connectionID := range moved {
			h.router.SendToConnection(ctx, connectionID, event.RoomSnapshotted{RoomSnapshot: lobby})
		}
		h.router.SendToRoom(ctx, domain.Lobby, event.PresenceRefreshed{Room: domain.Lobby, Users: lobby.Users})
	}
}

// StartPrivateChat opens the conversation for the caller and, when online, for the target.
func (h *Hub) StartPrivateChat(ctx context.Context, caller Caller, cmd domain.StartPrivateChatCommand) {
	started := h.private.StartConversation(caller.Username, cmd.Target)
	if !started.Success {
		h.fail(ctx, caller, MethodStartPrivateChat, started.Kind, started.Message)
		return
	}
	opened := event.PrivateChatOpened{PrivateChatPayload: started.Payload}
	h.router.SendToConnection(ctx, caller.ConnectionID, opened)
	h.router.SendToUser(ctx, cmd.Target, opened)
}

// SendPrivateMessage delivers to both participants.
func (h *Hub) SendPrivateMessage(ctx context.Context, caller Caller, cmd domain.SendPrivateMessageCommand) {
	sent := h.private.SendMessage(cmd.Message, cmd.ConversationID, caller.Username)
	if !sent.Success {
		h.fail(ctx, caller, MethodSendPrivateMessage, sent.Kind, sent.Message)
		return
	}
	received := event.PrivateMessageReceived{PrivateMessage: sent.Payload.Message}
	for _, participant := range sent.Payload.Participants {
		h.router.SendToUser(ctx, participant, received)
	}
}

func (h *Hub) presenceOf(room string) (event.PresenceRefreshed, bool) {
	group := h.groups.GetGroup(room)
	if !group.Success {
		return event.PresenceRefreshed{}, false
	}
	return event.PresenceRefreshed{Room: room, Users: h.groups.GroupUsers(group.Payload)}, true
}

func (h *Hub) reject(ctx context.Context, caller Caller, operation string, err error) {
	h.fail(ctx, caller, operation, errors.KindOf(err), err.Error())
}

func (h *Hub) fail(ctx context.Context, caller Caller, operation string, kind errors.Kind, message string) {
	h.log.Debug("Operation failed", "operation", operation, "username", caller.Username, "kind", kind)
	h.router.SendToConnection(ctx, caller.ConnectionID, event.ErrorRaised{
		Operation: operation,
		Kind:      kind,
		Message:   message,
	})
}
