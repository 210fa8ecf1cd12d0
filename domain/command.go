package domain

import "github.com/google/uuid"

// Commands are the arguments of the operations a live connection can invoke.
// The invoking username is never part of a command: it comes from the authenticated connection.

type StartGroupCommand struct {
	GroupName string `json:"groupName" validate:"required,roomname"`
}

type AddUserToGroupCommand struct {
	GroupName string `json:"groupName" validate:"required,roomname"`
	Username  string `json:"username" validate:"required"`
}

type SendGroupMessageCommand struct {
	GroupName string `json:"groupName" validate:"required"`
	Message   string `json:"message" validate:"max=4000"`
}

type SwitchGroupCommand struct {
	GroupName string `json:"groupName" validate:"required"`
}

type DeleteGroupCommand struct {
	GroupName string `json:"groupName" validate:"required"`
}

type StartPrivateChatCommand struct {
	Target string `json:"target" validate:"required"`
}

type SendPrivateMessageCommand struct {
	ConversationID uuid.UUID `json:"conversationId" validate:"required"`
	Message        string    `json:"message" validate:"max=4000"`
}
