package errors

import (
	stderrors "errors"
	"fmt"
)

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")
	ErrEmptyWords  = fmt.Errorf("no words have been found")

	ErrUserNotFound         = fmt.Errorf("user not found")
	ErrGroupNotFound        = fmt.Errorf("group not found")
	ErrConversationNotFound = fmt.Errorf("conversation not found")
	ErrMessageNotFound      = fmt.Errorf("message not found")
	ErrConnectionNotFound   = fmt.Errorf("connection not found")

	ErrGroupAlreadyExists = fmt.Errorf("group by that name already exists")
	ErrUserAlreadyExists  = fmt.Errorf("user already exists")
	ErrConcurrentUpdate   = fmt.Errorf("record changed concurrently, try again")

	ErrNotGroupOwner    = fmt.Errorf("only the owner of a group can do this")
	ErrNotParticipant   = fmt.Errorf("user is not a participant of this conversation")
	ErrNotGroupMember   = fmt.Errorf("user is not a member of this group")
	ErrLobbyIsProtected = fmt.Errorf("the lobby cannot be modified")

	ErrSelfConversation = fmt.Errorf("cannot start a conversation with yourself")
	ErrInvalidArgument  = fmt.Errorf("invalid argument")
	ErrPasswordMismatch = fmt.Errorf("passwords do not match")
	ErrInvalidPassword  = fmt.Errorf("password does not meet requirements")

	ErrInvalidCredentials   = fmt.Errorf("the username or password was incorrect")
	ErrTokenGeneration      = fmt.Errorf("token generation failed")
	ErrMissingEncryptionKey = fmt.Errorf("encryption key is missing")
)

// Kind is the failure category reported to a caller.
type Kind string

const (
	KindNone         Kind = ""
	KindNotFound     Kind = "NotFound"
	KindConflict     Kind = "Conflict"
	KindUnauthorized Kind = "Unauthorized"
	KindInvalid      Kind = "Invalid"
	KindInternal     Kind = "Internal"
)

// KindOf classifies err. Anything not recognized is Internal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case isAny(err, ErrUserNotFound, ErrGroupNotFound, ErrConversationNotFound,
		ErrMessageNotFound, ErrConnectionNotFound):
		return KindNotFound
	case isAny(err, ErrGroupAlreadyExists, ErrUserAlreadyExists, ErrConcurrentUpdate):
		return KindConflict
	case isAny(err, ErrNotGroupOwner, ErrNotGroupMember, ErrNotParticipant, ErrLobbyIsProtected, ErrInvalidCredentials):
		return KindUnauthorized
	case isAny(err, ErrSelfConversation, ErrInvalidArgument, ErrPasswordMismatch, ErrInvalidPassword):
		return KindInvalid
	default:
		return KindInternal
	}
}

// Is mirrors the standard library so callers importing this package keep a single errors import.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func isAny(err error, targets ...error) bool {
	for _, target := range targets {
		if stderrors.Is(err, target) {
			return true
		}
	}
	return false
}
