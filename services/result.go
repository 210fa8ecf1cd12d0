package services

import (
	"chat-hub/errors"
	"log/slog"
)

const internalMessage = "internal error"

// Result is what every chat operation returns: expected failures are values, not errors.
type Result[T any] struct {
	Success bool
	Kind    errors.Kind
	Message string
	Payload T
}

func Ok[T any](payload T) Result[T] {
	return Result[T]{Success: true, Payload: payload}
}

// Fail classifies err. Internal failures are logged here with their cause
// and reach the caller with a generic message only.
func Fail[T any](log *slog.Logger, operation string, err error) Result[T] {
	kind := errors.KindOf(err)
	if kind == errors.KindInternal {
		log.Error("Operation failed", "operation", operation, "error", err)
		return Result[T]{Kind: kind, Message: internalMessage}
	}
	return Result[T]{Kind: kind, Message: err.Error()}
}
