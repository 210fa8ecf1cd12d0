package domain

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MaxRoomNameLength = 64
	MinUsernameLength = 2
	MaxUsernameLength = 32
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// ValidUsername accepts 2 to 32 characters out of letters, digits, '_', '.', '-'.
func ValidUsername(username string) bool {
	return len(username) >= MinUsernameLength &&
		len(username) <= MaxUsernameLength &&
		usernamePattern.MatchString(username)
}

// ValidRoomName rejects empty or padded names, control characters, and names over 64 runes.
// Room names end up inside storage keys where NUL separates components.
func ValidRoomName(name string) bool {
	if name == "" || strings.TrimSpace(name) != name || !utf8.ValidString(name) {
		return false
	}
	if utf8.RuneCountInString(name) > MaxRoomNameLength {
		return false
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}
