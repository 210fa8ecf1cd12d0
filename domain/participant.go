// Package domain contains core concepts of the chat system.
// This file defines User entities. The password hash is opaque here.
package domain

import "time"

type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}
