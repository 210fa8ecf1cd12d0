//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"chat-hub/domain"
	"chat-hub/errors"
	"encoding/json"

	"github.com/dgraph-io/badger/v4"
)

type IUserRepository interface {
	CreateUser(user domain.User) error
	GetUser(username string) (domain.User, error)
	ListUsers() ([]domain.User, error)
}

type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser persists a user whose password is already hashed.
// Usernames are unique: a taken name returns ErrUserAlreadyExists.
func (u *UserRepository) CreateUser(user domain.User) error {
	err := u.db.Update(func(txn *badger.Txn) error {
		key := userKey(user.Username)
		found, err := has(txn, key)
		if err != nil {
			return err
		}
		if found {
			return errors.ErrUserAlreadyExists
		}
		return write(txn, key, user)
	})
	if errors.Is(err, badger.ErrConflict) {
		// The concurrent writer created the same username
		return errors.ErrUserAlreadyExists
	}
	return err
}

func (u *UserRepository) GetUser(username string) (domain.User, error) {
	var user domain.User
	err := u.db.View(func(txn *badger.Txn) error {
		return getUser(txn, username, &user)
	})
	return user, err
}

// ListUsers returns every user ordered by username.
func (u *UserRepository) ListUsers() ([]domain.User, error) {
	var users []domain.User
	err := u.db.View(func(txn *badger.Txn) error {
		return scan(txn, []byte(userPrefix), true, func(_, value []byte) error {
			var user domain.User
			if err := json.Unmarshal(value, &user); err != nil {
				return err
			}
			users = append(users, user)
			return nil
		})
	})
	return users, err
}

func getUser(txn *badger.Txn, username string, user *domain.User) error {
	err := read(txn, userKey(username), user)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return errors.ErrUserNotFound
	}
	return err
}
