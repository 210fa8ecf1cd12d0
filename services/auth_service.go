package services

import (
	"chat-hub/auth"
	"chat-hub/domain"
	"chat-hub/errors"
	"chat-hub/repositories"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
)

type IAuthService interface {
	Register(req auth.SignupRequest) (Token, error)
	Login(username, password string) (Token, error)
}

// LobbyJoiner adds freshly registered users to the Lobby.
type LobbyJoiner interface {
	JoinLobby(username string) error
}

type AuthService struct {
	log      *slog.Logger
	users    repositories.IUserRepository
	lobby    LobbyJoiner
	tokens   *auth.TokenIssuer
	validate *validator.Validate
}

type Token string

func NewAuthService(
	log *slog.Logger,
	users repositories.IUserRepository,
	lobby LobbyJoiner,
	tokens *auth.TokenIssuer,
	validate *validator.Validate,
) *AuthService {
	return &AuthService{log: log, users: users, lobby: lobby, tokens: tokens, validate: validate}
}

func (s *AuthService) Register(req auth.SignupRequest) (Token, error) {
	// Rules are checked before any expensive cryptographic operation
	if err := auth.ValidateSignup(s.validate, req); err != nil {
		return "", err
	}

	// Hashing stays in the service so the repository never sees a plain password
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return "", fmt.Errorf("hashing failed: %w", err)
	}

	user := domain.User{Username: req.Username, PasswordHash: hashedPassword, CreatedAt: time.Now().UTC()}
	if err := s.users.CreateUser(user); err != nil {
		return "", err
	}
	if err := s.lobby.JoinLobby(user.Username); err != nil {
		return "", fmt.Errorf("join lobby: %w", err)
	}
	s.log.Info("User registered", "username", user.Username)

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", errors.ErrTokenGeneration
	}
	return Token(token), nil
}

func (s *AuthService) Login(username, password string) (Token, error) {
	user, err := s.users.GetUser(username)
	if err != nil {
		// Same answer for unknown users and wrong passwords
		return "", errors.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !match {
		return "", errors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", errors.ErrTokenGeneration
	}
	return Token(token), nil
}
