package services

import (
	"chat-hub/domain"
	"chat-hub/errors"
	"chat-hub/pipeline"
	"chat-hub/repositories"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IPrivateConversationService interface {
	StartConversation(currentUser, target string) Result[domain.PrivateChatPayload]
	SendMessage(body string, conversationID uuid.UUID, author string) Result[PrivateDelivery]
	ConversationsOf(username string) Result[[]domain.PrivateChat]
}

// PrivateDelivery is a sent message and who must receive it.
type PrivateDelivery struct {
	Message      domain.PrivateMessage
	Participants []string
}

type PrivateConversationService struct {
	log           *slog.Logger
	users         repositories.IUserRepository
	conversations repositories.IConversationRepository
	messages      repositories.IMessageRepository
	pipeline      *pipeline.Pipeline
}

func NewPrivateConversationService(
	log *slog.Logger,
	users repositories.IUserRepository,
	conversations repositories.IConversationRepository,
	messages repositories.IMessageRepository,
	pipeline *pipeline.Pipeline,
) *PrivateConversationService {
	return &PrivateConversationService{
		log:           log,
		users:         users,
		conversations: conversations,
		messages:      messages,
		pipeline:      pipeline,
	}
}

// StartConversation resolves the conversation of {currentUser, target}, creating it once,
// and returns it with its decrypted history.
func (s *PrivateConversationService) StartConversation(currentUser, target string) Result[domain.PrivateChatPayload] {
	const op = "StartConversation"
	if currentUser == target {
		return Fail[domain.PrivateChatPayload](s.log, op, errors.ErrSelfConversation)
	}
	if _, err := s.users.GetUser(target); err != nil {
		return Fail[domain.PrivateChatPayload](s.log, op, err)
	}
	conversation, created, err := s.conversations.FindOrCreate(currentUser, target, time.Now().UTC())
	if err != nil {
		return Fail[domain.PrivateChatPayload](s.log, op, err)
	}
	if created {
		s.log.Debug("Conversation created", "id", conversation.ID)
	}

	history, err := s.messages.ConversationMessages(conversation.ID)
	if err != nil {
		return Fail[domain.PrivateChatPayload](s.log, op, err)
	}
	return Ok(domain.PrivateChatPayload{
		ID:           conversation.ID,
		Participant1: conversation.Participant1,
		Participant2: conversation.Participant2,
		Messages: lo.Map(history, func(m domain.ChatMessage, _ int) domain.PrivateMessage {
			return domain.PrivateMessage{
				ConversationID: conversation.ID,
				Username:       m.Author,
				Message:        s.pipeline.Reveal(m.Body),
				TimeStamp:      m.At,
			}
		}),
	})
}

// SendMessage stores the ciphertext and returns the sanitized plaintext for display.
// Only the two participants may write to a conversation.
func (s *PrivateConversationService) SendMessage(body string, conversationID uuid.UUID, author string) Result[PrivateDelivery] {
	const op = "SendPrivateMessage"
	conversation, err := s.conversations.GetConversation(conversationID)
	if err != nil {
		return Fail[PrivateDelivery](s.log, op, err)
	}
	if _, err := s.users.GetUser(author); err != nil {
		return Fail[PrivateDelivery](s.log, op, err)
	}
	if !conversation.Involves(author) {
		return Fail[PrivateDelivery](s.log, op, errors.ErrNotParticipant)
	}

	prepared, err := s.pipeline.Prepare(body)
	if err != nil {
		return Fail[PrivateDelivery](s.log, op, err)
	}
	message := domain.ChatMessage{
		ID:           uuid.New(),
		Author:       author,
		Body:         prepared.Stored,
		At:           time.Now().UTC(),
		Conversation: conversation.ID,
	}
	if err := s.messages.StoreMessage(message); err != nil {
		return Fail[PrivateDelivery](s.log, op, err)
	}
	return Ok(PrivateDelivery{
		Message: domain.PrivateMessage{
			ConversationID: conversation.ID,
			Username:       author,
			Message:        prepared.Display,
			TimeStamp:      message.At,
		},
		Participants: conversation.Participants(),
	})
}

func (s *PrivateConversationService) ConversationsOf(username string) Result[[]domain.PrivateChat] {
	conversations, err := s.conversations.ConversationsOf(username)
	if err != nil {
		return Fail[[]domain.PrivateChat](s.log, "ConversationsOf", err)
	}
	return Ok(lo.Map(conversations, func(c domain.Conversation, _ int) domain.PrivateChat {
		return domain.ToPrivateChat(c)
	}))
}
