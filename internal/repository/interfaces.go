package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vedran77/replydesk/internal/domain"
)

type OperatorRepository interface {
	Create(ctx context.Context, op *domain.Operator) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Operator, error)
	GetByEmail(ctx context.Context, email string) (*domain.Operator, error)
}

// ConversationRepository is the record store behind the inspector. Listings
// come back in insertion order.
type ConversationRepository interface {
	ListConversations(ctx context.Context, ownerID uuid.UUID) ([]domain.Conversation, error)
	GetConversation(ctx context.Context, id string) (*domain.Conversation, error)
	CreateConversation(ctx context.Context, conv *domain.Conversation) error
	UpdateConversation(ctx context.Context, conv *domain.Conversation) error
	DeleteConversation(ctx context.Context, id string) error

	ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error)
	CreateMessage(ctx context.Context, msg *domain.Message) error
	UpdateMessage(ctx context.Context, msg *domain.Message) error
}
