// Package memory keeps conversations, messages and operators in process
// memory. It backs STORE=memory and the service tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/vedran77/replydesk/internal/domain"
	"github.com/vedran77/replydesk/internal/repository"
)

var _ repository.ConversationRepository = (*ConversationRepo)(nil)

type ConversationRepo struct {
	mu            sync.RWMutex
	conversations []*domain.Conversation
	messages      map[string][]*domain.Message
}

func NewConversationRepo() *ConversationRepo {
	return &ConversationRepo{
		messages: make(map[string][]*domain.Message),
	}
}

func (r *ConversationRepo) ListConversations(ctx context.Context, ownerID uuid.UUID) ([]domain.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var convs []domain.Conversation
	for _, c := range r.conversations {
		if c.OwnerID == ownerID {
			convs = append(convs, *c)
		}
	}
	return convs, nil
}

func (r *ConversationRepo) GetConversation(ctx context.Context, id string) (*domain.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, c := r.find(id); c != nil {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *ConversationRepo) CreateConversation(ctx context.Context, conv *domain.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, c := r.find(conv.ID); c != nil {
		return repository.ErrDuplicate
	}
	cp := *conv
	r.conversations = append(r.conversations, &cp)
	return nil
}

func (r *ConversationRepo) UpdateConversation(ctx context.Context, conv *domain.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, c := r.find(conv.ID)
	if c == nil {
		return repository.ErrNotFound
	}
	c.Unread = conv.Unread
	c.Starred = conv.Starred
	c.Paused = conv.Paused
	c.Archived = conv.Archived
	return nil
}

func (r *ConversationRepo) DeleteConversation(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, c := r.find(id)
	if c == nil {
		return nil
	}
	r.conversations = append(r.conversations[:idx], r.conversations[idx+1:]...)
	delete(r.messages, id)
	return nil
}

func (r *ConversationRepo) ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var messages []domain.Message
	for _, m := range r.messages[conversationID] {
		cp := *m
		if m.OriginalContent != nil {
			original := *m.OriginalContent
			cp.OriginalContent = &original
		}
		messages = append(messages, cp)
	}
	return messages, nil
}

func (r *ConversationRepo) CreateMessage(ctx context.Context, msg *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, c := r.find(msg.ConversationID); c == nil {
		return repository.ErrNotFound
	}
	if r.findMessage(msg.ConversationID, msg.ID) != nil {
		return repository.ErrDuplicate
	}
	cp := *msg
	r.messages[msg.ConversationID] = append(r.messages[msg.ConversationID], &cp)
	return nil
}

func (r *ConversationRepo) UpdateMessage(ctx context.Context, msg *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := r.findMessage(msg.ConversationID, msg.ID)
	if m == nil {
		return repository.ErrNotFound
	}
	m.Content = msg.Content
	m.ShowingOriginal = msg.ShowingOriginal
	if m.OriginalContent == nil && msg.OriginalContent != nil {
		original := *msg.OriginalContent
		m.OriginalContent = &original
	}
	return nil
}

func (r *ConversationRepo) find(id string) (int, *domain.Conversation) {
	for i, c := range r.conversations {
		if c.ID == id {
			return i, c
		}
	}
	return -1, nil
}

func (r *ConversationRepo) findMessage(conversationID, id string) *domain.Message {
	for _, m := range r.messages[conversationID] {
		if m.ID == id {
			return m
		}
	}
	return nil
}
