package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vedran77/replydesk/internal/domain"
	"github.com/vedran77/replydesk/internal/inspector"
	"github.com/vedran77/replydesk/internal/repository"
)

// DeleteConfirmation is the text an operator must type before a conversation is deleted.
const DeleteConfirmation = "DELETE"

var (
	ErrInvalidFilter        = errors.New("invalid conversation filter")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrConfirmationRequired = errors.New("deletion must be confirmed by typing DELETE")
)

// Notifier tells an operator's open dashboards about completed changes.
type Notifier interface {
	NotifyConversationUpdated(operatorID uuid.UUID, conv *domain.Conversation)
	NotifyConversationDeleted(operatorID uuid.UUID, conversationID string)
	NotifyMessageSent(operatorID uuid.UUID, msg *domain.Message)
	NotifyMessageEdited(operatorID uuid.UUID, msg *domain.Message)
}

// View is what the dashboard renders after every inspector call.
type View struct {
	State         inspector.State      `json:"state"`
	Conversations []domain.Conversation `json:"conversations"`
	Selected      *domain.Conversation  `json:"selected"`
	Messages      []domain.Message      `json:"messages"`
	Counts        map[domain.Filter]int `json:"counts"`
	Applied       bool                  `json:"applied"`
}

type session struct {
	mu        sync.Mutex
	inspector *inspector.Inspector
}

// InspectorService keeps one inspector per operator, loaded from the record
// store on first use. Changes are written back and announced to the notifier.
type InspectorService struct {
	repo     repository.ConversationRepository
	logger   *logrus.Logger
	notifier Notifier
	location *time.Location
	now      func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

func NewInspectorService(repo repository.ConversationRepository, logger *logrus.Logger, location *time.Location) *InspectorService {
	if location == nil {
		location = time.UTC
	}
	return &InspectorService{
		repo:     repo,
		logger:   logger,
		location: location,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*session),
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *InspectorService) SetNotifier(n Notifier) {
	s.notifier = n
}

// Forget drops the operator's in-memory session so the next call reloads it.
func (s *InspectorService) Forget(operatorID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, operatorID)
}

func (s *InspectorService) session(ctx context.Context, operatorID uuid.UUID) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[operatorID]; ok {
		return sess, nil
	}

	insp, err := s.load(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	sess := &session{inspector: insp}
	s.sessions[operatorID] = sess

	s.logger.WithFields(logrus.Fields{
		"operator_id":   operatorID,
		"conversations": len(insp.Conversations()),
	}).Debug("Inspector session loaded")

	return sess, nil
}

func (s *InspectorService) load(ctx context.Context, operatorID uuid.UUID) (*inspector.Inspector, error) {
	convs, err := s.repo.ListConversations(ctx, operatorID)
	if err != nil {
		return nil, fmt.Errorf("loading conversations: %w", err)
	}

	list := make([]*domain.Conversation, 0, len(convs))
	threads := make(map[string][]*domain.Message, len(convs))
	for n := range convs {
		c := &convs[n]
		list = append(list, c)

		msgs, err := s.repo.ListMessages(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("loading messages of %s: %w", c.ID, err)
		}
		thread := make([]*domain.Message, 0, len(msgs))
		for m := range msgs {
			thread = append(thread, &msgs[m])
		}
		threads[c.ID] = thread
	}

	return inspector.New(list, threads,
		inspector.WithClock(func() time.Time { return s.now() }),
		inspector.WithLocation(s.location),
	), nil
}

// apply runs fn against the operator's inspector under the session lock and
// renders the resulting view.
func (s *InspectorService) apply(ctx context.Context, operatorID uuid.UUID, fn func(*inspector.Inspector) (bool, error)) (*View, error) {
	sess, err := s.session(ctx, operatorID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	applied, err := fn(sess.inspector)
	if err != nil {
		return nil, err
	}
	view := render(sess.inspector)
	view.Applied = applied
	return view, nil
}

func (s *InspectorService) View(ctx context.Context, operatorID uuid.UUID) (*View, error) {
	return s.apply(ctx, operatorID, func(*inspector.Inspector) (bool, error) {
		return false, nil
	})
}

func (s *InspectorService) SetFilter(ctx context.Context, operatorID uuid.UUID, filter string) (*View, error) {
	f, err := domain.ParseFilter(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFilter, filter)
	}
	return s.apply(ctx, operatorID, func(i *inspector.Inspector) (bool, error) {
		return i.SetFilter(f), nil
	})
}

func (s *InspectorService) Select(ctx context.Context, operatorID uuid.UUID, conversationID string) (*View, error) {
	return s.apply(ctx, operatorID, func(i *inspector.Inspector) (bool, error) {
		return i.Select(conversationID), nil
	})
}

func (s *InspectorService) SetDraft(ctx context.Context, operatorID uuid.UUID, text string) (*View, error) {
	return s.apply(ctx, operatorID, func(i *inspector.Inspector) (bool, error) {
		i.SetDraft(text)
		return true, nil
	})
}

func (s *InspectorService) ToggleStar(ctx context.Context, operatorID uuid.UUID) (*View, error) {
	return s.toggle(ctx, operatorID, "star", (*inspector.Inspector).ToggleStar)
}

func (s *InspectorService) TogglePause(ctx context.Context, operatorID uuid.UUID) (*View, error) {
	return s.toggle(ctx, operatorID, "pause", (*inspector.Inspector).TogglePause)
}

func (s *InspectorService) ToggleArchive(ctx context.Context, operatorID uuid.UUID) (*View, error) {
	return s.toggle(ctx, operatorID, "archive", (*inspector.Inspector).ToggleArchive)
}

func (s *InspectorService) toggle(ctx context.Context, operatorID uuid.UUID, action string, op func(*inspector.Inspector) bool) (*View, error) {
	return s.apply(ctx, operatorID, func(i *inspector.Inspector) (bool, error) {
		if !op(i) {
			s.logger.WithFields(logrus.Fields{
				"operator_id": operatorID,
				"action":      action,
			}).Debug("Ignored disallowed inspector transition")
			return false, nil
		}

		conv := i.Selected()
		if err := s.repo.UpdateConversation(ctx, conv); err != nil {
			return false, fmt.Errorf("saving %s of conversation %s: %w", action, conv.ID, err)
		}
		if s.notifier != nil {
			s.notifier.NotifyConversationUpdated(operatorID, conv)
		}
		return true, nil
	})
}

// DeleteConversation removes a conversation once the operator has typed the
// confirmation text.
func (s *InspectorService) DeleteConversation(ctx context.Context, operatorID uuid.UUID, conversationID, confirmation string) (*View, error) {
	if confirmation != DeleteConfirmation {
		return nil, ErrConfirmationRequired
	}
	return s.apply(ctx, operatorID, func(i *inspector.Inspector) (bool, error) {
		if !i.DeleteConversation(conversationID) {
			return false, ErrConversationNotFound
		}
		if err := s.repo.DeleteConversation(ctx, conversationID); err != nil {
			return false, fmt.Errorf("deleting conversation %s: %w", conversationID, err)
		}

		s.logger.WithFields(logrus.Fields{
			"operator_id":     operatorID,
			"conversation_id": conversationID,
		}).Info("Conversation deleted")

		if s.notifier != nil {
			s.notifier.NotifyConversationDeleted(operatorID, conversationID)
		}
		return true, nil
	})
}

// SendOrEdit saves content into the message being edited, or sends it as a
// new bot reply in the active conversation.
func (s *InspectorService) SendOrEdit(ctx context.Context, operatorID uuid.UUID, content string) (*View, error) {
	return s.apply(ctx, operatorID, func(i *inspector.Inspector) (bool, error) {
		editing := i.State().EditingMessageID != nil

		msg, ok := i.SendOrEdit(content)
		if !ok {
			return false, nil
		}

		if editing {
			if err := s.repo.UpdateMessage(ctx, msg); err != nil {
				return false, fmt.Errorf("saving edit of message %s: %w", msg.ID, err)
			}
			if s.notifier != nil {
				s.notifier.NotifyMessageEdited(operatorID, msg)
			}
			return true, nil
		}

		if err := s.repo.CreateMessage(ctx, msg); err != nil {
			return false, fmt.Errorf("saving message: %w", err)
		}
		if s.notifier != nil {
			s.notifier.NotifyMessageSent(operatorID, msg)
		}
		return true, nil
	})
}

func (s *InspectorService) BeginEdit(ctx context.Context, operatorID uuid.UUID, messageID string) (*View, error) {
	return s.apply(ctx, operatorID, func(i *inspector.Inspector) (bool, error) {
		return i.BeginEdit(messageID), nil
	})
}

func (s *InspectorService) CancelEdit(ctx context.Context, operatorID uuid.UUID) (*View, error) {
	return s.apply(ctx, operatorID, func(i *inspector.Inspector) (bool, error) {
		i.CancelEdit()
		return true, nil
	})
}

func (s *InspectorService) ToggleShowOriginal(ctx context.Context, operatorID uuid.UUID, messageID string) (*View, error) {
	return s.apply(ctx, operatorID, func(i *inspector.Inspector) (bool, error) {
		msg, ok := i.ToggleShowOriginal(messageID)
		if !ok {
			return false, nil
		}
		if err := s.repo.UpdateMessage(ctx, msg); err != nil {
			return false, fmt.Errorf("saving message %s: %w", msg.ID, err)
		}
		return true, nil
	})
}

func render(i *inspector.Inspector) *View {
	visible := i.Visible()
	view := &View{
		State:         i.State(),
		Conversations: make([]domain.Conversation, 0, len(visible)),
		Messages:      []domain.Message{},
		Counts:        i.Counts(),
	}
	for _, c := range visible {
		view.Conversations = append(view.Conversations, *c)
	}

	if sel := i.Selected(); sel != nil {
		cp := *sel
		view.Selected = &cp
		for _, m := range i.Messages(sel.ID) {
			mc := *m
			if m.OriginalContent != nil {
				original := *m.OriginalContent
				mc.OriginalContent = &original
			}
			view.Messages = append(view.Messages, mc)
		}
	}
	return view
}
