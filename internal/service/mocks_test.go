package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/vedran77/replydesk/internal/domain"
	"github.com/vedran77/replydesk/internal/repository"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyConversationUpdated(operatorID uuid.UUID, conv *domain.Conversation) {
	m.Called(operatorID, conv)
}

func (m *mockNotifier) NotifyConversationDeleted(operatorID uuid.UUID, conversationID string) {
	m.Called(operatorID, conversationID)
}

func (m *mockNotifier) NotifyMessageSent(operatorID uuid.UUID, msg *domain.Message) {
	m.Called(operatorID, msg)
}

func (m *mockNotifier) NotifyMessageEdited(operatorID uuid.UUID, msg *domain.Message) {
	m.Called(operatorID, msg)
}

// failingRepo wraps a real store and fails the write methods on demand.
type failingRepo struct {
	repository.ConversationRepository
	err error
}

func (r *failingRepo) UpdateConversation(ctx context.Context, conv *domain.Conversation) error {
	return r.err
}

func (r *failingRepo) CreateMessage(ctx context.Context, msg *domain.Message) error {
	return r.err
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
