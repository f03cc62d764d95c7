package ws

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vedran77/replydesk/internal/domain"
)

// HubNotifier implements service.Notifier using the WebSocket Hub.
type HubNotifier struct {
	hub    *Hub
	logger *logrus.Logger
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub, logger: hub.logger}
}

func (n *HubNotifier) NotifyConversationUpdated(operatorID uuid.UUID, conv *domain.Conversation) {
	n.send(operatorID, EventTypeConversationUpdated, conv.ID, ConversationPayload{Conversation: *conv})
}

func (n *HubNotifier) NotifyConversationDeleted(operatorID uuid.UUID, conversationID string) {
	n.send(operatorID, EventTypeConversationDeleted, conversationID, ConversationDeletedPayload{ID: conversationID})
}

func (n *HubNotifier) NotifyMessageSent(operatorID uuid.UUID, msg *domain.Message) {
	n.send(operatorID, EventTypeMessageNew, msg.ConversationID, MessagePayload{Message: *msg})
}

func (n *HubNotifier) NotifyMessageEdited(operatorID uuid.UUID, msg *domain.Message) {
	n.send(operatorID, EventTypeMessageEdited, msg.ConversationID, MessagePayload{Message: *msg})
}

func (n *HubNotifier) send(operatorID uuid.UUID, eventType, conversationID string, payload any) {
	evt, err := NewEvent(eventType, &conversationID, payload)
	if err != nil {
		n.logger.WithError(err).WithField("event", eventType).Warn("ws notifier: marshal error")
		return
	}
	n.hub.BroadcastToOperator(operatorID, evt)
}
