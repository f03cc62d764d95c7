package handlers

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vedran77/replydesk/internal/service"
	"github.com/vedran77/replydesk/internal/transport/http/middleware"
	"github.com/vedran77/replydesk/pkg/validator"
)

type InspectorHandler struct {
	inspectorService *service.InspectorService
	logger           *logrus.Logger
}

func NewInspectorHandler(inspectorService *service.InspectorService, logger *logrus.Logger) *InspectorHandler {
	return &InspectorHandler{inspectorService: inspectorService, logger: logger}
}

type filterInput struct {
	Filter string `json:"filter"`
}

type selectionInput struct {
	ConversationID string `json:"conversation_id"`
}

type draftInput struct {
	Text string `json:"text"`
}

type messageInput struct {
	Content string `json:"content"`
}

type deleteInput struct {
	Confirmation string `json:"confirmation"`
}

func (h *InspectorHandler) View(w http.ResponseWriter, r *http.Request) {
	view, err := h.inspectorService.View(r.Context(), middleware.GetOperatorID(r.Context()))
	h.respond(w, view, err, "view")
}

func (h *InspectorHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	var input filterInput
	if !decodeJSON(w, r, &input) {
		return
	}
	if errs := validator.ValidateFilter(input.Filter); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	view, err := h.inspectorService.SetFilter(r.Context(), middleware.GetOperatorID(r.Context()), input.Filter)
	h.respond(w, view, err, "set filter")
}

func (h *InspectorHandler) Select(w http.ResponseWriter, r *http.Request) {
	var input selectionInput
	if !decodeJSON(w, r, &input) {
		return
	}
	if input.ConversationID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_CONVERSATION_ID", "conversation_id is required")
		return
	}

	view, err := h.inspectorService.Select(r.Context(), middleware.GetOperatorID(r.Context()), input.ConversationID)
	h.respond(w, view, err, "select conversation")
}

func (h *InspectorHandler) SetDraft(w http.ResponseWriter, r *http.Request) {
	var input draftInput
	if !decodeJSON(w, r, &input) {
		return
	}
	if errs := validator.ValidateDraft(input.Text); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	view, err := h.inspectorService.SetDraft(r.Context(), middleware.GetOperatorID(r.Context()), input.Text)
	h.respond(w, view, err, "set draft")
}

func (h *InspectorHandler) ToggleStar(w http.ResponseWriter, r *http.Request) {
	view, err := h.inspectorService.ToggleStar(r.Context(), middleware.GetOperatorID(r.Context()))
	h.respond(w, view, err, "toggle star")
}

func (h *InspectorHandler) TogglePause(w http.ResponseWriter, r *http.Request) {
	view, err := h.inspectorService.TogglePause(r.Context(), middleware.GetOperatorID(r.Context()))
	h.respond(w, view, err, "toggle pause")
}

func (h *InspectorHandler) ToggleArchive(w http.ResponseWriter, r *http.Request) {
	view, err := h.inspectorService.ToggleArchive(r.Context(), middleware.GetOperatorID(r.Context()))
	h.respond(w, view, err, "toggle archive")
}

// Send posts a new bot reply, or saves the edit in progress.
func (h *InspectorHandler) Send(w http.ResponseWriter, r *http.Request) {
	var input messageInput
	if !decodeJSON(w, r, &input) {
		return
	}
	if errs := validator.ValidateMessage(input.Content); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	view, err := h.inspectorService.SendOrEdit(r.Context(), middleware.GetOperatorID(r.Context()), input.Content)
	h.respond(w, view, err, "send message")
}

func (h *InspectorHandler) BeginEdit(w http.ResponseWriter, r *http.Request) {
	view, err := h.inspectorService.BeginEdit(r.Context(), middleware.GetOperatorID(r.Context()), r.PathValue("id"))
	h.respond(w, view, err, "begin edit")
}

func (h *InspectorHandler) CancelEdit(w http.ResponseWriter, r *http.Request) {
	view, err := h.inspectorService.CancelEdit(r.Context(), middleware.GetOperatorID(r.Context()))
	h.respond(w, view, err, "cancel edit")
}

func (h *InspectorHandler) ToggleOriginal(w http.ResponseWriter, r *http.Request) {
	view, err := h.inspectorService.ToggleShowOriginal(r.Context(), middleware.GetOperatorID(r.Context()), r.PathValue("id"))
	h.respond(w, view, err, "toggle original")
}

func (h *InspectorHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	var input deleteInput
	if !decodeJSON(w, r, &input) {
		return
	}
	if errs := validator.ValidateDeleteConfirmation(input.Confirmation, service.DeleteConfirmation); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	view, err := h.inspectorService.DeleteConversation(r.Context(), middleware.GetOperatorID(r.Context()), r.PathValue("id"), input.Confirmation)
	h.respond(w, view, err, "delete conversation")
}

func (h *InspectorHandler) respond(w http.ResponseWriter, view *service.View, err error, action string) {
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidFilter):
			writeError(w, http.StatusBadRequest, "INVALID_FILTER", "Unknown conversation filter")
		case errors.Is(err, service.ErrConfirmationRequired):
			writeError(w, http.StatusBadRequest, "CONFIRMATION_REQUIRED", "Type DELETE to confirm")
		case errors.Is(err, service.ErrConversationNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Conversation not found")
		default:
			h.logger.WithError(err).WithField("action", action).Error("Inspector request failed")
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, view)
}
