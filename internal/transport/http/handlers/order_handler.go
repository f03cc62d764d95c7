package handlers

import (
	"errors"
	"net/http"

	"github.com/vedran77/replydesk/internal/service"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) ListStatuses(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.List(r.URL.Query().Get("status"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidOrderState) {
			writeError(w, http.StatusBadRequest, "INVALID_STATUS", "Unknown order status")
			return
		}
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (h *OrderHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.Get(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, order)
}
