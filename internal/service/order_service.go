package service

import (
	"errors"
	"strings"
	"time"

	"github.com/vedran77/replydesk/internal/domain"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidOrderState = errors.New("invalid order status")
)

// orderStatuses is the fixed catalogue the chatbot answers order questions from.
var orderStatuses = []domain.OrderStatus{
	{OrderID: "10198", Customer: "David Brown", Email: "david.brown@example.com", Status: domain.OrderRefunded, Total: "$64.00", LastUpdated: time.Date(2024, 5, 27, 9, 30, 0, 0, time.UTC)},
	{OrderID: "10211", Customer: "Emma Wilson", Email: "emma.wilson@example.com", Status: domain.OrderDelivered, Total: "$129.90", Carrier: "UPS", TrackingNo: "1Z999AA10123456784", LastUpdated: time.Date(2024, 5, 28, 15, 2, 0, 0, time.UTC)},
	{OrderID: "10234", Customer: "Sarah Johnson", Email: "sarah.johnson@example.com", Status: domain.OrderShipped, Total: "$89.99", Carrier: "DHL", TrackingNo: "JD014600006281465", LastUpdated: time.Date(2024, 5, 30, 11, 45, 0, 0, time.UTC)},
	{OrderID: "10240", Customer: "Mike Chen", Email: "mike.chen@example.com", Status: domain.OrderPaid, Total: "$142.50", LastUpdated: time.Date(2024, 5, 31, 8, 12, 0, 0, time.UTC)},
	{OrderID: "10245", Customer: "Lisa Garcia", Email: "lisa.garcia@example.com", Status: domain.OrderPending, Total: "$38.00", LastUpdated: time.Date(2024, 5, 31, 19, 5, 0, 0, time.UTC)},
	{OrderID: "10251", Customer: "Tom Anderson", Email: "tom.anderson@example.com", Status: domain.OrderCancelled, Total: "$210.00", LastUpdated: time.Date(2024, 6, 1, 7, 58, 0, 0, time.UTC)},
}

type OrderService struct{}

func NewOrderService() *OrderService {
	return &OrderService{}
}

// List returns every order, or only those in status when it is non-empty.
func (s *OrderService) List(status string) ([]domain.OrderStatus, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		out := make([]domain.OrderStatus, len(orderStatuses))
		copy(out, orderStatuses)
		return out, nil
	}

	state := domain.OrderState(status)
	if !validOrderState(state) {
		return nil, ErrInvalidOrderState
	}

	out := []domain.OrderStatus{}
	for _, o := range orderStatuses {
		if o.Status == state {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *OrderService) Get(orderID string) (*domain.OrderStatus, error) {
	orderID = strings.TrimPrefix(strings.TrimSpace(orderID), "#")
	for _, o := range orderStatuses {
		if o.OrderID == orderID {
			cp := o
			return &cp, nil
		}
	}
	return nil, ErrOrderNotFound
}

func validOrderState(s domain.OrderState) bool {
	switch s {
	case domain.OrderPending, domain.OrderPaid, domain.OrderShipped,
		domain.OrderDelivered, domain.OrderCancelled, domain.OrderRefunded:
		return true
	}
	return false
}
