package domain

import "time"

type OrderState string

const (
	OrderPending   OrderState = "pending"
	OrderPaid      OrderState = "paid"
	OrderShipped   OrderState = "shipped"
	OrderDelivered OrderState = "delivered"
	OrderCancelled OrderState = "cancelled"
	OrderRefunded  OrderState = "refunded"
)

// OrderStatus is one row of the e-commerce order lookup the chatbot answers from.
type OrderStatus struct {
	OrderID     string     `json:"order_id"`
	Customer    string     `json:"customer"`
	Email       string     `json:"email"`
	Status      OrderState `json:"status"`
	Total       string     `json:"total"`
	Carrier     string     `json:"carrier,omitempty"`
	TrackingNo  string     `json:"tracking_number,omitempty"`
	LastUpdated time.Time  `json:"last_updated"`
}
