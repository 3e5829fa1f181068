package notify

import (
	"context"
	"time"
)

// LineItem is one snapshotted order line as it appears in a notification.
type LineItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// OrderNotice is the notification view of a fulfilled order.
type OrderNotice struct {
	OrderNumber      string     `json:"order_number"`
	PaymentReference string     `json:"payment_reference"`
	Total            float64    `json:"total"`
	CustomerName     string     `json:"customer_name,omitempty"`
	CustomerEmail    string     `json:"customer_email,omitempty"`
	Items            []LineItem `json:"items"`
	PlacedAt         time.Time  `json:"placed_at"`
}

// Dispatcher sends post-commit notifications. Both sends are at-most-once and
// best-effort: callers log a returned error and move on, the fulfillment
// result is already durable by the time either is invoked.
type Dispatcher interface {
	NotifyCustomer(ctx context.Context, notice OrderNotice) error
	NotifyOperator(ctx context.Context, notice OrderNotice) error
}
