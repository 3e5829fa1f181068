package order

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentFailed    PaymentStatus = "failed"
)

type FulfillmentStatus string

const (
	StatusProcessing FulfillmentStatus = "Processing"
	StatusShipped    FulfillmentStatus = "Shipped"
	StatusDelivered  FulfillmentStatus = "Delivered"
	StatusCompleted  FulfillmentStatus = "Completed"
	StatusCancelled  FulfillmentStatus = "Cancelled"
)

type Order struct {
	ID               string            `json:"id"`
	OrderNumber      string            `json:"order_number"`
	PaymentReference string            `json:"payment_reference"`
	Total            float64           `json:"total"`
	PaymentStatus    PaymentStatus     `json:"payment_status"`
	PaymentMethod    string            `json:"payment_method"`
	Status           FulfillmentStatus `json:"status"`
	CustomerID       *string           `json:"customer_id,omitempty"`
	CustomerEmail    *string           `json:"customer_email,omitempty"`
	CustomerName     *string           `json:"customer_name,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	Items            []OrderItem       `json:"items"`
}

// OrderItem snapshots quantity and price at fulfillment time; it never tracks
// later catalog price changes.
type OrderItem struct {
	ID          string  `json:"id"`
	OrderID     string  `json:"order_id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// PaymentInput is the verified payment confirmation handed in by the payment
// integration layer. The core trusts it is already authenticated.
type PaymentInput struct {
	PaymentReference string
	Total            float64
	Items            []PaymentItem
	CustomerID       *string
	CustomerEmail    *string
	CustomerName     *string
}

type PaymentItem struct {
	ProductID string
	Quantity  int
	Price     float64
}
