package product

import "time"

type StockStatus string

const (
	StatusInStock    StockStatus = "In Stock"
	StatusLowStock   StockStatus = "Low Stock"
	StatusOutOfStock StockStatus = "Out of Stock"
)

const lowStockThreshold = 10

// StatusForStock derives the stock status from a stock count. Stock and status
// must never be written independently; every stock write goes through this.
func StatusForStock(stock int) StockStatus {
	switch {
	case stock <= 0:
		return StatusOutOfStock
	case stock <= lowStockThreshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

type Product struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Price     float64     `json:"price"`
	Stock     int         `json:"stock"`
	Status    StockStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// StockCheck is the soft result of an availability probe. A missing product is
// reported as unavailable, not as an error, so callers can aggregate checks
// across several line items before deciding to abort.
type StockCheck struct {
	Available    bool   `json:"available"`
	CurrentStock int    `json:"current_stock"`
	ProductName  string `json:"product_name,omitempty"`
	Message      string `json:"message,omitempty"`
}
