package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"meridian-be/internal/product"

	"github.com/lib/pq"
)

// CommitResult is the tagged outcome of the transactional create. A lost
// duplicate race is a first-class branch, not an error.
type CommitResult int

const (
	Committed CommitResult = iota
	ConflictExisting
)

type Repository interface {
	// FindByPaymentReference returns (nil, nil) when no order exists for ref.
	FindByPaymentReference(ctx context.Context, ref string) (*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	CreateFromPayment(ctx context.Context, o *Order) (CommitResult, error)
}

type repository struct {
	db    *sql.DB
	stock product.Repository
}

func NewRepository(db *sql.DB, stock product.Repository) Repository {
	return &repository{db: db, stock: stock}
}

const uniqueViolation = "23505"

func isPaymentRefConflict(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}

// CreateFromPayment inserts the order with its item snapshots and decrements
// stock for every line inside one transaction. Any stock shortage rolls the
// whole attempt back; a unique violation on payment_reference means a
// concurrent attempt won the race and is reported as ConflictExisting.
func (r *repository) CreateFromPayment(ctx context.Context, o *Order) (CommitResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (
			id, order_number, payment_reference,
			total, payment_status, payment_method,
			status, customer_id, customer_email, customer_name, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		o.ID,
		o.OrderNumber,
		o.PaymentReference,
		o.Total,
		o.PaymentStatus,
		o.PaymentMethod,
		o.Status,
		o.CustomerID,
		o.CustomerEmail,
		o.CustomerName,
		o.CreatedAt,
	)
	if err != nil {
		if isPaymentRefConflict(err) {
			return ConflictExisting, nil
		}
		return 0, err
	}

	for i := range o.Items {
		item := &o.Items[i]

		// Locked re-check against the live row. The pre-transaction probe is
		// only an optimization; this is what enforces correctness under races.
		if _, err := r.stock.DecrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
			return 0, err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (
				id, order_id, product_id, quantity, price
			) VALUES ($1,$2,$3,$4,$5)
		`,
			item.ID,
			o.ID,
			item.ProductID,
			item.Quantity,
			item.Price,
		)
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		if isPaymentRefConflict(err) {
			return ConflictExisting, nil
		}
		return 0, fmt.Errorf("failed to commit order: %w", err)
	}

	return Committed, nil
}

func (r *repository) FindByPaymentReference(ctx context.Context, ref string) (*Order, error) {
	o, err := r.scanOrder(ctx, `WHERE o.payment_reference = $1`, ref)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	o, err := r.scanOrder(ctx, `WHERE o.id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) scanOrder(ctx context.Context, where string, arg any) (*Order, error) {
	query := `
		SELECT o.id, o.order_number, o.payment_reference,
		       o.total, o.payment_status, o.payment_method,
		       o.status, o.customer_id, o.customer_email, o.customer_name, o.created_at
		FROM orders o ` + where

	var o Order
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&o.ID, &o.OrderNumber, &o.PaymentReference,
		&o.Total, &o.PaymentStatus, &o.PaymentMethod,
		&o.Status, &o.CustomerID, &o.CustomerEmail, &o.CustomerName, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return &o, nil
}

func (r *repository) loadItems(ctx context.Context, orderID string) ([]OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT i.id, i.order_id, i.product_id, p.name, i.quantity, i.price
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id = $1
		ORDER BY i.id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.Price,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, rows.Err()
}
