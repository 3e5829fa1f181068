package product

import (
	"context"
	"database/sql"
	"fmt"
)

// Queryer is satisfied by both *sql.DB and *sql.Tx, so stock writes can
// participate in an enclosing transaction and share its rollback scope.
type Queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type Repository interface {
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	CheckAvailability(ctx context.Context, productID string, quantity int) (StockCheck, error)
	DecrementStock(ctx context.Context, q Queryer, productID string, quantity int) (int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	query := `
		SELECT id, name, price, stock, status, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var p Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.Stock, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) List(ctx context.Context) ([]Product, error) {
	query := `
		SELECT id, name, price, stock, status, created_at, updated_at
		FROM products
		WHERE status != $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, StatusOutOfStock)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Price, &p.Stock, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

// CheckAvailability reports whether quantity units can be taken from stock.
// A missing product yields Available=false, never an error.
func (r *repository) CheckAvailability(ctx context.Context, productID string, quantity int) (StockCheck, error) {
	var name string
	var stock int

	err := r.db.QueryRowContext(ctx,
		`SELECT name, stock FROM products WHERE id = $1`,
		productID,
	).Scan(&name, &stock)

	if err == sql.ErrNoRows {
		return StockCheck{
			Available: false,
			Message:   fmt.Sprintf("product %s not found", productID),
		}, nil
	}
	if err != nil {
		return StockCheck{}, err
	}

	if stock < quantity {
		return StockCheck{
			Available:    false,
			CurrentStock: stock,
			ProductName:  name,
			Message: fmt.Sprintf(
				"insufficient stock for %s: requested %d, available %d",
				name, quantity, stock,
			),
		}, nil
	}

	return StockCheck{
		Available:    true,
		CurrentStock: stock,
		ProductName:  name,
	}, nil
}

// DecrementStock locks the product row, validates the requested quantity and
// writes the new stock together with its recomputed status in a single UPDATE.
// There is no intermediate state where stock and status disagree.
func (r *repository) DecrementStock(ctx context.Context, q Queryer, productID string, quantity int) (int, error) {
	var name string
	var stock int

	err := q.QueryRowContext(ctx,
		`SELECT name, stock FROM products WHERE id = $1 FOR UPDATE`,
		productID,
	).Scan(&name, &stock)

	if err == sql.ErrNoRows {
		return 0, ErrProductNotFound
	}
	if err != nil {
		return 0, err
	}

	if stock < quantity {
		return 0, &InsufficientStockError{
			Product:   name,
			Available: stock,
			Requested: quantity,
		}
	}

	newStock := stock - quantity
	_, err = q.ExecContext(ctx,
		`UPDATE products SET stock = $2, status = $3, updated_at = NOW() WHERE id = $1`,
		productID, newStock, StatusForStock(newStock),
	)
	if err != nil {
		return 0, err
	}

	return newStock, nil
}
