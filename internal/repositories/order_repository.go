package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"meatstore-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	DB *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

// Create persists a finalized order. Items go in as a JSONB document;
// the aggregation engine never queries inside them server-side.
// Reports whether a new row was inserted; a conflicting order_id (a
// retried storefront batch) leaves the stored row untouched.
func (r *OrderRepository) Create(ctx context.Context, order *models.OrderRecord) (bool, error) {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return false, fmt.Errorf("failed to encode order items: %w", err)
	}

	query := `
		INSERT INTO orders (order_id, customer_name, customer_phone, items, total, payment_method, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (order_id) DO NOTHING
	`

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	tag, err := r.DB.Exec(ctx, query,
		order.OrderID,
		order.Customer,
		order.Phone,
		itemsJSON,
		order.Total,
		order.PaymentMethod,
		order.CreatedAt,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// List returns all orders, oldest first so summary rows keep a stable
// first-seen ordering across reloads.
func (r *OrderRepository) List(ctx context.Context) ([]models.OrderRecord, error) {
	query := `
		SELECT order_id, COALESCE(customer_name, ''), COALESCE(customer_phone, ''),
		       items, total, COALESCE(payment_method, ''), created_at
		FROM orders
		ORDER BY created_at ASC
	`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.OrderRecord
	for rows.Next() {
		var o models.OrderRecord
		var itemsJSON []byte
		err := rows.Scan(
			&o.OrderID,
			&o.Customer,
			&o.Phone,
			&itemsJSON,
			&o.Total,
			&o.PaymentMethod,
			&o.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			return nil, fmt.Errorf("failed to decode items for order %s: %w", o.OrderID, err)
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}

// Delete removes an order. Returns false when no row matched.
func (r *OrderRepository) Delete(ctx context.Context, orderID string) (bool, error) {
	tag, err := r.DB.Exec(ctx, "DELETE FROM orders WHERE order_id = $1", orderID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// NextOrderNumber draws from the order number sequence for terminal
// sales. Storefront orders keep their upstream IDs.
func (r *OrderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	var next int
	err := r.DB.QueryRow(ctx, "SELECT nextval('order_number_sequence')").Scan(&next)
	if err != nil {
		return "", fmt.Errorf("failed to get next order number: %w", err)
	}

	return fmt.Sprintf("ORD-%06d", next), nil
}
