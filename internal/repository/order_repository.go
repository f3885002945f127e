package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"storeforge/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound = errors.New("store order not found")
)

// OrderRepository defines the interface for store order data access
type OrderRepository interface {
	Create(ctx context.Context, order *domain.StoreOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.StoreOrder, error)
	List(ctx context.Context, status domain.OrderStatus, page, pageSize int) ([]*domain.StoreOrder, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
	AttachCredentials(ctx context.Context, id uuid.UUID, shopifyDomain, accessToken string) error
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts a new store order
func (r *orderRepository) Create(ctx context.Context, order *domain.StoreOrder) error {
	query := `
		INSERT INTO store_orders (id, customer_email, store_name, status, shopify_domain, shopify_access_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		order.ID,
		order.CustomerEmail,
		order.StoreName,
		order.Status,
		order.ShopifyDomain,
		order.ShopifyAccessToken,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create store order: %w", err)
	}

	return nil
}

// FindByID retrieves a store order by ID
func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.StoreOrder, error) {
	query := `
		SELECT id, customer_email, store_name, status, shopify_domain, shopify_access_token, created_at, updated_at
		FROM store_orders
		WHERE id = $1
	`

	order := &domain.StoreOrder{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.CustomerEmail,
		&order.StoreName,
		&order.Status,
		&order.ShopifyDomain,
		&order.ShopifyAccessToken,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find store order by ID: %w", err)
	}

	return order, nil
}

// List retrieves store orders with optional status filtering, newest
// first.
func (r *orderRepository) List(ctx context.Context, status domain.OrderStatus, page, pageSize int) ([]*domain.StoreOrder, int, error) {
	whereClause := ""
	args := []interface{}{}
	argIndex := 1

	if status != "" {
		whereClause = fmt.Sprintf("WHERE status = $%d", argIndex)
		args = append(args, status)
		argIndex++
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM store_orders %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count store orders: %w", err)
	}

	offset := (page - 1) * pageSize

	query := fmt.Sprintf(`
		SELECT id, customer_email, store_name, status, shopify_domain, shopify_access_token, created_at, updated_at
		FROM store_orders
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)

	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list store orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.StoreOrder{}
	for rows.Next() {
		order := &domain.StoreOrder{}
		err := rows.Scan(
			&order.ID,
			&order.CustomerEmail,
			&order.StoreName,
			&order.Status,
			&order.ShopifyDomain,
			&order.ShopifyAccessToken,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan store order: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating store orders: %w", err)
	}

	return orders, total, nil
}

// UpdateStatus moves an order to a new fulfillment status
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	query := `UPDATE store_orders SET status = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update store order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// AttachCredentials stores the destination shop credentials on an order
func (r *orderRepository) AttachCredentials(ctx context.Context, id uuid.UUID, shopifyDomain, accessToken string) error {
	query := `UPDATE store_orders SET shopify_domain = $2, shopify_access_token = $3, updated_at = $4 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, shopifyDomain, accessToken, time.Now())
	if err != nil {
		return fmt.Errorf("failed to attach shopify credentials: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}
