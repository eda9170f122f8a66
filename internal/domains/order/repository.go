package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pharmacy-backend/pkg/database"
)

type ListFilter struct {
	UserID   *uuid.UUID
	BranchID *uuid.UUID
	Status   *string
}

type Repository interface {
	Create(ctx context.Context, o *Order) (*Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context, filter ListFilter, offset, limit int) ([]*Order, error)
	ListAll(ctx context.Context, filter ListFilter) ([]*Order, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Order, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const orderColumns = `id, user_id, branch_id, status, total, created_at, updated_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.BranchID,
		&o.Status,
		&o.Total,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create writes the order and its detail lines in one transaction.
func (r *postgresRepository) Create(ctx context.Context, o *Order) (*Order, error) {
	id, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (uuid.UUID, error) {
		query := `
      INSERT INTO orders (user_id, branch_id, status, total)
      VALUES ($1, $2, $3, $4)
      RETURNING id
    `

		var orderID uuid.UUID
		if err := tx.QueryRow(ctx, query, o.UserID, o.BranchID, o.Status, o.Total).Scan(&orderID); err != nil {
			return uuid.Nil, fmt.Errorf("failed to create order: %w", err)
		}

		for _, d := range o.Details {
			if _, err := tx.Exec(ctx, `
        INSERT INTO order_details (order_id, product_presentation_id, quantity, unit_price, subtotal)
        VALUES ($1, $2, $3, $4, $5)
      `, orderID, d.ProductPresentationID, d.Quantity, d.UnitPrice, d.Subtotal); err != nil {
				return uuid.Nil, fmt.Errorf("failed to insert order detail: %w", err)
			}
		}

		return orderID, nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	query := `
    SELECT ` + orderColumns + `
    FROM orders
    WHERE id = $1 AND deleted_at IS NULL
  `

	o, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order by id: %w", err)
	}

	if err := r.loadDetails(ctx, []*Order{o}); err != nil {
		return nil, err
	}

	return o, nil
}

func (r *postgresRepository) List(ctx context.Context, filter ListFilter, offset, limit int) ([]*Order, error) {
	query := `
    SELECT ` + orderColumns + `
    FROM orders
    WHERE deleted_at IS NULL
      AND ($1::uuid IS NULL OR user_id = $1)
      AND ($2::uuid IS NULL OR branch_id = $2)
      AND ($3::text IS NULL OR status = $3)
    ORDER BY created_at DESC
    LIMIT $4 OFFSET $5
  `

	rows, err := r.pool.Query(ctx, query, filter.UserID, filter.BranchID, filter.Status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadDetails(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// ListAll returns every matching order, newest first. Used by the
// admin export.
func (r *postgresRepository) ListAll(ctx context.Context, filter ListFilter) ([]*Order, error) {
	query := `
    SELECT ` + orderColumns + `
    FROM orders
    WHERE deleted_at IS NULL
      AND ($1::uuid IS NULL OR user_id = $1)
      AND ($2::uuid IS NULL OR branch_id = $2)
      AND ($3::text IS NULL OR status = $3)
    ORDER BY created_at DESC
  `

	rows, err := r.pool.Query(ctx, query, filter.UserID, filter.BranchID, filter.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadDetails(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func collectOrders(rows pgx.Rows) ([]*Order, error) {
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", err)
	}

	return orders, nil
}

func (r *postgresRepository) loadDetails(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(orders))
	byID := make(map[uuid.UUID]*Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
	}

	rows, err := r.pool.Query(ctx, `
    SELECT id, order_id, product_presentation_id, quantity, unit_price, subtotal
    FROM order_details
    WHERE order_id = ANY($1)
  `, ids)
	if err != nil {
		return fmt.Errorf("failed to load order details: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d OrderDetail
		if err := rows.Scan(&d.ID, &d.OrderID, &d.ProductPresentationID, &d.Quantity, &d.UnitPrice, &d.Subtotal); err != nil {
			return fmt.Errorf("failed to scan order detail row: %w", err)
		}
		byID[d.OrderID].Details = append(byID[d.OrderID].Details, d)
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating order detail rows: %w", err)
	}

	return nil
}

func (r *postgresRepository) Count(ctx context.Context, filter ListFilter) (int, error) {
	query := `
    SELECT COUNT(*) FROM orders
    WHERE deleted_at IS NULL
      AND ($1::uuid IS NULL OR user_id = $1)
      AND ($2::uuid IS NULL OR branch_id = $2)
      AND ($3::text IS NULL OR status = $3)
  `

	var count int
	if err := r.pool.QueryRow(ctx, query, filter.UserID, filter.BranchID, filter.Status).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return count, nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Order, error) {
	query := `
    UPDATE orders
    SET status = $1, updated_at = NOW()
    WHERE id = $2 AND deleted_at IS NULL
  `

	result, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, ErrOrderNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `
    UPDATE orders
    SET deleted_at = NOW(), updated_at = NOW()
    WHERE id = $1 AND deleted_at IS NULL
  `

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	return nil
}
