package coupon

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, c *Coupon) (*Coupon, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Coupon, error)
	GetByCode(ctx context.Context, code string) (*Coupon, error)
	List(ctx context.Context, offset, limit int) ([]*Coupon, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, c *Coupon) (*Coupon, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const couponColumns = `id, code, discount_type, discount, expiration_date, created_at, updated_at`

func scanCoupon(row pgx.Row) (*Coupon, error) {
	var c Coupon
	err := row.Scan(
		&c.ID,
		&c.Code,
		&c.DiscountType,
		&c.Discount,
		&c.ExpirationDate,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepository) Create(ctx context.Context, c *Coupon) (*Coupon, error) {
	query := `
    INSERT INTO coupons (code, discount_type, discount, expiration_date)
    VALUES ($1, $2, $3, $4)
    RETURNING ` + couponColumns

	created, err := scanCoupon(r.pool.QueryRow(ctx, query,
		c.Code, c.DiscountType, c.Discount, c.ExpirationDate))
	if err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Coupon, error) {
	query := `
    SELECT ` + couponColumns + `
    FROM coupons
    WHERE id = $1 AND deleted_at IS NULL
  `

	c, err := scanCoupon(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get coupon by id: %w", err)
	}

	return c, nil
}

func (r *postgresRepository) GetByCode(ctx context.Context, code string) (*Coupon, error) {
	query := `
    SELECT ` + couponColumns + `
    FROM coupons
    WHERE code = $1 AND deleted_at IS NULL
  `

	c, err := scanCoupon(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get coupon by code: %w", err)
	}

	return c, nil
}

func (r *postgresRepository) List(ctx context.Context, offset, limit int) ([]*Coupon, error) {
	query := `
    SELECT ` + couponColumns + `
    FROM coupons
    WHERE deleted_at IS NULL
    ORDER BY expiration_date DESC
    LIMIT $1 OFFSET $2
  `

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	defer rows.Close()

	var coupons []*Coupon
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan coupon row: %w", err)
		}
		coupons = append(coupons, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating coupon rows: %w", err)
	}

	return coupons, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM coupons WHERE deleted_at IS NULL`

	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count coupons: %w", err)
	}

	return count, nil
}

func (r *postgresRepository) Update(ctx context.Context, c *Coupon) (*Coupon, error) {
	query := `
    UPDATE coupons
    SET code = $1, discount_type = $2, discount = $3, expiration_date = $4, updated_at = NOW()
    WHERE id = $5 AND deleted_at IS NULL
    RETURNING ` + couponColumns

	updated, err := scanCoupon(r.pool.QueryRow(ctx, query,
		c.Code, c.DiscountType, c.Discount, c.ExpirationDate, c.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to update coupon: %w", err)
	}

	return updated, nil
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `
    UPDATE coupons
    SET deleted_at = NOW(), updated_at = NOW()
    WHERE id = $1 AND deleted_at IS NULL
  `

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCouponNotFound
	}

	return nil
}
