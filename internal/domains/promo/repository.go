package promo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pharmacy-backend/pkg/database"
)

type Repository interface {
	Create(ctx context.Context, p *Promo) (*Promo, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Promo, error)
	List(ctx context.Context, offset, limit int) ([]*Promo, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, p *Promo) (*Promo, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const promoColumns = `id, name, description, discount_percent, start_at, expired_at, created_at, updated_at`

func scanPromo(row pgx.Row) (*Promo, error) {
	var p Promo
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.DiscountPercent,
		&p.StartAt,
		&p.ExpiredAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepository) Create(ctx context.Context, p *Promo) (*Promo, error) {
	id, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (uuid.UUID, error) {
		query := `
      INSERT INTO promos (name, description, discount_percent, start_at, expired_at)
      VALUES ($1, $2, $3, $4, $5)
      RETURNING id
    `

		var promoID uuid.UUID
		err := tx.QueryRow(ctx, query,
			p.Name, p.Description, p.DiscountPercent, p.StartAt, p.ExpiredAt).Scan(&promoID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to create promo: %w", err)
		}

		if err := insertPromoProducts(ctx, tx, promoID, p.ProductIDs); err != nil {
			return uuid.Nil, err
		}

		return promoID, nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func insertPromoProducts(ctx context.Context, tx pgx.Tx, promoID uuid.UUID, productIDs []uuid.UUID) error {
	for _, productID := range productIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO promo_products (promo_id, product_id) VALUES ($1, $2)`,
			promoID, productID); err != nil {
			return fmt.Errorf("failed to insert promo product link: %w", err)
		}
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Promo, error) {
	query := `
    SELECT ` + promoColumns + `
    FROM promos
    WHERE id = $1 AND deleted_at IS NULL
  `

	p, err := scanPromo(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get promo by id: %w", err)
	}

	if err := r.loadProducts(ctx, []*Promo{p}); err != nil {
		return nil, err
	}

	return p, nil
}

func (r *postgresRepository) List(ctx context.Context, offset, limit int) ([]*Promo, error) {
	query := `
    SELECT ` + promoColumns + `
    FROM promos
    WHERE deleted_at IS NULL
    ORDER BY start_at DESC
    LIMIT $1 OFFSET $2
  `

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list promos: %w", err)
	}
	defer rows.Close()

	var promos []*Promo
	for rows.Next() {
		p, err := scanPromo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan promo row: %w", err)
		}
		promos = append(promos, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating promo rows: %w", err)
	}

	if err := r.loadProducts(ctx, promos); err != nil {
		return nil, err
	}

	return promos, nil
}

func (r *postgresRepository) loadProducts(ctx context.Context, promos []*Promo) error {
	if len(promos) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(promos))
	byID := make(map[uuid.UUID]*Promo, len(promos))
	for i, p := range promos {
		ids[i] = p.ID
		byID[p.ID] = p
	}

	rows, err := r.pool.Query(ctx, `
    SELECT promo_id, product_id
    FROM promo_products
    WHERE promo_id = ANY($1)
  `, ids)
	if err != nil {
		return fmt.Errorf("failed to load promo products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var promoID, productID uuid.UUID
		if err := rows.Scan(&promoID, &productID); err != nil {
			return fmt.Errorf("failed to scan promo product row: %w", err)
		}
		byID[promoID].ProductIDs = append(byID[promoID].ProductIDs, productID)
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating promo product rows: %w", err)
	}

	return nil
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM promos WHERE deleted_at IS NULL`

	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count promos: %w", err)
	}

	return count, nil
}

func (r *postgresRepository) Update(ctx context.Context, p *Promo) (*Promo, error) {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
      UPDATE promos
      SET name = $1, description = $2, discount_percent = $3, start_at = $4,
          expired_at = $5, updated_at = NOW()
      WHERE id = $6 AND deleted_at IS NULL
    `

		tag, err := tx.Exec(ctx, query,
			p.Name, p.Description, p.DiscountPercent, p.StartAt, p.ExpiredAt, p.ID)
		if err != nil {
			return fmt.Errorf("failed to update promo: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrPromoNotFound
		}

		if p.ProductIDs != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM promo_products WHERE promo_id = $1`, p.ID); err != nil {
				return fmt.Errorf("failed to clear promo products: %w", err)
			}
			if err := insertPromoProducts(ctx, tx, p.ID, p.ProductIDs); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, p.ID)
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `
    UPDATE promos
    SET deleted_at = NOW(), updated_at = NOW()
    WHERE id = $1 AND deleted_at IS NULL
  `

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete promo: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPromoNotFound
	}

	return nil
}
