package branch

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, b *Branch) (*Branch, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Branch, error)
	List(ctx context.Context, cityID *uuid.UUID, offset, limit int) ([]*Branch, error)
	Count(ctx context.Context, cityID *uuid.UUID) (int, error)
	Update(ctx context.Context, b *Branch) (*Branch, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const branchColumns = `id, name, address, latitude, longitude, city_id, created_at, updated_at`

func (r *postgresRepository) scanRow(row pgx.Row) (*Branch, error) {
	var b Branch
	err := row.Scan(
		&b.ID,
		&b.Name,
		&b.Address,
		&b.Latitude,
		&b.Longitude,
		&b.CityID,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *postgresRepository) Create(ctx context.Context, b *Branch) (*Branch, error) {
	query := `
    INSERT INTO branches (name, address, latitude, longitude, city_id)
    VALUES ($1, $2, ROUND($3::numeric, 6), ROUND($4::numeric, 6), $5)
    RETURNING ` + branchColumns

	created, err := r.scanRow(r.pool.QueryRow(ctx, query,
		b.Name, b.Address, b.Latitude, b.Longitude, b.CityID))
	if err != nil {
		return nil, fmt.Errorf("failed to create branch: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Branch, error) {
	query := `
    SELECT ` + branchColumns + `
    FROM branches
    WHERE id = $1 AND deleted_at IS NULL
  `

	b, err := r.scanRow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get branch by id: %w", err)
	}

	return b, nil
}

func (r *postgresRepository) List(ctx context.Context, cityID *uuid.UUID, offset, limit int) ([]*Branch, error) {
	query := `
    SELECT ` + branchColumns + `
    FROM branches
    WHERE deleted_at IS NULL
      AND ($1::uuid IS NULL OR city_id = $1)
    ORDER BY name ASC
    LIMIT $2 OFFSET $3
  `

	rows, err := r.pool.Query(ctx, query, cityID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	defer rows.Close()

	var branches []*Branch
	for rows.Next() {
		b, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan branch row: %w", err)
		}
		branches = append(branches, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating branch rows: %w", err)
	}

	return branches, nil
}

func (r *postgresRepository) Count(ctx context.Context, cityID *uuid.UUID) (int, error) {
	query := `
    SELECT COUNT(*) FROM branches
    WHERE deleted_at IS NULL
      AND ($1::uuid IS NULL OR city_id = $1)
  `

	var count int
	if err := r.pool.QueryRow(ctx, query, cityID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count branches: %w", err)
	}

	return count, nil
}

func (r *postgresRepository) Update(ctx context.Context, b *Branch) (*Branch, error) {
	query := `
    UPDATE branches
    SET name = $1, address = $2,
        latitude = ROUND($3::numeric, 6), longitude = ROUND($4::numeric, 6),
        city_id = $5, updated_at = NOW()
    WHERE id = $6 AND deleted_at IS NULL
    RETURNING ` + branchColumns

	updated, err := r.scanRow(r.pool.QueryRow(ctx, query,
		b.Name, b.Address, b.Latitude, b.Longitude, b.CityID, b.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBranchNotFound
		}
		return nil, fmt.Errorf("failed to update branch: %w", err)
	}

	return updated, nil
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `
    UPDATE branches
    SET deleted_at = NOW(), updated_at = NOW()
    WHERE id = $1 AND deleted_at IS NULL
  `

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete branch: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrBranchNotFound
	}

	return nil
}
