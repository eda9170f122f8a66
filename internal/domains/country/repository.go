package country

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, c *Country) (*Country, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Country, error)
	List(ctx context.Context, offset, limit int) ([]*Country, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, c *Country) (*Country, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, c *Country) (*Country, error) {
	query := `
    INSERT INTO countries (name)
    VALUES ($1)
    RETURNING id, name, created_at, updated_at
  `

	var created Country
	err := r.pool.QueryRow(ctx, query, c.Name).Scan(
		&created.ID,
		&created.Name,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create country: %w", err)
	}

	return &created, nil
}

// GetByID returns (nil, nil) when the row is absent or soft-deleted;
// the service maps that to ErrCountryNotFound.
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Country, error) {
	query := `
    SELECT id, name, created_at, updated_at
    FROM countries
    WHERE id = $1 AND deleted_at IS NULL
  `

	var c Country
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get country by id: %w", err)
	}

	return &c, nil
}

func (r *postgresRepository) List(ctx context.Context, offset, limit int) ([]*Country, error) {
	query := `
    SELECT id, name, created_at, updated_at
    FROM countries
    WHERE deleted_at IS NULL
    ORDER BY name ASC
    LIMIT $1 OFFSET $2
  `

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	defer rows.Close()

	var countries []*Country
	for rows.Next() {
		var c Country
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan country row: %w", err)
		}
		countries = append(countries, &c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating country rows: %w", err)
	}

	return countries, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM countries WHERE deleted_at IS NULL`

	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count countries: %w", err)
	}

	return count, nil
}

func (r *postgresRepository) Update(ctx context.Context, c *Country) (*Country, error) {
	query := `
    UPDATE countries
    SET name = $1, updated_at = NOW()
    WHERE id = $2 AND deleted_at IS NULL
    RETURNING id, name, created_at, updated_at
  `

	var updated Country
	err := r.pool.QueryRow(ctx, query, c.Name, c.ID).Scan(
		&updated.ID,
		&updated.Name,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCountryNotFound
		}
		return nil, fmt.Errorf("failed to update country: %w", err)
	}

	return &updated, nil
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `
    UPDATE countries
    SET deleted_at = NOW(), updated_at = NOW()
    WHERE id = $1 AND deleted_at IS NULL
  `

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete country: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCountryNotFound
	}

	return nil
}
