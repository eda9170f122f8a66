package city

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, c *City) (*City, error)
	GetByID(ctx context.Context, id uuid.UUID) (*City, error)
	List(ctx context.Context, stateID *uuid.UUID, offset, limit int) ([]*City, error)
	Count(ctx context.Context, stateID *uuid.UUID) (int, error)
	Update(ctx context.Context, c *City) (*City, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, c *City) (*City, error) {
	query := `
    INSERT INTO cities (name, state_id)
    VALUES ($1, $2)
    RETURNING id, name, state_id, created_at, updated_at
  `

	var created City
	err := r.pool.QueryRow(ctx, query, c.Name, c.StateID).Scan(
		&created.ID,
		&created.Name,
		&created.StateID,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create city: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*City, error) {
	query := `
    SELECT id, name, state_id, created_at, updated_at
    FROM cities
    WHERE id = $1 AND deleted_at IS NULL
  `

	var c City
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.StateID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get city by id: %w", err)
	}

	return &c, nil
}

func (r *postgresRepository) List(ctx context.Context, stateID *uuid.UUID, offset, limit int) ([]*City, error) {
	query := `
    SELECT id, name, state_id, created_at, updated_at
    FROM cities
    WHERE deleted_at IS NULL
      AND ($1::uuid IS NULL OR state_id = $1)
    ORDER BY name ASC
    LIMIT $2 OFFSET $3
  `

	rows, err := r.pool.Query(ctx, query, stateID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	defer rows.Close()

	var cities []*City
	for rows.Next() {
		var c City
		if err := rows.Scan(&c.ID, &c.Name, &c.StateID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan city row: %w", err)
		}
		cities = append(cities, &c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating city rows: %w", err)
	}

	return cities, nil
}

func (r *postgresRepository) Count(ctx context.Context, stateID *uuid.UUID) (int, error) {
	query := `
    SELECT COUNT(*) FROM cities
    WHERE deleted_at IS NULL
      AND ($1::uuid IS NULL OR state_id = $1)
  `

	var count int
	if err := r.pool.QueryRow(ctx, query, stateID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cities: %w", err)
	}

	return count, nil
}

func (r *postgresRepository) Update(ctx context.Context, c *City) (*City, error) {
	query := `
    UPDATE cities
    SET name = $1, state_id = $2, updated_at = NOW()
    WHERE id = $3 AND deleted_at IS NULL
    RETURNING id, name, state_id, created_at, updated_at
  `

	var updated City
	err := r.pool.QueryRow(ctx, query, c.Name, c.StateID, c.ID).Scan(
		&updated.ID,
		&updated.Name,
		&updated.StateID,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCityNotFound
		}
		return nil, fmt.Errorf("failed to update city: %w", err)
	}

	return &updated, nil
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `
    UPDATE cities
    SET deleted_at = NOW(), updated_at = NOW()
    WHERE id = $1 AND deleted_at IS NULL
  `

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete city: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCityNotFound
	}

	return nil
}
