package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, s *State) (*State, error)
	GetByID(ctx context.Context, id uuid.UUID) (*State, error)
	List(ctx context.Context, countryID *uuid.UUID, offset, limit int) ([]*State, error)
	Count(ctx context.Context, countryID *uuid.UUID) (int, error)
	Update(ctx context.Context, s *State) (*State, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, s *State) (*State, error) {
	query := `
    INSERT INTO states (name, country_id)
    VALUES ($1, $2)
    RETURNING id, name, country_id, created_at, updated_at
  `

	var created State
	err := r.pool.QueryRow(ctx, query, s.Name, s.CountryID).Scan(
		&created.ID,
		&created.Name,
		&created.CountryID,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create state: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*State, error) {
	query := `
    SELECT id, name, country_id, created_at, updated_at
    FROM states
    WHERE id = $1 AND deleted_at IS NULL
  `

	var s State
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.Name,
		&s.CountryID,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get state by id: %w", err)
	}

	return &s, nil
}

func (r *postgresRepository) List(ctx context.Context, countryID *uuid.UUID, offset, limit int) ([]*State, error) {
	query := `
    SELECT id, name, country_id, created_at, updated_at
    FROM states
    WHERE deleted_at IS NULL
      AND ($1::uuid IS NULL OR country_id = $1)
    ORDER BY name ASC
    LIMIT $2 OFFSET $3
  `

	rows, err := r.pool.Query(ctx, query, countryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list states: %w", err)
	}
	defer rows.Close()

	var states []*State
	for rows.Next() {
		var s State
		if err := rows.Scan(&s.ID, &s.Name, &s.CountryID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan state row: %w", err)
		}
		states = append(states, &s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating state rows: %w", err)
	}

	return states, nil
}

func (r *postgresRepository) Count(ctx context.Context, countryID *uuid.UUID) (int, error) {
	query := `
    SELECT COUNT(*) FROM states
    WHERE deleted_at IS NULL
      AND ($1::uuid IS NULL OR country_id = $1)
  `

	var count int
	if err := r.pool.QueryRow(ctx, query, countryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count states: %w", err)
	}

	return count, nil
}

func (r *postgresRepository) Update(ctx context.Context, s *State) (*State, error) {
	query := `
    UPDATE states
    SET name = $1, country_id = $2, updated_at = NOW()
    WHERE id = $3 AND deleted_at IS NULL
    RETURNING id, name, country_id, created_at, updated_at
  `

	var updated State
	err := r.pool.QueryRow(ctx, query, s.Name, s.CountryID, s.ID).Scan(
		&updated.ID,
		&updated.Name,
		&updated.CountryID,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to update state: %w", err)
	}

	return &updated, nil
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `
    UPDATE states
    SET deleted_at = NOW(), updated_at = NOW()
    WHERE id = $1 AND deleted_at IS NULL
  `

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete state: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrStateNotFound
	}

	return nil
}
