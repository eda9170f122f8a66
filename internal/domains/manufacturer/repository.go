package manufacturer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, m *Manufacturer) (*Manufacturer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Manufacturer, error)
	List(ctx context.Context, countryID *uuid.UUID, offset, limit int) ([]*Manufacturer, error)
	Count(ctx context.Context, countryID *uuid.UUID) (int, error)
	Update(ctx context.Context, m *Manufacturer) (*Manufacturer, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const manufacturerColumns = `id, name, description, country_id, created_at, updated_at`

func scanManufacturer(row pgx.Row) (*Manufacturer, error) {
	var m Manufacturer
	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Description,
		&m.CountryID,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *postgresRepository) Create(ctx context.Context, m *Manufacturer) (*Manufacturer, error) {
	query := `
    INSERT INTO manufacturers (name, description, country_id)
    VALUES ($1, $2, $3)
    RETURNING ` + manufacturerColumns

	created, err := scanManufacturer(r.pool.QueryRow(ctx, query, m.Name, m.Description, m.CountryID))
	if err != nil {
		return nil, fmt.Errorf("failed to create manufacturer: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Manufacturer, error) {
	query := `
    SELECT ` + manufacturerColumns + `
    FROM manufacturers
    WHERE id = $1 AND deleted_at IS NULL
  `

	m, err := scanManufacturer(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get manufacturer by id: %w", err)
	}

	return m, nil
}

func (r *postgresRepository) List(ctx context.Context, countryID *uuid.UUID, offset, limit int) ([]*Manufacturer, error) {
	query := `
    SELECT ` + manufacturerColumns + `
    FROM manufacturers
    WHERE deleted_at IS NULL
      AND ($1::uuid IS NULL OR country_id = $1)
    ORDER BY name ASC
    LIMIT $2 OFFSET $3
  `

	rows, err := r.pool.Query(ctx, query, countryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list manufacturers: %w", err)
	}
	defer rows.Close()

	var manufacturers []*Manufacturer
	for rows.Next() {
		m, err := scanManufacturer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan manufacturer row: %w", err)
		}
		manufacturers = append(manufacturers, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating manufacturer rows: %w", err)
	}

	return manufacturers, nil
}

func (r *postgresRepository) Count(ctx context.Context, countryID *uuid.UUID) (int, error) {
	query := `
    SELECT COUNT(*) FROM manufacturers
    WHERE deleted_at IS NULL
      AND ($1::uuid IS NULL OR country_id = $1)
  `

	var count int
	if err := r.pool.QueryRow(ctx, query, countryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count manufacturers: %w", err)
	}

	return count, nil
}

func (r *postgresRepository) Update(ctx context.Context, m *Manufacturer) (*Manufacturer, error) {
	query := `
    UPDATE manufacturers
    SET name = $1, description = $2, country_id = $3, updated_at = NOW()
    WHERE id = $4 AND deleted_at IS NULL
    RETURNING ` + manufacturerColumns

	updated, err := scanManufacturer(r.pool.QueryRow(ctx, query, m.Name, m.Description, m.CountryID, m.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrManufacturerNotFound
		}
		return nil, fmt.Errorf("failed to update manufacturer: %w", err)
	}

	return updated, nil
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `
    UPDATE manufacturers
    SET deleted_at = NOW(), updated_at = NOW()
    WHERE id = $1 AND deleted_at IS NULL
  `

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete manufacturer: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrManufacturerNotFound
	}

	return nil
}
