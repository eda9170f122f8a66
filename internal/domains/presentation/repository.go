package presentation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, p *Presentation) (*Presentation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Presentation, error)
	List(ctx context.Context, offset, limit int) ([]*Presentation, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, p *Presentation) (*Presentation, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const presentationColumns = `id, name, description, quantity, measurement_unit, created_at, updated_at`

func scanPresentation(row pgx.Row) (*Presentation, error) {
	var p Presentation
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Quantity,
		&p.MeasurementUnit,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepository) Create(ctx context.Context, p *Presentation) (*Presentation, error) {
	query := `
    INSERT INTO presentations (name, description, quantity, measurement_unit)
    VALUES ($1, $2, $3, $4)
    RETURNING ` + presentationColumns

	created, err := scanPresentation(r.pool.QueryRow(ctx, query,
		p.Name, p.Description, p.Quantity, p.MeasurementUnit))
	if err != nil {
		return nil, fmt.Errorf("failed to create presentation: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Presentation, error) {
	query := `
    SELECT ` + presentationColumns + `
    FROM presentations
    WHERE id = $1 AND deleted_at IS NULL
  `

	p, err := scanPresentation(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get presentation by id: %w", err)
	}

	return p, nil
}

func (r *postgresRepository) List(ctx context.Context, offset, limit int) ([]*Presentation, error) {
	query := `
    SELECT ` + presentationColumns + `
    FROM presentations
    WHERE deleted_at IS NULL
    ORDER BY name ASC
    LIMIT $1 OFFSET $2
  `

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list presentations: %w", err)
	}
	defer rows.Close()

	var presentations []*Presentation
	for rows.Next() {
		p, err := scanPresentation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan presentation row: %w", err)
		}
		presentations = append(presentations, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating presentation rows: %w", err)
	}

	return presentations, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM presentations WHERE deleted_at IS NULL`

	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count presentations: %w", err)
	}

	return count, nil
}

func (r *postgresRepository) Update(ctx context.Context, p *Presentation) (*Presentation, error) {
	query := `
    UPDATE presentations
    SET name = $1, description = $2, quantity = $3, measurement_unit = $4, updated_at = NOW()
    WHERE id = $5 AND deleted_at IS NULL
    RETURNING ` + presentationColumns

	updated, err := scanPresentation(r.pool.QueryRow(ctx, query,
		p.Name, p.Description, p.Quantity, p.MeasurementUnit, p.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPresentationNotFound
		}
		return nil, fmt.Errorf("failed to update presentation: %w", err)
	}

	return updated, nil
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `
    UPDATE presentations
    SET deleted_at = NOW(), updated_at = NOW()
    WHERE id = $1 AND deleted_at IS NULL
  `

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete presentation: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPresentationNotFound
	}

	return nil
}
