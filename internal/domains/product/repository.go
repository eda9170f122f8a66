package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"pharmacy-backend/pkg/database"
)

type ListFilter struct {
	ManufacturerID *uuid.UUID
	CategoryID     *uuid.UUID
}

type Repository interface {
	Create(ctx context.Context, p *Product) (*Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context, filter ListFilter, offset, limit int) ([]*Product, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
	Update(ctx context.Context, p *Product) (*Product, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	AddImage(ctx context.Context, productID uuid.UUID, url string) (*ProductImage, error)
	GetPresentationByID(ctx context.Context, id uuid.UUID) (*ProductPresentation, error)
}

// querier is satisfied by both pgxpool.Pool and pgx.Tx so relation
// loaders work inside and outside transactions.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// Create persists the product and all its relations in one transaction
// so a partial failure leaves no orphan rows.
func (r *postgresRepository) Create(ctx context.Context, p *Product) (*Product, error) {
	id, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (uuid.UUID, error) {
		query := `
      INSERT INTO products (name, description, manufacturer_id)
      VALUES ($1, $2, $3)
      RETURNING id
    `

		var productID uuid.UUID
		if err := tx.QueryRow(ctx, query, p.Name, p.Description, p.ManufacturerID).Scan(&productID); err != nil {
			return uuid.Nil, fmt.Errorf("failed to create product: %w", err)
		}

		if err := insertImages(ctx, tx, productID, p.Images); err != nil {
			return uuid.Nil, err
		}
		if err := insertCategories(ctx, tx, productID, p.CategoryIDs); err != nil {
			return uuid.Nil, err
		}
		if err := insertPresentations(ctx, tx, productID, p.Presentations); err != nil {
			return uuid.Nil, err
		}

		return productID, nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	query := `
    SELECT id, name, description, manufacturer_id, created_at, updated_at
    FROM products
    WHERE id = $1 AND deleted_at IS NULL
  `

	var p Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.ManufacturerID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product by id: %w", err)
	}

	if err := r.loadRelations(ctx, []*Product{&p}); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *postgresRepository) List(ctx context.Context, filter ListFilter, offset, limit int) ([]*Product, error) {
	query := `
    SELECT DISTINCT p.id, p.name, p.description, p.manufacturer_id, p.created_at, p.updated_at
    FROM products p
    LEFT JOIN product_categories pc ON pc.product_id = p.id
    WHERE p.deleted_at IS NULL
      AND ($1::uuid IS NULL OR p.manufacturer_id = $1)
      AND ($2::uuid IS NULL OR pc.category_id = $2)
    ORDER BY p.name ASC
    LIMIT $3 OFFSET $4
  `

	rows, err := r.pool.Query(ctx, query, filter.ManufacturerID, filter.CategoryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.ManufacturerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, &p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}

	if err := r.loadRelations(ctx, products); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *postgresRepository) Count(ctx context.Context, filter ListFilter) (int, error) {
	query := `
    SELECT COUNT(DISTINCT p.id)
    FROM products p
    LEFT JOIN product_categories pc ON pc.product_id = p.id
    WHERE p.deleted_at IS NULL
      AND ($1::uuid IS NULL OR p.manufacturer_id = $1)
      AND ($2::uuid IS NULL OR pc.category_id = $2)
  `

	var count int
	if err := r.pool.QueryRow(ctx, query, filter.ManufacturerID, filter.CategoryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return count, nil
}

// Update rewrites the base row and, for every non-nil relation slice,
// replaces the stored relation set inside the same transaction.
func (r *postgresRepository) Update(ctx context.Context, p *Product) (*Product, error) {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
      UPDATE products
      SET name = $1, description = $2, manufacturer_id = $3, updated_at = NOW()
      WHERE id = $4 AND deleted_at IS NULL
    `

		tag, err := tx.Exec(ctx, query, p.Name, p.Description, p.ManufacturerID, p.ID)
		if err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrProductNotFound
		}

		if p.Images != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM product_images WHERE product_id = $1`, p.ID); err != nil {
				return fmt.Errorf("failed to clear product images: %w", err)
			}
			if err := insertImages(ctx, tx, p.ID, p.Images); err != nil {
				return err
			}
		}

		if p.CategoryIDs != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM product_categories WHERE product_id = $1`, p.ID); err != nil {
				return fmt.Errorf("failed to clear product categories: %w", err)
			}
			if err := insertCategories(ctx, tx, p.ID, p.CategoryIDs); err != nil {
				return err
			}
		}

		if p.Presentations != nil {
			if _, err := tx.Exec(ctx, `
        DELETE FROM lots
        WHERE product_presentation_id IN
          (SELECT id FROM product_presentations WHERE product_id = $1)
      `, p.ID); err != nil {
				return fmt.Errorf("failed to clear product lots: %w", err)
			}
			if _, err := tx.Exec(ctx, `DELETE FROM product_presentations WHERE product_id = $1`, p.ID); err != nil {
				return fmt.Errorf("failed to clear product presentations: %w", err)
			}
			if err := insertPresentations(ctx, tx, p.ID, p.Presentations); err != nil {
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
    UPDATE products
    SET deleted_at = NOW(), updated_at = NOW()
    WHERE id = $1 AND deleted_at IS NULL
  `

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r *postgresRepository) AddImage(ctx context.Context, productID uuid.UUID, url string) (*ProductImage, error) {
	query := `
    INSERT INTO product_images (product_id, url)
    VALUES ($1, $2)
    RETURNING id, product_id, url, created_at
  `

	var img ProductImage
	err := r.pool.QueryRow(ctx, query, productID, url).Scan(
		&img.ID,
		&img.ProductID,
		&img.URL,
		&img.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add product image: %w", err)
	}

	return &img, nil
}

func (r *postgresRepository) GetPresentationByID(ctx context.Context, id uuid.UUID) (*ProductPresentation, error) {
	query := `
    SELECT pp.id, pp.product_id, pp.presentation_id, pp.price, pp.created_at, pp.updated_at
    FROM product_presentations pp
    JOIN products p ON p.id = pp.product_id
    WHERE pp.id = $1 AND p.deleted_at IS NULL
  `

	var pp ProductPresentation
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&pp.ID,
		&pp.ProductID,
		&pp.PresentationID,
		&pp.Price,
		&pp.CreatedAt,
		&pp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product presentation by id: %w", err)
	}

	return &pp, nil
}

func insertImages(ctx context.Context, q querier, productID uuid.UUID, images []ProductImage) error {
	for _, img := range images {
		if _, err := q.Exec(ctx,
			`INSERT INTO product_images (product_id, url) VALUES ($1, $2)`,
			productID, img.URL); err != nil {
			return fmt.Errorf("failed to insert product image: %w", err)
		}
	}
	return nil
}

func insertCategories(ctx context.Context, q querier, productID uuid.UUID, categoryIDs []uuid.UUID) error {
	for _, categoryID := range categoryIDs {
		if _, err := q.Exec(ctx,
			`INSERT INTO product_categories (product_id, category_id) VALUES ($1, $2)`,
			productID, categoryID); err != nil {
			return fmt.Errorf("failed to insert product category link: %w", err)
		}
	}
	return nil
}

func insertPresentations(ctx context.Context, q querier, productID uuid.UUID, presentations []ProductPresentation) error {
	for _, pp := range presentations {
		var ppID uuid.UUID
		if err := q.QueryRow(ctx, `
      INSERT INTO product_presentations (product_id, presentation_id, price)
      VALUES ($1, $2, $3)
      RETURNING id
    `, productID, pp.PresentationID, pp.Price).Scan(&ppID); err != nil {
			return fmt.Errorf("failed to insert product presentation: %w", err)
		}

		for _, lot := range pp.Lots {
			if _, err := q.Exec(ctx, `
        INSERT INTO lots (product_presentation_id, lot_number, quantity, expiration_date)
        VALUES ($1, $2, $3, $4)
      `, ppID, lot.LotNumber, lot.Quantity, lot.ExpirationDate); err != nil {
				return fmt.Errorf("failed to insert lot: %w", err)
			}
		}
	}
	return nil
}

// loadRelations batch-loads images, category links, presentations and
// lots for a page of products.
func (r *postgresRepository) loadRelations(ctx context.Context, products []*Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(products))
	byID := make(map[uuid.UUID]*Product, len(products))
	for i, p := range products {
		ids[i] = p.ID
		byID[p.ID] = p
	}

	rows, err := r.pool.Query(ctx, `
    SELECT id, product_id, url, created_at
    FROM product_images
    WHERE product_id = ANY($1)
    ORDER BY created_at ASC
  `, ids)
	if err != nil {
		return fmt.Errorf("failed to load product images: %w", err)
	}
	for rows.Next() {
		var img ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.CreatedAt); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan product image row: %w", err)
		}
		byID[img.ProductID].Images = append(byID[img.ProductID].Images, img)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating product image rows: %w", err)
	}

	rows, err = r.pool.Query(ctx, `
    SELECT product_id, category_id
    FROM product_categories
    WHERE product_id = ANY($1)
  `, ids)
	if err != nil {
		return fmt.Errorf("failed to load product categories: %w", err)
	}
	for rows.Next() {
		var productID, categoryID uuid.UUID
		if err := rows.Scan(&productID, &categoryID); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan product category row: %w", err)
		}
		byID[productID].CategoryIDs = append(byID[productID].CategoryIDs, categoryID)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating product category rows: %w", err)
	}

	ppByID := make(map[uuid.UUID]*ProductPresentation)
	rows, err = r.pool.Query(ctx, `
    SELECT id, product_id, presentation_id, price, created_at, updated_at
    FROM product_presentations
    WHERE product_id = ANY($1)
    ORDER BY created_at ASC
  `, ids)
	if err != nil {
		return fmt.Errorf("failed to load product presentations: %w", err)
	}
	for rows.Next() {
		var pp ProductPresentation
		if err := rows.Scan(&pp.ID, &pp.ProductID, &pp.PresentationID, &pp.Price, &pp.CreatedAt, &pp.UpdatedAt); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan product presentation row: %w", err)
		}
		p := byID[pp.ProductID]
		p.Presentations = append(p.Presentations, pp)
		ppByID[pp.ID] = &p.Presentations[len(p.Presentations)-1]
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating product presentation rows: %w", err)
	}

	if len(ppByID) == 0 {
		return nil
	}

	ppIDs := make([]uuid.UUID, 0, len(ppByID))
	for id := range ppByID {
		ppIDs = append(ppIDs, id)
	}

	rows, err = r.pool.Query(ctx, `
    SELECT id, product_presentation_id, lot_number, quantity, expiration_date, created_at
    FROM lots
    WHERE product_presentation_id = ANY($1)
    ORDER BY expiration_date ASC
  `, ppIDs)
	if err != nil {
		return fmt.Errorf("failed to load lots: %w", err)
	}
	for rows.Next() {
		var lot Lot
		if err := rows.Scan(&lot.ID, &lot.ProductPresentationID, &lot.LotNumber, &lot.Quantity, &lot.ExpirationDate, &lot.CreatedAt); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan lot row: %w", err)
		}
		ppByID[lot.ProductPresentationID].Lots = append(ppByID[lot.ProductPresentationID].Lots, lot)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating lot rows: %w", err)
	}

	return nil
}
