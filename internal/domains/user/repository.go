package user

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
	Create(ctx context.Context, u *User) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByDocumentID(ctx context.Context, documentID string) (*User, error)
	List(ctx context.Context, offset, limit int) ([]*User, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, u *User) (*User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetValidated(ctx context.Context, id uuid.UUID) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const userColumns = `id, first_name, last_name, email, document_id, phone_number,
    password_hash, role, is_validated, branch_id, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.DocumentID,
		&u.PhoneNumber,
		&u.PasswordHash,
		&u.Role,
		&u.IsValidated,
		&u.BranchID,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persists the user and its profile row in one transaction.
func (r *postgresRepository) Create(ctx context.Context, u *User) (*User, error) {
	id, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (uuid.UUID, error) {
		query := `
      INSERT INTO users (first_name, last_name, email, document_id, phone_number,
        password_hash, role, is_validated, branch_id)
      VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
      RETURNING id
    `

		var userID uuid.UUID
		err := tx.QueryRow(ctx, query,
			u.FirstName, u.LastName, u.Email, u.DocumentID, u.PhoneNumber,
			u.PasswordHash, u.Role, u.IsValidated, u.BranchID,
		).Scan(&userID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
		}

		profileQuery := `
      INSERT INTO profiles (user_id, birth_date, gender, profile_picture)
      VALUES ($1, $2, $3, $4)
    `
		var birthDate interface{}
		var gender, picture string
		if u.Profile != nil {
			birthDate = u.Profile.BirthDate
			gender = u.Profile.Gender
			picture = u.Profile.ProfilePicture
		}
		if _, err := tx.Exec(ctx, profileQuery, userID, birthDate, gender, picture); err != nil {
			return uuid.Nil, fmt.Errorf("failed to create profile: %w", err)
		}

		return userID, nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *postgresRepository) getBy(ctx context.Context, field string, value interface{}) (*User, error) {
	query := `
    SELECT ` + userColumns + `
    FROM users
    WHERE ` + field + ` = $1 AND deleted_at IS NULL
  `

	u, err := scanUser(r.pool.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", field, err)
	}

	if err := r.loadProfile(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (r *postgresRepository) loadProfile(ctx context.Context, u *User) error {
	query := `
    SELECT id, user_id, birth_date, gender, profile_picture, created_at, updated_at
    FROM profiles
    WHERE user_id = $1
  `

	var p Profile
	err := r.pool.QueryRow(ctx, query, u.ID).Scan(
		&p.ID,
		&p.UserID,
		&p.BirthDate,
		&p.Gender,
		&p.ProfilePicture,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("failed to load profile: %w", err)
	}

	u.Profile = &p
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *postgresRepository) GetByDocumentID(ctx context.Context, documentID string) (*User, error) {
	return r.getBy(ctx, "document_id", documentID)
}

// List returns active users newest first.
func (r *postgresRepository) List(ctx context.Context, offset, limit int) ([]*User, error) {
	query := `
    SELECT ` + userColumns + `
    FROM users
    WHERE deleted_at IS NULL
    ORDER BY created_at DESC
    LIMIT $1 OFFSET $2
  `

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM users WHERE deleted_at IS NULL`

	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}

func (r *postgresRepository) Update(ctx context.Context, u *User) (*User, error) {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
      UPDATE users
      SET first_name = $1, last_name = $2, phone_number = $3, role = $4,
          branch_id = $5, updated_at = NOW()
      WHERE id = $6 AND deleted_at IS NULL
    `

		tag, err := tx.Exec(ctx, query,
			u.FirstName, u.LastName, u.PhoneNumber, u.Role, u.BranchID, u.ID)
		if err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrUserNotFound
		}

		if u.Profile != nil {
			profileQuery := `
        UPDATE profiles
        SET birth_date = $1, gender = $2, profile_picture = $3, updated_at = NOW()
        WHERE user_id = $4
      `
			if _, err := tx.Exec(ctx, profileQuery,
				u.Profile.BirthDate, u.Profile.Gender, u.Profile.ProfilePicture, u.ID); err != nil {
				return fmt.Errorf("failed to update profile: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, u.ID)
}

func (r *postgresRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `
    UPDATE users
    SET password_hash = $1, updated_at = NOW()
    WHERE id = $2 AND deleted_at IS NULL
  `

	result, err := r.pool.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *postgresRepository) SetValidated(ctx context.Context, id uuid.UUID) error {
	query := `
    UPDATE users
    SET is_validated = TRUE, updated_at = NOW()
    WHERE id = $1 AND deleted_at IS NULL
  `

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark user validated: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `
    UPDATE users
    SET deleted_at = NOW(), updated_at = NOW()
    WHERE id = $1 AND deleted_at IS NULL
  `

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}
