package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OTPRepository stores one-time codes, one active row per (user, type).
type OTPRepository interface {
	Upsert(ctx context.Context, otp *OTP) (*OTP, error)
	GetByUserAndType(ctx context.Context, userID uuid.UUID, otpType string) (*OTP, error)
	GetByCodeAndType(ctx context.Context, code, otpType string) (*OTP, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, before time.Time) (int, error)
}

type postgresOTPRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresOTPRepository(pool *pgxpool.Pool) OTPRepository {
	return &postgresOTPRepository{pool: pool}
}

const otpColumns = `id, user_id, code, type, expires_at, created_at`

func scanOTP(row pgx.Row) (*OTP, error) {
	var o OTP
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.Code,
		&o.Type,
		&o.ExpiresAt,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Upsert replaces any previous code of the same type for the user.
func (r *postgresOTPRepository) Upsert(ctx context.Context, otp *OTP) (*OTP, error) {
	query := `
    INSERT INTO user_otps (user_id, code, type, expires_at)
    VALUES ($1, $2, $3, $4)
    ON CONFLICT (user_id, type)
    DO UPDATE SET code = EXCLUDED.code, expires_at = EXCLUDED.expires_at, created_at = NOW()
    RETURNING ` + otpColumns

	created, err := scanOTP(r.pool.QueryRow(ctx, query, otp.UserID, otp.Code, otp.Type, otp.ExpiresAt))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert otp: %w", err)
	}

	return created, nil
}

func (r *postgresOTPRepository) GetByUserAndType(ctx context.Context, userID uuid.UUID, otpType string) (*OTP, error) {
	query := `
    SELECT ` + otpColumns + `
    FROM user_otps
    WHERE user_id = $1 AND type = $2
  `

	o, err := scanOTP(r.pool.QueryRow(ctx, query, userID, otpType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get otp by user and type: %w", err)
	}

	return o, nil
}

func (r *postgresOTPRepository) GetByCodeAndType(ctx context.Context, code, otpType string) (*OTP, error) {
	query := `
    SELECT ` + otpColumns + `
    FROM user_otps
    WHERE code = $1 AND type = $2
  `

	o, err := scanOTP(r.pool.QueryRow(ctx, query, code, otpType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get otp by code and type: %w", err)
	}

	return o, nil
}

func (r *postgresOTPRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM user_otps WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete otp: %w", err)
	}
	return nil
}

// DeleteExpired removes stale codes; run periodically by the worker.
func (r *postgresOTPRepository) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM user_otps WHERE expires_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired otps: %w", err)
	}
	return int(result.RowsAffected()), nil
}
