package doctor

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

type doctorRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &doctorRepoPG{pool: pool}
}

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO doctors (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		d.Name, d.Email, d.PasswordHash).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *doctorRepoPG) GetByEmail(ctx context.Context, email string) (*Doctor, error) {
	var d Doctor
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, created_at
		FROM doctors WHERE email = $1`,
		email).Scan(&d.ID, &d.Name, &d.Email, &d.PasswordHash, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}
