package doctor

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no doctor matches the lookup.
	ErrNotFound = errors.New("doctor not found")
	// ErrEmailTaken is returned when a doctor with the email already exists.
	ErrEmailTaken = errors.New("email already registered")
)

type Repository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByEmail(ctx context.Context, email string) (*Doctor, error)
}
