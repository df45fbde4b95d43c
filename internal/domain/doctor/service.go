package doctor

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password,
// so login failures never reveal whether an account exists.
var ErrInvalidCredentials = errors.New("incorrect email or password")

// TokenIssuer mints a signed bearer token for a subject.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

type Service struct {
	repo   Repository
	tokens TokenIssuer
	cost   int
}

func NewService(repo Repository, tokens TokenIssuer, bcryptCost int) *Service {
	return &Service{repo: repo, tokens: tokens, cost: bcryptCost}
}

// Register creates a doctor account with a bcrypt digest of the password.
// The email must be unused; the database's unique constraint backs the
// pre-check so a concurrent duplicate registration still collapses to one
// account.
func (s *Service) Register(ctx context.Context, name, email, password string) (*Doctor, error) {
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	d := &Doctor{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Login checks the credentials and issues a bearer token with the doctor's
// email as subject.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	d, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("look up doctor: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(d.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(d.Email)
}

// GetByEmail is the exact-match lookup used to resolve token subjects.
func (s *Service) GetByEmail(ctx context.Context, email string) (*Doctor, error) {
	return s.repo.GetByEmail(ctx, email)
}
