// Package token issues and verifies the signed bearer tokens that
// authenticate doctors. Tokens are HS256 JWTs carrying the doctor's email as
// subject and an absolute expiry; there is no revocation list, a token stays
// valid for its full TTL.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Verify for any token that cannot be
// accepted: bad signature, wrong algorithm, past expiry, or missing subject.
var ErrInvalidToken = errors.New("invalid token")

type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret []byte, ttl time.Duration) *Service {
	return &Service{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for the given subject, expiring after the configured TTL.
func (s *Service) Issue(subject string) (string, error) {
	if subject == "" {
		return "", errors.New("subject must not be empty")
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses and validates a token and returns its subject. Any failure
// collapses to ErrInvalidToken so callers cannot distinguish why a token was
// rejected.
func (s *Service) Verify(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
