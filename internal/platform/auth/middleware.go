// Package auth guards protected routes: it extracts the bearer token from
// the Authorization header, verifies it, resolves the subject to a doctor
// account, and exposes that identity to the rest of the request.
package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type contextKey string

const doctorKey contextKey = "authenticated_doctor"

// Doctor is the authenticated identity exposed to handlers. It is the public
// projection of a doctor account; the credential digest never travels with it.
type Doctor struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenVerifier validates a bearer token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

// DoctorResolver maps a verified token subject to a doctor account.
type DoctorResolver interface {
	ResolveDoctor(ctx context.Context, email string) (*Doctor, error)
}

// RequireDoctor returns middleware that rejects requests without a valid
// bearer token for a known doctor. All rejection paths answer 401 with a
// Bearer challenge and do not reveal which check failed beyond the header
// being absent or malformed.
func RequireDoctor(tokens TokenVerifier, doctors DoctorResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthenticated(c, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return unauthenticated(c, "invalid authorization format")
			}

			subject, err := tokens.Verify(parts[1])
			if err != nil {
				return unauthenticated(c, "invalid or expired token")
			}

			doc, err := doctors.ResolveDoctor(c.Request().Context(), subject)
			if err != nil {
				return unauthenticated(c, "invalid or expired token")
			}

			c.SetRequest(c.Request().WithContext(ContextWithDoctor(c.Request().Context(), doc)))
			return next(c)
		}
	}
}

func unauthenticated(c echo.Context, msg string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, msg)
}

// ContextWithDoctor returns a context carrying the authenticated doctor.
func ContextWithDoctor(ctx context.Context, d *Doctor) context.Context {
	return context.WithValue(ctx, doctorKey, d)
}

// DoctorFromContext returns the authenticated doctor, or nil when the request
// did not pass through RequireDoctor.
func DoctorFromContext(ctx context.Context) *Doctor {
	d, _ := ctx.Value(doctorKey).(*Doctor)
	return d
}
