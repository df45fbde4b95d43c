package doctor

import "time"

// Doctor is a clinician account. The password hash never serializes; the
// remaining fields form the account's public projection.
type Doctor struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
