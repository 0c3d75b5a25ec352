// internal/membership/domain.go
package membership

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidSignup      = errors.New("invalid registration")
	ErrRateLimited        = errors.New("rate limit exceeded")
	ErrInvalidToken       = errors.New("invalid token")
)

// User is a storefront account.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Credential represents a user's login credentials.
type Credential struct {
	UserID       uuid.UUID `json:"-"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
}

// UserRegisteredEvent is journaled when a new user registers.
type UserRegisteredEvent struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}
