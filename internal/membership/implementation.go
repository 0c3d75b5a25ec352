// internal/membership/implementation.go
package membership

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const minFieldLength = 6

// service implements the Service interface.
type service struct {
	repo        Repository
	rateLimiter *rate.Limiter
}

// NewService creates a membership service. A nil limiter disables rate
// limiting.
func NewService(repo Repository, limiter *rate.Limiter) Service {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	return &service{
		repo:        repo,
		rateLimiter: limiter,
	}
}

// Register creates a new user.
func (s *service) Register(ctx context.Context, username, password string) (*User, error) {
	if !s.rateLimiter.Allow() {
		return nil, ErrRateLimited
	}

	username = strings.TrimSpace(username)
	if len(username) < minFieldLength {
		return nil, fmt.Errorf("%w: username must be at least %d characters", ErrInvalidSignup, minFieldLength)
	}
	if len(password) < minFieldLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidSignup, minFieldLength)
	}

	passwordHash, salt, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:        uuid.New(),
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
	credential := &Credential{
		UserID:       user.ID,
		PasswordHash: passwordHash,
		Salt:         salt,
	}
	if err := s.repo.Create(ctx, user, credential); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies a user's credentials and returns the user.
func (s *service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	if !s.rateLimiter.Allow() {
		return nil, ErrRateLimited
	}

	user, credential, err := s.repo.ByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}

	ok, err := verifyPassword(password, credential.Salt, credential.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
