// internal/membership/service.go
package membership

import "context"

// Service defines the interface for the membership service.
type Service interface {
	Register(ctx context.Context, username, password string) (*User, error)
	Authenticate(ctx context.Context, username, password string) (*User, error)
}
