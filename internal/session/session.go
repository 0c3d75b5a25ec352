// internal/session/session.go

// Package session stores the logged-in user's token between CLI runs.
package session

import (
	"context"
	"errors"
)

var ErrNoSession = errors.New("not logged in")

// Session is what a login leaves behind.
type Session struct {
	Token    string `yaml:"token"`
	Username string `yaml:"username"`
}

// LoggedIn reports whether s carries a token.
func (s Session) LoggedIn() bool {
	return s.Token != ""
}

// Store persists a single Session. Load returns the zero Session when
// nothing has been saved.
type Store interface {
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}
