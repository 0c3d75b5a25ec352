// internal/api/apitest/apitest.go

// Package apitest runs the storefront API in memory for tests.
package apitest

import (
	"context"
	"net/http/httptest"
	"storefront/internal/api"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/membership"
	"testing"
	"time"
)

// Server is a running in-memory storefront API.
type Server struct {
	*httptest.Server
	Tokens  *membership.TokenIssuer
	Members membership.Service
}

// Endpoint is the base URL clients should use.
func (s *Server) Endpoint() string {
	return s.URL + api.Prefix
}

// Login registers username and returns a token for it.
func (s *Server) Login(t testing.TB, username string) string {
	t.Helper()
	user, err := s.Members.Register(context.Background(), username, "learnbydoing")
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	token, err := s.Tokens.Issue(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

// NewServer starts a server with the seed catalog, closed when t ends.
func NewServer(t testing.TB) *Server {
	t.Helper()

	products := catalog.NewMemoryService()
	if _, err := catalog.Seed(context.Background(), products); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	tokens, err := membership.NewTokenIssuer("apitest-secret", time.Hour)
	if err != nil {
		t.Fatalf("token issuer: %v", err)
	}
	members := membership.NewService(membership.NewMemoryRepository(), nil)

	srv := httptest.NewServer(api.NewRouter(api.Deps{
		Catalog: products,
		Cart:    cart.NewService(cart.NewMemoryStore(), products),
		Members: members,
		Tokens:  tokens,
	}))
	t.Cleanup(srv.Close)

	return &Server{Server: srv, Tokens: tokens, Members: members}
}
