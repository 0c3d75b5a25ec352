// internal/api/router.go

// Package api assembles the HTTP surface of the reference storefront
// service.
package api

import (
	"net/http"
	"storefront/internal/apierr"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/membership"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Prefix is where the routes are mounted.
const Prefix = "/api/v1"

type Deps struct {
	Catalog catalog.Service
	Cart    *cart.Service
	Members membership.Service
	Tokens  *membership.TokenIssuer
	Logger  *zap.Logger
	// RateLimit caps requests per second across all clients. Zero disables
	// the limit.
	RateLimit rate.Limit
	RateBurst int
}

// NewRouter returns the service's handler.
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	catalogHandler := catalog.NewHandler(deps.Catalog, logger)
	cartHandler := cart.NewHandler(deps.Cart, logger)
	authHandler := membership.NewHandler(deps.Members, deps.Tokens, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	if deps.RateLimit > 0 {
		r.Use(rateLimit(rate.NewLimiter(deps.RateLimit, deps.RateBurst)))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		apierr.WriteJSON(w, http.StatusOK, apierr.Envelope{Success: true, Message: "ok"})
	})

	r.Route(Prefix, func(r chi.Router) {
		r.Get("/products", catalogHandler.HandleList)
		r.Get("/products/search", catalogHandler.HandleSearch)

		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(membership.RequireBearer(deps.Tokens, logger))
			r.Get("/cart", cartHandler.HandleGet)
			r.Post("/cart", cartHandler.HandleUpsert)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apierr.WriteError(w, http.StatusNotFound, "Not found")
	})
	return r
}
