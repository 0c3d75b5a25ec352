// internal/catalog/handler.go
package catalog

import (
	"net/http"
	"storefront/internal/apierr"

	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// HandleList serves GET /products.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list products", zap.Error(err))
		apierr.WriteError(w, http.StatusInternalServerError, "Something went wrong. Check the backend console for more details")
		return
	}
	apierr.WriteJSON(w, http.StatusOK, products)
}

// HandleSearch serves GET /products/search?value=<text>. An empty value
// returns the whole catalog.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("value")

	products, err := h.service.Search(r.Context(), query)
	if err != nil {
		h.logger.Error("search products", zap.String("query", query), zap.Error(err))
		apierr.WriteError(w, http.StatusInternalServerError, "Something went wrong. Check the backend console for more details")
		return
	}
	apierr.WriteJSON(w, http.StatusOK, products)
}
