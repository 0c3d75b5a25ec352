// internal/cart/handler.go
package cart

import (
	"encoding/json"
	"errors"
	"net/http"
	"storefront/internal/apierr"
	"storefront/internal/membership"

	"go.uber.org/zap"
)

type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(service *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// HandleGet serves GET /cart for the authenticated user.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := membership.UserFromContext(r.Context())
	if !ok {
		apierr.WriteError(w, http.StatusUnauthorized, "Protected route, Oauth2 Bearer token not found")
		return
	}

	lines, err := h.service.Lines(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("get cart", zap.String("user_id", user.ID.String()), zap.Error(err))
		apierr.WriteError(w, http.StatusInternalServerError, "Something went wrong. Check the backend console for more details")
		return
	}
	apierr.WriteJSON(w, http.StatusOK, lines)
}

// HandleUpsert serves POST /cart with a {productId, qty} body and answers
// with the complete cart.
func (h *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	user, ok := membership.UserFromContext(r.Context())
	if !ok {
		apierr.WriteError(w, http.StatusUnauthorized, "Protected route, Oauth2 Bearer token not found")
		return
	}

	var req Line
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	lines, err := h.service.Upsert(r.Context(), user.ID, req)
	switch {
	case errors.Is(err, ErrUnknownProduct):
		apierr.WriteError(w, http.StatusBadRequest, "Product doesn't exist")
	case errors.Is(err, ErrInvalidQuantity):
		apierr.WriteError(w, http.StatusBadRequest, "\"qty\" must be greater than or equal to 0")
	case err != nil:
		h.logger.Error("upsert cart line",
			zap.String("user_id", user.ID.String()),
			zap.String("product_id", req.ProductID),
			zap.Error(err),
		)
		apierr.WriteError(w, http.StatusInternalServerError, "Something went wrong. Check the backend console for more details")
	default:
		apierr.WriteJSON(w, http.StatusOK, lines)
	}
}
