// internal/membership/handler.go
package membership

import (
	"encoding/json"
	"errors"
	"net/http"
	"storefront/internal/apierr"

	"go.uber.org/zap"
)

type Handler struct {
	service Service
	tokens  *TokenIssuer
	logger  *zap.Logger
}

func NewHandler(service Service, tokens *TokenIssuer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, tokens: tokens, logger: logger}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned by POST /auth/login.
type LoginResponse struct {
	Success  bool   `json:"success"`
	Token    string `json:"token"`
	Username string `json:"username"`
}

// HandleRegister serves POST /auth/register.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err := h.service.Register(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, ErrRateLimited):
		apierr.WriteError(w, http.StatusTooManyRequests, "Too many requests, try again later")
	case errors.Is(err, ErrUsernameTaken):
		apierr.WriteError(w, http.StatusBadRequest, "Username is already taken")
	case errors.Is(err, ErrInvalidSignup):
		apierr.WriteError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		h.logger.Error("register user", zap.Error(err))
		apierr.WriteError(w, http.StatusInternalServerError, "Something went wrong. Check the backend console for more details")
	default:
		apierr.WriteJSON(w, http.StatusCreated, apierr.Envelope{Success: true})
	}
}

// HandleLogin serves POST /auth/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.Authenticate(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, ErrRateLimited):
		apierr.WriteError(w, http.StatusTooManyRequests, "Too many requests, try again later")
		return
	case errors.Is(err, ErrInvalidCredentials):
		apierr.WriteError(w, http.StatusBadRequest, "Password is incorrect or user does not exist")
		return
	case err != nil:
		h.logger.Error("authenticate user", zap.Error(err))
		apierr.WriteError(w, http.StatusInternalServerError, "Something went wrong. Check the backend console for more details")
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		h.logger.Error("issue token", zap.Error(err))
		apierr.WriteError(w, http.StatusInternalServerError, "Something went wrong. Check the backend console for more details")
		return
	}
	apierr.WriteJSON(w, http.StatusCreated, LoginResponse{Success: true, Token: token, Username: user.Username})
}
