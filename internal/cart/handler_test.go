package cart

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"storefront/internal/apierr"
	"storefront/internal/membership"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedRequest(method, body string, user *membership.User) *http.Request {
	req := httptest.NewRequest(method, "/cart", strings.NewReader(body))
	if user != nil {
		req = req.WithContext(membership.ContextWithUser(req.Context(), user))
	}
	return req
}

func TestHandleUpsertAndGet(t *testing.T) {
	h := NewHandler(newTestService(t), nil)
	user := &membership.User{ID: uuid.New(), Username: "crio-user"}

	rec := httptest.NewRecorder()
	h.HandleUpsert(rec, authedRequest(http.MethodPost, `{"productId":"p2","qty":3}`, user))
	require.Equal(t, http.StatusOK, rec.Code)

	var lines []Line
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&lines))
	assert.Equal(t, []Line{{ProductID: "p2", Qty: 3}}, lines)

	rec = httptest.NewRecorder()
	h.HandleGet(rec, authedRequest(http.MethodGet, "", user))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"productId":"p2","qty":3}]`, rec.Body.String())
}

func TestHandleUpsertErrors(t *testing.T) {
	h := NewHandler(newTestService(t), nil)
	user := &membership.User{ID: uuid.New(), Username: "crio-user"}

	tests := []struct {
		name    string
		body    string
		user    *membership.User
		status  int
		message string
	}{
		{"no user", `{"productId":"p1","qty":1}`, nil, http.StatusUnauthorized, "Protected route, Oauth2 Bearer token not found"},
		{"bad json", `{`, user, http.StatusBadRequest, "Invalid request body"},
		{"unknown product", `{"productId":"zzz","qty":1}`, user, http.StatusBadRequest, "Product doesn't exist"},
		{"negative qty", `{"productId":"p1","qty":-2}`, user, http.StatusBadRequest, `"qty" must be greater than or equal to 0`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.HandleUpsert(rec, authedRequest(http.MethodPost, tt.body, tt.user))

			assert.Equal(t, tt.status, rec.Code)
			var env apierr.Envelope
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
			assert.False(t, env.Success)
			assert.Equal(t, tt.message, env.Message)
		})
	}
}
