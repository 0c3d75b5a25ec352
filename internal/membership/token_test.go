package membership

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer("secret", time.Hour)
	require.NoError(t, err)
	user := &User{ID: uuid.New(), Username: "crio.do"}

	token, err := issuer.Issue(user)
	require.NoError(t, err)

	got, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Username, got.Username)
}

func TestTokenRejected(t *testing.T) {
	issuer, err := NewTokenIssuer("secret", time.Hour)
	require.NoError(t, err)
	other, err := NewTokenIssuer("other-secret", time.Hour)
	require.NoError(t, err)
	user := &User{ID: uuid.New(), Username: "crio.do"}

	forged, err := other.Issue(user)
	require.NoError(t, err)
	_, err = issuer.Verify(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := NewTokenIssuer("secret", time.Hour)
	require.NoError(t, err)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.Issue(user)
	require.NoError(t, err)
	_, err = issuer.Verify(old)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestNewTokenIssuerRequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour)
	assert.Error(t, err)
}
