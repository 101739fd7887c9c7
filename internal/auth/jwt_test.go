package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func bearerRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestJWTResolver_RoundTrip(t *testing.T) {
	resolver := NewJWTResolver(testSecret)

	token, err := resolver.IssueToken(model.AuthContext{UserID: "S1", Role: model.RoleSeller}, time.Hour)
	require.NoError(t, err)

	ac, err := resolver.Resolve(bearerRequest(token))
	require.NoError(t, err)
	assert.Equal(t, "S1", ac.UserID)
	assert.Equal(t, model.RoleSeller, ac.Role)
	assert.True(t, ac.IsSeller())
}

func TestJWTResolver_SubjectFallback(t *testing.T) {
	resolver := NewJWTResolver(testSecret)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "U1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	ac, err := resolver.Resolve(bearerRequest(signed))
	require.NoError(t, err)
	assert.Equal(t, "U1", ac.UserID)
	assert.Equal(t, model.RoleUser, ac.Role)
}

func TestJWTResolver_Rejects(t *testing.T) {
	resolver := NewJWTResolver(testSecret)

	expired, err := resolver.IssueToken(model.AuthContext{UserID: "U1"}, -time.Minute)
	require.NoError(t, err)

	otherKey, err := NewJWTResolver("other-secret").IssueToken(model.AuthContext{UserID: "U1"}, time.Hour)
	require.NoError(t, err)

	noUser, err := resolver.IssueToken(model.AuthContext{}, time.Hour)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": "U1"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "Expired token", header: "Bearer " + expired},
		{name: "Wrong signing key", header: "Bearer " + otherKey},
		{name: "Missing user id", header: "Bearer " + noUser},
		{name: "Unsigned token", header: "Bearer " + unsigned},
		{name: "Garbage token", header: "Bearer not-a-token"},
		{name: "Wrong scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "No token", header: "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
			req.Header.Set("Authorization", tt.header)

			_, err := resolver.Resolve(req)

			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrNoCredentials)
		})
	}
}

func TestJWTResolver_NoHeader(t *testing.T) {
	_, err := NewJWTResolver(testSecret).Resolve(bearerRequest(""))

	assert.ErrorIs(t, err, ErrNoCredentials)
}
