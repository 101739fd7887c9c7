package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefront/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload issued to storefront users.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTResolver authenticates "Authorization: Bearer <token>" headers signed with HS256.
type JWTResolver struct {
	secret []byte
}

// NewJWTResolver creates a resolver verifying tokens with secret.
func NewJWTResolver(secret string) *JWTResolver {
	return &JWTResolver{secret: []byte(secret)}
}

func (j *JWTResolver) Resolve(r *http.Request) (model.AuthContext, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return model.AuthContext{}, ErrNoCredentials
	}

	scheme, tokenString, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
		return model.AuthContext{}, errors.New("invalid authorization header format")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return model.AuthContext{}, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return model.AuthContext{}, errors.New("invalid token")
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return model.AuthContext{}, errors.New("token carries no user id")
	}

	return model.AuthContext{UserID: userID, Role: model.ParseRole(claims.Role)}, nil
}

// IssueToken signs a token for ac that expires after ttl.
func (j *JWTResolver) IssueToken(ac model.AuthContext, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: ac.UserID,
		Role:   string(ac.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ac.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}
