package auth

import (
	"context"
	"errors"
	"net/http"

	"storefront/internal/model"
)

// ErrNoCredentials is returned by a Resolver when the request carries none of
// the credentials it understands.
var ErrNoCredentials = errors.New("no credentials")

// Resolver turns request credentials into the caller identity.
type Resolver interface {
	Resolve(r *http.Request) (model.AuthContext, error)
}

// ChainResolver tries each resolver in order. The first one that finds
// credentials decides the outcome.
type ChainResolver []Resolver

func (c ChainResolver) Resolve(r *http.Request) (model.AuthContext, error) {
	for _, resolver := range c {
		ac, err := resolver.Resolve(r)
		if errors.Is(err, ErrNoCredentials) {
			continue
		}
		return ac, err
	}
	return model.AuthContext{}, ErrNoCredentials
}

type contextKey struct{}

// WithAuthContext returns a copy of ctx carrying ac.
func WithAuthContext(ctx context.Context, ac model.AuthContext) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

// FromContext returns the identity stored by WithAuthContext. The zero value
// is returned for anonymous requests.
func FromContext(ctx context.Context) model.AuthContext {
	ac, _ := ctx.Value(contextKey{}).(model.AuthContext)
	return ac
}
