package auth

import (
	"errors"
	"fmt"
	"net/http"

	"storefront/internal/model"

	"github.com/gorilla/sessions"
)

const (
	sessionUserKey = "user_id"
	sessionRoleKey = "role"
	sessionMaxAge  = 86400 * 30
)

// NewCookieStore creates a signed cookie store for storefront sessions.
func NewCookieStore(secret string) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// SessionResolver authenticates requests through a session cookie written by
// the storefront login flow.
type SessionResolver struct {
	store sessions.Store
	name  string
}

// NewSessionResolver creates a resolver reading the session called name.
func NewSessionResolver(store sessions.Store, name string) *SessionResolver {
	return &SessionResolver{store: store, name: name}
}

func (s *SessionResolver) Resolve(r *http.Request) (model.AuthContext, error) {
	if _, err := r.Cookie(s.name); errors.Is(err, http.ErrNoCookie) {
		return model.AuthContext{}, ErrNoCredentials
	}

	session, err := s.store.Get(r, s.name)
	if err != nil {
		return model.AuthContext{}, fmt.Errorf("invalid session: %w", err)
	}

	userID, _ := session.Values[sessionUserKey].(string)
	if userID == "" {
		return model.AuthContext{}, errors.New("session carries no user id")
	}
	role, _ := session.Values[sessionRoleKey].(string)

	return model.AuthContext{UserID: userID, Role: model.ParseRole(role)}, nil
}

// Save writes ac into the session cookie of the response.
func (s *SessionResolver) Save(w http.ResponseWriter, r *http.Request, ac model.AuthContext) error {
	session, err := s.store.Get(r, s.name)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	session.Values[sessionUserKey] = ac.UserID
	session.Values[sessionRoleKey] = string(ac.Role)
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
