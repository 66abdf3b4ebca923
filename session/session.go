// Package session gives the dispatchers read access to the session state of
// the incoming request.
package session

import (
	"context"
	"net/http"
)

// AccessTokenCookie is the cookie holding the bearer token of the session.
const AccessTokenCookie = "accessToken"

// Store reads named session values. Reads are synchronous and never fail; a
// missing value is reported through the boolean.
type Store interface {
	Get(name string) (string, bool)
}

type contextKey struct{}

// WithStore returns a copy of ctx that carries store.
func WithStore(ctx context.Context, store Store) context.Context {
	return context.WithValue(ctx, contextKey{}, store)
}

// FromContext returns the store carried by ctx, or nil.
func FromContext(ctx context.Context) Store {
	store, _ := ctx.Value(contextKey{}).(Store)

	return store
}

// Token reads the access token from store. A nil store has no token.
func Token(store Store) (string, bool) {
	if store == nil {
		return "", false
	}

	return store.Get(AccessTokenCookie)
}

// CookieStore serves values from the cookies of an incoming request.
type CookieStore struct {
	req *http.Request
}

func NewCookieStore(req *http.Request) *CookieStore {
	return &CookieStore{req: req}
}

func (s *CookieStore) Get(name string) (string, bool) {
	if s == nil || s.req == nil {
		return "", false
	}

	cookie, err := s.req.Cookie(name)
	if err != nil {
		return "", false
	}

	return cookie.Value, true
}

// MapStore is a fixed set of session values.
type MapStore map[string]string

func (m MapStore) Get(name string) (string, bool) {
	value, ok := m[name]

	return value, ok
}
