package session

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie issued to browsers.
const CookieName = "bulletin_session"

// Manager bundles the store, the signing secret and the session lifetime.
// The cookie value is an HS256 JWT carrying only the opaque session id
// ("sid" claim); all real session data stays server-side.
type Manager struct {
	Store  Store
	Secret string
	TTL    time.Duration
}

func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	return &Manager{Store: store, Secret: secret, TTL: ttl}
}

// Issue creates a server-side session for ident and returns the cookie to
// set on the response.
func (m *Manager) Issue(ctx context.Context, ident Identity) (*http.Cookie, error) {
	sid, err := m.Store.Create(ctx, ident, m.TTL)
	if err != nil {
		return nil, err
	}
	exp := time.Now().Add(m.TTL)
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": exp.Unix(),
		"iat": time.Now().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.Secret))
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Resolve maps a cookie value back to an Identity. Any failure along the
// way (bad signature, expired token, unknown session id) yields Anonymous;
// a broken cookie is never a request error.
func (m *Manager) Resolve(ctx context.Context, cookieValue string) Identity {
	sid, ok := m.decode(cookieValue)
	if !ok {
		return Identity{}
	}
	ident, found, err := m.Store.Get(ctx, sid)
	if err != nil || !found {
		return Identity{}
	}
	return ident
}

// Drop deletes the server-side session behind the cookie value and returns
// an expired cookie that clears it from the browser.
func (m *Manager) Drop(ctx context.Context, cookieValue string) *http.Cookie {
	if sid, ok := m.decode(cookieValue); ok {
		_ = m.Store.Delete(ctx, sid)
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// decode verifies the cookie JWT and extracts the session id.
func (m *Manager) decode(cookieValue string) (string, bool) {
	if cookieValue == "" {
		return "", false
	}
	tok, err := jwt.Parse(cookieValue, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(m.Secret), nil
	})
	if err != nil || !tok.Valid {
		return "", false
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", false
	}
	return sid, true
}
