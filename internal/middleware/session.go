package middleware // middleware provides shared request processing for handlers

import (
    "github.com/labstack/echo/v4" // echo provides middleware chaining and context

    "github.com/campus-events/bulletin/internal/session"
)

// identityKey is the context key under which the resolved session identity
// is stored for downstream middleware and handlers.
const identityKey = "identity"

// LoadIdentity returns middleware that resolves the session cookie into a
// typed session.Identity and stores it in the request context.  It never
// rejects a request: a missing, tampered or expired cookie simply yields
// the Anonymous identity.  Role enforcement happens in the gate middleware
// and in handlers, all reading the same context value.
func LoadIdentity(m *session.Manager) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            ident := session.Identity{}
            if cookie, err := c.Cookie(session.CookieName); err == nil {
                ident = m.Resolve(c.Request().Context(), cookie.Value)
            }
            c.Set(identityKey, ident)
            return next(c)
        }
    }
}

// CurrentIdentity returns the identity stored by LoadIdentity, or the
// Anonymous identity when the middleware did not run.
func CurrentIdentity(c echo.Context) session.Identity {
    if v, ok := c.Get(identityKey).(session.Identity); ok {
        return v
    }
    return session.Identity{}
}
