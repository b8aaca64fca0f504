package auth

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "brokerweb/internal/errors"
	"brokerweb/internal/model"
	"brokerweb/internal/session"
)

const (
	ctxSession = "auth.session"
	ctxSID     = "auth.sid"
	ctxErr     = "auth.resolve_error"
)

// Verifier is the slice of the backend client the resolver needs.
type Verifier interface {
	Me(ctx context.Context, token string) (*model.User, error)
}

// Resolver rehydrates the session for each request: cookie -> session store
// -> periodic re-verification against the backend. The outcome is tri-state:
// present, absent, or unresolved (verification could not complete).
type Resolver struct {
	jwt            *JWTService
	store          *session.Store
	backend        Verifier
	verifyInterval time.Duration
}

// NewResolver creates a session resolver.
func NewResolver(jwt *JWTService, store *session.Store, backend Verifier, verifyInterval time.Duration) *Resolver {
	return &Resolver{
		jwt:            jwt,
		store:          store,
		backend:        backend,
		verifyInterval: verifyInterval,
	}
}

// Middleware resolves the session once per request and stashes the result in
// the echo context for guards and handlers.
func (r *Resolver) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, sid, err := r.resolve(c)
			if err != nil {
				c.Set(ctxErr, err)
			} else if sess != nil {
				c.Set(ctxSession, sess)
				c.Set(ctxSID, sid)
			}
			return next(c)
		}
	}
}

func (r *Resolver) resolve(c echo.Context) (*model.Session, string, error) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, "", nil
	}

	sid, err := r.jwt.ValidateSessionToken(cookie.Value)
	if err != nil {
		// Tampered or expired cookie: treat as logged out.
		r.jwt.ClearCookie(c)
		return nil, "", nil
	}

	ctx := c.Request().Context()
	sess, verifiedAt, err := r.store.Get(ctx, sid)
	if err != nil || sess == nil {
		return nil, "", nil
	}

	if time.Since(verifiedAt) > r.verifyInterval {
		user, err := r.backend.Me(ctx, sess.Token)
		switch {
		case err == nil:
			if err := r.store.MarkVerified(ctx, sid, sess.Token, *user); err == nil {
				sess.User = *user
			}
		case errors.Is(err, apperrors.ErrSessionExpired):
			// Dead token: tear everything down, token and cached user both.
			_ = r.store.Delete(ctx, sid)
			r.jwt.ClearCookie(c)
			return nil, "", nil
		default:
			// Could not ask the backend. The session is neither valid nor
			// invalid yet; guards must answer neutrally, not redirect.
			return nil, "", apperrors.ErrSessionUnresolved
		}
	}

	_ = r.store.Touch(ctx, sid)
	return sess, sid, nil
}

// SessionFrom reports the request's resolution outcome. It satisfies
// guard.SessionResolver.
func SessionFrom(c echo.Context) (*model.Session, error) {
	if err, ok := c.Get(ctxErr).(error); ok && err != nil {
		return nil, err
	}
	sess, _ := c.Get(ctxSession).(*model.Session)
	return sess, nil
}

// SessionIDFrom returns the request's session ID, empty when logged out.
func SessionIDFrom(c echo.Context) string {
	sid, _ := c.Get(ctxSID).(string)
	return sid
}
