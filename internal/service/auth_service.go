package service

import (
	"context"
	"fmt"

	"brokerweb/internal/auth"
	apperrors "brokerweb/internal/errors"
	"brokerweb/internal/model"
	"brokerweb/internal/session"
	"brokerweb/internal/upstream"
)

// AuthBackend is the slice of the backend client the auth service needs.
type AuthBackend interface {
	Login(ctx context.Context, email, password string) (*upstream.LoginResult, error)
	AdminLogin(ctx context.Context, email, password string) (*upstream.LoginResult, error)
	Register(ctx context.Context, name, email, password, role string) (*upstream.LoginResult, error)
	ChangePassword(ctx context.Context, token, current, updated string) error
}

// AuthService handles login, registration and session lifecycle.
type AuthService interface {
	Login(ctx context.Context, email, password string, admin bool) (cookieToken string, sess *model.Session, err error)
	Register(ctx context.Context, name, email, password, role string) (cookieToken string, sess *model.Session, err error)
	Logout(ctx context.Context, sid string) error
	ChangePassword(ctx context.Context, sess *model.Session, current, updated string) error
}

type authService struct {
	backend AuthBackend
	store   *session.Store
	jwt     *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(backend AuthBackend, store *session.Store, jwt *auth.JWTService) AuthService {
	return &authService{
		backend: backend,
		store:   store,
		jwt:     jwt,
	}
}

// Login authenticates against the backend and establishes a session. The
// session is only created when the backend hands back both a token and a
// user record; a partial response establishes nothing.
func (s *authService) Login(ctx context.Context, email, password string, admin bool) (string, *model.Session, error) {
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", apperrors.ErrValidation)
	}

	login := s.backend.Login
	if admin {
		login = s.backend.AdminLogin
	}

	res, err := login(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	return s.establish(ctx, res)
}

// Register creates a back-office account and logs the new user straight in.
func (s *authService) Register(ctx context.Context, name, email, password, role string) (string, *model.Session, error) {
	if name == "" || email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: name, email and password are required", apperrors.ErrValidation)
	}

	res, err := s.backend.Register(ctx, name, email, password, role)
	if err != nil {
		return "", nil, err
	}
	return s.establish(ctx, res)
}

// Logout destroys the stored session. Token and cached user are removed
// together; neither survives alone.
func (s *authService) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	return s.store.Delete(ctx, sid)
}

// ChangePassword forwards a password change using the session's bearer token.
func (s *authService) ChangePassword(ctx context.Context, sess *model.Session, current, updated string) error {
	if sess == nil || !sess.Valid() {
		return apperrors.ErrSessionExpired
	}
	if current == "" || updated == "" {
		return fmt.Errorf("%w: current and new password are required", apperrors.ErrValidation)
	}
	return s.backend.ChangePassword(ctx, sess.Token, current, updated)
}

func (s *authService) establish(ctx context.Context, res *upstream.LoginResult) (string, *model.Session, error) {
	sess := model.Session{Token: res.AccessToken, User: res.User}
	if !sess.Valid() {
		// A token without a user (or vice versa) must not become a session.
		return "", nil, fmt.Errorf("%w: incomplete login response", apperrors.ErrUpstreamUnavailable)
	}

	sid := auth.NewSessionID()
	if err := s.store.Save(ctx, sid, sess); err != nil {
		return "", nil, fmt.Errorf("persist session: %w", err)
	}

	cookieToken, err := s.jwt.GenerateSessionToken(sid)
	if err != nil {
		_ = s.store.Delete(ctx, sid)
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	return cookieToken, &sess, nil
}
