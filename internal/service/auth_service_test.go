package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"brokerweb/internal/auth"
	apperrors "brokerweb/internal/errors"
	"brokerweb/internal/model"
	"brokerweb/internal/session"
	"brokerweb/internal/upstream"
)

// mapKV is an in-memory KV backing the session store in tests.
type mapKV struct {
	data map[string][]byte
}

func newMapKV() *mapKV { return &mapKV{data: make(map[string][]byte)} }

func (m *mapKV) Get(_ context.Context, key string) ([]byte, error) { return m.data[key], nil }
func (m *mapKV) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}
func (m *mapKV) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}
func (m *mapKV) Expire(_ context.Context, _ string, _ time.Duration) error { return nil }

// MockAuthBackend is a mock implementation of AuthBackend.
type MockAuthBackend struct {
	mock.Mock
}

func (m *MockAuthBackend) Login(ctx context.Context, email, password string) (*upstream.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*upstream.LoginResult), args.Error(1)
}

func (m *MockAuthBackend) AdminLogin(ctx context.Context, email, password string) (*upstream.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*upstream.LoginResult), args.Error(1)
}

func (m *MockAuthBackend) Register(ctx context.Context, name, email, password, role string) (*upstream.LoginResult, error) {
	args := m.Called(ctx, name, email, password, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*upstream.LoginResult), args.Error(1)
}

func (m *MockAuthBackend) ChangePassword(ctx context.Context, token, current, updated string) error {
	args := m.Called(ctx, token, current, updated)
	return args.Error(0)
}

func newAuthFixture(backend AuthBackend) (AuthService, *session.Store, *auth.JWTService) {
	store := session.NewStore(newMapKV(), time.Hour)
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	return NewAuthService(backend, store, jwtSvc), store, jwtSvc
}

func TestAuthService_Login(t *testing.T) {
	agentUser := model.User{ID: "u1", Name: "Meera", Email: "meera@example.com", Role: "agent"}

	tests := []struct {
		name        string
		email       string
		password    string
		admin       bool
		setupMock   func(*MockAuthBackend)
		expectedErr error
	}{
		{
			name:     "successful login",
			email:    "meera@example.com",
			password: "password123",
			setupMock: func(m *MockAuthBackend) {
				m.On("Login", mock.Anything, "meera@example.com", "password123").
					Return(&upstream.LoginResult{AccessToken: "tok-1", User: agentUser}, nil)
			},
		},
		{
			name:     "admin login uses the admin endpoint",
			email:    "admin@example.com",
			password: "password123",
			admin:    true,
			setupMock: func(m *MockAuthBackend) {
				m.On("AdminLogin", mock.Anything, "admin@example.com", "password123").
					Return(&upstream.LoginResult{
						AccessToken: "tok-2",
						User:        model.User{ID: "u2", Name: "Admin", Email: "admin@example.com", Role: "admin"},
					}, nil)
			},
		},
		{
			name:        "empty credentials rejected before any request",
			email:       "",
			password:    "",
			setupMock:   func(m *MockAuthBackend) {},
			expectedErr: apperrors.ErrValidation,
		},
		{
			name:     "bad credentials",
			email:    "meera@example.com",
			password: "wrong",
			setupMock: func(m *MockAuthBackend) {
				m.On("Login", mock.Anything, "meera@example.com", "wrong").
					Return(nil, apperrors.ErrSessionExpired)
			},
			expectedErr: apperrors.ErrSessionExpired,
		},
		{
			name:     "token without user establishes nothing",
			email:    "meera@example.com",
			password: "password123",
			setupMock: func(m *MockAuthBackend) {
				m.On("Login", mock.Anything, "meera@example.com", "password123").
					Return(&upstream.LoginResult{AccessToken: "tok-1"}, nil)
			},
			expectedErr: apperrors.ErrUpstreamUnavailable,
		},
		{
			name:     "user without token establishes nothing",
			email:    "meera@example.com",
			password: "password123",
			setupMock: func(m *MockAuthBackend) {
				m.On("Login", mock.Anything, "meera@example.com", "password123").
					Return(&upstream.LoginResult{User: agentUser}, nil)
			},
			expectedErr: apperrors.ErrUpstreamUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockBackend := new(MockAuthBackend)
			tt.setupMock(mockBackend)

			svc, store, jwtSvc := newAuthFixture(mockBackend)
			cookieToken, sess, err := svc.Login(context.Background(), tt.email, tt.password, tt.admin)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Empty(t, cookieToken)
				assert.Nil(t, sess)
			} else {
				require.NoError(t, err)
				require.NotNil(t, sess)
				assert.NotEmpty(t, cookieToken)

				// The cookie round-trips to a stored session.
				sid, err := jwtSvc.ValidateSessionToken(cookieToken)
				require.NoError(t, err)
				stored, _, err := store.Get(context.Background(), sid)
				require.NoError(t, err)
				require.NotNil(t, stored)
				assert.Equal(t, sess.Token, stored.Token)
				assert.Equal(t, sess.User.ID, stored.User.ID)
			}

			mockBackend.AssertExpectations(t)
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	mockBackend := new(MockAuthBackend)
	mockBackend.On("Register", mock.Anything, "New Agent", "new@example.com", "password123", "agent").
		Return(&upstream.LoginResult{
			AccessToken: "tok-3",
			User:        model.User{ID: "u3", Name: "New Agent", Email: "new@example.com", Role: "agent"},
		}, nil)

	svc, _, _ := newAuthFixture(mockBackend)
	cookieToken, sess, err := svc.Register(context.Background(), "New Agent", "new@example.com", "password123", "agent")
	require.NoError(t, err)
	assert.NotEmpty(t, cookieToken)
	require.NotNil(t, sess)
	assert.Equal(t, "agent", sess.User.Role)
	mockBackend.AssertExpectations(t)
}

func TestAuthService_Logout(t *testing.T) {
	mockBackend := new(MockAuthBackend)
	mockBackend.On("Login", mock.Anything, "meera@example.com", "password123").
		Return(&upstream.LoginResult{
			AccessToken: "tok-1",
			User:        model.User{ID: "u1", Name: "Meera", Email: "meera@example.com", Role: "agent"},
		}, nil)

	svc, store, jwtSvc := newAuthFixture(mockBackend)
	cookieToken, _, err := svc.Login(context.Background(), "meera@example.com", "password123", false)
	require.NoError(t, err)

	sid, err := jwtSvc.ValidateSessionToken(cookieToken)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(context.Background(), sid))

	stored, _, _ := store.Get(context.Background(), sid)
	assert.Nil(t, stored, "logout removes token and cached user together")
}

func TestAuthService_ChangePassword(t *testing.T) {
	sess := &model.Session{
		Token: "tok-1",
		User:  model.User{ID: "u1", Name: "Meera", Email: "meera@example.com", Role: "agent"},
	}

	t.Run("forwards with the session token", func(t *testing.T) {
		mockBackend := new(MockAuthBackend)
		mockBackend.On("ChangePassword", mock.Anything, "tok-1", "old", "new").Return(nil)

		svc, _, _ := newAuthFixture(mockBackend)
		assert.NoError(t, svc.ChangePassword(context.Background(), sess, "old", "new"))
		mockBackend.AssertExpectations(t)
	})

	t.Run("rejects without a session", func(t *testing.T) {
		mockBackend := new(MockAuthBackend)
		svc, _, _ := newAuthFixture(mockBackend)
		err := svc.ChangePassword(context.Background(), nil, "old", "new")
		assert.ErrorIs(t, err, apperrors.ErrSessionExpired)
		mockBackend.AssertNotCalled(t, "ChangePassword")
	})
}
