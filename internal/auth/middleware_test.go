package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "brokerweb/internal/errors"
	"brokerweb/internal/model"
	"brokerweb/internal/session"
)

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

type fakeVerifier struct {
	user  *model.User
	err   error
	calls int
}

func (f *fakeVerifier) Me(_ context.Context, _ string) (*model.User, error) {
	f.calls++
	return f.user, f.err
}

func testUser() model.User {
	return model.User{ID: "u1", Name: "Meera", Email: "meera@example.com", Role: "agent", LinkedID: "A1"}
}

// buildRequest returns a context carrying a valid session cookie for sid.
func buildRequest(t *testing.T, e *echo.Echo, jwtSvc *JWTService, sid string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/agent", nil)
	if sid != "" {
		token, err := jwtSvc.GenerateSessionToken(sid)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func runResolve(t *testing.T, r *Resolver, c echo.Context) (*model.Session, error) {
	t.Helper()
	var sess *model.Session
	var resolveErr error
	h := r.Middleware()(func(c echo.Context) error {
		sess, resolveErr = SessionFrom(c)
		return nil
	})
	require.NoError(t, h(c))
	return sess, resolveErr
}

func TestResolver_NoCookieMeansAbsent(t *testing.T) {
	e := echo.New()
	jwtSvc := NewJWTService("secret", time.Hour)
	store := session.NewStore(newMapKV(), time.Hour)
	r := NewResolver(jwtSvc, store, &fakeVerifier{}, time.Hour)

	c, _ := buildRequest(t, e, jwtSvc, "")
	sess, err := runResolve(t, r, c)
	assert.NoError(t, err)
	assert.Nil(t, sess)
}

func TestResolver_FreshSessionSkipsVerification(t *testing.T) {
	e := echo.New()
	jwtSvc := NewJWTService("secret", time.Hour)
	store := session.NewStore(newMapKV(), time.Hour)
	verifier := &fakeVerifier{}
	r := NewResolver(jwtSvc, store, verifier, time.Hour)

	require.NoError(t, store.Save(context.Background(), "sid-1", model.Session{Token: "tok", User: testUser()}))

	c, _ := buildRequest(t, e, jwtSvc, "sid-1")
	sess, err := runResolve(t, r, c)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "u1", sess.User.ID)
	assert.Zero(t, verifier.calls, "recently verified session should not hit the backend")
}

func TestResolver_StaleSessionReverifies(t *testing.T) {
	e := echo.New()
	jwtSvc := NewJWTService("secret", time.Hour)
	kv := newMapKV()
	store := session.NewStore(kv, time.Hour)
	renamed := testUser()
	renamed.Name = "Meera K"
	verifier := &fakeVerifier{user: &renamed}
	r := NewResolver(jwtSvc, store, verifier, 0) // always stale

	require.NoError(t, store.Save(context.Background(), "sid-1", model.Session{Token: "tok", User: testUser()}))

	c, _ := buildRequest(t, e, jwtSvc, "sid-1")
	sess, err := runResolve(t, r, c)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, 1, verifier.calls)
	assert.Equal(t, "Meera K", sess.User.Name, "cached user refreshed from /auth/me")
}

func TestResolver_RejectedVerificationClearsEverything(t *testing.T) {
	e := echo.New()
	jwtSvc := NewJWTService("secret", time.Hour)
	kv := newMapKV()
	store := session.NewStore(kv, time.Hour)
	verifier := &fakeVerifier{err: apperrors.ErrSessionExpired}
	r := NewResolver(jwtSvc, store, verifier, 0)

	require.NoError(t, store.Save(context.Background(), "sid-1", model.Session{Token: "tok", User: testUser()}))

	c, rec := buildRequest(t, e, jwtSvc, "sid-1")
	sess, err := runResolve(t, r, c)
	assert.NoError(t, err)
	assert.Nil(t, sess)

	// Fully cleared: no stored session, and the cookie is expired.
	stored, _, _ := store.Get(context.Background(), "sid-1")
	assert.Nil(t, stored)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestResolver_UnreachableBackendIsUnresolved(t *testing.T) {
	e := echo.New()
	jwtSvc := NewJWTService("secret", time.Hour)
	store := session.NewStore(newMapKV(), time.Hour)
	verifier := &fakeVerifier{err: errors.New("connection refused")}
	r := NewResolver(jwtSvc, store, verifier, 0)

	require.NoError(t, store.Save(context.Background(), "sid-1", model.Session{Token: "tok", User: testUser()}))

	c, _ := buildRequest(t, e, jwtSvc, "sid-1")
	sess, err := runResolve(t, r, c)
	assert.Nil(t, sess)
	assert.ErrorIs(t, err, apperrors.ErrSessionUnresolved)

	// Unresolved is not logged out: the stored session survives.
	stored, _, _ := store.Get(context.Background(), "sid-1")
	assert.NotNil(t, stored)
}

func TestResolver_TamperedCookieMeansAbsent(t *testing.T) {
	e := echo.New()
	jwtSvc := NewJWTService("secret", time.Hour)
	store := session.NewStore(newMapKV(), time.Hour)
	r := NewResolver(jwtSvc, store, &fakeVerifier{}, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/agent", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	sess, err := runResolve(t, r, c)
	assert.NoError(t, err)
	assert.Nil(t, sess)
}

func TestJWTService_RoundTrip(t *testing.T) {
	jwtSvc := NewJWTService("secret", time.Hour)

	token, err := jwtSvc.GenerateSessionToken("sid-42")
	require.NoError(t, err)

	sid, err := jwtSvc.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sid-42", sid)

	_, err = jwtSvc.ValidateSessionToken(token + "x")
	assert.Error(t, err)

	other := NewJWTService("different-secret", time.Hour)
	_, err = other.ValidateSessionToken(token)
	assert.Error(t, err)
}
