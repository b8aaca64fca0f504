package guard

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"brokerweb/internal/model"
)

func staticResolver(sess *model.Session, err error) SessionResolver {
	return func(echo.Context) (*model.Session, error) {
		return sess, err
	}
}

func performGuarded(t *testing.T, resolve SessionResolver, target string, roles ...Role) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	handler := Require(resolve, roles...)(func(c echo.Context) error {
		return c.String(http.StatusOK, "granted")
	})

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(target)
	err := handler(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"admin", RoleAdmin},
		{"ADMIN", RoleAdmin},
		{"owner", RoleOwner},
		{"agent", RoleAgent},
		{" Agent ", RoleAgent},
		{"superuser", RoleUnknown},
		{"", RoleUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseRole(tt.in), "parse %q", tt.in)
	}
}

func TestDashboardRoot(t *testing.T) {
	assert.Equal(t, "/owner", DashboardRoot(RoleOwner))
	assert.Equal(t, "/agent", DashboardRoot(RoleAgent))
	assert.Equal(t, "/admin", DashboardRoot(RoleAdmin))
	assert.Equal(t, "/admin", DashboardRoot(RoleUnknown))
}

func TestRequire_AbsentSessionRedirectsToLoginWithNext(t *testing.T) {
	rec := performGuarded(t, staticResolver(nil, nil), "/agent/inquiries", RoleAgent)

	assert.Equal(t, http.StatusFound, rec.Code)
	loc := rec.Header().Get(echo.HeaderLocation)
	assert.Equal(t, LoginPath+"?next="+url.QueryEscape("/agent/inquiries"), loc)
}

func TestRequire_PartialSessionTreatedAsAbsent(t *testing.T) {
	// A token without a cached user is not a session.
	rec := performGuarded(t, staticResolver(&model.Session{Token: "tok"}, nil), "/admin", RoleAdmin)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderLocation), LoginPath)
}

func TestRequire_UnresolvedSessionIsNeutral(t *testing.T) {
	rec := performGuarded(t, staticResolver(nil, errors.New("backend unreachable")), "/admin", RoleAdmin)

	// No allow/deny decision while resolution is pending: never a redirect.
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Empty(t, rec.Header().Get(echo.HeaderLocation))
}

func TestRequire_DisallowedRoleGoesToItsOwnRoot(t *testing.T) {
	sess := &model.Session{Token: "tok", User: model.User{ID: "u1", Role: "owner"}}
	rec := performGuarded(t, staticResolver(sess, nil), "/admin", RoleAdmin)

	assert.Equal(t, http.StatusFound, rec.Code)
	// An owner bounced off the admin subtree lands on the owner root, never
	// the generic admin fallback.
	assert.Equal(t, "/owner", rec.Header().Get(echo.HeaderLocation))
}

func TestRequire_UnknownRoleFallsBackToAdminRoot(t *testing.T) {
	sess := &model.Session{Token: "tok", User: model.User{ID: "u1", Role: "helpdesk"}}
	rec := performGuarded(t, staticResolver(sess, nil), "/owner", RoleOwner)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get(echo.HeaderLocation))
}

func TestRequire_EmptyAllowListAdmitsAnyAuthenticatedRole(t *testing.T) {
	for _, role := range []string{"admin", "owner", "agent"} {
		sess := &model.Session{Token: "tok", User: model.User{ID: "u1", Role: role}}
		rec := performGuarded(t, staticResolver(sess, nil), "/account")
		assert.Equal(t, http.StatusOK, rec.Code, "role %s", role)
	}
}

func TestRequire_AllowedRolePasses(t *testing.T) {
	sess := &model.Session{Token: "tok", User: model.User{ID: "u1", Role: "agent"}}
	rec := performGuarded(t, staticResolver(sess, nil), "/agent", RoleAgent, RoleAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "granted", rec.Body.String())
}

func TestRedirectHandler(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{"owner", "/owner"},
		{"agent", "/agent"},
		{"admin", "/admin"},
		{"mystery", "/admin"},
	}

	for _, tt := range tests {
		e := echo.New()
		sess := &model.Session{Token: "tok", User: model.User{ID: "u1", Role: tt.role}}
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := RedirectHandler(staticResolver(sess, nil))(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, tt.want, rec.Header().Get(echo.HeaderLocation), "role %s", tt.role)
	}
}

func TestRedirectHandler_AbsentSession(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := RedirectHandler(staticResolver(nil, nil))(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderLocation), LoginPath)
}
