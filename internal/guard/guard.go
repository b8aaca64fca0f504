package guard

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"brokerweb/internal/model"
)

// Role is the access class of an authenticated user. The set is closed:
// anything the backend sends outside it parses to RoleUnknown and falls back
// to the admin root, the same default the redirect uses.
type Role int

const (
	RoleUnknown Role = iota
	RoleAdmin
	RoleOwner
	RoleAgent
)

// ParseRole maps the backend's role string onto the closed set,
// case-insensitively.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin
	case "owner":
		return RoleOwner
	case "agent":
		return RoleAgent
	default:
		return RoleUnknown
	}
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleOwner:
		return "owner"
	case RoleAgent:
		return "agent"
	default:
		return "unknown"
	}
}

// LoginPath is where unauthenticated users are sent. The original target is
// carried in the next parameter so login can return there.
const LoginPath = "/auth/login"

// DashboardRoot maps a role to its canonical dashboard root. The allow-list
// check and the generic /dashboard redirect both go through this table so the
// two can never drift apart.
func DashboardRoot(r Role) string {
	switch r {
	case RoleOwner:
		return "/owner"
	case RoleAgent:
		return "/agent"
	default:
		return "/admin"
	}
}

// SessionResolver reports the session attached to the current request.
// err != nil means resolution itself failed (the backend could not be asked
// whether the token is still good); a nil session with nil err means
// resolved-and-absent.
type SessionResolver func(c echo.Context) (*model.Session, error)

// Require gates a route subtree to the given roles. With no roles, any
// authenticated session passes.
//
// Decision order matters: an unresolved session must produce a neutral
// retry answer, never a login redirect.
func Require(resolve SessionResolver, roles ...Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := resolve(c)
			if err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "verifying session, retry shortly")
			}
			if !sess.Valid() {
				return c.Redirect(http.StatusFound, loginRedirect(c.Request().RequestURI))
			}
			if len(roles) == 0 {
				return next(c)
			}
			role := ParseRole(sess.User.Role)
			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}
			return c.Redirect(http.StatusFound, DashboardRoot(role))
		}
	}
}

// RedirectHandler serves the generic /dashboard entry point: send the session
// to its role's canonical root.
func RedirectHandler(resolve SessionResolver) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := resolve(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "verifying session, retry shortly")
		}
		if !sess.Valid() {
			return c.Redirect(http.StatusFound, loginRedirect(c.Request().RequestURI))
		}
		return c.Redirect(http.StatusFound, DashboardRoot(ParseRole(sess.User.Role)))
	}
}

func loginRedirect(target string) string {
	if target == "" {
		return LoginPath
	}
	return LoginPath + "?next=" + url.QueryEscape(target)
}
