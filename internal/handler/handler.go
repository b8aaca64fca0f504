package handler

import (
	"github.com/labstack/echo/v4"

	"brokerweb/internal/auth"
	"brokerweb/internal/errors"
	"brokerweb/internal/guard"
	"brokerweb/internal/model"
)

// requireSession returns the request's session or the mapped HTTP error. The
// route guard has usually answered first; this is the handler-level check for
// endpoints mounted outside a guarded group.
func requireSession(c echo.Context) (*model.Session, *echo.HTTPError) {
	sess, err := auth.SessionFrom(c)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return nil, echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	if sess == nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrSessionExpired)
		return nil, echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return sess, nil
}

// sessionResponse pairs the user with their canonical landing path.
func sessionResponse(sess *model.Session) SessionResponse {
	return SessionResponse{
		User: sess.User,
		Home: guard.DashboardRoot(guard.ParseRole(sess.User.Role)),
	}
}

// mapError converts a service error into an echo HTTP error.
func mapError(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
