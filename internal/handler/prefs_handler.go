package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"brokerweb/internal/auth"
	"brokerweb/internal/session"
)

// PrefsHandler persists per-session UI preferences.
type PrefsHandler struct {
	store *session.Store
}

// NewPrefsHandler creates a new preferences handler.
func NewPrefsHandler(store *session.Store) *PrefsHandler {
	return &PrefsHandler{store: store}
}

// ThemeRequest sets the UI theme.
type ThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}

// GetTheme godoc
// @Summary The stored UI theme
// @Tags prefs
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /prefs/theme [get]
func (h *PrefsHandler) GetTheme(c echo.Context) error {
	if _, hErr := requireSession(c); hErr != nil {
		return hErr
	}

	theme, err := h.store.Theme(c.Request().Context(), auth.SessionIDFrom(c))
	if err != nil {
		return mapError(err)
	}
	if theme == "" {
		theme = "light"
	}
	return c.JSON(http.StatusOK, map[string]string{"theme": theme})
}

// SetTheme godoc
// @Summary Persist the UI theme
// @Tags prefs
// @Accept json
// @Produce json
// @Param request body ThemeRequest true "Theme"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /prefs/theme [put]
func (h *PrefsHandler) SetTheme(c echo.Context) error {
	if _, hErr := requireSession(c); hErr != nil {
		return hErr
	}

	var req ThemeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.store.SaveTheme(c.Request().Context(), auth.SessionIDFrom(c), req.Theme); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"theme": req.Theme})
}
