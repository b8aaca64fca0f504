package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"brokerweb/internal/errors"
	"brokerweb/internal/service"
	"brokerweb/internal/upstream"
)

// OwnerHandler serves the owner portal.
type OwnerHandler struct {
	owners     service.OwnerService
	properties service.PropertyService
}

// NewOwnerHandler creates a new owner handler.
func NewOwnerHandler(owners service.OwnerService, properties service.PropertyService) *OwnerHandler {
	return &OwnerHandler{
		owners:     owners,
		properties: properties,
	}
}

// Dashboard godoc
// @Summary The logged-in owner's property and earnings summary
// @Tags owner
// @Produce json
// @Success 200 {object} model.OwnerDashboard
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /owner/dashboard [get]
func (h *OwnerHandler) Dashboard(c echo.Context) error {
	sess, hErr := requireSession(c)
	if hErr != nil {
		return hErr
	}

	dash, err := h.owners.OwnDashboard(c.Request().Context(), sess)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dash)
}

// Properties godoc
// @Summary The logged-in owner's listings
// @Tags owner
// @Produce json
// @Success 200 {array} model.Property
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /owner/properties [get]
func (h *OwnerHandler) Properties(c echo.Context) error {
	sess, hErr := requireSession(c)
	if hErr != nil {
		return hErr
	}
	if sess.User.LinkedID == "" {
		return mapError(fmt.Errorf("%w: no owner record linked to this account", errors.ErrForbidden))
	}

	props, err := h.properties.List(c.Request().Context(), upstream.PropertyFilter{OwnerID: sess.User.LinkedID})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, props)
}
