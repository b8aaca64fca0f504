package handler

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"brokerweb/internal/service"
	"brokerweb/internal/upstream"
)

// PublicHandler serves the unauthenticated site: the catalog and the
// lead-capture form.
type PublicHandler struct {
	properties service.PropertyService
	inquiries  service.InquiryService

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewPublicHandler creates a new public handler.
func NewPublicHandler(properties service.PropertyService, inquiries service.InquiryService) *PublicHandler {
	return &PublicHandler{
		properties: properties,
		inquiries:  inquiries,
		limiters:   make(map[string]*rate.Limiter),
	}
}

// ContactRequest represents a public inquiry submission.
type ContactRequest struct {
	Name        string `json:"name" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	Message     string `json:"message"`
	InquiryType string `json:"inquiry_type" validate:"omitempty,oneof=buy sell rent general"`
	PropertyID  string `json:"property_id"`
	SourcePage  string `json:"source_page"`
}

// limiter returns the per-IP rate limiter for contact submissions.
func (h *PublicHandler) limiter(ip string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()

	l, ok := h.limiters[ip]
	if !ok {
		l = rate.NewLimiter(rate.Limit(1), 5)
		h.limiters[ip] = l
	}
	return l
}

// Home godoc
// @Summary Landing page data
// @Tags public
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *PublicHandler) Home(c echo.Context) error {
	featured, err := h.properties.Featured(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"featured": featured,
	})
}

// ListProperties godoc
// @Summary List the property catalog
// @Tags public
// @Produce json
// @Param property_type query string false "Filter by type"
// @Param status query string false "Filter by status"
// @Success 200 {array} model.Property
// @Failure 502 {object} errors.ErrorResponse
// @Router /properties [get]
func (h *PublicHandler) ListProperties(c echo.Context) error {
	filter := upstream.PropertyFilter{
		PropertyType: c.QueryParam("property_type"),
		Status:       c.QueryParam("status"),
	}

	props, err := h.properties.List(c.Request().Context(), filter)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, props)
}

// GetProperty godoc
// @Summary Property detail
// @Tags public
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} model.Property
// @Failure 404 {object} errors.ErrorResponse
// @Router /properties/{id} [get]
func (h *PublicHandler) GetProperty(c echo.Context) error {
	prop, err := h.properties.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, prop)
}

// Contact godoc
// @Summary Submit a public inquiry
// @Tags public
// @Accept json
// @Produce json
// @Param request body ContactRequest true "Inquiry"
// @Success 201 {object} map[string]bool
// @Failure 400 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /contact [post]
func (h *PublicHandler) Contact(c echo.Context) error {
	if !h.limiter(c.RealIP()).Allow() {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many submissions, slow down")
	}

	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.inquiries.SubmitPublic(c.Request().Context(), upstream.InquiryInput{
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		Message:     req.Message,
		InquiryType: req.InquiryType,
		PropertyID:  req.PropertyID,
		SourcePage:  req.SourcePage,
	}); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, map[string]bool{"submitted": true})
}
