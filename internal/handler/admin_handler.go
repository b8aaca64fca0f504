package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"brokerweb/internal/service"
	"brokerweb/internal/upstream"
	"brokerweb/internal/workflow"
)

// AdminHandler serves the back-office console: triage, assignment, owners,
// agents and the stats board.
type AdminHandler struct {
	dashboard  service.DashboardService
	inquiries  service.InquiryService
	owners     service.OwnerService
	agents     service.AgentService
	properties service.PropertyService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(
	dashboard service.DashboardService,
	inquiries service.InquiryService,
	owners service.OwnerService,
	agents service.AgentService,
	properties service.PropertyService,
) *AdminHandler {
	return &AdminHandler{
		dashboard:  dashboard,
		inquiries:  inquiries,
		owners:     owners,
		agents:     agents,
		properties: properties,
	}
}

// TriageRequest moves an inquiry within the triage loop.
type TriageRequest struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required"`
}

// AssignRequest hands an inquiry to an agent.
type AssignRequest struct {
	AgentID string `json:"agent_id" validate:"required"`
}

// OwnerRequest creates or updates an owner.
type OwnerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	BankDetails string `json:"bank_details"`
	Notes       string `json:"notes"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// PropertyRequest publishes a listing.
type PropertyRequest struct {
	Title        string   `json:"title" validate:"required"`
	PropertyType string   `json:"property_type" validate:"required"`
	Location     string   `json:"location" validate:"required"`
	Sector       string   `json:"sector"`
	Price        string   `json:"price" validate:"required"`
	PriceLabel   string   `json:"price_label"`
	Description  string   `json:"description"`
	Beds         int      `json:"beds"`
	Baths        int      `json:"baths"`
	Area         string   `json:"area"`
	Amenities    []string `json:"amenities"`
	Images       []string `json:"images"`
	OwnerID      string   `json:"owner_id"`
}

// Stats godoc
// @Summary Admin dashboard counters
// @Tags admin
// @Produce json
// @Success 200 {object} model.DashboardStats
// @Failure 401 {object} errors.ErrorResponse
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	sess, hErr := requireSession(c)
	if hErr != nil {
		return hErr
	}

	stats, err := h.dashboard.Stats(c.Request().Context(), sess)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// ListInquiries godoc
// @Summary Inquiry roster with conversation previews
// @Tags admin
// @Produce json
// @Param status query string false "Filter by status"
// @Param inquiry_type query string false "Filter by type"
// @Success 200 {array} service.InquiryListItem
// @Failure 401 {object} errors.ErrorResponse
// @Router /admin/inquiries [get]
func (h *AdminHandler) ListInquiries(c echo.Context) error {
	sess, hErr := requireSession(c)
	if hErr != nil {
		return hErr
	}

	items, err := h.inquiries.List(c.Request().Context(), sess, upstream.InquiryFilter{
		Status:      c.QueryParam("status"),
		InquiryType: c.QueryParam("inquiry_type"),
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// GetInquiry godoc
// @Summary Inquiry detail with full conversation, newest first
// @Tags admin
// @Produce json
// @Param id path string true "Inquiry ID"
// @Success 200 {object} model.Inquiry
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/inquiries/{id} [get]
func (h *AdminHandler) GetInquiry(c echo.Context) error {
	sess, hErr := requireSession(c)
	if hErr != nil {
		return hErr
	}

	inq, err := h.inquiries.Detail(c.Request().Context(), sess, c.Param("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, inq)
}

// Triage godoc
// @Summary Move an inquiry within the triage loop
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Param request body TriageRequest true "Transition"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/inquiries/{id}/status [put]
func (h *AdminHandler) Triage(c echo.Context) error {
	sess, hErr := requireSession(c)
	if hErr != nil {
		return hErr
	}

	var req TriageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.inquiries.TriageStatus(c.Request().Context(), sess, c.Param("id"),
		workflow.Status(req.From), workflow.Status(req.To))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": req.To})
}

// Assign godoc
// @Summary Assign an inquiry to an agent
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Param request body AssignRequest true "Agent"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/inquiries/{id}/assign [put]
func (h *AdminHandler) Assign(c echo.Context) error {
	sess, hErr := requireSession(c)
	if hErr != nil {
		return hErr
	}

	var req AssignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.inquiries.Assign(c.Request().Context(), sess, c.Param("id"), req.AgentID); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "inquiry assigned"})
}

// Unassign godoc
// @Summary Remove the assigned agent from an inquiry
// @Tags admin
// @Produce json
// @Param id path string true "Inquiry ID"
// @Success 200 {object} map[string]string
// @Router /admin/inquiries/{id}/unassign [put]
func (h *AdminHandler) Unassign(c echo.Context) error {
	sess, hErr := requireSession(c)
	if hErr != nil {
		return hErr
	}

	if err := h.inquiries.Unassign(c.Request().Context(), sess, c.Param("id")); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "inquiry unassigned"})
}

// ListOwners godoc
// @Summary Owner roster
// @Tags admin
// @Produce json
// @Success 200 {array} model.Owner
// @Router /admin/owners [get]
func (h *AdminHandler) ListOwners(c echo.Context) error {
	sess, hErr := requireSession(c)
	if hErr != nil {
		return hErr
	}

	owners, err := h.owners.List(c.Request().Context(), sess)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, owners)
}

// GetOwner godoc
// @Summary Owner detail
// @Tags admin
// @Produce json
// @Param id path string true "Owner ID"
// @Success 200 {object} model.Owner
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/owners/{id} [get]
func (h *AdminHandler) GetOwner(c echo.Context) error {
	sess, hErr := requireSession(c)
	if hErr != nil {
		return hErr
	}

	owner, err := h.owners.Get(c.Request().Context(), sess, c.Param("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, owner)
}

// CreateOwner godoc
// @Summary Register a new owner
// @Tags admin
// @Accept json
// @Produce json
// @Param request body OwnerRequest true "Owner"
// @Success 201 {object} model.Owner
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/owners [post]
func (h *AdminHandler) CreateOwner(c echo.Context) error {
	sess, hErr := requireSession(c)
	if hErr != nil {
		return hErr
	}

	var req OwnerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	owner, err := h.owners.Create(c.Request().Context(), sess, ownerInput(req))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, owner)
}

// UpdateOwner godoc
// @Summary Update an owner
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Owner ID"
// @Param request body OwnerRequest true "Owner"
// @Success 200 {object} model.Owner
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/owners/{id} [put]
func (h *AdminHandler) UpdateOwner(c echo.Context) error {
	sess, hErr := requireSession(c)
	if hErr != nil {
		return hErr
	}

	var req OwnerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	owner, err := h.owners.Update(c.Request().Context(), sess, c.Param("id"), ownerInput(req))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, owner)
}

// DeleteOwner godoc
// @Summary Remove an owner
// @Tags admin
// @Produce json
// @Param id path string true "Owner ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/owners/{id} [delete]
func (h *AdminHandler) DeleteOwner(c echo.Context) error {
	sess, hErr := requireSession(c)
	if hErr != nil {
		return hErr
	}

	if err := h.owners.Delete(c.Request().Context(), sess, c.Param("id")); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "owner removed"})
}

// OwnerDashboard godoc
// @Summary An owner's property and earnings summary
// @Tags admin
// @Produce json
// @Param id path string true "Owner ID"
// @Success 200 {object} model.OwnerDashboard
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/owners/{id}/dashboard [get]
func (h *AdminHandler) OwnerDashboard(c echo.Context) error {
	sess, hErr := requireSession(c)
	if hErr != nil {
		return hErr
	}

	dash, err := h.owners.Dashboard(c.Request().Context(), sess, c.Param("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dash)
}

// ListAgents godoc
// @Summary Agent roster
// @Tags admin
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {array} model.Agent
// @Router /admin/agents [get]
func (h *AdminHandler) ListAgents(c echo.Context) error {
	sess, hErr := requireSession(c)
	if hErr != nil {
		return hErr
	}

	agents, err := h.agents.List(c.Request().Context(), sess, c.QueryParam("status"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, agents)
}

// AgentWorkload godoc
// @Summary An agent's assigned inquiries and per-state totals
// @Tags admin
// @Produce json
// @Param id path string true "Agent ID"
// @Success 200 {object} model.AgentWorkload
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/agents/{id}/inquiries [get]
func (h *AdminHandler) AgentWorkload(c echo.Context) error {
	sess, hErr := requireSession(c)
	if hErr != nil {
		return hErr
	}

	workload, err := h.agents.Workload(c.Request().Context(), sess, c.Param("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, workload)
}

// CreateProperty godoc
// @Summary Publish a new listing
// @Tags admin
// @Accept json
// @Produce json
// @Param request body PropertyRequest true "Listing"
// @Success 201 {object} model.Property
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/properties [post]
func (h *AdminHandler) CreateProperty(c echo.Context) error {
	sess, hErr := requireSession(c)
	if hErr != nil {
		return hErr
	}

	var req PropertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	prop, err := h.properties.Create(c.Request().Context(), sess, upstream.PropertyInput{
		Title:        req.Title,
		PropertyType: req.PropertyType,
		Location:     req.Location,
		Sector:       req.Sector,
		Price:        req.Price,
		PriceLabel:   req.PriceLabel,
		Description:  req.Description,
		Beds:         req.Beds,
		Baths:        req.Baths,
		Area:         req.Area,
		Amenities:    req.Amenities,
		Images:       req.Images,
		OwnerID:      req.OwnerID,
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, prop)
}

func ownerInput(req OwnerRequest) upstream.OwnerInput {
	return upstream.OwnerInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		BankDetails: req.BankDetails,
		Notes:       req.Notes,
		Status:      req.Status,
	}
}
