package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"brokerweb/internal/service"
	"brokerweb/internal/workflow"
)

// AgentHandler serves the agent portal: the personal workload and the
// pipeline actions.
type AgentHandler struct {
	agents    service.AgentService
	inquiries service.InquiryService
}

// NewAgentHandler creates a new agent handler.
func NewAgentHandler(agents service.AgentService, inquiries service.InquiryService) *AgentHandler {
	return &AgentHandler{
		agents:    agents,
		inquiries: inquiries,
	}
}

// AdvanceRequest moves an inquiry one step along the pipeline.
type AdvanceRequest struct {
	Target string `json:"target" validate:"required"`
	Note   string `json:"note"`
}

// LogRequest appends a conversation note.
type LogRequest struct {
	Message string `json:"message" validate:"required"`
}

// NextStateResponse reports the step after the current status.
type NextStateResponse struct {
	Next  string `json:"next,omitempty"`
	Label string `json:"label,omitempty"`
	Done  bool   `json:"done"`
}

// Workload godoc
// @Summary The logged-in agent's inquiries and per-state totals
// @Tags agent
// @Produce json
// @Success 200 {object} model.AgentWorkload
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /agent/workload [get]
func (h *AgentHandler) Workload(c echo.Context) error {
	sess, hErr := requireSession(c)
	if hErr != nil {
		return hErr
	}

	workload, err := h.agents.OwnWorkload(c.Request().Context(), sess)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, workload)
}

// GetInquiry godoc
// @Summary Inquiry detail for the agent portal
// @Tags agent
// @Produce json
// @Param id path string true "Inquiry ID"
// @Success 200 {object} model.Inquiry
// @Failure 404 {object} errors.ErrorResponse
// @Router /agent/inquiries/{id} [get]
func (h *AgentHandler) GetInquiry(c echo.Context) error {
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

// NextState godoc
// @Summary The pipeline step after the given status
// @Tags agent
// @Produce json
// @Param status query string true "Current status"
// @Success 200 {object} NextStateResponse
// @Router /agent/next-state [get]
func (h *AgentHandler) NextState(c echo.Context) error {
	if _, hErr := requireSession(c); hErr != nil {
		return hErr
	}

	next, ok := h.inquiries.ComputeNextState(workflow.Status(c.QueryParam("status")))
	if !ok {
		return c.JSON(http.StatusOK, NextStateResponse{Done: true})
	}
	return c.JSON(http.StatusOK, NextStateResponse{
		Next:  string(next),
		Label: workflow.Label(next),
	})
}

// Advance godoc
// @Summary Advance an inquiry along the pipeline
// @Tags agent
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Param request body AdvanceRequest true "Transition"
// @Success 200 {object} model.Inquiry
// @Failure 400 {object} errors.ErrorResponse
// @Router /agent/inquiries/{id}/advance [post]
func (h *AgentHandler) Advance(c echo.Context) error {
	sess, hErr := requireSession(c)
	if hErr != nil {
		return hErr
	}

	var req AdvanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	inq, err := h.inquiries.ApplyTransition(c.Request().Context(), sess, c.Param("id"),
		sess.User.LinkedID, workflow.Status(req.Target), req.Note)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, inq)
}

// AddLog godoc
// @Summary Append a conversation note
// @Tags agent
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Param request body LogRequest true "Note"
// @Success 200 {object} model.Inquiry
// @Failure 400 {object} errors.ErrorResponse
// @Router /agent/inquiries/{id}/log [post]
func (h *AgentHandler) AddLog(c echo.Context) error {
	sess, hErr := requireSession(c)
	if hErr != nil {
		return hErr
	}

	var req LogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	inq, err := h.inquiries.AppendLog(c.Request().Context(), sess, c.Param("id"),
		sess.User.LinkedID, req.Message)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, inq)
}
