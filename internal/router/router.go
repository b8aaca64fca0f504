package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"brokerweb/internal/auth"
	"brokerweb/internal/guard"
	"brokerweb/internal/handler"
	"brokerweb/internal/metrics"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	resolver *auth.Resolver,
	m *metrics.Metrics,
	publicHandler *handler.PublicHandler,
	authHandler *handler.AuthHandler,
	adminHandler *handler.AdminHandler,
	agentHandler *handler.AgentHandler,
	ownerHandler *handler.OwnerHandler,
	prefsHandler *handler.PrefsHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(m.Middleware())
	e.Use(resolver.Middleware())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", m.Handler())

	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	// Public site
	e.GET("/", publicHandler.Home)
	e.GET("/properties", publicHandler.ListProperties)
	e.GET("/properties/:id", publicHandler.GetProperty)
	e.POST("/contact", publicHandler.Contact)

	// Auth
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/me", authHandler.Me)
	e.PUT("/auth/change-password", authHandler.ChangePassword)

	// A logged-in user landing on /dashboard is forwarded to their own root.
	e.GET("/dashboard", guard.RedirectHandler(auth.SessionFrom))

	// Session-scoped preferences, any role.
	prefs := e.Group("/prefs", guard.Require(auth.SessionFrom))
	prefs.GET("/theme", prefsHandler.GetTheme)
	prefs.PUT("/theme", prefsHandler.SetTheme)

	// Admin console
	admin := e.Group("/admin", guard.Require(auth.SessionFrom, guard.RoleAdmin))
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/inquiries", adminHandler.ListInquiries)
	admin.GET("/inquiries/:id", adminHandler.GetInquiry)
	admin.PUT("/inquiries/:id/status", adminHandler.Triage)
	admin.PUT("/inquiries/:id/assign", adminHandler.Assign)
	admin.PUT("/inquiries/:id/unassign", adminHandler.Unassign)
	admin.GET("/owners", adminHandler.ListOwners)
	admin.POST("/owners", adminHandler.CreateOwner)
	admin.GET("/owners/:id", adminHandler.GetOwner)
	admin.PUT("/owners/:id", adminHandler.UpdateOwner)
	admin.DELETE("/owners/:id", adminHandler.DeleteOwner)
	admin.GET("/owners/:id/dashboard", adminHandler.OwnerDashboard)
	admin.GET("/agents", adminHandler.ListAgents)
	admin.GET("/agents/:id/inquiries", adminHandler.AgentWorkload)
	admin.POST("/properties", adminHandler.CreateProperty)

	// Agent portal. Admins may inspect it too.
	agent := e.Group("/agent", guard.Require(auth.SessionFrom, guard.RoleAgent, guard.RoleAdmin))
	agent.GET("/workload", agentHandler.Workload)
	agent.GET("/next-state", agentHandler.NextState)
	agent.GET("/inquiries/:id", agentHandler.GetInquiry)
	agent.POST("/inquiries/:id/advance", agentHandler.Advance)
	agent.POST("/inquiries/:id/log", agentHandler.AddLog)

	// Owner portal
	owner := e.Group("/owner", guard.Require(auth.SessionFrom, guard.RoleOwner, guard.RoleAdmin))
	owner.GET("/dashboard", ownerHandler.Dashboard)
	owner.GET("/properties", ownerHandler.Properties)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
