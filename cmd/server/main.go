package main

import (
	"log"
	"net/http"

	_ "brokerweb/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"brokerweb/internal/auth"
	"brokerweb/internal/cache"
	"brokerweb/internal/config"
	"brokerweb/internal/handler"
	"brokerweb/internal/metrics"
	"brokerweb/internal/router"
	"brokerweb/internal/service"
	"brokerweb/internal/session"
	"brokerweb/internal/upstream"
)

// @title Brokerage Web Gateway API
// @version 1.0
// @description Web gateway for the brokerage back office: property catalog, inquiry pipeline, admin console and portals.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	m := metrics.New()

	backend := upstream.New(cfg.APIBaseURL, cfg.RequestTimeout,
		upstream.WithErrorObserver(m.ObserveUpstreamError))

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	sessionStore := session.NewStore(cacheClient, cfg.SessionTTL)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.CookieSecret, cfg.SessionTTL)
	resolver := auth.NewResolver(jwtService, sessionStore, backend, cfg.VerifyInterval)

	// Initialize services
	authService := service.NewAuthService(backend, sessionStore, jwtService)
	inquiryService := service.NewInquiryService(backend)
	propertyService := service.NewPropertyService(backend, cacheClient)
	ownerService := service.NewOwnerService(backend)
	agentService := service.NewAgentService(backend)
	dashboardService := service.NewDashboardService(backend)

	// Initialize handlers
	publicHandler := handler.NewPublicHandler(propertyService, inquiryService)
	authHandler := handler.NewAuthHandler(authService, jwtService)
	adminHandler := handler.NewAdminHandler(dashboardService, inquiryService, ownerService, agentService, propertyService)
	agentHandler := handler.NewAgentHandler(agentService, inquiryService)
	ownerHandler := handler.NewOwnerHandler(ownerService, propertyService)
	prefsHandler := handler.NewPrefsHandler(sessionStore)

	// Register routes
	router.Register(
		e,
		resolver,
		m,
		publicHandler,
		authHandler,
		adminHandler,
		agentHandler,
		ownerHandler,
		prefsHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: http://%s/api-docs/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/api-docs/index.html", cfg.ServerPort)
	}
	log.Printf("Proxying backend at %s", cfg.APIBaseURL)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
