package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"gorm.io/gorm"

	"github.com/harshbaid-13/Cake-Manager/internal/config"
	"github.com/harshbaid-13/Cake-Manager/internal/handlers"
	applog "github.com/harshbaid-13/Cake-Manager/internal/log"
)

// Config captures the runtime configuration for the HTTP server.
type Config struct {
	Addr     string
	Security config.SecurityConfig
	Database *gorm.DB
}

// Server wraps an http.Server and exposes helpers for bootstrapping the
// bakery API service.
type Server struct {
	config     Config
	httpServer *http.Server
}

// New builds a new Server using the provided configuration.
func New(cfg Config) (*Server, error) {
	applog.Debug(context.Background(), "initializing server",
		"addr", cfg.Addr,
		"pinGate", cfg.Security.PIN != "",
	)

	security := cfg.Security
	if security.SessionLifetime <= 0 {
		security.SessionLifetime = 12 * time.Hour
	}
	if strings.TrimSpace(security.CookieName) == "" {
		security.CookieName = "bakery_session"
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = security.SessionLifetime
	sessionManager.Cookie.Name = security.CookieName
	sessionManager.Cookie.Domain = security.CookieDomain
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = security.CookieSecure

	if err := handlers.Configure(sessionManager, cfg.Database, security.PIN); err != nil {
		return nil, err
	}

	handler := sessionManager.LoadAndSave(newRouter())

	return &Server{
		config: cfg,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Start begins serving HTTP traffic using the underlying http.Server.
func (s *Server) Start() error {
	applog.Info(context.Background(), "server starting listener", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the HTTP server with a timeout.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	applog.Info(ctx, "server initiating graceful shutdown")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the configured HTTP handler, enabling integration tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
