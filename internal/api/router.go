package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	"github.com/canvasnotes/notes-api/internal/api/handler"
	"github.com/canvasnotes/notes-api/internal/api/middleware"
	"github.com/canvasnotes/notes-api/internal/core/ports"
)

// RouterConfig carries every dependency the HTTP layer needs. Services and
// stores are constructed by the process entry point and injected here; the
// router owns no state of its own.
type RouterConfig struct {
	AuthService ports.AuthService
	NoteService ports.NoteService
	Tokens      ports.TokenStore
	JWTSecret   string
	Logger      zerolog.Logger

	// Probe targets for the readiness endpoint; nil in tests.
	DB    handler.DBPinger
	Redis *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("notes"))

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Tokens)
	noteHandler := handler.NewNoteHandler(cfg.NoteService)
	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.Redis)

	// --- Public routes ---
	g := e.Group("/api")
	g.POST("/signup", authHandler.Signup)
	g.POST("/login", authHandler.Login)
	g.GET("/health", healthHandler.Liveness)
	g.GET("/health/ready", healthHandler.Readiness)

	// --- Token-gated routes ---
	auth := g.Group("", middleware.Auth(cfg.JWTSecret, cfg.Tokens))
	auth.GET("/user/me", authHandler.Me)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/notes", noteHandler.List)
	auth.POST("/notes", noteHandler.Create)
	auth.PUT("/notes/:id", noteHandler.Update)
	auth.PATCH("/notes/:id", noteHandler.Patch)
	auth.DELETE("/notes/:id", noteHandler.Delete)

	return e
}
