package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/canvasnotes/notes-api/docs"
	"github.com/canvasnotes/notes-api/internal/api"
	"github.com/canvasnotes/notes-api/internal/core/service"
	"github.com/canvasnotes/notes-api/internal/infrastructure/config"
	"github.com/canvasnotes/notes-api/internal/infrastructure/db/mysql"
	redisdb "github.com/canvasnotes/notes-api/internal/infrastructure/db/redis"
	"github.com/canvasnotes/notes-api/pkg/logger"
)

// @title           Sticky Notes API
// @version         1.0
// @description     Multi-user sticky-notes backend: accounts, bearer-token auth and owner-scoped note CRUD with canvas layout metadata.
// @BasePath        /api
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	// Local development convenience; ignored when no .env exists.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		stdlog.Fatalf("load config: %v", err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := mysql.Connect(ctx, mysql.Config{DSN: cfg.MySQL.DSN})
	if err != nil {
		log.Fatal().Err(err).Msg("mysql connect failed")
	}
	defer db.Close()

	if err := mysql.EnsureSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("schema bootstrap failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer rdb.Close()

	authRepo := mysql.NewAuthRepository(db)
	noteRepo := mysql.NewNoteRepository(db)
	tokens := redisdb.NewRevocationStore(rdb)

	authService := service.NewAuthService(authRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	noteService := service.NewNoteService(noteRepo, log)

	e := api.NewRouter(api.RouterConfig{
		AuthService: authService,
		NoteService: noteService,
		Tokens:      tokens,
		JWTSecret:   cfg.JWTSecret,
		Logger:      log,
		DB:          db,
		Redis:       rdb,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
