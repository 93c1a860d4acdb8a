package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/cache"
	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/config"
	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/handler"
	appMiddleware "github.com/projeto-integrador-comp/doc-express-BackEnd/internal/middleware"
	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/repository"
	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/service"
	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/storage"
)

type App struct {
	server *http.Server
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewApp(cfg config.Config) (*App, error) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSSLMode)

	if err := repository.RunMigrations(context.Background(), dsn); err != nil {
		return nil, err
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	// Backend selection happens exactly once, here, from injected
	// configuration.
	fileStorage, err := storage.New(storage.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		UploadDir: cfg.UploadDir,
	}, logger)
	if err != nil {
		return nil, err
	}

	repo := repository.NewPostgres(pool)
	cacheRepo := cache.NewRedisCache(redisClient, cfg.CacheTTLList, cfg.CacheTTLItem)

	svc := service.NewService(repo, repo, repo, fileStorage, cacheRepo, logger,
		cfg.JWTSecret, cfg.TemplatesBucket, cfg.DocumentsBucket)

	if err := svc.EnsureAdmin(context.Background(), cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return nil, err
	}

	h := handler.NewHandler(svc, logger)
	mw := appMiddleware.NewMiddleware(svc, logger)

	r := chi.NewRouter()

	// RequestID and RealIP run first so the request logger sees them.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(mw.Logging)
	r.Use(mw.Recover)
	r.Use(chiMiddleware.Compress(5))

	// Public routes
	r.Post("/users", h.RegisterUser)
	r.Post("/login", h.Login)
	r.Get("/templates/search", h.SearchTemplates)
	r.Get("/templates/{id}/download", h.DownloadTemplate)
	r.Get("/templates/{id}", h.GetTemplateByID)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(mw.AuthRequired)

		r.Get("/profile", h.Profile)
		r.Get("/templates", h.GetTemplates)

		r.Route("/documents", func(r chi.Router) {
			r.Post("/", h.CreateDocument)
			r.Get("/", h.GetDocuments)
			r.Patch("/{id}", h.UpdateDocument)
			r.Delete("/{id}", h.DeleteDocument)
			r.Post("/{id}/attachment", h.UploadAttachment)
		})
	})

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(mw.AuthRequired)
		r.Use(mw.AdminRequired)

		r.Get("/users", h.ListUsers)
		r.Post("/templates", h.CreateTemplate)
		r.Patch("/templates/{id}", h.UpdateTemplate)
		r.Delete("/templates/{id}", h.DeleteTemplate)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	return &App{
		server: srv,
		pool:   pool,
		logger: logger,
	}, nil
}

func (a *App) Run() error {
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("Server failed", "error", err)
		}
	}()
	a.logger.Info("Server started", "addr", a.server.Addr)

	<-done
	a.logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error("Server shutdown failed", "error", err)
		return err
	}

	a.pool.Close()
	a.logger.Info("Server exited")
	return nil
}
