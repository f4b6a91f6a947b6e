// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/inkwellhq/inkwell/internal/api"
	"github.com/inkwellhq/inkwell/internal/cache"
	"github.com/inkwellhq/inkwell/internal/config"
	"github.com/inkwellhq/inkwell/internal/handler"
	"github.com/inkwellhq/inkwell/internal/middleware"
	"github.com/inkwellhq/inkwell/internal/render"
	"github.com/inkwellhq/inkwell/internal/session"
	"github.com/inkwellhq/inkwell/internal/store"
	"github.com/inkwellhq/inkwell/internal/version"
	"github.com/inkwellhq/inkwell/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Inkwell - Blog Front-End\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INKWELL_API_BASE_URL      Remote blog API base URL (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INKWELL_SESSION_SECRET    Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INKWELL_DB_PATH           SQLite session database path (default: ./data/inkwell.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INKWELL_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INKWELL_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INKWELL_REDIS_URL         Redis URL for the category cache (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("inkwell %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := &version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	slog.Info("starting inkwell",
		"version", versionInfo.Version, "commit", versionInfo.GitCommit, "env", cfg.Env)

	// Local SQLite holds sessions only; blog data lives behind the API
	slog.Info("initializing session database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("session database ready")

	sessionManager := session.NewManager(db, cfg.IsDevelopment())
	sess := session.New(sessionManager)
	slog.Info("session manager initialized")

	apiClient := api.New(cfg.APIBaseURL, cfg.APIRequestTimeout())
	slog.Info("api client initialized", "base_url", cfg.APIBaseURL, "timeout", cfg.APIRequestTimeout())

	cats := cache.NewCategories(cache.Config{
		RedisURL: cfg.RedisURL,
		Prefix:   cfg.CachePrefix,
		TTL:      time.Duration(cfg.CacheTTL) * time.Second,
	})
	defer func() {
		if err := cats.Close(); err != nil {
			slog.Error("error closing category cache", "error", err)
		}
	}()

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	frontendHandler := handler.NewFrontendHandler(apiClient, renderer, sess, cats)
	authHandler := handler.NewAuthHandler(apiClient, renderer, sess)
	profileHandler := handler.NewProfileHandler(apiClient, renderer, sess)
	authoringHandler := handler.NewAuthoringHandler(apiClient, renderer, sess, cats)
	engagementHandler := handler.NewEngagementHandler(apiClient, renderer, sess)
	newsletterHandler := handler.NewNewsletterHandler(apiClient, renderer)

	// Router
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.RequestPath)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())))

	// Credential endpoints get a tighter rate limit
	loginLimiter := middleware.NewRateLimiter(1, 5)

	// Public pages
	r.Get(handler.RouteRoot, frontendHandler.Home)
	r.Get(handler.RouteBlog, frontendHandler.Blog)
	r.Get(handler.RouteCategories, frontendHandler.Categories)
	r.Get(handler.RoutePostID, frontendHandler.Post)
	r.Get(handler.RoutePostVanity, frontendHandler.Post)
	r.Get(handler.RouteMembers, profileHandler.Members)
	r.Get(handler.RouteProfile, profileHandler.Show)

	// Engagement: claps are anonymous, comments check the session
	r.Post("/post/{id}/claps", engagementHandler.Clap)
	r.Post("/post/{id}/comments", engagementHandler.CreateComment)

	// Auth and newsletter POSTs sit behind the rate limiter
	r.Get(handler.RouteLogin, authHandler.LoginForm)
	r.Get(handler.RouteRegister, authHandler.RegisterForm)
	r.Group(func(r chi.Router) {
		r.Use(loginLimiter.Middleware())
		r.Post(handler.RouteLogin, authHandler.Login)
		r.Post(handler.RouteRegister, authHandler.Register)
		r.Post("/newsletter/subscribe", newsletterHandler.Subscribe)
		r.Post("/newsletter/unsubscribe", newsletterHandler.Unsubscribe)
	})
	r.Post(handler.RouteLogout, authHandler.Logout)

	// Signed-in pages
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(sess))

		r.Get(handler.RouteSettings, profileHandler.SettingsForm)
		r.Post(handler.RouteSettings, profileHandler.UpdateSettings)

		r.Get(handler.RouteWrite, authoringHandler.WriteForm)
		r.Post(handler.RouteWrite, authoringHandler.Create)
		r.Post("/write/import", authoringHandler.Import)
		r.Post("/write/preview", authoringHandler.Preview)
		r.Post("/write/suggestions", authoringHandler.Suggest)

		r.Get("/post/{id}/edit", authoringHandler.EditForm)
		r.Post("/post/{id}/edit", authoringHandler.Update)
		r.Post("/post/{id}/delete", authoringHandler.Delete)

		r.Get(handler.RouteDrafts, authoringHandler.Drafts)
		r.Get(handler.RouteDraftID, authoringHandler.DraftEditForm)
		r.Post(handler.RouteDraftID, authoringHandler.UpdateDraft)
		r.Post("/drafts/{id}/delete", authoringHandler.DeleteDraft)
	})

	// Static assets: cache for 1 year
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	staticHandler := middleware.StaticCache(31536000)(http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.Handle("/static/*", staticHandler)

	r.NotFound(frontendHandler.NotFound)

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
