// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/newsdash/internal/ai"
	"github.com/olegiv/newsdash/internal/auth"
	"github.com/olegiv/newsdash/internal/cache"
	"github.com/olegiv/newsdash/internal/config"
	"github.com/olegiv/newsdash/internal/credential"
	"github.com/olegiv/newsdash/internal/geoip"
	"github.com/olegiv/newsdash/internal/handler"
	"github.com/olegiv/newsdash/internal/i18n"
	"github.com/olegiv/newsdash/internal/imaging"
	"github.com/olegiv/newsdash/internal/logging"
	"github.com/olegiv/newsdash/internal/middleware"
	"github.com/olegiv/newsdash/internal/render"
	"github.com/olegiv/newsdash/internal/scheduler"
	"github.com/olegiv/newsdash/internal/service"
	"github.com/olegiv/newsdash/internal/session"
	"github.com/olegiv/newsdash/internal/shell"
	"github.com/olegiv/newsdash/internal/store"
	"github.com/olegiv/newsdash/internal/version"
	"github.com/olegiv/newsdash/web"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "newsdash - AI news and content dashboard\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDASH_SESSION_SECRET     Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDASH_DB_PATH            SQLite database path (default: ./data/newsdash.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDASH_SERVER_PORT        Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDASH_ENV                Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDASH_AI_PROVIDER        gemini|openai (default: gemini)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDASH_DEFAULT_LANGUAGE   zh|en (default: zh)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDASH_REDIS_URL          Redis URL for shared result caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDASH_GEOIP_DB_PATH      GeoLite2-Country database for sign-in audit (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("newsdash %s\n", version.Get())
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

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(textHandler))
	slog.Info("starting newsdash", "version", version.Get().String())

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Warnings and errors also go to the events table shown on the settings screen.
	logger := slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalog := i18n.New(i18n.Config{DefaultLanguage: cfg.DefaultLanguage, Logger: logger})
	catalog.LoadAsync()

	sessionManager := session.New(db, cfg.IsDevelopment())

	authProvider := auth.NewProvider(db, sessionManager, logger)
	authProvider.InitAsync(ctx)

	notifier := credential.NewNotifier()
	creds := credential.NewStore(db, notifier, logger)

	factory, err := ai.NewFactory(cfg.AIProvider, ai.Models{Text: cfg.TextModel, Image: cfg.ImageModel})
	if err != nil {
		return err
	}
	aiClient := ai.NewClient(creds, factory, logger)
	unsubscribe := notifier.Subscribe(aiClient.Invalidate)
	defer unsubscribe()
	slog.Info("AI client initialized", "provider", cfg.AIProvider)

	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	resultCache, backend := cache.New(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: cacheTTL,
		MaxSize:    cfg.CacheMaxSize,
	}, logger)
	defer func() { _ = resultCache.Close() }()
	slog.Info("result cache initialized", "backend", backend)

	processor := imaging.NewProcessor(cfg.UploadMaxBytes, imaging.DefaultMaxDimension)
	newsService := service.NewNewsService(aiClient, resultCache, cacheTTL, logger)
	trendService := service.NewTrendService(aiClient, resultCache, cacheTTL, logger)
	imageService := service.NewImageService(aiClient, processor)
	articleService := service.NewArticleService(aiClient, db, logger)
	videoService := service.NewVideoService(aiClient)
	publishService := service.NewPublishService(db, logger)
	eventService := service.NewEventService(db)

	geo, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		slog.Warn("GeoIP database unavailable, countries will not be recorded", "error", err)
	}
	defer func() { _ = geo.Close() }()

	sh := shell.New(catalog, authProvider, creds, notifier)
	defer sh.Close()

	sched := scheduler.New(logger)
	hasKey := func(ctx context.Context) bool { return creds.Check(ctx) == credential.Present }
	for _, job := range []scheduler.Job{
		scheduler.PublishJob(publishService),
		scheduler.NewsRefreshJob(newsService, cfg.NewsRefreshSchedule, i18n.SupportedLanguages, hasKey),
		scheduler.PruneEventsJob(eventService, service.DefaultEventRetention),
		scheduler.GeoIPReloadJob(geo),
	} {
		if err := sched.Add(job); err != nil {
			return fmt.Errorf("registering job %s: %w", job.Name, err)
		}
	}
	sched.Start()
	defer sched.Stop()

	renderer, err := render.New(render.Config{
		TemplatesFS:    web.TemplatesFS(),
		SessionManager: sessionManager,
		Translator:     catalog,
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig(), catalog)
	defer loginProtection.Stop()

	layout := handler.NewLayout(sh, renderer, catalog, sessionManager)
	handlers := &handler.Handlers{
		Layout:   layout,
		News:     handler.NewNewsHandler(layout, newsService, trendService),
		Images:   handler.NewImageHandler(layout, imageService, cfg.UploadMaxBytes),
		Articles: handler.NewArticleHandler(layout, articleService, authProvider),
		Video:    handler.NewVideoHandler(layout, videoService, imageService, cfg.UploadMaxBytes),
		Publish:  handler.NewPublishHandler(layout, publishService, articleService),
		Settings: handler.NewSettingsHandler(layout, handler.SettingsConfig{
			Credentials:        creds,
			OnCredentialChange: sh.OnCredentialChange,
			Events:             eventService,
			Jobs:               sched,
			Cache:              resultCache,
			CacheBackend:       backend,
			Provider:           cfg.AIProvider,
		}),
		Auth:       handler.NewAuthHandler(authProvider, loginProtection, sessionManager, catalog, geo),
		Membership: handler.NewMembershipHandler(layout, authProvider),
		Health: handler.NewHealthHandler(handler.HealthConfig{
			DB:        db,
			Shell:     sh,
			Readiness: func() (bool, bool) { return catalog.Ready(), authProvider.Ready() },
			Cache:     resultCache,
			Jobs:      sched,
		}),
		LoginLimit:    loginProtection.Middleware(),
		GenerateLimit: middleware.GenerateRateLimit(cfg.GenerateRateLimit, cfg.GenerateBurst, catalog),
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	r.Use(middleware.SecurityHeaders(securityConfig))

	staticHandler := middleware.StaticCache(86400)(http.StripPrefix("/static/", http.FileServer(http.FS(web.StaticFS()))))
	r.Handle("/static/*", staticHandler)

	r.Group(func(r chi.Router) {
		r.Use(sessionManager.LoadAndSave)
		r.Use(middleware.Language(catalog, sessionManager))
		r.Use(middleware.SkipCSRF("/healthz"))
		r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment(), cfg.ServerPort, catalog)))
		handlers.Routes(r)
	})
	slog.Info("routes mounted", "csrf_secure", !cfg.IsDevelopment())

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      120 * time.Second, // generation calls can be slow
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
