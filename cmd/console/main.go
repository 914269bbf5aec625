// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

// Command console runs the VSPaze institute admin console: a
// server-rendered front-end for student, faculty, course and batch
// administration backed by the platform API gateway.
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
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/vspaze/console/internal/approval"
	"github.com/vspaze/console/internal/cache"
	"github.com/vspaze/console/internal/config"
	"github.com/vspaze/console/internal/gateway"
	"github.com/vspaze/console/internal/geoip"
	"github.com/vspaze/console/internal/handler"
	"github.com/vspaze/console/internal/logging"
	"github.com/vspaze/console/internal/middleware"
	"github.com/vspaze/console/internal/render"
	"github.com/vspaze/console/internal/scheduler"
	"github.com/vspaze/console/internal/service"
	"github.com/vspaze/console/internal/session"
	"github.com/vspaze/console/internal/store"
	"github.com/vspaze/console/web"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	var (
		showVersion = flag.Bool("version", false, "print version and exit")
		showHelp    = flag.Bool("help", false, "show help")
	)
	flag.BoolVar(showVersion, "v", false, "print version and exit (shorthand)")
	flag.BoolVar(showHelp, "h", false, "show help (shorthand)")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("console %s\n", version)
		return
	}
	if *showHelp {
		usage()
		return
	}

	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `VSPaze admin console %s

Usage: console [flags]

Flags:
  -version, -v    print version and exit
  -help, -h       show this help

Environment:
  VSPAZE_SESSION_SECRET          session signing secret, min 32 chars (required)
  VSPAZE_API_BASE_URL            platform API gateway base URL (required)
  VSPAZE_API_TOKEN               bearer token for the API gateway
  VSPAZE_API_TIMEOUT             API request timeout (default 15s)
  VSPAZE_DB_PATH                 SQLite database path (default ./data/console.db)
  VSPAZE_SERVER_HOST             listen host (default localhost)
  VSPAZE_SERVER_PORT             listen port (default 8080)
  VSPAZE_ENV                     development or production (default development)
  VSPAZE_LOG_LEVEL               debug, info, warn or error (default info)
  VSPAZE_REDIS_URL               optional Redis URL for shared caching
  VSPAZE_CACHE_PREFIX            Redis key prefix (default vspaze:)
  VSPAZE_CACHE_TTL               cache TTL in seconds (default 60)
  VSPAZE_CACHE_MAX_SIZE          max in-memory cache entries (default 1000)
  VSPAZE_BADGE_REFRESH_INTERVAL  pending-count refresh interval (default 1s)
  VSPAZE_GEOIP_DB_PATH           optional GeoLite2-Country.mmdb path
  VSPAZE_DO_SEED                 seed default admin and settings (default true)
`, version)
}

func run() error {
	// Missing .env is fine; real deployments use the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(textHandler)
	slog.SetDefault(logger)

	logger.Info("starting console", "version", version, "env", cfg.Env)

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	// With the schema in place, warn-and-above log records also land in
	// the activity feed on the dashboard.
	logger = slog.New(logging.NewActivityLogHandler(textHandler, db))
	slog.SetDefault(logger)

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
		if err := store.SeedDemo(ctx, db); err != nil {
			return fmt.Errorf("seeding demo data: %w", err)
		}
	}

	sessionManager := session.New(db, cfg.IsDevelopment())
	sessions := session.NewStore(sessionManager)

	caches := cache.NewManager(cache.Options{
		RedisURL: cfg.RedisURL,
		Prefix:   cfg.CachePrefix,
		TTL:      time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:  cfg.CacheMaxSize,
	})
	defer caches.Close()

	api := gateway.New(cfg.APIBaseURL, cfg.APIToken, cfg.APITimeout)
	approvals := approval.NewService(api)

	geo := geoip.NewLookup()
	if cfg.GeoIPEnabled() {
		if err := geo.Init(cfg.GeoIPDBPath); err != nil {
			logger.Warn("geoip disabled", "error", err)
		}
	}
	activity := service.NewActivityService(db, geo)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("templates subtree: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
	})
	if err != nil {
		return fmt.Errorf("parsing templates: %w", err)
	}

	sched := scheduler.New(db, api, caches, cfg.BadgeRefreshInterval, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())

	authHandler := handler.NewAuthHandler(db, renderer, sessions, activity, loginProtection)
	shellHandler := handler.NewShellHandler(db, renderer, sessions, api, approvals, caches)
	approvalHandler := handler.NewApprovalHandler(approvals, renderer, sessions, activity)
	studentHandler := handler.NewStudentHandler(api, renderer)
	facultyHandler := handler.NewFacultyHandler(api, renderer)
	courseHandler := handler.NewCourseHandler(api, renderer)
	batchHandler := handler.NewBatchHandler(api, renderer)
	attendanceHandler := handler.NewAttendanceHandler(db, renderer)
	announcementHandler := handler.NewAnnouncementHandler(db, renderer)
	notificationHandler := handler.NewNotificationHandler(db, renderer)
	settingsHandler := handler.NewSettingsHandler(db, renderer, caches)
	profileHandler := handler.NewProfileHandler(db, renderer)
	healthHandler := handler.NewHealthHandler(db, sessions)

	csrfProtect := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment()))

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.RequestPath)

	// Health endpoints stay outside the session middleware so probes
	// never touch the session table.
	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	r.Group(func(r chi.Router) {
		r.Use(sessionManager.LoadAndSave)
		r.Use(csrfProtect)

		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			if sessions.IsAuthenticated(req.Context()) {
				http.Redirect(w, req, handler.RouteAdmin, http.StatusSeeOther)
				return
			}
			http.Redirect(w, req, handler.RouteLogin, http.StatusSeeOther)
		})

		r.Get("/login", authHandler.LoginForm)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(sessions))
			r.Use(middleware.LoadAdmin(sessions, db))

			r.Get("/", shellHandler.Home)
			r.Get("/api/pending-counts", shellHandler.PendingCountsJSON)

			r.Post("/nav/section/{section}", shellHandler.SelectSection)
			r.Post("/nav/drill/{kind}/{id}", shellHandler.Drill)
			r.Post("/nav/back/{kind}", shellHandler.Back)
			r.Post("/nav/profile/{action}", shellHandler.Profile)
			r.Post("/nav/sidebar/toggle", shellHandler.ToggleSidebar)
			r.Post("/nav/group/{group}", shellHandler.ToggleGroup)

			r.Post("/pending/students/{id}/approve", approvalHandler.ApproveStudent)
			r.Post("/pending/students/{id}/reject", approvalHandler.RejectStudent)
			r.Post("/pending/faculty/{id}/approve", approvalHandler.ApproveFaculty)
			r.Post("/pending/faculty/{id}/reject", approvalHandler.RejectFaculty)

			r.Post("/students", studentHandler.Create)
			r.Post("/students/{id}", studentHandler.Update)
			r.Post("/students/{id}/courses", studentHandler.UpdateCourses)
			r.Post("/students/{id}/delete", studentHandler.Delete)

			r.Post("/faculty/{id}/delete", facultyHandler.Delete)

			r.Post("/courses", courseHandler.Create)
			r.Post("/courses/{id}", courseHandler.Update)
			r.Post("/courses/{id}/delete", courseHandler.Delete)
			r.Post("/courses/{id}/videos", courseHandler.AddVideo)
			r.Post("/courses/{id}/videos/{videoID}/delete", courseHandler.DeleteVideo)

			r.Post("/batches", batchHandler.Create)
			r.Post("/batches/{id}", batchHandler.Update)
			r.Post("/batches/{id}/delete", batchHandler.Delete)

			r.Post("/attendance/{id}", attendanceHandler.UpdateStatus)

			r.Post("/announcements", announcementHandler.Create)
			r.Post("/announcements/{id}", announcementHandler.Update)
			r.Post("/announcements/{id}/delete", announcementHandler.Delete)

			r.Post("/notifications/{id}/read", notificationHandler.MarkRead)
			r.Post("/notifications/read-all", notificationHandler.MarkAllRead)
			r.Post("/notifications/{id}/delete", notificationHandler.Delete)

			r.Post("/settings", settingsHandler.Save)

			r.Post("/profile", profileHandler.Update)
			r.Post("/profile/password", profileHandler.ChangePassword)
		})
	})

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("static subtree: %w", err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("stopped")
	return nil
}
