// Package entrypoint wires the application together and runs the HTTP
// server with graceful shutdown.
package entrypoint

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	auditsvc "github.com/bibleplan/tracker/internal/audit"
	"github.com/bibleplan/tracker/internal/config"
	"github.com/bibleplan/tracker/internal/database"
	dbaudit "github.com/bibleplan/tracker/internal/database/audit"
	dbprogress "github.com/bibleplan/tracker/internal/database/progress"
	dbsettings "github.com/bibleplan/tracker/internal/database/settings"
	"github.com/bibleplan/tracker/internal/dates"
	"github.com/bibleplan/tracker/internal/exporters"
	http_controllers "github.com/bibleplan/tracker/internal/http"
	"github.com/bibleplan/tracker/internal/i18n"
	"github.com/bibleplan/tracker/internal/importers"
	"github.com/bibleplan/tracker/internal/plan"
	"github.com/bibleplan/tracker/internal/scheduler"
	"github.com/bibleplan/tracker/internal/scripture"
	"github.com/bibleplan/tracker/internal/sessions"
	"github.com/bibleplan/tracker/internal/settingsstore"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown: wait for SIGINT/SIGTERM, then drain with a timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the backup scheduler)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// loadScriptures reads the per-locale scripture files. A missing file is
// tolerated: navigation still works, the text endpoint answers 404.
func loadScriptures(cfg *config.Config) scripture.Set {
	set := scripture.Set{}
	paths := map[i18n.Locale]string{
		i18n.LocaleZh: cfg.Scripture.ZhPath,
		i18n.LocaleEn: cfg.Scripture.EnPath,
	}
	for locale, path := range paths {
		store, err := scripture.LoadFile(locale, path)
		if err != nil {
			log.Printf("WARNING: scripture (%s) unavailable: %v", locale, err)
			continue
		}
		log.Printf("Loaded %d %s scripture chapters (%d lines skipped)",
			store.ChapterCount(), locale, store.Skipped())
		set[locale] = store
	}
	return set
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting reading tracker v%s", version)

	// The plan is startup data: refusing to start beats serving an empty
	// calendar.
	planIdx, err := plan.LoadFile(cfg.Plan.Path)
	if err != nil {
		log.Fatalf("Failed to load reading plan: %v", err)
	}
	log.Printf("Loaded reading plan with %d entries from %s", planIdx.Len(), cfg.Plan.Path)

	planRange, err := dates.NewRange(cfg.Plan.RangeStart, cfg.Plan.RangeEnd)
	if err != nil {
		log.Fatalf("Invalid plan range: %v", err)
	}

	scriptures := loadScriptures(cfg)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	progressRepo := dbprogress.NewRepository(db.DB)
	settingsStore := settingsstore.New(dbsettings.NewRepository(db.DB))
	auditor := auditsvc.NewService(dbaudit.NewRepository(db.DB))
	exporter := exporters.NewProgressExporter()
	importer := importers.NewPipeline(progressRepo)

	// Per-browser view state
	sqlDB, err := db.SQLDB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}
	sessionManager, err := sessions.NewManager(sqlDB, cfg.Web)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	csrfSecret := []byte(cfg.Web.CSRFSecret)
	if len(csrfSecret) == 0 {
		csrfSecret = make([]byte, 32)
		if _, err := rand.Read(csrfSecret); err != nil {
			log.Fatalf("Failed to generate CSRF secret: %v", err)
		}
		log.Printf("Generated CSRF secret (set CSRF_SECRET to persist across restarts)")
	}

	// Scheduled progress backups
	backups := scheduler.NewBackupScheduler(cfg.Backup, progressRepo, settingsStore, auditor)
	if err := backups.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start backup scheduler: %v", err)
	}

	routerCfg := http_controllers.RouterConfig{
		Database:        db,
		Plan:            planIdx,
		PlanRange:       planRange,
		Scriptures:      scriptures,
		ProgressRepo:    progressRepo,
		SettingsStore:   settingsStore,
		Auditor:         auditor,
		Exporter:        exporter,
		Importer:        importer,
		BackupScheduler: backups,
		SessionManager:  sessionManager,
		CSRFSecret:      csrfSecret,
		SecureCookies:   cfg.Web.SecureCookies,
		Version:         version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		backups.Stop()
	}

	Serve(router, cfg, onShutdown)
}
