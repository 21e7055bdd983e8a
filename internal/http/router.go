package http

import (
	"github.com/gin-gonic/gin"

	"github.com/bibleplan/tracker/internal/web"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(web.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(web.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Session runs after CSRF so session context isn't overwritten by
	// CSRF's request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.LoadSave())
	}

	// Create controllers
	health := NewHealthController(cfg.Database, cfg.Version)
	dayController := NewDayController(cfg.Plan, cfg.PlanRange, cfg.ProgressRepo, cfg.SettingsStore, cfg.SessionManager, cfg.today)
	progressController := NewProgressController(cfg.Plan, cfg.ProgressRepo, cfg.SettingsStore, cfg.Auditor)
	statsController := NewStatsController(cfg.Plan, cfg.ProgressRepo)
	scriptureController := NewScriptureController(cfg.Scriptures, cfg.SettingsStore)
	settingsController := NewSettingsController(cfg.SettingsStore, cfg.BackupScheduler)
	importExportController := NewImportExportController(cfg.ProgressRepo, cfg.Exporter, cfg.Importer, cfg.SettingsStore, cfg.Auditor)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Day and navigation endpoints
	router.GET("/api/day", dayController.CurrentDay)
	router.GET("/api/day/:date", dayController.Day)
	router.POST("/api/nav/day", dayController.NavDay)
	router.POST("/api/nav/month", dayController.NavMonth)
	router.POST("/api/nav/today", dayController.NavToday)
	router.GET("/api/catchup", dayController.CatchUp)

	// Progress endpoints
	router.POST("/api/progress/toggle", progressController.Toggle)
	router.POST("/api/month/:date/complete", progressController.CompleteMonth)
	router.POST("/api/month/:date/clear", progressController.ClearMonth)

	// Stats endpoints
	router.GET("/api/stats/month/:date", statsController.Monthly)
	router.GET("/api/stats/annual", statsController.Annual)

	// Scripture endpoint
	router.GET("/api/scripture/:book/:chapter", scriptureController.Chapter)

	// Settings endpoints
	router.GET("/api/settings/locale", settingsController.GetLocale)
	router.POST("/api/settings/locale", settingsController.SetLocale)
	router.POST("/api/settings/locale/toggle", settingsController.ToggleLocale)
	router.GET("/api/settings/backup", settingsController.BackupStatus)
	router.POST("/api/settings/backup/run", settingsController.BackupNow)

	// Import/export endpoints
	router.GET("/api/progress/export", importExportController.Export)
	router.POST("/api/progress/import", importExportController.Import)

	// Reader endpoints need per-browser state
	if cfg.SessionManager != nil {
		readerController := NewReaderController(cfg.Plan, cfg.PlanRange, cfg.ProgressRepo, cfg.SettingsStore, cfg.SessionManager, cfg.today)
		router.POST("/api/reader/open", readerController.Open)
		router.GET("/api/reader/current", readerController.Current)
		router.POST("/api/reader/finish", readerController.Finish)
		router.POST("/api/reader/finish-home", readerController.FinishHome)
		router.POST("/api/reader/close", readerController.Close)
	}

	return router
}
