package http

import (
	"github.com/bibleplan/tracker/internal/audit"
	"github.com/bibleplan/tracker/internal/database"
	dbprogress "github.com/bibleplan/tracker/internal/database/progress"
	"github.com/bibleplan/tracker/internal/dates"
	"github.com/bibleplan/tracker/internal/exporters"
	"github.com/bibleplan/tracker/internal/importers"
	"github.com/bibleplan/tracker/internal/plan"
	"github.com/bibleplan/tracker/internal/scheduler"
	"github.com/bibleplan/tracker/internal/scripture"
	"github.com/bibleplan/tracker/internal/sessions"
	"github.com/bibleplan/tracker/internal/settingsstore"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. This replaces the long parameter list
// in NewRouter for better maintainability.
type RouterConfig struct {
	// Core dependencies
	Database      *database.Database
	Plan          *plan.Index
	PlanRange     dates.Range
	Scriptures    scripture.Set
	ProgressRepo  *dbprogress.Repository
	SettingsStore *settingsstore.SettingsStore
	Auditor       *audit.Service

	// Import/export
	Exporter *exporters.ProgressExporter
	Importer *importers.Pipeline

	// Scheduled backups (optional)
	BackupScheduler *scheduler.BackupScheduler

	// Per-browser view state (optional)
	SessionManager *sessions.Manager

	// Web security
	CSRFSecret    []byte
	SecureCookies bool

	// Application info
	Version string

	// Today resolves the current date key. Overridable in tests;
	// defaults to dates.Today.
	Today func() string
}

func (cfg RouterConfig) today() string {
	if cfg.Today != nil {
		return cfg.Today()
	}
	return dates.Today()
}
