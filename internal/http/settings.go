package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bibleplan/tracker/internal/i18n"
	"github.com/bibleplan/tracker/internal/scheduler"
	"github.com/bibleplan/tracker/internal/settingsstore"
)

type localeResponse struct {
	Locale string `json:"locale"`
	Source string `json:"source"`
}

type SettingsController struct {
	settingsStore *settingsstore.SettingsStore
	backups       *scheduler.BackupScheduler
}

func NewSettingsController(settingsStore *settingsstore.SettingsStore, backups *scheduler.BackupScheduler) *SettingsController {
	return &SettingsController{
		settingsStore: settingsStore,
		backups:       backups,
	}
}

// GetLocale returns the effective display locale and where it came from.
func (ctrl *SettingsController) GetLocale(c *gin.Context) {
	c.JSON(http.StatusOK, localeResponse{
		Locale: string(ctrl.settingsStore.GetLocale()),
		Source: ctrl.settingsStore.GetLocaleSource(),
	})
}

type setLocaleRequest struct {
	Locale string `json:"locale" binding:"required"`
}

// SetLocale stores the chosen display locale.
func (ctrl *SettingsController) SetLocale(c *gin.Context) {
	var req setLocaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "locale is required")
		return
	}

	locale := i18n.Parse(req.Locale)
	if err := ctrl.settingsStore.SetLocale(locale); err != nil {
		respondInternalError(c, err, "set locale")
		return
	}
	c.JSON(http.StatusOK, localeResponse{Locale: string(locale), Source: "database"})
}

// ToggleLocale flips between the two supported languages.
func (ctrl *SettingsController) ToggleLocale(c *gin.Context) {
	locale, err := ctrl.settingsStore.ToggleLocale()
	if err != nil {
		respondInternalError(c, err, "toggle locale")
		return
	}
	c.JSON(http.StatusOK, localeResponse{Locale: string(locale), Source: "database"})
}

type backupStatusResponse struct {
	SchedulerRunning bool       `json:"scheduler_running"`
	NextRun          *time.Time `json:"next_run,omitempty"`
	LastBackupAt     string     `json:"last_backup_at,omitempty"`
	LastBackupFile   string     `json:"last_backup_file,omitempty"`
}

// BackupStatus reports the scheduler state and the latest completed backup.
func (ctrl *SettingsController) BackupStatus(c *gin.Context) {
	at, file := ctrl.settingsStore.LastBackup()
	resp := backupStatusResponse{
		LastBackupAt:   at,
		LastBackupFile: file,
	}
	if ctrl.backups != nil {
		resp.SchedulerRunning = ctrl.backups.IsRunning()
		resp.NextRun = ctrl.backups.NextRunTime()
	}
	c.JSON(http.StatusOK, resp)
}

// BackupNow triggers an immediate backup run.
func (ctrl *SettingsController) BackupNow(c *gin.Context) {
	if ctrl.backups == nil {
		respondNotFound(c, "backups not configured")
		return
	}
	ctrl.backups.RunNow()
	respondSuccess(c, "backup started")
}
