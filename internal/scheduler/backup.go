// Package scheduler runs periodic progress backups on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/bibleplan/tracker/internal/audit"
	"github.com/bibleplan/tracker/internal/config"
	dbprogress "github.com/bibleplan/tracker/internal/database/progress"
	"github.com/bibleplan/tracker/internal/dates"
	"github.com/bibleplan/tracker/internal/exporters"
	"github.com/bibleplan/tracker/internal/settingsstore"
)

// BackupScheduler writes a dated progress export to disk on a schedule.
type BackupScheduler struct {
	cfg           config.Backup
	progressRepo  *dbprogress.Repository
	settingsStore *settingsstore.SettingsStore
	auditService  *audit.Service
	exporter      *exporters.ProgressExporter

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewBackupScheduler creates a new scheduler instance.
func NewBackupScheduler(
	cfg config.Backup,
	progressRepo *dbprogress.Repository,
	settingsStore *settingsstore.SettingsStore,
	auditService *audit.Service,
) *BackupScheduler {
	return &BackupScheduler{
		cfg:           cfg,
		progressRepo:  progressRepo,
		settingsStore: settingsStore,
		auditService:  auditService,
		exporter:      exporters.NewProgressExporter(),
		cron:          cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if backups are enabled.
func (s *BackupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.cfg.Enabled {
		log.Printf("Backup scheduler: disabled")
		return nil
	}

	if s.cfg.Dir == "" {
		log.Printf("Backup scheduler: backup directory not configured, skipping")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		s.runBackup()
	})
	if err != nil {
		return fmt.Errorf("invalid backup schedule '%s': %w", s.cfg.Schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Backup scheduler: started with schedule '%s'", s.cfg.Schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler.
func (s *BackupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	// Release the context watcher started in Start
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	s.isRunning = false

	log.Printf("Backup scheduler: stopped")
}

// RunNow triggers an immediate backup.
func (s *BackupScheduler) RunNow() {
	go s.runBackup()
}

// IsRunning returns whether the scheduler is active.
func (s *BackupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next backup will occur.
func (s *BackupScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// runBackup performs the actual backup.
func (s *BackupScheduler) runBackup() {
	log.Printf("Backup: starting export to %s", s.cfg.Dir)
	startTime := time.Now()

	snap, err := s.progressRepo.Load()
	if err != nil {
		errMsg := fmt.Sprintf("Failed to load progress: %v", err)
		log.Printf("Backup: %s", errMsg)
		s.auditService.LogExport(errMsg, err)
		return
	}

	path, err := s.exporter.WriteFile(snap, s.cfg.Dir)
	if err != nil {
		errMsg := fmt.Sprintf("Backup write failed: %v", err)
		log.Printf("Backup: %s", errMsg)
		s.auditService.LogExport(errMsg, err)
		return
	}

	if err := s.settingsStore.RecordBackup(time.Now().In(dates.Reference).Format(time.RFC3339), path); err != nil {
		log.Printf("Backup: warning - failed to record backup status: %v", err)
	}

	duration := time.Since(startTime)
	successMsg := fmt.Sprintf("Backed up %d chapters to %s in %v", snap.Count(), path, duration.Round(time.Millisecond))
	log.Printf("Backup: %s", successMsg)
	s.auditService.LogExport(successMsg, nil)
}
