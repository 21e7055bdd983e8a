package audit

import (
	"encoding/json"
	"log"

	"github.com/bibleplan/tracker/internal/database/audit"
	"github.com/bibleplan/tracker/internal/entities"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	go func() {
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// LogImport records a progress import attempt.
func (s *Service) LogImport(description string, imported, skipped int, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventImport,
		Action:      "progress_import",
		Description: description,
		Status:      entities.AuditStatusSuccess,
	}

	metadata := map[string]any{
		"imported": imported,
		"skipped":  skipped,
	}
	if mdBytes, e := json.Marshal(metadata); e == nil {
		event.Metadata = string(mdBytes)
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// LogExport records a progress export.
func (s *Service) LogExport(description string, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventExport,
		Action:      "progress_export",
		Description: description,
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// LogBulkMonth records a month-level complete or clear operation.
func (s *Service) LogBulkMonth(action, description string, chapters int, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventBulkMonth,
		Action:      action,
		Description: description,
		Status:      entities.AuditStatusSuccess,
	}

	metadata := map[string]any{"chapters": chapters}
	if mdBytes, e := json.Marshal(metadata); e == nil {
		event.Metadata = string(mdBytes)
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
