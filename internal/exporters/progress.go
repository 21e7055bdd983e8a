// Package exporters renders progress state into downloadable or on-disk
// backup blobs.
package exporters

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bibleplan/tracker/internal/dates"
	"github.com/bibleplan/tracker/internal/progress"
)

// Blob is one serialized export ready to hand to a client or write to disk.
type Blob struct {
	Filename string
	Data     []byte
}

// ProgressExporter serializes snapshots into dated export files.
type ProgressExporter struct {
	now func() time.Time
}

// NewProgressExporter creates an exporter using the wall clock.
func NewProgressExporter() *ProgressExporter {
	return &ProgressExporter{now: time.Now}
}

// NewProgressExporterAt creates an exporter with a fixed clock, for tests
// and deterministic backup naming.
func NewProgressExporterAt(now func() time.Time) *ProgressExporter {
	return &ProgressExporter{now: now}
}

// Export serializes the snapshot under a date-stamped filename, e.g.
// "BiblePlan_Progress_260115.json" on 2026-01-15.
func (e *ProgressExporter) Export(snap progress.Snapshot) (Blob, error) {
	data, err := snap.Serialize()
	if err != nil {
		return Blob{}, fmt.Errorf("export progress: %w", err)
	}

	stamp := e.now().In(dates.Reference).Format("060102")
	return Blob{
		Filename: fmt.Sprintf("BiblePlan_Progress_%s.json", stamp),
		Data:     data,
	}, nil
}

// WriteFile exports the snapshot into dir and returns the written path.
func (e *ProgressExporter) WriteFile(snap progress.Snapshot, dir string) (string, error) {
	blob, err := e.Export(snap)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir %s: %w", dir, err)
	}

	path := filepath.Join(dir, blob.Filename)
	if err := os.WriteFile(path, blob.Data, 0644); err != nil {
		return "", fmt.Errorf("write export %s: %w", path, err)
	}
	return path, nil
}
