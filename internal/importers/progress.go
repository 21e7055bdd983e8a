// Package importers handles user-supplied progress blobs. The pipeline
// is parse → validate keys → replace the stored set atomically; a parse
// failure leaves the existing progress untouched.
package importers

import (
	"fmt"

	"github.com/bibleplan/tracker/internal/progress"
)

// Replacer persists a full snapshot, replacing whatever was stored.
// Implemented by the progress repository.
type Replacer interface {
	Replace(progress.Snapshot) error
}

// Result summarizes one import.
type Result struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Pipeline runs progress imports against a store.
type Pipeline struct {
	store Replacer
}

// NewPipeline creates an import pipeline over the given store.
func NewPipeline(store Replacer) *Pipeline {
	return &Pipeline{store: store}
}

// Import parses a blob and, on success, replaces the stored progress
// with its contents. Unknown keys inside a well-formed blob are skipped
// and counted; a malformed blob fails with progress.ErrMalformed before
// anything is written.
func (p *Pipeline) Import(data []byte) (progress.Snapshot, Result, error) {
	snap, res, err := progress.Deserialize(data)
	if err != nil {
		return nil, Result{}, err
	}

	if err := p.store.Replace(snap); err != nil {
		return nil, Result{}, fmt.Errorf("persist imported progress: %w", err)
	}

	return snap, Result{Imported: res.Imported, Skipped: res.Skipped}, nil
}
