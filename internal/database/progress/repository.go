// Package progress provides database operations for the completed-chapter
// set. The table mirrors the in-memory snapshot exactly: one row per read
// chapter, removed when unmarked.
//
// # Usage
//
//	repo := progress.NewRepository(db)
//	snap, err := repo.Load()
package progress

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bibleplan/tracker/internal/entities"
	prg "github.com/bibleplan/tracker/internal/progress"
)

// Repository handles all progress database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new progress repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Load reads the full completed-chapter set into a snapshot.
func (r *Repository) Load() (prg.Snapshot, error) {
	var rows []entities.ChapterRead
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}

	snap := prg.NewSnapshot()
	for _, row := range rows {
		snap.MarkRead(prg.NewKey(row.Book, row.Chapter))
	}
	return snap, nil
}

// SetRead persists one chapter's read state. Marking is idempotent via
// an upsert on the (book, chapter) identity; unmarking deletes the row.
func (r *Repository) SetRead(key prg.Key, read bool) error {
	if read {
		row := entities.ChapterRead{Book: key.Book, Chapter: key.Chapter}
		err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
		if err != nil {
			return fmt.Errorf("mark %s read: %w", key, err)
		}
		return nil
	}

	err := r.db.Where("book = ? AND chapter = ?", key.Book, key.Chapter).
		Delete(&entities.ChapterRead{}).Error
	if err != nil {
		return fmt.Errorf("mark %s unread: %w", key, err)
	}
	return nil
}

// BulkSet marks or clears a key list inside one transaction.
func (r *Repository) BulkSet(keys []prg.Key, read bool) error {
	if len(keys) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, key := range keys {
			if read {
				row := entities.ChapterRead{Book: key.Book, Chapter: key.Chapter}
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Where("book = ? AND chapter = ?", key.Book, key.Chapter).
					Delete(&entities.ChapterRead{}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Replace swaps the entire stored set for the snapshot, atomically.
// Used by import: either the whole new set lands or nothing changes.
func (r *Repository) Replace(snap prg.Snapshot) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entities.ChapterRead{}).Error; err != nil {
			return err
		}
		for _, key := range snap.Keys() {
			row := entities.ChapterRead{Book: key.Book, Chapter: key.Chapter}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Count returns the number of chapters read.
func (r *Repository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&entities.ChapterRead{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count progress: %w", err)
	}
	return n, nil
}
