package entities

import (
	"time"
)

// ChapterRead records one completed chapter. Presence of a row means
// "read"; unmarking deletes the row, so the table cardinality is the
// number of chapters read.
type ChapterRead struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Book      string    `gorm:"size:8;uniqueIndex:idx_chapter_identity,priority:1" json:"book"`
	Chapter   int       `gorm:"uniqueIndex:idx_chapter_identity,priority:2" json:"chapter"`
	CreatedAt time.Time `json:"created_at"`
}

func (ChapterRead) TableName() string {
	return "chapter_reads"
}
