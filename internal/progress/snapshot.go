// Package progress models the set of chapters a reader has completed.
//
// A Snapshot is a plain in-memory set keyed by canonical (book, chapter)
// identity. Persistence and transport use the flat blob format the app has
// always exported: a JSON object whose keys are "<bookID>_<chapter>" and
// whose values are true. Membership is the only state; a chapter toggled
// off is removed, never stored as false, so the set size is the number of
// chapters read.
package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bibleplan/tracker/internal/bible"
)

// ErrMalformed is returned by Deserialize when the blob is not a valid
// progress export. Callers must keep their previous snapshot on this error.
var ErrMalformed = errors.New("malformed progress data")

// Key identifies one chapter's progress state, independent of any
// display language.
type Key struct {
	Book    string // canonical bible.Book ID
	Chapter int
}

// NewKey builds a key for a book and chapter.
func NewKey(bookID string, chapter int) Key {
	return Key{Book: bookID, Chapter: chapter}
}

// String renders the key in the serialized blob form.
func (k Key) String() string {
	return k.Book + "_" + strconv.Itoa(k.Chapter)
}

// ParseKey parses a serialized "<book>_<chapter>" token. Book tokens from
// older data revisions (Chinese abbreviations or full names) are
// normalized to the canonical ID; unknown books or impossible chapter
// numbers are rejected.
func ParseKey(s string) (Key, error) {
	idx := strings.LastIndex(s, "_")
	if idx <= 0 || idx == len(s)-1 {
		return Key{}, fmt.Errorf("progress key %q: missing separator", s)
	}
	chapter, err := strconv.Atoi(s[idx+1:])
	if err != nil {
		return Key{}, fmt.Errorf("progress key %q: bad chapter: %w", s, err)
	}
	book := bible.Resolve(s[:idx])
	if book == nil {
		return Key{}, fmt.Errorf("progress key %q: unknown book", s)
	}
	if !book.HasChapter(chapter) {
		return Key{}, fmt.Errorf("progress key %q: %s has no chapter %d", s, book.ID, chapter)
	}
	return Key{Book: book.ID, Chapter: chapter}, nil
}

// Snapshot is the in-memory set of completed chapters.
type Snapshot map[Key]bool

// NewSnapshot returns an empty snapshot.
func NewSnapshot() Snapshot {
	return make(Snapshot)
}

// IsRead reports membership.
func (s Snapshot) IsRead(k Key) bool {
	return s[k]
}

// MarkRead adds the key. Idempotent.
func (s Snapshot) MarkRead(k Key) {
	s[k] = true
}

// MarkUnread removes the key. Idempotent.
func (s Snapshot) MarkUnread(k Key) {
	delete(s, k)
}

// Toggle flips membership and reports the new state.
func (s Snapshot) Toggle(k Key) bool {
	if s[k] {
		delete(s, k)
		return false
	}
	s[k] = true
	return true
}

// BulkSet marks or clears every key in one pass. Used by the month-level
// complete/clear operations.
func (s Snapshot) BulkSet(keys []Key, read bool) {
	for _, k := range keys {
		if read {
			s[k] = true
		} else {
			delete(s, k)
		}
	}
}

// Count returns the number of chapters read.
func (s Snapshot) Count() int {
	return len(s)
}

// Clone returns an independent copy.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for k := range s {
		out[k] = true
	}
	return out
}

// Keys returns the members sorted by serialized form, for deterministic
// iteration.
func (s Snapshot) Keys() []Key {
	keys := make([]Key, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}

// Serialize renders the snapshot as the flat export blob.
func (s Snapshot) Serialize() ([]byte, error) {
	flat := make(map[string]bool, len(s))
	for k := range s {
		flat[k.String()] = true
	}
	data, err := json.Marshal(flat)
	if err != nil {
		return nil, fmt.Errorf("serialize progress: %w", err)
	}
	return data, nil
}

// DeserializeResult reports what a blob parse produced.
type DeserializeResult struct {
	Imported int // keys accepted
	Skipped  int // keys dropped (unknown book, bad chapter, false value)
}

// Deserialize parses an export blob into a fresh snapshot. A blob that is
// not a JSON object of booleans fails with ErrMalformed; individual keys
// that cannot be resolved to a canonical chapter are skipped and counted
// rather than failing the whole parse.
func Deserialize(data []byte) (Snapshot, DeserializeResult, error) {
	var flat map[string]bool
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, DeserializeResult{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	snap := make(Snapshot, len(flat))
	var res DeserializeResult
	for raw, read := range flat {
		if !read {
			res.Skipped++
			continue
		}
		key, err := ParseKey(raw)
		if err != nil {
			res.Skipped++
			continue
		}
		snap[key] = true
	}
	res.Imported = len(snap)
	return snap, res, nil
}
