// Package scripture loads translated scripture text into a per-locale
// store keyed by canonical book and chapter.
//
// The source data is a flat array of lines shaped like
// "<book><chapter>:<verse> <text>" where <book> is a locale-specific
// token (Chinese abbreviation or full name, English full name) glued
// directly to the chapter number, e.g. "創1:1 起初…" or
// "Genesis1:1 In the beginning…". Lines that do not match the grammar
// are dropped with a count, never fatal.
package scripture

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"

	"github.com/bibleplan/tracker/internal/bible"
	"github.com/bibleplan/tracker/internal/i18n"
)

// ErrChapterMissing is returned when the requested book/chapter is absent
// from the store for the selected locale. Callers render a placeholder
// instead of failing navigation.
var ErrChapterMissing = errors.New("scripture chapter not available")

var lineRe = regexp.MustCompile(`^(.+?)(\d+):(\d+)\s+(.*)$`)

// Verse is a single numbered verse.
type Verse struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

type chapterID struct {
	book    string
	chapter int
}

// Store holds parsed scripture for one locale.
type Store struct {
	locale   i18n.Locale
	chapters map[chapterID]map[int]string
	skipped  int
}

// Parse builds a store from raw scripture lines. Book tokens resolve
// through the canonical table; lines with unknown books or malformed
// structure are counted and skipped, never fatal.
func Parse(locale i18n.Locale, lines []string) *Store {
	s := &Store{
		locale:   locale,
		chapters: make(map[chapterID]map[int]string),
	}

	for _, line := range lines {
		m := lineRe.FindStringSubmatch(line)
		if m == nil {
			s.skipped++
			continue
		}
		book := bible.Resolve(m[1])
		if book == nil {
			s.skipped++
			continue
		}
		chapter, _ := strconv.Atoi(m[2])
		verse, _ := strconv.Atoi(m[3])
		if !book.HasChapter(chapter) || verse < 1 {
			s.skipped++
			continue
		}

		id := chapterID{book: book.ID, chapter: chapter}
		if s.chapters[id] == nil {
			s.chapters[id] = make(map[int]string)
		}
		s.chapters[id][verse] = m[4]
	}
	return s
}

// LoadFile reads a JSON array of scripture lines and parses it.
func LoadFile(locale i18n.Locale, path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scripture %s: %w", path, err)
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("parse scripture %s: %w", path, err)
	}
	return Parse(locale, lines), nil
}

// Locale returns the store's locale.
func (s *Store) Locale() i18n.Locale {
	return s.locale
}

// Skipped returns how many source lines were dropped during parsing.
func (s *Store) Skipped() int {
	return s.skipped
}

// ChapterCount returns how many distinct chapters the store holds.
func (s *Store) ChapterCount() int {
	return len(s.chapters)
}

// Chapter returns the verses of one chapter in verse order.
func (s *Store) Chapter(bookID string, chapter int) ([]Verse, error) {
	verses, ok := s.chapters[chapterID{book: bookID, chapter: chapter}]
	if !ok {
		return nil, fmt.Errorf("%w: %s %d (%s)", ErrChapterMissing, bookID, chapter, s.locale)
	}

	out := make([]Verse, 0, len(verses))
	for n, text := range verses {
		out = append(out, Verse{Number: n, Text: text})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

// Set is the scripture stores for every supported locale.
type Set map[i18n.Locale]*Store

// Chapter looks up a chapter in the store for the given locale.
func (set Set) Chapter(locale i18n.Locale, bookID string, chapter int) ([]Verse, error) {
	store, ok := set[locale]
	if !ok {
		return nil, fmt.Errorf("%w: no scripture for locale %s", ErrChapterMissing, locale)
	}
	return store.Chapter(bookID, chapter)
}
