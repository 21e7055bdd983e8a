// Package plan loads and indexes the yearly reading plan. The plan is
// immutable after load: every query is a pure lookup over the index.
package plan

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/bibleplan/tracker/internal/bible"
	"github.com/bibleplan/tracker/internal/dates"
	"github.com/bibleplan/tracker/internal/i18n"
	"github.com/bibleplan/tracker/internal/progress"
)

// RawEntry mirrors one record of the external plan JSON.
type RawEntry struct {
	Date          string `json:"date"`
	Book          string `json:"book"`
	BookEn        string `json:"book_en,omitempty"`
	Description   string `json:"description"`
	DescriptionEn string `json:"description_en,omitempty"`
	Chapters      []int  `json:"chapters"`
}

// Entry is a resolved plan record: the book display strings have been
// mapped to the canonical book and the date validated.
type Entry struct {
	Date         string
	Book         *bible.Book
	Descriptions map[i18n.Locale]string
	Chapters     []int
}

// Description returns the localized description, falling back to the
// default locale when no localized text exists.
func (e *Entry) Description(locale i18n.Locale) string {
	if d, ok := e.Descriptions[locale]; ok && d != "" {
		return d
	}
	return e.Descriptions[i18n.Default]
}

// ChapterRef is one assigned chapter of one book.
type ChapterRef struct {
	Book    *bible.Book
	Chapter int
}

// Key returns the progress identity of the referenced chapter.
func (r ChapterRef) Key() progress.Key {
	return progress.NewKey(r.Book.ID, r.Chapter)
}

// DayItems is the flattened view of one date's assignments.
type DayItems struct {
	Date   string
	Titles []string     // deduplicated, entry order
	Items  []ChapterRef // entry order, then chapter order
}

// Index is the loaded, immutable plan.
type Index struct {
	entries []Entry
	byDate  map[string][]*Entry
}

// Load resolves and indexes raw plan records. Records with unknown books,
// unparseable dates, or chapter numbers outside the book are rejected:
// the plan is startup data and a bad plan is a fatal condition, not
// something to limp past.
func Load(raw []RawEntry) (*Index, error) {
	idx := &Index{
		entries: make([]Entry, 0, len(raw)),
		byDate:  make(map[string][]*Entry),
	}

	for i, r := range raw {
		if _, err := dates.Parse(r.Date); err != nil {
			return nil, fmt.Errorf("plan entry %d: %w", i, err)
		}
		book := bible.ByNameZh(r.Book)
		if book == nil {
			book = bible.Resolve(r.Book)
		}
		if book == nil {
			return nil, fmt.Errorf("plan entry %d (%s): unknown book %q", i, r.Date, r.Book)
		}
		if len(r.Chapters) == 0 {
			return nil, fmt.Errorf("plan entry %d (%s): no chapters", i, r.Date)
		}
		seen := make(map[int]bool, len(r.Chapters))
		for _, ch := range r.Chapters {
			if !book.HasChapter(ch) {
				return nil, fmt.Errorf("plan entry %d (%s): %s has no chapter %d", i, r.Date, book.ID, ch)
			}
			if seen[ch] {
				return nil, fmt.Errorf("plan entry %d (%s): duplicate chapter %d", i, r.Date, ch)
			}
			seen[ch] = true
		}

		entry := Entry{
			Date: r.Date,
			Book: book,
			Descriptions: map[i18n.Locale]string{
				i18n.LocaleZh: r.Description,
				i18n.LocaleEn: r.DescriptionEn,
			},
			Chapters: append([]int(nil), r.Chapters...),
		}
		idx.entries = append(idx.entries, entry)
	}

	// Index after the slice is final so pointers stay valid.
	for i := range idx.entries {
		e := &idx.entries[i]
		idx.byDate[e.Date] = append(idx.byDate[e.Date], e)
	}
	return idx, nil
}

// LoadBytes parses plan JSON and builds the index.
func LoadBytes(data []byte) (*Index, error) {
	var raw []RawEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse plan JSON: %w", err)
	}
	return Load(raw)
}

// LoadFile reads and indexes a plan file.
func LoadFile(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan %s: %w", path, err)
	}
	return LoadBytes(data)
}

// Len returns the number of plan entries.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Entries returns all entries in file order.
func (idx *Index) Entries() []Entry {
	return idx.entries
}

// EntriesForDate returns the entries assigned to a date key, insertion
// order preserved. Empty when the date has no plan.
func (idx *Index) EntriesForDate(date string) []*Entry {
	return idx.byDate[date]
}

// ItemsForDate flattens a date's entries into deduplicated titles and an
// ordered chapter sequence. Deterministic for a given (date, locale).
func (idx *Index) ItemsForDate(date string, locale i18n.Locale) DayItems {
	day := DayItems{Date: date}
	seenTitles := make(map[string]bool)

	for _, e := range idx.byDate[date] {
		title := e.Description(locale)
		if title != "" && !seenTitles[title] {
			seenTitles[title] = true
			day.Titles = append(day.Titles, title)
		}
		for _, ch := range e.Chapters {
			day.Items = append(day.Items, ChapterRef{Book: e.Book, Chapter: ch})
		}
	}
	return day
}

// KeysForMonth returns the progress keys of every chapter assigned inside
// (year, month), in plan order.
func (idx *Index) KeysForMonth(year int, month time.Month) []progress.Key {
	var keys []progress.Key
	for i := range idx.entries {
		e := &idx.entries[i]
		if !dates.InMonth(e.Date, year, month) {
			continue
		}
		for _, ch := range e.Chapters {
			keys = append(keys, progress.NewKey(e.Book.ID, ch))
		}
	}
	return keys
}
