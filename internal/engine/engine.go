// Package engine combines the immutable plan index with a progress
// snapshot to answer the dashboard's questions: what is assigned on a
// date, how complete it is, where the reader fell behind, and the
// monthly/annual totals. Every function here is pure: it reads the
// snapshot, never mutates it.
package engine

import (
	"math"
	"time"

	"github.com/bibleplan/tracker/internal/bible"
	"github.com/bibleplan/tracker/internal/dates"
	"github.com/bibleplan/tracker/internal/i18n"
	"github.com/bibleplan/tracker/internal/plan"
	"github.com/bibleplan/tracker/internal/progress"
)

// ChapterState is one chapter of a day with its read flag.
type ChapterState struct {
	Chapter int  `json:"chapter"`
	IsRead  bool `json:"is_read"`
}

// BookGroup is the chapters of one book on one day, grouped for display.
type BookGroup struct {
	BookID      string         `json:"book_id"`
	DisplayName string         `json:"display_name"`
	Chapters    []ChapterState `json:"chapters"`
}

// DayCompletion is the full completion view of one date.
type DayCompletion struct {
	Date    string      `json:"date"`
	HasPlan bool        `json:"has_plan"`
	Titles  []string    `json:"titles,omitempty"`
	Groups  []BookGroup `json:"groups,omitempty"`
	Done    int         `json:"done"`
	Total   int         `json:"total"`
}

// Complete reports whether every assigned chapter of the day is read.
func (d DayCompletion) Complete() bool {
	return d.HasPlan && d.Done == d.Total
}

// displayName picks the localized book name for grouping headers.
func displayName(b *bible.Book, locale i18n.Locale) string {
	if locale == i18n.LocaleEn {
		return b.NameEn
	}
	return b.NameZh
}

// CompletionForDate returns the titles and per-book chapter states for a
// date. Dates without plan entries yield an empty result with
// HasPlan=false, never an error.
func CompletionForDate(idx *plan.Index, snap progress.Snapshot, date string, locale i18n.Locale) DayCompletion {
	day := idx.ItemsForDate(date, locale)
	out := DayCompletion{Date: date, Titles: day.Titles}
	if len(day.Items) == 0 {
		return out
	}
	out.HasPlan = true

	groupIdx := make(map[string]int)
	for _, item := range day.Items {
		read := snap.IsRead(item.Key())
		out.Total++
		if read {
			out.Done++
		}

		gi, ok := groupIdx[item.Book.ID]
		if !ok {
			gi = len(out.Groups)
			groupIdx[item.Book.ID] = gi
			out.Groups = append(out.Groups, BookGroup{
				BookID:      item.Book.ID,
				DisplayName: displayName(item.Book, locale),
			})
		}
		out.Groups[gi].Chapters = append(out.Groups[gi].Chapters, ChapterState{
			Chapter: item.Chapter,
			IsRead:  read,
		})
	}
	return out
}

// EarliestUnreadDate scans ascending from the range start to the day
// before today and returns the first date whose assigned chapters are not
// all read. Today itself never counts: catch-up only concerns past days.
// The empty string means the reader is caught up (or nothing was planned).
func EarliestUnreadDate(idx *plan.Index, snap progress.Snapshot, rangeStart, today string) (string, error) {
	end, err := dates.AddDays(today, -1)
	if err != nil {
		return "", err
	}

	for d := rangeStart; d <= end; {
		if entries := idx.EntriesForDate(d); len(entries) > 0 {
			allRead := true
			for _, e := range entries {
				for _, ch := range e.Chapters {
					if !snap.IsRead(progress.NewKey(e.Book.ID, ch)) {
						allRead = false
						break
					}
				}
				if !allRead {
					break
				}
			}
			if !allRead {
				return d, nil
			}
		}
		d, err = dates.AddDays(d, 1)
		if err != nil {
			return "", err
		}
	}
	return "", nil
}

// Completion is a done/total pair with a derived percentage.
type Completion struct {
	Done    int `json:"done"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

// MonthlyCompletion counts the assigned and read chapters inside
// (year, month). Percent is 0 when the month has no assignments.
func MonthlyCompletion(idx *plan.Index, snap progress.Snapshot, year int, month time.Month) Completion {
	var c Completion
	for _, key := range idx.KeysForMonth(year, month) {
		c.Total++
		if snap.IsRead(key) {
			c.Done++
		}
	}
	if c.Total > 0 {
		c.Percent = int(math.Round(100 * float64(c.Done) / float64(c.Total)))
	}
	return c
}

// AnnualCompletion is the global chapters-read count against the canon.
type AnnualCompletion struct {
	Done    int     `json:"done"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// AnnualProgress measures the snapshot against all 1189 canonical
// chapters. The count is global, not scoped to the plan: the key scheme
// guarantees each chapter appears at most once.
func AnnualProgress(snap progress.Snapshot) AnnualCompletion {
	done := snap.Count()
	return AnnualCompletion{
		Done:    done,
		Total:   bible.TotalChapters,
		Percent: 100 * float64(done) / float64(bible.TotalChapters),
	}
}
