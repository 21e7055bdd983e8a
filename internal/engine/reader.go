package engine

import (
	"errors"
	"fmt"

	"github.com/bibleplan/tracker/internal/plan"
	"github.com/bibleplan/tracker/internal/progress"
)

// View is the reader's current screen.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewReader    View = "reader"
)

// ErrNotReading is returned when a reader transition is requested while
// on the dashboard.
var ErrNotReading = errors.New("no chapter is open")

// Session walks a reader through one day's chapter sequence. Opening a
// chapter moves to the reader view; finishing the last chapter returns
// to the dashboard. Finishing a chapter reports the key to mark read;
// the session itself never touches the store.
type Session struct {
	view  View
	items []plan.ChapterRef
	pos   int
}

// NewSession starts on the dashboard over the given day item sequence.
func NewSession(items []plan.ChapterRef) *Session {
	return &Session{view: ViewDashboard, items: items}
}

// View returns the current screen.
func (s *Session) View() View {
	return s.view
}

// Current returns the open chapter while reading.
func (s *Session) Current() (plan.ChapterRef, error) {
	if s.view != ViewReader {
		return plan.ChapterRef{}, ErrNotReading
	}
	return s.items[s.pos], nil
}

// Open jumps to the i-th chapter of the day and enters the reader.
func (s *Session) Open(i int) (plan.ChapterRef, error) {
	if i < 0 || i >= len(s.items) {
		return plan.ChapterRef{}, fmt.Errorf("chapter index %d out of range (day has %d)", i, len(s.items))
	}
	s.pos = i
	s.view = ViewReader
	return s.items[i], nil
}

// FinishResult describes one finish transition.
type FinishResult struct {
	Finished    progress.Key    // chapter to mark read
	Next        *plan.ChapterRef // nil when the day is done
	DayComplete bool
}

// Finish completes the open chapter. With chapters remaining it advances
// to the next one and stays in the reader; at the end of the sequence it
// returns to the dashboard and signals day completion.
func (s *Session) Finish() (FinishResult, error) {
	if s.view != ViewReader {
		return FinishResult{}, ErrNotReading
	}

	res := FinishResult{Finished: s.items[s.pos].Key()}
	if s.pos+1 < len(s.items) {
		s.pos++
		next := s.items[s.pos]
		res.Next = &next
		return res, nil
	}

	s.view = ViewDashboard
	res.DayComplete = true
	return res, nil
}
