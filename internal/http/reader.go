package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bibleplan/tracker/internal/dates"
	"github.com/bibleplan/tracker/internal/engine"
	"github.com/bibleplan/tracker/internal/i18n"
	"github.com/bibleplan/tracker/internal/plan"
	"github.com/bibleplan/tracker/internal/sessions"
	"github.com/bibleplan/tracker/internal/settingsstore"
)

// ReaderController drives the chapter-by-chapter reading flow. The open
// position lives in the browser session; each finish persists the read
// mark and either advances or returns to the dashboard.
type ReaderController struct {
	plan          *plan.Index
	planRange     dates.Range
	store         ProgressStore
	settingsStore *settingsstore.SettingsStore
	sessions      *sessions.Manager
	today         func() string
}

func NewReaderController(
	planIdx *plan.Index,
	planRange dates.Range,
	store ProgressStore,
	settingsStore *settingsstore.SettingsStore,
	sm *sessions.Manager,
	today func() string,
) *ReaderController {
	return &ReaderController{
		plan:          planIdx,
		planRange:     planRange,
		store:         store,
		settingsStore: settingsStore,
		sessions:      sm,
		today:         today,
	}
}

// ChapterPosition is one open chapter within a day's sequence.
type ChapterPosition struct {
	Date     string `json:"date"`
	Index    int    `json:"index"`
	Count    int    `json:"count"`
	Book     string `json:"book"`
	BookName string `json:"book_name"`
	Chapter  int    `json:"chapter"`
}

func (ctrl *ReaderController) position(date string, items []plan.ChapterRef, idx int, locale i18n.Locale) ChapterPosition {
	ref := items[idx]
	name := ref.Book.NameZh
	if locale == i18n.LocaleEn {
		name = ref.Book.NameEn
	}
	return ChapterPosition{
		Date:     date,
		Index:    idx,
		Count:    len(items),
		Book:     ref.Book.ID,
		BookName: name,
		Chapter:  ref.Chapter,
	}
}

type openRequest struct {
	Date  string `json:"date"`
	Index int    `json:"index"`
}

// Open enters the reader at the i-th chapter of a day. The date defaults
// to the client's viewed date.
func (ctrl *ReaderController) Open(c *gin.Context) {
	var req openRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	date := req.Date
	if date == "" {
		date = ctrl.sessions.ViewDate(c.Request, ctrl.planRange.Clamp(ctrl.today()))
	} else if _, err := dates.Parse(date); err != nil {
		respondBadRequest(c, "invalid date: expected YYYY-MM-DD")
		return
	}

	locale := ctrl.settingsStore.GetLocale()
	items := ctrl.plan.ItemsForDate(date, locale).Items
	session := engine.NewSession(items)
	if _, err := session.Open(req.Index); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	ctrl.sessions.SetReaderState(c.Request, date, req.Index)
	c.JSON(http.StatusOK, ctrl.position(date, items, req.Index, locale))
}

type currentResponse struct {
	Reading bool             `json:"reading"`
	Current *ChapterPosition `json:"current,omitempty"`
}

// resume rebuilds the engine session from the browser session state.
func (ctrl *ReaderController) resume(c *gin.Context) (string, []plan.ChapterRef, int, *engine.Session, bool) {
	date, pos, reading := ctrl.sessions.ReaderState(c.Request)
	if !reading {
		return "", nil, 0, nil, false
	}

	items := ctrl.plan.ItemsForDate(date, ctrl.settingsStore.GetLocale()).Items
	session := engine.NewSession(items)
	if _, err := session.Open(pos); err != nil {
		// Stale state, e.g. the plan file changed under a live session.
		ctrl.sessions.ClearReaderState(c.Request)
		return "", nil, 0, nil, false
	}
	return date, items, pos, session, true
}

// Current reports which chapter is open, if any.
func (ctrl *ReaderController) Current(c *gin.Context) {
	date, items, idx, _, reading := ctrl.resume(c)
	if !reading {
		c.JSON(http.StatusOK, currentResponse{Reading: false})
		return
	}

	pos := ctrl.position(date, items, idx, ctrl.settingsStore.GetLocale())
	c.JSON(http.StatusOK, currentResponse{Reading: true, Current: &pos})
}

// FinishResponse describes one finish transition.
type FinishResponse struct {
	Finished    string           `json:"finished"`
	DayComplete bool             `json:"day_complete"`
	Next        *ChapterPosition `json:"next,omitempty"`
	Message     string           `json:"message,omitempty"`
}

// Finish marks the open chapter read and advances to the next one, or
// returns to the dashboard when the day is done.
func (ctrl *ReaderController) Finish(c *gin.Context) {
	date, items, idx, session, reading := ctrl.resume(c)
	if !reading {
		respondConflict(c, engine.ErrNotReading.Error())
		return
	}

	res, err := session.Finish()
	if err != nil {
		respondConflict(c, err.Error())
		return
	}
	if err := ctrl.store.SetRead(res.Finished, true); err != nil {
		respondInternalError(c, err, "mark chapter read")
		return
	}

	locale := ctrl.settingsStore.GetLocale()
	out := FinishResponse{Finished: res.Finished.String(), DayComplete: res.DayComplete}
	if res.Next != nil {
		ctrl.sessions.SetReaderState(c.Request, date, idx+1)
		pos := ctrl.position(date, items, idx+1, locale)
		out.Next = &pos
	} else {
		ctrl.sessions.ClearReaderState(c.Request)
		out.Message = i18n.T(locale)["day.complete"]
	}
	c.JSON(http.StatusOK, out)
}

// FinishHome marks the open chapter read and returns straight to the
// dashboard without advancing.
func (ctrl *ReaderController) FinishHome(c *gin.Context) {
	_, _, _, session, reading := ctrl.resume(c)
	if !reading {
		respondConflict(c, engine.ErrNotReading.Error())
		return
	}

	ref, err := session.Current()
	if err != nil {
		respondConflict(c, err.Error())
		return
	}
	if err := ctrl.store.SetRead(ref.Key(), true); err != nil {
		respondInternalError(c, err, "mark chapter read")
		return
	}

	ctrl.sessions.ClearReaderState(c.Request)
	c.JSON(http.StatusOK, FinishResponse{Finished: ref.Key().String()})
}

// Close leaves the reader without marking anything.
func (ctrl *ReaderController) Close(c *gin.Context) {
	ctrl.sessions.ClearReaderState(c.Request)
	respondSuccess(c, "closed")
}
