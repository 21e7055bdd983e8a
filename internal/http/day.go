package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bibleplan/tracker/internal/dates"
	"github.com/bibleplan/tracker/internal/engine"
	"github.com/bibleplan/tracker/internal/i18n"
	"github.com/bibleplan/tracker/internal/plan"
	"github.com/bibleplan/tracker/internal/progress"
	"github.com/bibleplan/tracker/internal/sessions"
	"github.com/bibleplan/tracker/internal/settingsstore"
)

// ProgressLoader reads the stored completed-chapter set.
// Implemented by the progress repository.
type ProgressLoader interface {
	Load() (progress.Snapshot, error)
}

// DayResponse is the dashboard view of one date.
type DayResponse struct {
	engine.DayCompletion
	Locale  string `json:"locale"`
	IsToday bool   `json:"is_today"`
	Message string `json:"message,omitempty"`
}

type DayController struct {
	plan          *plan.Index
	planRange     dates.Range
	store         ProgressLoader
	settingsStore *settingsstore.SettingsStore
	sessions      *sessions.Manager
	today         func() string
}

func NewDayController(
	planIdx *plan.Index,
	planRange dates.Range,
	store ProgressLoader,
	settingsStore *settingsstore.SettingsStore,
	sm *sessions.Manager,
	today func() string,
) *DayController {
	return &DayController{
		plan:          planIdx,
		planRange:     planRange,
		store:         store,
		settingsStore: settingsStore,
		sessions:      sm,
		today:         today,
	}
}

// viewDate resolves which date this client is looking at: the session's
// remembered date when present, otherwise today clamped into the plan range.
func (ctrl *DayController) viewDate(c *gin.Context) string {
	fallback := ctrl.planRange.Clamp(ctrl.today())
	if ctrl.sessions == nil {
		return fallback
	}
	return ctrl.sessions.ViewDate(c.Request, fallback)
}

func (ctrl *DayController) rememberDate(c *gin.Context, date string) {
	if ctrl.sessions != nil {
		ctrl.sessions.SetViewDate(c.Request, date)
	}
}

func (ctrl *DayController) respondDay(c *gin.Context, date string) {
	snap, err := ctrl.store.Load()
	if err != nil {
		respondInternalError(c, err, "load progress")
		return
	}

	locale := ctrl.settingsStore.GetLocale()
	if q := c.Query("locale"); q != "" {
		locale = i18n.Parse(q)
	}
	day := engine.CompletionForDate(ctrl.plan, snap, date, locale)

	resp := DayResponse{
		DayCompletion: day,
		Locale:        string(locale),
		IsToday:       date == ctrl.today(),
	}
	switch {
	case !day.HasPlan:
		resp.Message = i18n.T(locale)["day.noPlan"]
	case day.Complete():
		resp.Message = i18n.T(locale)["day.complete"]
	}

	c.JSON(http.StatusOK, resp)
}

// CurrentDay returns the completion view of the date this client is on.
func (ctrl *DayController) CurrentDay(c *gin.Context) {
	ctrl.respondDay(c, ctrl.viewDate(c))
}

// Day returns the completion view of an explicit date and navigates the
// client there.
func (ctrl *DayController) Day(c *gin.Context) {
	date, ok := parseDateParam(c, "date")
	if !ok {
		return
	}
	if !ctrl.planRange.Contains(date) {
		respondBadRequest(c, "date outside the plan range")
		return
	}
	ctrl.rememberDate(c, date)
	ctrl.respondDay(c, date)
}

type navRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// NavDay steps the viewed date by the given number of days. Steps that
// would leave the plan range keep the current date.
func (ctrl *DayController) NavDay(c *gin.Context) {
	var req navRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "delta is required")
		return
	}

	next, err := ctrl.planRange.ChangeDay(ctrl.viewDate(c), req.Delta)
	if err != nil {
		respondInternalError(c, err, "navigate day")
		return
	}
	ctrl.rememberDate(c, next)
	ctrl.respondDay(c, next)
}

// NavMonth steps the viewed date by the given number of months, clamping
// to the plan range boundaries.
func (ctrl *DayController) NavMonth(c *gin.Context) {
	var req navRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "delta is required")
		return
	}

	next, err := ctrl.planRange.ChangeMonth(ctrl.viewDate(c), req.Delta)
	if err != nil {
		respondInternalError(c, err, "navigate month")
		return
	}
	ctrl.rememberDate(c, next)
	ctrl.respondDay(c, next)
}

// NavToday returns the client to today's date.
func (ctrl *DayController) NavToday(c *gin.Context) {
	if ctrl.sessions != nil {
		ctrl.sessions.ClearViewDate(c.Request)
	}
	ctrl.respondDay(c, ctrl.planRange.Clamp(ctrl.today()))
}

// CatchUpResponse reports where the reader fell behind.
type CatchUpResponse struct {
	Behind  bool   `json:"behind"`
	Date    string `json:"date,omitempty"`
	Message string `json:"message,omitempty"`
	Action  string `json:"action,omitempty"`
}

// CatchUp scans for the earliest past date with unread chapters.
func (ctrl *DayController) CatchUp(c *gin.Context) {
	snap, err := ctrl.store.Load()
	if err != nil {
		respondInternalError(c, err, "load progress")
		return
	}

	date, err := engine.EarliestUnreadDate(ctrl.plan, snap, ctrl.planRange.Start, ctrl.today())
	if err != nil {
		respondInternalError(c, err, "catch-up scan")
		return
	}

	if date == "" {
		c.JSON(http.StatusOK, CatchUpResponse{Behind: false})
		return
	}

	locale := ctrl.settingsStore.GetLocale()
	c.JSON(http.StatusOK, CatchUpResponse{
		Behind:  true,
		Date:    date,
		Message: i18n.T(locale)["catchup.banner"],
		Action:  i18n.T(locale)["catchup.action"],
	})
}
