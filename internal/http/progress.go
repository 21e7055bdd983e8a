package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bibleplan/tracker/internal/audit"
	"github.com/bibleplan/tracker/internal/bible"
	"github.com/bibleplan/tracker/internal/dates"
	"github.com/bibleplan/tracker/internal/engine"
	"github.com/bibleplan/tracker/internal/i18n"
	"github.com/bibleplan/tracker/internal/plan"
	"github.com/bibleplan/tracker/internal/progress"
	"github.com/bibleplan/tracker/internal/settingsstore"
)

// ProgressStore is the persistence surface the progress controller needs.
// Implemented by the progress repository.
type ProgressStore interface {
	Load() (progress.Snapshot, error)
	SetRead(key progress.Key, read bool) error
	BulkSet(keys []progress.Key, read bool) error
}

type ProgressController struct {
	plan          *plan.Index
	store         ProgressStore
	settingsStore *settingsstore.SettingsStore
	auditor       *audit.Service
}

func NewProgressController(
	planIdx *plan.Index,
	store ProgressStore,
	settingsStore *settingsstore.SettingsStore,
	auditor *audit.Service,
) *ProgressController {
	return &ProgressController{
		plan:          planIdx,
		store:         store,
		settingsStore: settingsStore,
		auditor:       auditor,
	}
}

type toggleRequest struct {
	Book    string `json:"book" binding:"required"`
	Chapter int    `json:"chapter" binding:"required"`
}

type toggleResponse struct {
	Key    string `json:"key"`
	IsRead bool   `json:"is_read"`
}

// Toggle flips one chapter's read state.
func (ctrl *ProgressController) Toggle(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "book and chapter are required")
		return
	}

	book := bible.Resolve(req.Book)
	if book == nil {
		respondBadRequest(c, fmt.Sprintf("unknown book %q", req.Book))
		return
	}
	if !book.HasChapter(req.Chapter) {
		respondBadRequest(c, fmt.Sprintf("%s has no chapter %d", book.ID, req.Chapter))
		return
	}

	key := progress.NewKey(book.ID, req.Chapter)
	snap, err := ctrl.store.Load()
	if err != nil {
		respondInternalError(c, err, "load progress")
		return
	}

	next := !snap.IsRead(key)
	if err := ctrl.store.SetRead(key, next); err != nil {
		respondInternalError(c, err, "toggle chapter")
		return
	}

	c.JSON(http.StatusOK, toggleResponse{Key: key.String(), IsRead: next})
}

type monthResponse struct {
	Message    string            `json:"message"`
	Completion engine.Completion `json:"completion"`
}

// monthKeys resolves the :date parameter into its month's assigned keys.
func (ctrl *ProgressController) monthKeys(c *gin.Context) ([]progress.Key, bool) {
	date, ok := parseDateParam(c, "date")
	if !ok {
		return nil, false
	}
	year, month, err := dates.YearMonth(date)
	if err != nil {
		respondBadRequest(c, err.Error())
		return nil, false
	}

	keys := ctrl.plan.KeysForMonth(year, month)
	if len(keys) == 0 {
		respondNotFound(c, "no chapters assigned in that month")
		return nil, false
	}
	return keys, true
}

func (ctrl *ProgressController) monthCompletion(c *gin.Context, date string) (engine.Completion, error) {
	snap, err := ctrl.store.Load()
	if err != nil {
		return engine.Completion{}, err
	}
	year, month, err := dates.YearMonth(date)
	if err != nil {
		return engine.Completion{}, err
	}
	return engine.MonthlyCompletion(ctrl.plan, snap, year, month), nil
}

// CompleteMonth marks every chapter assigned in the date's month as read.
func (ctrl *ProgressController) CompleteMonth(c *gin.Context) {
	keys, ok := ctrl.monthKeys(c)
	if !ok {
		return
	}
	date := c.Param("date")

	if err := ctrl.store.BulkSet(keys, true); err != nil {
		ctrl.auditor.LogBulkMonth("month_complete", date, len(keys), err)
		respondInternalError(c, err, "complete month")
		return
	}
	ctrl.auditor.LogBulkMonth("month_complete", date, len(keys), nil)

	locale := ctrl.settingsStore.GetLocale()
	completion, err := ctrl.monthCompletion(c, date)
	if err != nil {
		respondInternalError(c, err, "month completion")
		return
	}
	c.JSON(http.StatusOK, monthResponse{
		Message:    i18n.T(locale)["month.marked"],
		Completion: completion,
	})
}

// ClearMonth unmarks every chapter of the date's month, but only when the
// month is fully read. A partially read month is refused so a mistap
// cannot wipe fine-grained progress.
func (ctrl *ProgressController) ClearMonth(c *gin.Context) {
	keys, ok := ctrl.monthKeys(c)
	if !ok {
		return
	}
	date := c.Param("date")
	locale := ctrl.settingsStore.GetLocale()

	snap, err := ctrl.store.Load()
	if err != nil {
		respondInternalError(c, err, "load progress")
		return
	}
	for _, key := range keys {
		if !snap.IsRead(key) {
			respondConflict(c, i18n.T(locale)["month.notDone"])
			return
		}
	}

	if err := ctrl.store.BulkSet(keys, false); err != nil {
		ctrl.auditor.LogBulkMonth("month_clear", date, len(keys), err)
		respondInternalError(c, err, "clear month")
		return
	}
	ctrl.auditor.LogBulkMonth("month_clear", date, len(keys), nil)

	completion, err := ctrl.monthCompletion(c, date)
	if err != nil {
		respondInternalError(c, err, "month completion")
		return
	}
	c.JSON(http.StatusOK, monthResponse{
		Message:    i18n.T(locale)["month.cleared"],
		Completion: completion,
	})
}
