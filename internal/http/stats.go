package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bibleplan/tracker/internal/dates"
	"github.com/bibleplan/tracker/internal/engine"
	"github.com/bibleplan/tracker/internal/plan"
)

type StatsController struct {
	plan  *plan.Index
	store ProgressLoader
}

func NewStatsController(planIdx *plan.Index, store ProgressLoader) *StatsController {
	return &StatsController{plan: planIdx, store: store}
}

// Monthly returns the done/total counts for the month containing :date.
func (ctrl *StatsController) Monthly(c *gin.Context) {
	date, ok := parseDateParam(c, "date")
	if !ok {
		return
	}
	year, month, err := dates.YearMonth(date)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	snap, err := ctrl.store.Load()
	if err != nil {
		respondInternalError(c, err, "load progress")
		return
	}

	c.JSON(http.StatusOK, engine.MonthlyCompletion(ctrl.plan, snap, year, month))
}

// Annual returns the global chapters-read count against the whole canon.
func (ctrl *StatsController) Annual(c *gin.Context) {
	snap, err := ctrl.store.Load()
	if err != nil {
		respondInternalError(c, err, "load progress")
		return
	}

	c.JSON(http.StatusOK, engine.AnnualProgress(snap))
}
