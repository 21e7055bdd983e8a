package http

import (
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	auditsvc "github.com/bibleplan/tracker/internal/audit"
	"github.com/bibleplan/tracker/internal/database"
	dbaudit "github.com/bibleplan/tracker/internal/database/audit"
	dbprogress "github.com/bibleplan/tracker/internal/database/progress"
	dbsettings "github.com/bibleplan/tracker/internal/database/settings"
	"github.com/bibleplan/tracker/internal/dates"
	"github.com/bibleplan/tracker/internal/exporters"
	"github.com/bibleplan/tracker/internal/importers"
	"github.com/bibleplan/tracker/internal/plan"
	"github.com/bibleplan/tracker/internal/scripture"
	"github.com/bibleplan/tracker/internal/settingsstore"
)

// testToday is the fixed "now" every router test runs at.
const testToday = "2026-01-03"

type testEnv struct {
	db            *database.Database
	progressRepo  *dbprogress.Repository
	settingsStore *settingsstore.SettingsStore
	router        *gin.Engine
}

func testPlan(t *testing.T) *plan.Index {
	t.Helper()
	idx, err := plan.Load([]plan.RawEntry{
		{Date: "2026-01-01", Book: "gen", Description: "創世記", DescriptionEn: "Genesis", Chapters: []int{1, 2}},
		{Date: "2026-01-02", Book: "gen", Description: "創世記", DescriptionEn: "Genesis", Chapters: []int{3, 4, 5}},
		{Date: "2026-01-31", Book: "exo", Description: "出埃及記", DescriptionEn: "Exodus", Chapters: []int{1}},
		{Date: "2026-02-01", Book: "exo", Description: "出埃及記", DescriptionEn: "Exodus", Chapters: []int{2}},
	})
	require.NoError(t, err)
	return idx
}

func testScriptures() scripture.Set {
	zh := scripture.Parse("zh", []string{
		"創1:1 起初神創造天地",
		"創1:2 地是空虛混沌",
	})
	en := scripture.Parse("en", []string{
		"Genesis1:1 In the beginning God created the heaven and the earth.",
	})
	return scripture.Set{"zh": zh, "en": en}
}

func setupTestEnv(t *testing.T) (*testEnv, func()) {
	return setupTestEnvWith(t, nil)
}

func setupTestEnvWith(t *testing.T, configure func(*RouterConfig)) (*testEnv, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	progressRepo := dbprogress.NewRepository(db.DB)
	settingsStore := settingsstore.New(dbsettings.NewRepository(db.DB))
	auditor := auditsvc.NewService(dbaudit.NewRepository(db.DB))

	planRange, err := dates.NewRange("2026-01-01", "2026-12-31")
	require.NoError(t, err)

	cfg := RouterConfig{
		Database:      db,
		Plan:          testPlan(t),
		PlanRange:     planRange,
		Scriptures:    testScriptures(),
		ProgressRepo:  progressRepo,
		SettingsStore: settingsStore,
		Auditor:       auditor,
		Exporter:      exporters.NewProgressExporter(),
		Importer:      importers.NewPipeline(progressRepo),
		Version:       "test",
		Today:         func() string { return testToday },
	}
	if configure != nil {
		configure(&cfg)
	}
	router := NewRouter(cfg)

	env := &testEnv{
		db:            db,
		progressRepo:  progressRepo,
		settingsStore: settingsStore,
		router:        router,
	}
	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return env, cleanup
}
