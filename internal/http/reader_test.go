package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditsvc "github.com/bibleplan/tracker/internal/audit"
	"github.com/bibleplan/tracker/internal/config"
	"github.com/bibleplan/tracker/internal/database"
	dbaudit "github.com/bibleplan/tracker/internal/database/audit"
	dbprogress "github.com/bibleplan/tracker/internal/database/progress"
	dbsettings "github.com/bibleplan/tracker/internal/database/settings"
	"github.com/bibleplan/tracker/internal/dates"
	"github.com/bibleplan/tracker/internal/exporters"
	"github.com/bibleplan/tracker/internal/importers"
	"github.com/bibleplan/tracker/internal/progress"
	"github.com/bibleplan/tracker/internal/sessions"
	"github.com/bibleplan/tracker/internal/settingsstore"
)

// sessionClient replays the session cookie across requests, the way a
// browser would.
type sessionClient struct {
	t       *testing.T
	router  *gin.Engine
	cookies []*http.Cookie
}

func (sc *sessionClient) do(method, path, body string, out any) *httptest.ResponseRecorder {
	sc.t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range sc.cookies {
		req.AddCookie(cookie)
	}
	sc.router.ServeHTTP(w, req)

	if set := w.Result().Cookies(); len(set) > 0 {
		sc.cookies = set
	}
	if out != nil {
		require.NoError(sc.t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w
}

func setupReaderTest(t *testing.T) (*sessionClient, *dbprogress.Repository, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_reader_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	sqlDB, err := db.SQLDB()
	require.NoError(t, err)
	sm, err := sessions.NewManager(sqlDB, config.Web{SessionLifetime: time.Hour})
	require.NoError(t, err)

	progressRepo := dbprogress.NewRepository(db.DB)
	planRange, err := dates.NewRange("2026-01-01", "2026-12-31")
	require.NoError(t, err)

	router := NewRouter(RouterConfig{
		Database:       db,
		Plan:           testPlan(t),
		PlanRange:      planRange,
		Scriptures:     testScriptures(),
		ProgressRepo:   progressRepo,
		SettingsStore:  settingsstore.New(dbsettings.NewRepository(db.DB)),
		Auditor:        auditsvc.NewService(dbaudit.NewRepository(db.DB)),
		Exporter:       exporters.NewProgressExporter(),
		Importer:       importers.NewPipeline(progressRepo),
		SessionManager: sm,
		Version:        "test",
		Today:          func() string { return testToday },
	})

	client := &sessionClient{t: t, router: router}
	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return client, progressRepo, cleanup
}

func TestReaderFlow(t *testing.T) {
	t.Run("open, finish through the day, return to dashboard", func(t *testing.T) {
		client, repo, cleanup := setupReaderTest(t)
		defer cleanup()

		// 2026-01-01 assigns gen 1-2. Open the first chapter.
		var pos ChapterPosition
		w := client.do("POST", "/api/reader/open", `{"date": "2026-01-01", "index": 0}`, &pos)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "gen", pos.Book)
		assert.Equal(t, 1, pos.Chapter)
		assert.Equal(t, 2, pos.Count)

		// Finishing advances to gen 2 and marks gen 1 read.
		var fin FinishResponse
		w = client.do("POST", "/api/reader/finish", "", &fin)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "gen_1", fin.Finished)
		assert.False(t, fin.DayComplete)
		require.NotNil(t, fin.Next)
		assert.Equal(t, 2, fin.Next.Chapter)

		snap, err := repo.Load()
		require.NoError(t, err)
		assert.True(t, snap.IsRead(progress.NewKey("gen", 1)))

		// Finishing the last chapter completes the day.
		fin = FinishResponse{}
		w = client.do("POST", "/api/reader/finish", "", &fin)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "gen_2", fin.Finished)
		assert.True(t, fin.DayComplete)
		assert.Nil(t, fin.Next)
		assert.NotEmpty(t, fin.Message)

		// Back on the dashboard.
		var cur currentResponse
		client.do("GET", "/api/reader/current", "", &cur)
		assert.False(t, cur.Reading)
	})

	t.Run("current survives across requests", func(t *testing.T) {
		client, _, cleanup := setupReaderTest(t)
		defer cleanup()

		client.do("POST", "/api/reader/open", `{"date": "2026-01-02", "index": 1}`, nil)

		var cur currentResponse
		client.do("GET", "/api/reader/current", "", &cur)
		require.True(t, cur.Reading)
		assert.Equal(t, "2026-01-02", cur.Current.Date)
		assert.Equal(t, 4, cur.Current.Chapter)
	})

	t.Run("finish-home marks the open chapter and leaves", func(t *testing.T) {
		client, repo, cleanup := setupReaderTest(t)
		defer cleanup()

		client.do("POST", "/api/reader/open", `{"date": "2026-01-02", "index": 0}`, nil)

		var fin FinishResponse
		w := client.do("POST", "/api/reader/finish-home", "", &fin)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "gen_3", fin.Finished)

		snap, err := repo.Load()
		require.NoError(t, err)
		assert.True(t, snap.IsRead(progress.NewKey("gen", 3)))

		var cur currentResponse
		client.do("GET", "/api/reader/current", "", &cur)
		assert.False(t, cur.Reading)
	})

	t.Run("close leaves without marking anything", func(t *testing.T) {
		client, repo, cleanup := setupReaderTest(t)
		defer cleanup()

		client.do("POST", "/api/reader/open", `{"date": "2026-01-01", "index": 0}`, nil)
		client.do("POST", "/api/reader/close", "", nil)

		snap, err := repo.Load()
		require.NoError(t, err)
		assert.Equal(t, 0, snap.Count())
	})

	t.Run("finish without an open chapter conflicts", func(t *testing.T) {
		client, _, cleanup := setupReaderTest(t)
		defer cleanup()

		w := client.do("POST", "/api/reader/finish", "", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("open rejects an index outside the day", func(t *testing.T) {
		client, _, cleanup := setupReaderTest(t)
		defer cleanup()

		w := client.do("POST", "/api/reader/open", `{"date": "2026-01-01", "index": 7}`, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("view date follows navigation", func(t *testing.T) {
		client, _, cleanup := setupReaderTest(t)
		defer cleanup()

		var day DayResponse
		client.do("GET", "/api/day/2026-01-02", "", &day)
		assert.Equal(t, "2026-01-02", day.Date)

		// The next plain lookup stays on the navigated date.
		client.do("GET", "/api/day", "", &day)
		assert.Equal(t, "2026-01-02", day.Date)

		// Return to today clears it.
		client.do("POST", "/api/nav/today", "", &day)
		assert.Equal(t, testToday, day.Date)
		client.do("GET", "/api/day", "", &day)
		assert.Equal(t, testToday, day.Date)
	})
}
