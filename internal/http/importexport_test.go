package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibleplan/tracker/internal/progress"
)

func TestImportExportController_Export(t *testing.T) {
	t.Run("streams a dated attachment", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		require.NoError(t, env.progressRepo.SetRead(progress.NewKey("gen", 1), true))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/progress/export", nil)
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		disposition := w.Header().Get("Content-Disposition")
		assert.Contains(t, disposition, "attachment")
		assert.Contains(t, disposition, "BiblePlan_Progress_")
		assert.Contains(t, disposition, ".json")

		assert.Contains(t, w.Body.String(), `"gen_1":true`)
	})
}

func TestImportExportController_Import(t *testing.T) {
	t.Run("replaces stored progress from a raw body", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		require.NoError(t, env.progressRepo.SetRead(progress.NewKey("gen", 1), true))

		var resp importResponse
		w := postJSON(t, env, "/api/progress/import", `{"psa_23": true, "rev_22": true}`, &resp)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 2, resp.Imported)
		assert.Equal(t, 0, resp.Skipped)

		snap, err := env.progressRepo.Load()
		require.NoError(t, err)
		assert.False(t, snap.IsRead(progress.NewKey("gen", 1)))
		assert.True(t, snap.IsRead(progress.NewKey("psa", 23)))
	})

	t.Run("accepts legacy keys and skips unknown ones", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		var resp importResponse
		w := postJSON(t, env, "/api/progress/import", `{"創_1": true, "narnia_3": true}`, &resp)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, resp.Imported)
		assert.Equal(t, 1, resp.Skipped)

		snap, err := env.progressRepo.Load()
		require.NoError(t, err)
		assert.True(t, snap.IsRead(progress.NewKey("gen", 1)))
	})

	t.Run("malformed blobs leave stored progress untouched", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		require.NoError(t, env.progressRepo.SetRead(progress.NewKey("gen", 1), true))

		w := postJSON(t, env, "/api/progress/import", `definitely not json`, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		snap, err := env.progressRepo.Load()
		require.NoError(t, err)
		assert.True(t, snap.IsRead(progress.NewKey("gen", 1)))
	})

	t.Run("accepts a multipart file upload", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		body := strings.Join([]string{
			"--boundary",
			`Content-Disposition: form-data; name="file"; filename="progress.json"`,
			"Content-Type: application/json",
			"",
			`{"exo_2": true}`,
			"--boundary--",
			"",
		}, "\r\n")

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/progress/import", strings.NewReader(body))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=boundary")
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		snap, err := env.progressRepo.Load()
		require.NoError(t, err)
		assert.True(t, snap.IsRead(progress.NewKey("exo", 2)))
	})
}
