package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettingsController_Locale(t *testing.T) {
	t.Run("defaults before anything is stored", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		var resp localeResponse
		w := getJSON(t, env, "/api/settings/locale", &resp)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "zh", resp.Locale)
		assert.Equal(t, "default", resp.Source)
	})

	t.Run("stores an explicit choice", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		var resp localeResponse
		w := postJSON(t, env, "/api/settings/locale", `{"locale": "en"}`, &resp)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "en", resp.Locale)
		assert.Equal(t, "database", resp.Source)

		getJSON(t, env, "/api/settings/locale", &resp)
		assert.Equal(t, "en", resp.Locale)
	})

	t.Run("unknown locales fall back to the default", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		var resp localeResponse
		postJSON(t, env, "/api/settings/locale", `{"locale": "fr"}`, &resp)
		assert.Equal(t, "zh", resp.Locale)
	})

	t.Run("toggle flips the language", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		var resp localeResponse
		postJSON(t, env, "/api/settings/locale/toggle", `{}`, &resp)
		assert.Equal(t, "en", resp.Locale)

		postJSON(t, env, "/api/settings/locale/toggle", `{}`, &resp)
		assert.Equal(t, "zh", resp.Locale)
	})

	t.Run("locale changes the day response language", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		postJSON(t, env, "/api/settings/locale", `{"locale": "en"}`, nil)

		var resp DayResponse
		getJSON(t, env, "/api/day/2026-01-01", &resp)
		assert.Equal(t, "en", resp.Locale)
		assert.Contains(t, resp.Titles, "Genesis")
	})
}

func TestSettingsController_BackupStatus(t *testing.T) {
	t.Run("empty before any backup ran", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		var resp backupStatusResponse
		w := getJSON(t, env, "/api/settings/backup", &resp)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, resp.SchedulerRunning)
		assert.Empty(t, resp.LastBackupAt)
	})

	t.Run("run is rejected when backups are not configured", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		w := postJSON(t, env, "/api/settings/backup/run", `{}`, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
