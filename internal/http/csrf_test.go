package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibleplan/tracker/internal/progress"
	"github.com/bibleplan/tracker/internal/web"
)

var csrfTestSecret = []byte("test-secret-key-32-bytes-long!!")

func setupCSRFEnv(t *testing.T) (*testEnv, func()) {
	t.Helper()
	return setupTestEnvWith(t, func(cfg *RouterConfig) {
		cfg.CSRFSecret = csrfTestSecret
	})
}

func TestCSRF_RejectedToggleDoesNotPersist(t *testing.T) {
	env, cleanup := setupCSRFEnv(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodPost, "/api/progress/toggle",
		strings.NewReader(`{"book":"gen","chapter":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.NotContains(t, w.Body.String(), "is_read")

	snap, err := env.progressRepo.Load()
	require.NoError(t, err)
	assert.False(t, snap.IsRead(progress.NewKey("gen", 1)))
}

func TestCSRF_TokenFromHeaderAllowsToggle(t *testing.T) {
	env, cleanup := setupCSRFEnv(t)
	defer cleanup()

	get := httptest.NewRequest(http.MethodGet, "/api/day", nil)
	getRec := httptest.NewRecorder()
	env.router.ServeHTTP(getRec, get)
	require.Equal(t, http.StatusOK, getRec.Code)

	token := getRec.Header().Get(web.CSRFTokenHeader)
	require.NotEmpty(t, token)

	post := httptest.NewRequest(http.MethodPost, "/api/progress/toggle",
		strings.NewReader(`{"book":"gen","chapter":1}`))
	post.Header.Set("Content-Type", "application/json")
	post.Header.Set(web.CSRFTokenHeader, token)
	for _, cookie := range getRec.Result().Cookies() {
		post.AddCookie(cookie)
	}
	postRec := httptest.NewRecorder()
	env.router.ServeHTTP(postRec, post)

	require.Equal(t, http.StatusOK, postRec.Code)

	snap, err := env.progressRepo.Load()
	require.NoError(t, err)
	assert.True(t, snap.IsRead(progress.NewKey("gen", 1)))
}
