// Package sessions keeps per-browser view state: the date the reader is
// currently looking at. Progress itself lives in the database; the
// session only remembers where in the calendar this client is, so two
// browsers can page through different dates without fighting.
package sessions

import (
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	_ "github.com/mattn/go-sqlite3"

	"github.com/bibleplan/tracker/internal/config"
)

// Session data keys
const (
	SessionKeyViewDate   = "view_date"
	SessionKeyReaderDate = "reader_date"
	SessionKeyReaderPos  = "reader_pos"
)

// Manager wraps scs.SessionManager with application-specific methods.
type Manager struct {
	*scs.SessionManager
}

// NewManager creates a configured session manager. The sqlDB parameter
// should be the underlying *sql.DB from GORM.
func NewManager(sqlDB *sql.DB, cfg config.Web) (*Manager, error) {
	// Create sessions table if it doesn't exist
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()

	// Configure session store (SQLite)
	sm.Store = sqlite3store.New(sqlDB)

	// Configure session lifetime
	sm.Lifetime = cfg.SessionLifetime
	sm.IdleTimeout = cfg.SessionLifetime / 2 // Half of lifetime for inactivity

	// Configure cookie security
	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm}, nil
}

// ViewDate returns the date this client is looking at, or fallback when
// the session has none.
func (m *Manager) ViewDate(r *http.Request, fallback string) string {
	if d := m.GetString(r.Context(), SessionKeyViewDate); d != "" {
		return d
	}
	return fallback
}

// SetViewDate remembers the date this client navigated to.
func (m *Manager) SetViewDate(r *http.Request, date string) {
	m.Put(r.Context(), SessionKeyViewDate, date)
}

// ClearViewDate drops the remembered date (used by "return to today").
func (m *Manager) ClearViewDate(r *http.Request) {
	m.Remove(r.Context(), SessionKeyViewDate)
}

// ReaderState returns the open reader position, if any. The bool is false
// when this client is on the dashboard.
func (m *Manager) ReaderState(r *http.Request) (date string, pos int, reading bool) {
	date = m.GetString(r.Context(), SessionKeyReaderDate)
	if date == "" {
		return "", 0, false
	}
	return date, m.GetInt(r.Context(), SessionKeyReaderPos), true
}

// SetReaderState remembers which chapter of which day is open.
func (m *Manager) SetReaderState(r *http.Request, date string, pos int) {
	m.Put(r.Context(), SessionKeyReaderDate, date)
	m.Put(r.Context(), SessionKeyReaderPos, pos)
}

// ClearReaderState returns this client to the dashboard.
func (m *Manager) ClearReaderState(r *http.Request) {
	m.Remove(r.Context(), SessionKeyReaderDate)
	m.Remove(r.Context(), SessionKeyReaderPos)
}
