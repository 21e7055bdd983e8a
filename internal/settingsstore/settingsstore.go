// Package settingsstore resolves user-facing settings with the
// precedence database > environment > default. The database holds what
// the user chose in the UI; the environment seeds a deployment default.
package settingsstore

import (
	"os"

	"github.com/bibleplan/tracker/internal/database/settings"
	"github.com/bibleplan/tracker/internal/entities"
	"github.com/bibleplan/tracker/internal/i18n"
)

// SettingsStore wraps the settings repository with typed accessors.
type SettingsStore struct {
	repo *settings.Repository
}

// New creates a settings store over the repository.
func New(repo *settings.Repository) *SettingsStore {
	return &SettingsStore{repo: repo}
}

// GetLocale returns the effective display locale (database > environment > default).
func (s *SettingsStore) GetLocale() i18n.Locale {
	setting, err := s.repo.GetSetting(entities.SettingKeyLocale)
	if err == nil && setting.Value != "" {
		return i18n.Parse(setting.Value)
	}

	if envVal := os.Getenv("READING_LOCALE"); envVal != "" {
		return i18n.Parse(envVal)
	}

	return i18n.Default
}

// GetLocaleSource returns where the effective locale came from.
func (s *SettingsStore) GetLocaleSource() string {
	setting, err := s.repo.GetSetting(entities.SettingKeyLocale)
	if err == nil && setting.Value != "" {
		return "database"
	}
	if envVal := os.Getenv("READING_LOCALE"); envVal != "" {
		return "environment"
	}
	return "default"
}

// SetLocale saves the chosen display locale to the database.
func (s *SettingsStore) SetLocale(locale i18n.Locale) error {
	return s.repo.SetSetting(entities.SettingKeyLocale, string(locale))
}

// ToggleLocale flips between the two supported languages and returns the
// new value.
func (s *SettingsStore) ToggleLocale() (i18n.Locale, error) {
	next := i18n.LocaleEn
	if s.GetLocale() == i18n.LocaleEn {
		next = i18n.LocaleZh
	}
	return next, s.SetLocale(next)
}

// RecordBackup stores the outcome of the latest scheduled backup.
func (s *SettingsStore) RecordBackup(at, file string) error {
	if err := s.repo.SetSetting(entities.SettingKeyBackupLastAt, at); err != nil {
		return err
	}
	return s.repo.SetSetting(entities.SettingKeyBackupLastFile, file)
}

// LastBackup returns when the latest backup ran and where it was written.
// Both are empty when no backup has completed yet.
func (s *SettingsStore) LastBackup() (at, file string) {
	return s.repo.GetValue(entities.SettingKeyBackupLastAt, ""),
		s.repo.GetValue(entities.SettingKeyBackupLastFile, "")
}
