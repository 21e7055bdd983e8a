package settings

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bibleplan/tracker/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_settings_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Setting{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_SetSetting_New(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.SetSetting(entities.SettingKeyLocale, "en")
	require.NoError(t, err)

	setting, err := repo.GetSetting(entities.SettingKeyLocale)
	require.NoError(t, err)
	assert.Equal(t, entities.SettingKeyLocale, setting.Key)
	assert.Equal(t, "en", setting.Value)
}

func TestRepository_SetSetting_Update(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.SetSetting(entities.SettingKeyLocale, "zh")
	require.NoError(t, err)

	err = repo.SetSetting(entities.SettingKeyLocale, "en")
	require.NoError(t, err)

	setting, err := repo.GetSetting(entities.SettingKeyLocale)
	require.NoError(t, err)
	assert.Equal(t, "en", setting.Value)
}

func TestRepository_GetSetting_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetSetting("nonexistent")

	assert.Error(t, err)
}

func TestRepository_GetValue_Fallback(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	assert.Equal(t, "zh", repo.GetValue(entities.SettingKeyLocale, "zh"))

	require.NoError(t, repo.SetSetting(entities.SettingKeyLocale, "en"))
	assert.Equal(t, "en", repo.GetValue(entities.SettingKeyLocale, "zh"))
}

func TestRepository_DeleteSetting(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.SetSetting(entities.SettingKeyLocale, "en"))
	require.NoError(t, repo.DeleteSetting(entities.SettingKeyLocale))

	_, err := repo.GetSetting(entities.SettingKeyLocale)
	assert.Error(t, err)
}
