package progress

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bibleplan/tracker/internal/entities"
	prg "github.com/bibleplan/tracker/internal/progress"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_progress_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.ChapterRead{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_SetReadAndLoad(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.SetRead(prg.NewKey("gen", 1), true))
	require.NoError(t, repo.SetRead(prg.NewKey("gen", 2), true))

	snap, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Count())
	assert.True(t, snap.IsRead(prg.NewKey("gen", 1)))
}

func TestRepository_SetRead_Idempotent(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	key := prg.NewKey("gen", 1)
	require.NoError(t, repo.SetRead(key, true))
	require.NoError(t, repo.SetRead(key, true))

	n, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, repo.SetRead(key, false))
	require.NoError(t, repo.SetRead(key, false))

	n, err = repo.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRepository_BulkSet(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	keys := []prg.Key{prg.NewKey("gen", 1), prg.NewKey("gen", 2), prg.NewKey("exo", 1)}
	require.NoError(t, repo.BulkSet(keys, true))

	n, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	require.NoError(t, repo.BulkSet(keys[:2], false))

	snap, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Count())
	assert.True(t, snap.IsRead(prg.NewKey("exo", 1)))

	// Empty key list is a no-op, not an error.
	require.NoError(t, repo.BulkSet(nil, true))
}

func TestRepository_Replace(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.SetRead(prg.NewKey("gen", 1), true))

	incoming := prg.NewSnapshot()
	incoming.MarkRead(prg.NewKey("psa", 23))
	incoming.MarkRead(prg.NewKey("rev", 22))

	require.NoError(t, repo.Replace(incoming))

	snap, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, incoming, snap)
	assert.False(t, snap.IsRead(prg.NewKey("gen", 1)))
}
