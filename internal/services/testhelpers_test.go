package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jstittsworth/topdog-adp/internal/models"
	"github.com/jstittsworth/topdog-adp/pkg/database"
)

// newTestDB opens a throwaway sqlite database with the full schema.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err)

	db := &database.DB{DB: gdb}
	require.NoError(t, db.AutoMigrate(
		&models.PickEvent{},
		&models.SeedPrior{},
		&models.Snapshot{},
	))
	return db
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

// memoryCache is an in-process SnapshotCache stand-in.
type memoryCache struct {
	entries map[string]interface{}
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]interface{})}
}

func (m *memoryCache) SetSimple(key string, value interface{}, _ time.Duration) error {
	m.entries[key] = value
	return nil
}
