package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasknest/tasknest-api/internal/config"
	"github.com/tasknest/tasknest-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
)

func TestOpenAndMigrate_SQLite(t *testing.T) {
	cfg := config.Default()
	cfg.DBDriver = config.DriverSQLite
	cfg.DBPath = filepath.Join(t.TempDir(), "test.db")

	db, err := Open(cfg, zap.NewNop())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, Migrate(db, zap.NewNop()))
	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasColumn(&models.User{}, "Tasks"))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	cfg := config.Default()
	cfg.DBDriver = "oracle"

	_, err := Open(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestDialectorFor_MySQLReportsMatchedRows(t *testing.T) {
	cfg := config.Default()
	cfg.DBDriver = config.DriverMySQL

	dialector, err := dialectorFor(cfg)
	require.NoError(t, err)

	mysqlDialector, ok := dialector.(*mysql.Dialector)
	require.True(t, ok)
	assert.Contains(t, mysqlDialector.Config.DSN, "clientFoundRows=true")
}
