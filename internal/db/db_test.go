package db

import (
	"testing"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vscreens/internal/config"
	"vscreens/internal/model"
)

func TestBuildMySQLDSN(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "db.internal",
		DBPort:     3307,
		DBUser:     "screens",
		DBPassword: "p@ss:word",
		DBName:     "vscreens",
	}

	dsn := BuildMySQLDSN(cfg)

	parsed, err := mysqldriver.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "screens", parsed.User)
	assert.Equal(t, "p@ss:word", parsed.Passwd)
	assert.Equal(t, "tcp", parsed.Net)
	assert.Equal(t, "db.internal:3307", parsed.Addr)
	assert.Equal(t, "vscreens", parsed.DBName)
	assert.True(t, parsed.ParseTime)
}

func TestMigrate(t *testing.T) {
	gdb, err := NewSQLite(MemoryDSN(uuid.NewString()))
	require.NoError(t, err)

	require.NoError(t, Migrate(gdb, false))
	for _, table := range []string{"users", "virtual_screens", "sessions"} {
		assert.True(t, gdb.Migrator().HasTable(table), table)
	}

	require.NoError(t, gdb.Create(&model.User{Username: "alice", PasswordHash: "x"}).Error)

	require.NoError(t, Migrate(gdb, true))
	var count int64
	require.NoError(t, gdb.Model(&model.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestOpen_SQLite(t *testing.T) {
	cfg := &config.Config{DBDriver: config.DriverSQLite, SQLitePath: MemoryDSN(uuid.NewString())}

	gdb, err := Open(cfg)
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
}
