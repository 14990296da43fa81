package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testWidget struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"size:64;uniqueIndex"`
}

func TestInitDB_SQLite(t *testing.T) {
	db, err := InitDB(Options{
		Driver:       "sqlite",
		DSN:          "file::memory:",
		MaxOpenConns: 1,
		LogLevel:     "silent",
	}, zap.NewNop(), &testWidget{})
	require.NoError(t, err)

	require.NoError(t, db.Create(&testWidget{Name: "a"}).Error)

	err = db.Create(&testWidget{Name: "a"}).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
}

func TestInitDB_UnsupportedDriver(t *testing.T) {
	_, err := InitDB(Options{Driver: "oracle", DSN: "x"}, zap.NewNop())
	assert.Error(t, err)
}
