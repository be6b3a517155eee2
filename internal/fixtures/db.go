// Package fixtures provides database, seed data and mocks shared by tests.
package fixtures

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	infrarepo "github.com/unas-org/unas-backend/infra/repository"
	"gorm.io/driver/sqlite" // Sqlite driver based on CGO
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with every table
// migrated. The pool is pinned to one connection so all sessions see the same
// database; callers must not use the outer unit of work inside Do.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(infrarepo.Models()...))
	return db
}

// NewTestUoW is NewTestDB wrapped in a unit of work.
func NewTestUoW(t testing.TB) *infrarepo.UoW {
	t.Helper()
	return infrarepo.NewUoW(NewTestDB(t))
}

// Logger discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
