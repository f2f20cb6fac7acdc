package migration

import (
	"database/sql"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSource(t *testing.T) {
	src, err := Source()
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	up, name, err := src.ReadUp(first)
	require.NoError(t, err)
	defer up.Close()
	assert.Equal(t, "create_expenses", name)

	body, err := io.ReadAll(up)
	require.NoError(t, err)
	assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS expenses")
	assert.Contains(t, string(body), "spent_on   DATE")
}

func TestUp_OpenError(t *testing.T) {
	orig := sqlOpen
	sqlOpen = func(driverName, dsn string) (*sql.DB, error) {
		return nil, errors.New("boom")
	}
	t.Cleanup(func() { sqlOpen = orig })

	core, logs := observer.New(zap.InfoLevel)

	err := Up("postgres://localhost/x", zap.New(core))

	assert.EqualError(t, err, "open migration database: boom")
	assert.Equal(t, 1, logs.FilterMessage("db_migration_start").Len())
	failed := logs.FilterMessage("db_migration_failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "database", failed[0].ContextMap()["component"])
}
