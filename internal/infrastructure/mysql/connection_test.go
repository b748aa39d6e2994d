package mysql

import (
	"errors"
	"fmt"
	"testing"
	"time"

	driver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"editmarket/internal/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		Host:            "db",
		Port:            3307,
		User:            "market",
		Password:        "p@ss",
		Name:            "editmarket",
		ConnMaxLifetime: time.Minute,
	})

	parsed, err := driver.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "market", parsed.User)
	assert.Equal(t, "p@ss", parsed.Passwd)
	assert.Equal(t, "db:3307", parsed.Addr)
	assert.Equal(t, "editmarket", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.True(t, parsed.MultiStatements)
}

func TestIsDuplicateEntry(t *testing.T) {
	dup := &driver.MySQLError{Number: 1062, Message: "Duplicate entry 'a@b.c' for key 'uq_users_email'"}

	assert.True(t, IsDuplicateEntry(dup))
	assert.True(t, IsDuplicateEntry(fmt.Errorf("inserting user: %w", dup)))
	assert.False(t, IsDuplicateEntry(&driver.MySQLError{Number: 1452}))
	assert.False(t, IsDuplicateEntry(errors.New("boom")))
	assert.False(t, IsDuplicateEntry(nil))
}

func TestSchemaCoversTables(t *testing.T) {
	for _, table := range Tables() {
		assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
}
