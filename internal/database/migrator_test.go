package database_test

import (
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"event-ticketing-backend/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationNames_Embedded(t *testing.T) {
	names, err := database.MigrationNames(database.Embedded())
	require.NoError(t, err)
	assert.Equal(t, []string{"001_create_orders.sql", "002_create_payment_settings.sql"}, names)
}

func TestMigrationNames_SortsAndSkipsNonSQL(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/010_later.sql":   {Data: []byte("SELECT 1;")},
		"migrations/002_second.sql":  {Data: []byte("SELECT 1;")},
		"migrations/README.md":       {Data: []byte("notes")},
		"migrations/archive/old.sql": {Data: []byte("SELECT 1;")},
		"migrations/001_first.sql":   {Data: []byte("SELECT 1;")},
	}

	names, err := database.MigrationNames(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_first.sql", "002_second.sql", "010_later.sql"}, names)
}

func TestEmbeddedOrdersMigrationGuardsTicketFields(t *testing.T) {
	data, err := fs.ReadFile(database.Embedded(), "migrations/001_create_orders.sql")
	require.NoError(t, err)

	sql := string(data)
	assert.True(t, strings.Contains(sql, "booking_ref TEXT UNIQUE"))
	assert.True(t, strings.Contains(sql, "CHECK (NOT ticket_sent OR ticket_url IS NOT NULL)"))
}
