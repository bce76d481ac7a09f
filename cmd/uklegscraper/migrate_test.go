package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseURL_ReturnsErrorWhenUnset(t *testing.T) {
	original, wasSet := os.LookupEnv("DATABASE_URL")
	os.Unsetenv("DATABASE_URL")
	if wasSet {
		t.Cleanup(func() { os.Setenv("DATABASE_URL", original) })
	}

	url, err := databaseURL()

	require.Error(t, err)
	assert.Empty(t, url)
}

func TestDatabaseURL_ReturnsErrorWhenEmpty(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	url, err := databaseURL()

	require.Error(t, err)
	assert.Empty(t, url)
}

func TestDatabaseURL_ReturnsValueWhenSet(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/testdb")

	url, err := databaseURL()

	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost:5432/testdb", url)
}

func TestNewMigrateCmd_RegistersSubcommands(t *testing.T) {
	cmd := NewMigrateCmd()

	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"up", "down", "version"} {
		assert.True(t, names[want], "expected migrate subcommand %q", want)
	}
}

func TestMigrateSubcommands_FailFastWithoutDatabaseURL(t *testing.T) {
	original, wasSet := os.LookupEnv("DATABASE_URL")
	os.Unsetenv("DATABASE_URL")
	if wasSet {
		t.Cleanup(func() { os.Setenv("DATABASE_URL", original) })
	}

	// databaseURL() is checked before cmd is ever touched, so a nil
	// *cobra.Command is safe here and keeps these tests DB-free.
	require.Error(t, runMigrateUp(nil, nil))
	require.Error(t, runMigrateDown(nil, nil))
	require.Error(t, runMigrateVersion(nil, nil))
}
