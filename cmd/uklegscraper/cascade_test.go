package main

import (
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCascadeCmd_RegistersSubcommands(t *testing.T) {
	cmd := NewCascadeCmd()

	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["list"])
	assert.True(t, names["mark-processed"])
}

func TestCascadeSubcommands_FailFastWithoutDatabaseURL(t *testing.T) {
	original, wasSet := os.LookupEnv("DATABASE_URL")
	os.Unsetenv("DATABASE_URL")
	if wasSet {
		t.Cleanup(func() { os.Setenv("DATABASE_URL", original) })
	}

	// connectedStore checks databaseURL() before dialing Postgres, so
	// these stay DB-free.
	require.Error(t, runCascadeList(&cobra.Command{}, "some-session"))
	require.Error(t, runCascadeMarkProcessed(&cobra.Command{}, "some-session", "some-law"))
}
