package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParseCmd_HasExpectedFlags(t *testing.T) {
	cmd := NewParseCmd()

	sessionFlag := cmd.Flags().Lookup("session")
	require.NotNil(t, sessionFlag)

	sessionRootFlag := cmd.Flags().Lookup("session-root")
	require.NotNil(t, sessionRootFlag)
	assert.Equal(t, "./sessions", sessionRootFlag.DefValue)

	enactingActsDirFlag := cmd.Flags().Lookup("enacting-acts-dir")
	require.NotNil(t, enactingActsDirFlag)
	assert.Equal(t, "config/enacting-acts", enactingActsDirFlag.DefValue)
}

func TestNewParseCmd_RequiresSessionFlag(t *testing.T) {
	cmd := NewParseCmd()
	cmd.SetArgs([]string{})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "session")
}

func TestRunParse_FailsWhenSessionMissing(t *testing.T) {
	// session.Store.Read fails on a missing session directory before
	// runParse ever tries to connect to Postgres, so this stays DB-free.
	err := runParse(&cobra.Command{}, "no-such-session", t.TempDir(), "config/enacting-acts")

	require.Error(t, err)
}
