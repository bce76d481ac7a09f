package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScrapeCmd_HasExpectedFlags(t *testing.T) {
	cmd := NewScrapeCmd()

	for _, name := range []string{"type-code", "date", "from", "to", "enrich", "session-root"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "expected flag %q", name)
	}

	sessionRoot := cmd.Flags().Lookup("session-root")
	assert.Equal(t, "./sessions", sessionRoot.DefValue)
}

func TestRunScrape_RequiresDateOrRange(t *testing.T) {
	cmd := &cobra.Command{Use: "scrape"}

	err := runScrape(cmd, "", "", "", "", false, t.TempDir())

	require.Error(t, err)
}

func TestRunScrape_RejectsMalformedDate(t *testing.T) {
	cmd := &cobra.Command{Use: "scrape"}

	err := runScrape(cmd, "", "not-a-date", "", "", false, t.TempDir())

	require.Error(t, err)
}

func TestRunScrape_RejectsMalformedRange(t *testing.T) {
	cmd := &cobra.Command{Use: "scrape"}

	err := runScrape(cmd, "", "", "not-a-date", "2026-01-01", false, t.TempDir())

	require.Error(t, err)
}
