package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/coolbeans/ukleg-register/pkg/store"
)

// NewCascadeCmd creates the cascade subcommand: inspect and drain the
// durable cascade table for a session (§4.17).
func NewCascadeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cascade",
		Short: "Inspect or drain pending cascade entries",
	}

	var sessionID string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List pending cascade entries for a session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCascadeList(cmd, sessionID)
		},
	}
	listCmd.Flags().StringVar(&sessionID, "session", "", "session id (required)")
	_ = listCmd.MarkFlagRequired("session")

	var markSession, markLaw string
	markCmd := &cobra.Command{
		Use:   "mark-processed",
		Short: "Mark one cascade entry as processed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCascadeMarkProcessed(cmd, markSession, markLaw)
		},
	}
	markCmd.Flags().StringVar(&markSession, "session", "", "session id (required)")
	markCmd.Flags().StringVar(&markLaw, "affected-law", "", "affected law name (required)")
	_ = markCmd.MarkFlagRequired("session")
	_ = markCmd.MarkFlagRequired("affected-law")

	cmd.AddCommand(listCmd, markCmd)
	return cmd
}

func connectedStore(ctx context.Context) (*store.Store, func(), error) {
	url, err := databaseURL()
	if err != nil {
		return nil, nil, err
	}
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, nil, oops.Code("DB_CONNECT_FAILED").Wrap(err)
	}
	return newPostgresStore(pool), pool.Close, nil
}

func runCascadeList(cmd *cobra.Command, sessionID string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	dataStore, closePool, err := connectedStore(ctx)
	if err != nil {
		return err
	}
	defer closePool()

	entries, err := dataStore.Cascade.ListPending(ctx, sessionID)
	if err != nil {
		return oops.Code("CASCADE_LIST_FAILED").With("session_id", sessionID).Wrap(err)
	}

	for _, e := range entries {
		cmd.Printf("%s\t%s\tsources=%v\n", e.AffectedLaw, e.UpdateType, e.SourceLaws)
	}
	cmd.Printf("%d pending entr(ies)\n", len(entries))
	return nil
}

func runCascadeMarkProcessed(cmd *cobra.Command, sessionID, affectedLaw string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	dataStore, closePool, err := connectedStore(ctx)
	if err != nil {
		return err
	}
	defer closePool()

	if err := dataStore.Cascade.MarkProcessed(ctx, sessionID, affectedLaw); err != nil {
		return oops.Code("CASCADE_MARK_FAILED").With("session_id", sessionID).With("affected_law", affectedLaw).Wrap(err)
	}

	cmd.Printf("marked %s processed for session %s\n", affectedLaw, sessionID)
	return nil
}
