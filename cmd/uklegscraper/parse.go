package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/coolbeans/ukleg-register/pkg/amendment"
	"github.com/coolbeans/ukleg-register/pkg/cascade"
	"github.com/coolbeans/ukleg-register/pkg/commentary"
	"github.com/coolbeans/ukleg-register/pkg/enactedby"
	"github.com/coolbeans/ukleg-register/pkg/extent"
	"github.com/coolbeans/ukleg-register/pkg/httpfetch"
	"github.com/coolbeans/ukleg-register/pkg/lat"
	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
	"github.com/coolbeans/ukleg-register/pkg/metadata"
	"github.com/coolbeans/ukleg-register/pkg/orchestrator"
	"github.com/coolbeans/ukleg-register/pkg/repealrevoke"
	"github.com/coolbeans/ukleg-register/pkg/session"
	"github.com/coolbeans/ukleg-register/pkg/store"
	"github.com/coolbeans/ukleg-register/pkg/telemetry"
	"github.com/coolbeans/ukleg-register/pkg/xmltree"
)

// NewParseCmd creates the parse subcommand: run every selected (or all)
// record in a session through the seven-stage parser and persist the
// results.
func NewParseCmd() *cobra.Command {
	var sessionID, sessionRoot, enactingActsDir string

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse a session's selected (or all) records and persist them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runParse(cmd, sessionID, sessionRoot, enactingActsDir)
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "session id to parse (required)")
	cmd.Flags().StringVar(&sessionRoot, "session-root", "./sessions", "directory ParseSession directories live under")
	cmd.Flags().StringVar(&enactingActsDir, "enacting-acts-dir", "config/enacting-acts", "directory of specific-act pattern YAML files (§4.9 specific-act tier)")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}

func runParse(cmd *cobra.Command, sessionID, sessionRoot, enactingActsDir string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sessionStore, err := session.NewStore(sessionRoot)
	if err != nil {
		return oops.Code("SESSION_STORE_INIT_FAILED").Wrap(err)
	}
	sess, err := sessionStore.Read(sessionID)
	if err != nil {
		return oops.Code("SESSION_READ_FAILED").With("session_id", sessionID).Wrap(err)
	}

	url, err := databaseURL()
	if err != nil {
		return err
	}
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").Wrap(err)
	}
	defer pool.Close()

	dataStore := newPostgresStore(pool)
	tracker := cascade.NewTracker()

	client := httpfetch.NewClient(httpfetch.DefaultConfig())

	metrics := telemetry.NewMetrics(telemetry.NewRegistry(), logger())

	enactingActs, err := enactedby.NewRegistryWithDirectory(enactingActsDir)
	if err != nil {
		return oops.Code("ENACTING_ACTS_LOAD_FAILED").With("dir", enactingActsDir).Wrap(err)
	}

	runner := &orchestrator.Runner{
		Metadata:     metadata.NewParser(client),
		Extent:       extent.NewParser(client),
		EnactedBy:    enactedby.NewMatcher(client, enactingActs),
		Amendment:    amendment.NewFetcher(client),
		RepealRevoke: repealrevoke.NewParser(client),
		BodyText:     bodyTextFetcher(client),
		Logger:       logger(),
		Telemetry:    metrics,
	}

	records := sess.SelectedOrAll()
	cmd.Printf("parsing %d record(s) from session %s\n", len(records), sessionID)

	var errCount int
	for _, raw := range records {
		law := runner.Run(ctx, raw, nil)

		latRows, annotations := fetchBodyStructure(ctx, client, law)

		if err := dataStore.PersistParse(ctx, law, latRows, annotations); err != nil {
			cmd.PrintErrf("persist failed for %s: %v\n", law.Name, err)
			errCount++
			continue
		}

		tracker.PushFromRecord(sessionID, law.Name, &law.LegalRecord)
	}

	affected := legalrecord.AffectedLawsFile{}
	for _, entry := range tracker.Pending(sessionID) {
		if err := dataStore.Cascade.Upsert(ctx, entry); err != nil {
			cmd.PrintErrf("cascade upsert failed for %s: %v\n", entry.AffectedLaw, err)
			continue
		}
		affected.Entries = append(affected.Entries, *entry)
		switch entry.UpdateType {
		case legalrecord.CascadeReparse:
			affected.AllAmending = append(affected.AllAmending, entry.AffectedLaw)
		case legalrecord.CascadeEnactingLink:
			affected.AllEnactingParents = append(affected.AllEnactingParents, entry.AffectedLaw)
		}
	}
	if err := sessionStore.WriteAffectedLaws(sessionID, affected); err != nil {
		return oops.Code("SESSION_WRITE_FAILED").With("session_id", sessionID).Wrap(err)
	}

	cmd.Printf("parsed %d record(s), %d error(s), %d cascade entr(ies) pending\n", len(records), errCount, len(affected.Entries))
	return nil
}

func newPostgresStore(pool *pgxpool.Pool) *store.Store {
	return &store.Store{
		Records:     store.NewPostgresRecordRepository(pool),
		LAT:         store.NewPostgresLATRepository(pool),
		Annotations: store.NewPostgresAnnotationRepository(pool),
		Cascade:     store.NewPostgresCascadeRepository(pool),
		Transactor:  store.NewPoolTransactor(pool),
	}
}

// bodyTextFetcher fetches a law's body XML and joins its text for the taxa
// pipeline's body-text precedence (§4.14).
func bodyTextFetcher(client *httpfetch.Client) orchestrator.BodyTextFetcher {
	return func(ctx context.Context, typeCode, year, number string) (string, error) {
		result, err := client.Fetch(ctx, httpfetch.BodyPath(typeCode, year, number))
		if err != nil {
			return "", err
		}
		if result.Kind != httpfetch.KindXML {
			return "", fmt.Errorf("no body XML available for %s/%s/%s", typeCode, year, number)
		}
		root, err := xmltree.Parse(result.Body)
		if err != nil {
			return "", err
		}
		return root.AllText(), nil
	}
}

// fetchBodyStructure fetches a law's body XML once and derives both the LAT
// rows (§4.13) and the commentary annotations (§4.12) from the same parsed
// tree, joining LAT's commentary_refs back onto the matching annotation's
// affected_sections.
func fetchBodyStructure(ctx context.Context, client *httpfetch.Client, law *legalrecord.ParsedLaw) ([]legalrecord.LATRow, []legalrecord.AmendmentAnnotation) {
	result, err := client.Fetch(ctx, httpfetch.BodyPath(law.TypeCode, law.Year, law.Number))
	if err != nil || result.Kind != httpfetch.KindXML {
		return nil, nil
	}
	root, err := xmltree.Parse(result.Body)
	if err != nil {
		return nil, nil
	}

	latRows := lat.Walk(root, law.Name, legalrecord.PrimaryTypeCodes[law.TypeCode])
	annotations := commentary.Walk(root, law.Name)
	commentary.AttachAffectedSections(annotations, commentary.InvertCommentaryRefs(latRows))
	return latRows, annotations
}
