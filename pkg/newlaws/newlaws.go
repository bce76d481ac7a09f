// Package newlaws implements the New-Laws Fetcher (§4.5): for a date or an
// inclusive day range, compose the catalogue URL, fetch the HTML, and parse
// one raw record per listing-table row.
package newlaws

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/coolbeans/ukleg-register/pkg/htmltable"
	"github.com/coolbeans/ukleg-register/pkg/httpfetch"
	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
	"github.com/coolbeans/ukleg-register/pkg/metadata"
	"github.com/coolbeans/ukleg-register/pkg/normalize"
)

// Fetcher retrieves and parses the legislation.gov.uk "new laws" listing.
type Fetcher struct {
	client          *httpfetch.Client
	metadataFetcher *metadata.Parser // used for the optional enrichment pass
	logger          *slog.Logger
}

// NewFetcher builds a Fetcher. metadataFetcher may be nil to skip enrichment.
func NewFetcher(client *httpfetch.Client, metadataFetcher *metadata.Parser, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{client: client, metadataFetcher: metadataFetcher, logger: logger}
}

// FetchDay fetches and parses a single day's listing for typeCode (empty for
// all types).
func (f *Fetcher) FetchDay(ctx context.Context, typeCode string, day time.Time) ([]legalrecord.RawRecord, error) {
	path := httpfetch.NewLawsPath(typeCode, day.Format("2006-01-02"))
	result, err := f.client.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	rows, err := htmltable.ParseTables(result.Body)
	if err != nil {
		return nil, err
	}
	return rowsToRecords(rows, day)
}

// FetchRange walks [start, end] inclusive day by day, unioning results.
// Per-day errors are logged and skipped, never fatal to the range fetch
// (§4.5: "transient per-day errors are logged and skipped, not fatal").
func (f *Fetcher) FetchRange(ctx context.Context, typeCode string, start, end time.Time) []legalrecord.RawRecord {
	var all []legalrecord.RawRecord
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		records, err := f.FetchDay(ctx, typeCode, day)
		if err != nil {
			f.logger.Warn("new-laws day fetch failed, skipping",
				"date", day.Format("2006-01-02"), "type_code", typeCode, "error", err)
			continue
		}
		all = append(all, records...)
	}
	return all
}

// Enrich runs the metadata parser (§4.7) against every record as an optional
// enrichment pass, mutating SICode in place. Per-record failures are
// logged and skipped.
func (f *Fetcher) Enrich(ctx context.Context, records []legalrecord.RawRecord) {
	if f.metadataFetcher == nil {
		return
	}
	for i := range records {
		r := &records[i]
		meta, err := f.metadataFetcher.Fetch(ctx, r.TypeCode, r.Year, r.Number)
		if err != nil {
			f.logger.Warn("new-laws enrichment fetch failed, skipping", "name", r.Name, "error", err)
			continue
		}
		r.SICode = meta.SICode.Slice()
	}
}

// rowsToRecords converts parsed table rows into RawRecords, expecting
// columns type_code, Year, Number, Title_EN in that order.
func rowsToRecords(rows []htmltable.Row, publishedOn time.Time) ([]legalrecord.RawRecord, error) {
	out := make([]legalrecord.RawRecord, 0, len(rows))
	for _, row := range rows {
		if len(row.Cells) < 4 {
			continue
		}
		typeCode, year, number, title := row.Cells[0], row.Cells[1], row.Cells[2], row.Cells[3]
		if typeCode == "" || year == "" || number == "" {
			continue
		}
		norm := normalize.Normalise(normalize.Record{
			TypeCode: typeCode, Year: year, Number: number, TitleRaw: title,
		})
		out = append(out, legalrecord.RawRecord{
			TypeCode:        typeCode,
			Year:            year,
			Number:          number,
			TitleEN:         norm.TitleEN,
			PublicationDate: publishedOn.Format("2006-01-02"),
			Name:            norm.Name,
			LegGovUKURL:     fmt.Sprintf("%s%s", httpfetch.DefaultBaseURL, row.Href),
			FetchedAt:       time.Now(),
		})
	}
	return out, nil
}
