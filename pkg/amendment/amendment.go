// Package amendment implements the Amendment Fetcher and Statistics (§4.10):
// the affecting/affected changes HTML tables, revocation/amendment
// partitioning, self-amendment accounting, and per-law aggregate stats.
package amendment

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/coolbeans/ukleg-register/pkg/htmltable"
	"github.com/coolbeans/ukleg-register/pkg/httpfetch"
	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
)

// Record is one parsed row of a changes table (§4.10).
type Record struct {
	Name     string
	TitleEN  string
	TypeCode string
	Number   string
	Year     string
	Path     string
	Target   string // e.g. "reg. 1"
	Affect   string // e.g. "inserted", "substituted", "repealed"
	Applied  string // e.g. "Yes", "Not yet"
}

// Fetcher retrieves and parses the affecting/affected changes tables.
type Fetcher struct {
	client *httpfetch.Client
}

func NewFetcher(client *httpfetch.Client) *Fetcher {
	return &Fetcher{client: client}
}

// FetchAffecting retrieves the laws this law amends (§6 "affecting").
func (f *Fetcher) FetchAffecting(ctx context.Context, typeCode, year, number string) ([]Record, error) {
	return f.fetchChanges(ctx, httpfetch.AffectingChangesPath(typeCode, year, number))
}

// FetchAffected retrieves the laws that amend this law (§6 "affected").
func (f *Fetcher) FetchAffected(ctx context.Context, typeCode, year, number string) ([]Record, error) {
	return f.fetchChanges(ctx, httpfetch.AffectedChangesPath(typeCode, year, number))
}

func (f *Fetcher) fetchChanges(ctx context.Context, path string) ([]Record, error) {
	result, err := f.client.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	rows, err := htmltable.ParseTables(result.Body)
	if err != nil {
		return nil, err
	}
	return rowsToRecords(rows), nil
}

func rowsToRecords(rows []htmltable.Row) []Record {
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		if len(row.Cells) < 6 {
			continue
		}
		typeCode, year, number := row.Cells[0], row.Cells[1], row.Cells[2]
		title, target, affect := row.Cells[3], row.Cells[4], row.Cells[5]
		applied := ""
		if len(row.Cells) >= 7 {
			applied = row.Cells[6]
		}
		out = append(out, Record{
			Name:     fmt.Sprintf("UK_%s_%s_%s", typeCode, year, number),
			TitleEN:  title,
			TypeCode: typeCode,
			Year:     year,
			Number:   number,
			Path:     fmt.Sprintf("/%s/%s/%s", typeCode, year, number),
			Target:   target,
			Affect:   affect,
			Applied:  applied,
		})
	}
	return out
}

// isRevocation reports whether a record's affect field describes a repeal
// or revocation (§4.10).
func isRevocation(affect string) bool {
	lower := strings.ToLower(affect)
	return strings.Contains(lower, "repeal") || strings.Contains(lower, "revoke")
}

// Partition splits records for sourceLawName into amendments, revocations,
// and self-amendments. Self-amendments (affected law id equals the source)
// represent coming-into-force provisions and are excluded from both other
// outputs (§4.10, §9 open question resolution).
func Partition(sourceLawName string, records []Record) (amendments, revocations []Record, selfCount int) {
	for _, r := range records {
		if r.Name == sourceLawName {
			selfCount++
			continue
		}
		if isRevocation(r.Affect) {
			revocations = append(revocations, r)
		} else {
			amendments = append(amendments, r)
		}
	}
	return amendments, revocations, selfCount
}

// AggregatePerLaw groups records by name, sorted by (-year, -number), and
// emits LawStats per law (§4.10, §8 scenario 5).
func AggregatePerLaw(records []Record, titleFor func(name string) (title, url string)) map[string]legalrecord.LawStats {
	byName := map[string][]Record{}
	for _, r := range records {
		byName[r.Name] = append(byName[r.Name], r)
	}

	out := make(map[string]legalrecord.LawStats, len(byName))
	for name, group := range byName {
		sort.Slice(group, func(i, j int) bool {
			yi, yj := atoiOr0(group[i].Year), atoiOr0(group[j].Year)
			if yi != yj {
				return yi > yj
			}
			return atoiOr0(group[i].Number) > atoiOr0(group[j].Number)
		})

		title, url := "", ""
		if titleFor != nil {
			title, url = titleFor(name)
		}

		details := make([]legalrecord.LawStatsDetail, 0, len(group))
		for _, r := range group {
			details = append(details, legalrecord.LawStatsDetail{
				Target: r.Target, Affect: r.Affect, Applied: r.Applied,
			})
		}

		out[name] = legalrecord.LawStats{
			Name: name, Title: title, URL: url, Count: len(group), Details: details,
		}
	}
	return out
}

// LiveFromChanges derives the live status from amended-by-side revocations
// only (§4.10): in_force with none, revoked when any revocation is "in full"
// or "repeal" without "in part", partial otherwise. This is the severity
// rule's tier-one input used by §4.16's reconciliation.
func LiveFromChanges(revocations []Record) legalrecord.LiveStatus {
	if len(revocations) == 0 {
		return legalrecord.LiveInForce
	}
	for _, r := range revocations {
		lower := strings.ToLower(r.Affect)
		if strings.Contains(lower, "in full") {
			return legalrecord.LiveRevoked
		}
		if strings.Contains(lower, "repeal") && !strings.Contains(lower, "in part") {
			return legalrecord.LiveRevoked
		}
	}
	return legalrecord.LivePartial
}

func atoiOr0(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
