// Package cascade implements the Cascade Tracker (§4.17): recording which
// downstream laws need reparsing or enacting-link refresh after a record is
// persisted, with self-drop, upgrade-only updates, and FIFO consumption.
package cascade

import (
	"strings"
	"sync"

	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
)

// Tracker holds pending/processed cascade entries keyed by (session id,
// affected law name), in insertion order for FIFO consumption.
type Tracker struct {
	mu      sync.Mutex
	entries map[string]*legalrecord.CascadeEntry
	order   []string
}

func NewTracker() *Tracker {
	return &Tracker{entries: map[string]*legalrecord.CascadeEntry{}}
}

// PushFromRecord derives cascade pushes from one persisted record's
// amending/rescinding/enacted_by relationships: amending ∪ rescinding get
// update_type=reparse, enacted_by gets update_type=enacting_link (§4.17).
func (t *Tracker) PushFromRecord(sessionID, sourceLaw string, record *legalrecord.LegalRecord) {
	reparseTargets := uniqueUnion(record.Amending, record.Rescinding)
	for _, target := range reparseTargets {
		t.Push(sessionID, sourceLaw, target, legalrecord.CascadeReparse)
	}
	for _, target := range record.EnactedBy {
		t.Push(sessionID, sourceLaw, target, legalrecord.CascadeEnactingLink)
	}
}

// Push upserts one (session, affected_law) cascade entry: self-references
// are dropped, an existing entry gains the source law and is upgraded
// enacting_link -> reparse (never downgraded) (§4.17).
func (t *Tracker) Push(sessionID, sourceLaw, affectedLaw string, updateType legalrecord.CascadeUpdateType) {
	if normaliseLawID(affectedLaw) == normaliseLawID(sourceLaw) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	key := sessionID + "\x00" + affectedLaw
	entry, ok := t.entries[key]
	if !ok {
		entry = &legalrecord.CascadeEntry{
			SessionID:   sessionID,
			AffectedLaw: affectedLaw,
			UpdateType:  updateType,
			Status:      legalrecord.CascadePending,
		}
		entry.SourceLaws = append(entry.SourceLaws, sourceLaw)
		t.entries[key] = entry
		t.order = append(t.order, key)
		return
	}

	entry.UpdateType = entry.Upgrade(updateType)
	if !contains(entry.SourceLaws, sourceLaw) {
		entry.SourceLaws = append(entry.SourceLaws, sourceLaw)
	}
}

// NextPending returns the oldest pending entry for sessionID (FIFO), or nil
// if none remain.
func (t *Tracker) NextPending(sessionID string) *legalrecord.CascadeEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, key := range t.order {
		entry := t.entries[key]
		if entry.SessionID == sessionID && entry.Status == legalrecord.CascadePending {
			return entry
		}
	}
	return nil
}

// MarkProcessed transitions an entry pending -> processed on success.
func (t *Tracker) MarkProcessed(sessionID, affectedLaw string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	key := sessionID + "\x00" + affectedLaw
	if entry, ok := t.entries[key]; ok {
		entry.Status = legalrecord.CascadeProcessed
	}
}

// Pending returns every pending entry for sessionID in FIFO order.
func (t *Tracker) Pending(sessionID string) []*legalrecord.CascadeEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []*legalrecord.CascadeEntry
	for _, key := range t.order {
		entry := t.entries[key]
		if entry.SessionID == sessionID && entry.Status == legalrecord.CascadePending {
			out = append(out, entry)
		}
	}
	return out
}

func normaliseLawID(id string) string {
	return strings.TrimSpace(strings.ToLower(id))
}

func uniqueUnion(a, b []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range append(append([]string{}, a...), b...) {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
