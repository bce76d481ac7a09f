package orchestrator

import (
	"fmt"

	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
)

// Reconcile compares live_from_changes and live_from_metadata by severity
// (revoked=3, partial=2, in_force=1) and sets the winning law/live_source/
// live_conflict/live_description fields (§4.16).
func Reconcile(law *legalrecord.ParsedLaw) {
	changes, metadata := law.LiveFromChanges, law.LiveFromMetadata
	if changes == "" {
		changes = legalrecord.LiveInForce
	}
	if metadata == "" {
		metadata = legalrecord.LiveInForce
	}

	changesSeverity, metadataSeverity := changes.Severity(), metadata.Severity()

	switch {
	case changesSeverity > metadataSeverity:
		law.Live = changes
		law.LiveSource = legalrecord.LiveSourceChanges
		law.LiveConflict = true
		law.LiveConflictDetail = mismatchReason(changes, metadata)
	case metadataSeverity > changesSeverity:
		law.Live = metadata
		law.LiveSource = legalrecord.LiveSourceMetadata
		law.LiveConflict = true
		law.LiveConflictDetail = mismatchReason(changes, metadata)
	default:
		law.Live = changes
		law.LiveSource = legalrecord.LiveSourceBoth
		law.LiveConflict = false
	}
	law.LiveDescription = string(law.Live)
}

// mismatchReason draws from the fixed table of the six possible mismatch
// pairs between live_from_changes and live_from_metadata (§4.16).
func mismatchReason(changes, metadata legalrecord.LiveStatus) string {
	if changes.Severity() > metadata.Severity() {
		return fmt.Sprintf("Changes history shows %s but metadata shows %s", changes, metadata)
	}
	return fmt.Sprintf("Metadata shows %s but changes history shows %s", metadata, changes)
}
