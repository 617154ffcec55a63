package allocation

import (
	"fmt"
	"strings"

	"github.com/mintleaf/seating/internal/model"
)

// Resolution statuses.  Locked is terminal: the resolver refuses to
// touch a locked final assignment and reports the refusal as a no-op,
// never as an error.
const (
	ResolutionFinalized = "finalized"
	ResolutionLocked    = "locked"
)

// Intent-quality tags recorded in diagnostics, describing how the
// final assignment relates to what the guest asked for.
const (
	IntentNone     = "none"
	IntentMatched  = "matched"
	IntentDiverged = "diverged"
)

// ResolveInput bundles one resolver call: the booking snapshot, the
// suggester's output (which already reflects override precedence) and
// the detected conflicts.  Commit controls whether the resolution
// carries an Allocated record; dry runs leave it false.  Strategy is
// recorded on the Allocated record when committing.
type ResolveInput struct {
	Booking    model.Booking
	Suggestion Suggestion
	Conflicts  []ConflictEntry
	Commit     bool
	Strategy   string
}

// Resolution is the resolver's outcome.  Final always carries the
// authoritative assignment after the call (unchanged for locked or
// unfittable bookings); Allocated is non-nil only for committed
// resolutions.  Changed reports whether Final differs from the
// booking's previous final assignment.
type Resolution struct {
	Status      string
	Final       model.AllocationFinal
	Allocated   *model.AllocationAllocated
	Diagnostics model.AllocationDiagnostics
	Changed     bool
}

// Resolve merges the decision chain for one booking: a locked final
// assignment wins over everything, an applied override wins over the
// automatic suggestion, and conflicts attach as warnings without ever
// blocking finalization.  The acceptance of a conflicting assignment
// is a human call, made from the diagnostics.
func Resolve(in ResolveInput) Resolution {
	b := in.Booking

	if b.Final.Locked {
		return Resolution{
			Status: ResolutionLocked,
			Final:  b.Final,
			Diagnostics: model.AllocationDiagnostics{
				IntentQuality: intentQuality(b.Intent, b.Final),
				Reasons:       []string{ReasonLocked},
			},
		}
	}

	sug := in.Suggestion
	diag := model.AllocationDiagnostics{
		Reasons:  []string{sug.Reason},
		Warnings: append([]string(nil), sug.Warnings...),
	}
	for _, c := range in.Conflicts {
		diag.Warnings = append(diag.Warnings, conflictWarning(c))
	}

	if sug.Reason == ReasonNoFit || sug.Reason == ReasonInvalidPartySize {
		// Nothing to assign; the previous final assignment stands.
		diag.IntentQuality = intentQuality(b.Intent, b.Final)
		res := Resolution{Status: ResolutionFinalized, Final: b.Final, Diagnostics: diag}
		if in.Commit {
			res.Allocated = &model.AllocationAllocated{Strategy: in.Strategy, Summary: sug.Reason}
		}
		return res
	}

	final := model.AllocationFinal{
		Source:     finalSource(sug),
		ZoneID:     sug.ZoneID,
		GroupLabel: sug.GroupLabel,
		TableIDs:   append([]string(nil), sug.TableIDs...),
	}
	diag.IntentQuality = intentQuality(b.Intent, final)

	res := Resolution{
		Status:      ResolutionFinalized,
		Final:       final,
		Diagnostics: diag,
		Changed:     !sameAssignment(b.Final, final),
	}
	if in.Commit {
		res.Allocated = &model.AllocationAllocated{
			ZoneID:   final.ZoneID,
			TableIDs: append([]string(nil), final.TableIDs...),
			Strategy: in.Strategy,
		}
		if len(in.Conflicts) > 0 {
			res.Allocated.Summary = fmt.Sprintf("CONFLICTS=%d", len(in.Conflicts))
		}
	}
	return res
}

func finalSource(sug Suggestion) string {
	if sug.Reason == ReasonOverrideApplied {
		return model.AllocationSourceOverride
	}
	return model.AllocationSourceAuto
}

func intentQuality(intent model.AllocationIntent, final model.AllocationFinal) string {
	if intent.ZoneID == "" && intent.GroupLabel == "" {
		return IntentNone
	}
	if intent.ZoneID != "" && intent.ZoneID == final.ZoneID {
		return IntentMatched
	}
	if intent.GroupLabel != "" && intent.GroupLabel == final.GroupLabel {
		return IntentMatched
	}
	return IntentDiverged
}

func sameAssignment(a, b model.AllocationFinal) bool {
	if a.Source != b.Source || a.ZoneID != b.ZoneID || len(a.TableIDs) != len(b.TableIDs) {
		return false
	}
	for i := range a.TableIDs {
		if a.TableIDs[i] != b.TableIDs[i] {
			return false
		}
	}
	return true
}

func conflictWarning(c ConflictEntry) string {
	return fmt.Sprintf("conflicts with %s (%s) on tables %s",
		c.BookingName, c.OverlapLabel, strings.Join(c.SharedTableIDs, ", "))
}
