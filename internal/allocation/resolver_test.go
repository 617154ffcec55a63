package allocation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mintleaf/seating/internal/model"
)

func TestResolveLockedIsNoOp(t *testing.T) {
	locked := booking("b1", "Kovács", at(19, 0), at(20, 0), "T1")
	locked.Final.Locked = true

	sug := Suggestion{ZoneID: "Z2", TableIDs: []string{"T9"}, Reason: ReasonSingleTableFit, Confidence: 1}
	res := Resolve(ResolveInput{Booking: locked, Suggestion: sug, Commit: true, Strategy: "auto-single"})

	require.Equal(t, ResolutionLocked, res.Status)
	require.Equal(t, locked.Final, res.Final, "locked assignment must not change")
	require.Nil(t, res.Allocated)
	require.False(t, res.Changed)
	require.Contains(t, res.Diagnostics.Reasons, ReasonLocked)
}

func TestResolveFinalizesSuggestion(t *testing.T) {
	b := booking("b1", "Kovács", at(19, 0), at(20, 0))
	sug := Suggestion{ZoneID: "Z1", TableIDs: []string{"T1"}, Reason: ReasonSingleTableFit, Confidence: 0.75}

	res := Resolve(ResolveInput{Booking: b, Suggestion: sug})
	require.Equal(t, ResolutionFinalized, res.Status)
	require.Equal(t, model.AllocationSourceAuto, res.Final.Source)
	require.Equal(t, "Z1", res.Final.ZoneID)
	require.Equal(t, []string{"T1"}, res.Final.TableIDs)
	require.False(t, res.Final.Locked)
	require.True(t, res.Changed)
	require.Nil(t, res.Allocated, "no commit, no allocated record")
}

func TestResolveOverrideSource(t *testing.T) {
	b := booking("b1", "Kovács", at(19, 0), at(20, 0))
	sug := Suggestion{ZoneID: "Z2", TableIDs: []string{"T7"}, Reason: ReasonOverrideApplied, Confidence: 1}

	res := Resolve(ResolveInput{Booking: b, Suggestion: sug})
	require.Equal(t, model.AllocationSourceOverride, res.Final.Source)
}

func TestResolveCommitPopulatesAllocated(t *testing.T) {
	b := booking("b1", "Kovács", at(19, 0), at(20, 0))
	sug := Suggestion{ZoneID: "Z1", TableIDs: []string{"T1"}, Reason: ReasonSingleTableFit, Confidence: 1}

	res := Resolve(ResolveInput{Booking: b, Suggestion: sug, Commit: true, Strategy: BatchStrategy})
	require.NotNil(t, res.Allocated)
	require.Equal(t, "Z1", res.Allocated.ZoneID)
	require.Equal(t, []string{"T1"}, res.Allocated.TableIDs)
	require.Equal(t, BatchStrategy, res.Allocated.Strategy)
	require.Empty(t, res.Allocated.Summary)
}

func TestResolveConflictsAreWarningsNotBlockers(t *testing.T) {
	b := booking("b1", "Kovács", at(19, 0), at(20, 0))
	sug := Suggestion{ZoneID: "Z1", TableIDs: []string{"T1"}, Reason: ReasonSingleTableFit, Confidence: 1}
	conflicts := []ConflictEntry{{
		BookingID: "b2", BookingName: "Nagy", OverlapLabel: "19:00–20:00", SharedTableIDs: []string{"T1"},
	}}

	res := Resolve(ResolveInput{Booking: b, Suggestion: sug, Conflicts: conflicts, Commit: true})
	require.Equal(t, ResolutionFinalized, res.Status, "conflicts never block finalization")
	require.Equal(t, []string{"T1"}, res.Final.TableIDs)
	require.Len(t, res.Diagnostics.Warnings, 1)
	require.Contains(t, res.Diagnostics.Warnings[0], "Nagy")
	require.Equal(t, "CONFLICTS=1", res.Allocated.Summary)
}

func TestResolveNoFitKeepsPreviousFinal(t *testing.T) {
	b := booking("b1", "Kovács", at(19, 0), at(20, 0), "T1")
	sug := Suggestion{Reason: ReasonNoFit}

	res := Resolve(ResolveInput{Booking: b, Suggestion: sug, Commit: true, Strategy: BatchStrategy})
	require.Equal(t, b.Final, res.Final, "previous assignment stands on NO_FIT")
	require.False(t, res.Changed)
	require.NotNil(t, res.Allocated)
	require.Equal(t, ReasonNoFit, res.Allocated.Summary)
	require.Empty(t, res.Allocated.TableIDs)
}

func TestResolveZoneOnlyOverrideFinalizes(t *testing.T) {
	b := booking("b1", "Kovács", at(19, 0), at(20, 0))
	sug := Suggestion{ZoneID: "Z2", Reason: ReasonOverrideApplied, Confidence: 1}

	res := Resolve(ResolveInput{Booking: b, Suggestion: sug})
	require.Equal(t, "Z2", res.Final.ZoneID)
	require.Empty(t, res.Final.TableIDs)
	require.Equal(t, model.AllocationSourceOverride, res.Final.Source)
}

func TestResolveIntentQuality(t *testing.T) {
	sug := Suggestion{ZoneID: "Z1", TableIDs: []string{"T1"}, Reason: ReasonSingleTableFit, Confidence: 1}

	b := booking("b1", "Kovács", at(19, 0), at(20, 0))
	res := Resolve(ResolveInput{Booking: b, Suggestion: sug})
	require.Equal(t, IntentNone, res.Diagnostics.IntentQuality)

	b.Intent = model.AllocationIntent{ZoneID: "Z1"}
	res = Resolve(ResolveInput{Booking: b, Suggestion: sug})
	require.Equal(t, IntentMatched, res.Diagnostics.IntentQuality)

	b.Intent = model.AllocationIntent{ZoneID: "Z9"}
	res = Resolve(ResolveInput{Booking: b, Suggestion: sug})
	require.Equal(t, IntentDiverged, res.Diagnostics.IntentQuality)
}

func TestResolveUnchangedWhenSameAssignment(t *testing.T) {
	b := booking("b1", "Kovács", at(19, 0), at(20, 0), "T1")
	b.Final.Source = model.AllocationSourceAuto
	sug := Suggestion{ZoneID: "Z1", TableIDs: []string{"T1"}, Reason: ReasonSingleTableFit, Confidence: 1}

	res := Resolve(ResolveInput{Booking: b, Suggestion: sug})
	require.False(t, res.Changed)
}
