package analytics

import (
	"math"
	"sort"

	"replay-coach/internal/domain"
)

// ComparePhase diffs a player's end-of-phase snapshot against the
// benchmark for the same phase. Numeric diffs are actual minus expected,
// so negative means behind the build.
func ComparePhase(phase domain.Phase, snap domain.PhaseSnapshot, bench domain.PhaseBenchmark) domain.PhaseDiff {
	diff := domain.PhaseDiff{
		Phase:          phase,
		WorkerDiff:     snap.WorkerCount - bench.WorkerCount,
		BaseDiff:       snap.BaseCount - bench.BaseCount,
		GasDiff:        snap.GasBuildings - bench.GasBuildings,
		ArmySupplyDiff: snap.ArmySupply - bench.ArmySupply,
	}

	// Building presence is the union of production buildings and tech
	// buildings on the player side.
	built := make(map[string]bool, len(snap.BuildingsProduced)+len(snap.TechBuildings))
	for b := range snap.BuildingsProduced {
		built[b] = true
	}
	for _, b := range snap.TechBuildings {
		built[b] = true
	}
	expected := make(map[string]bool, len(bench.KeyBuildings))
	for _, b := range bench.KeyBuildings {
		expected[b] = true
		if !built[b] {
			diff.MissingBuildings = append(diff.MissingBuildings, b)
		}
	}
	for b := range built {
		if !expected[b] {
			diff.ExtraBuildings = append(diff.ExtraBuildings, b)
		}
	}

	expectedUnits := make(map[string]bool, len(bench.KeyUnits))
	for _, u := range bench.KeyUnits {
		expectedUnits[u] = true
		if _, ok := snap.UnitsProduced[u]; !ok {
			diff.MissingUnits = append(diff.MissingUnits, u)
		}
	}
	for u := range snap.UnitsProduced {
		if !expectedUnits[u] {
			diff.ExtraUnits = append(diff.ExtraUnits, u)
		}
	}

	// An in-progress upgrade is on track, not a miss. Extra only counts
	// fully completed, unlisted upgrades.
	satisfied := make(map[string]bool, len(snap.UpgradesCompleted)+len(snap.UpgradesInProgress))
	completed := make(map[string]bool, len(snap.UpgradesCompleted))
	for _, u := range snap.UpgradesCompleted {
		satisfied[u] = true
		completed[u] = true
	}
	for _, u := range snap.UpgradesInProgress {
		satisfied[u] = true
	}
	expectedUpgrades := make(map[string]bool, len(bench.KeyUpgrades))
	for _, u := range bench.KeyUpgrades {
		expectedUpgrades[u] = true
		if !satisfied[u] {
			diff.MissingUpgrades = append(diff.MissingUpgrades, u)
		}
	}
	for u := range completed {
		if !expectedUpgrades[u] {
			diff.ExtraUpgrades = append(diff.ExtraUpgrades, u)
		}
	}

	// Map iteration order is random; keep the derived sets stable.
	sort.Strings(diff.ExtraBuildings)
	sort.Strings(diff.ExtraUnits)
	sort.Strings(diff.ExtraUpgrades)

	penalty := int(math.Floor(snap.SupplyBlockedSeconds / 2))
	if penalty > 100 {
		penalty = 100
	}
	if penalty < 0 {
		penalty = 0
	}
	diff.SupplyBlockPenalty = penalty

	return diff
}
