package analytics

import (
	"math"

	"replay-coach/internal/domain"
)

// Per-phase penalty points. Worker shortfalls weigh double against base
// and gas shortfalls when the phase economy sub-scores are averaged.
const (
	workerShortfallPenalty = 5
	baseShortfallPenalty   = 20
	gasShortfallPenalty    = 10
	armySupplyPenalty      = 2
	missingUnitPenalty     = 15
	missingBuildingPenalty = 20
	missingUpgradePenalty  = 25
)

// ScoreExecution compares every phase of a game against a reference
// build and reduces the per-phase diffs into component scores, a weighted
// total, and a grade. Phases are walked in canonical order; a phase is
// scored only when both a snapshot and a benchmark exist for it.
//
// A benchmark expectation of 0 never penalizes: being ahead of nothing
// still scores 100. With no comparable phases at all, every component is
// 100; absence of evidence is not a failure.
func (c Config) ScoreExecution(snapshots map[domain.Phase]domain.PhaseSnapshot, build domain.ReferenceBuild) ([]domain.PhaseDiff, domain.ExecutionScore) {
	var diffs []domain.PhaseDiff
	var economy, army, tech, blockPenalty float64

	for _, phase := range domain.PhaseOrder {
		snap, haveSnap := snapshots[phase]
		bench, haveBench := build.Phases[phase]
		if !haveSnap || !haveBench {
			continue
		}
		diff := ComparePhase(phase, snap, bench)
		diffs = append(diffs, diff)

		economy += phaseEconomyScore(diff, bench)
		army += phaseArmyScore(diff, bench)
		tech += phaseTechScore(diff)
		blockPenalty += float64(diff.SupplyBlockPenalty)
	}

	n := float64(len(diffs))
	score := domain.ExecutionScore{Economy: 100, Army: 100, Tech: 100, Efficiency: 100}
	if n > 0 {
		score.Economy = int(math.Round(economy / n))
		score.Army = int(math.Round(army / n))
		score.Tech = int(math.Round(tech / n))
		score.Efficiency = int(math.Round(100 - blockPenalty/n))
	}

	total := float64(score.Economy)*c.Components.Economy +
		float64(score.Army)*c.Components.Army +
		float64(score.Tech)*c.Components.Tech +
		float64(score.Efficiency)*c.Components.Efficiency
	score.Total = int(math.Round(total))
	score.Grade = c.Grades.Grade(score.Total)

	return diffs, score
}

// shortfall is how far behind expectation the actual value is. A zero
// expectation never produces a shortfall.
func shortfall(diff, expected int) int {
	if expected <= 0 || diff >= 0 {
		return 0
	}
	return -diff
}

func phaseEconomyScore(diff domain.PhaseDiff, bench domain.PhaseBenchmark) float64 {
	worker := floor0(100 - shortfall(diff.WorkerDiff, bench.WorkerCount)*workerShortfallPenalty)
	base := floor0(100 - shortfall(diff.BaseDiff, bench.BaseCount)*baseShortfallPenalty)
	gas := floor0(100 - shortfall(diff.GasDiff, bench.GasBuildings)*gasShortfallPenalty)
	return (2*worker + base + gas) / 4
}

func phaseArmyScore(diff domain.PhaseDiff, bench domain.PhaseBenchmark) float64 {
	var supplyShort float64
	if bench.ArmySupply > 0 && diff.ArmySupplyDiff < 0 {
		supplyShort = -diff.ArmySupplyDiff
	}
	return floor0(100 - supplyShort*armySupplyPenalty - float64(len(diff.MissingUnits)*missingUnitPenalty))
}

func phaseTechScore(diff domain.PhaseDiff) float64 {
	return floor0(100 - float64(len(diff.MissingBuildings)*missingBuildingPenalty) - float64(len(diff.MissingUpgrades)*missingUpgradePenalty))
}

func floor0[T int | float64](v T) float64 {
	if v < 0 {
		return 0
	}
	return float64(v)
}
