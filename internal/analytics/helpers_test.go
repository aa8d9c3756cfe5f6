package analytics

import (
	"time"

	"replay-coach/internal/domain"
)

// Fixture helpers shared across the analytics tests.

func ptrInt(v int) *int              { return &v }
func ptrFloat(v float64) *float64    { return &v }
func ptrTime(v time.Time) *time.Time { return &v }

func utc(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// makeEntry builds a minimal index entry for aggregation tests.
func makeEntry(id string, result domain.GameResult, gameTime time.Time) domain.ReplayIndexEntry {
	return domain.ReplayIndexEntry{
		ID:         id,
		Filename:   id + ".SC2Replay",
		UploadedAt: gameTime,
		GameTime:   ptrTime(gameTime),
		PlayerName: "Hero",
		PlayerRace: domain.RaceTerran,
		Matchup:    "TvZ",
		Result:     result,
	}
}

// perfectSnapshot matches perfectBenchmark exactly.
func perfectSnapshot() domain.PhaseSnapshot {
	return domain.PhaseSnapshot{
		WorkerCount:       22,
		BaseCount:         2,
		GasBuildings:      2,
		ArmySupply:        20,
		UnitsProduced:     map[string]int{"Marine": 12, "Marauder": 4},
		BuildingsProduced: map[string]int{"Barracks": 2, "Factory": 1},
		TechBuildings:     []string{"TechLab"},
		UpgradesCompleted: []string{"Stimpack"},
	}
}

func perfectBenchmark() domain.PhaseBenchmark {
	return domain.PhaseBenchmark{
		WorkerCount:  22,
		BaseCount:    2,
		GasBuildings: 2,
		ArmySupply:   20,
		KeyBuildings: []string{"Barracks", "Factory", "TechLab"},
		KeyUnits:     []string{"Marine", "Marauder"},
		KeyUpgrades:  []string{"Stimpack"},
	}
}
