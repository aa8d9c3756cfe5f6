package domain

import "time"

// Phase is a named, contiguous time window of a game. Phases are ordered,
// non-overlapping, and cover 0 to game end.
type Phase string

const (
	PhaseOpening Phase = "opening"
	PhaseEarly   Phase = "early"
	PhaseMid     Phase = "mid"
	PhaseLate    Phase = "late"
	PhaseEndgame Phase = "endgame"
)

// PhaseOrder is the canonical iteration order for phase-keyed maps.
var PhaseOrder = []Phase{PhaseOpening, PhaseEarly, PhaseMid, PhaseLate, PhaseEndgame}

// PhaseSnapshot is a player's cumulative state at the end of one phase.
type PhaseSnapshot struct {
	WorkerCount          int            `json:"worker_count"`
	BaseCount            int            `json:"base_count"`
	GasBuildings         int            `json:"gas_buildings"`
	ArmySupply           float64        `json:"army_supply"`
	UnitsProduced        map[string]int `json:"units_produced,omitempty"`
	BuildingsProduced    map[string]int `json:"buildings_produced,omitempty"`
	TechBuildings        []string       `json:"tech_buildings,omitempty"`
	UpgradesCompleted    []string       `json:"upgrades_completed,omitempty"`
	UpgradesInProgress   []string       `json:"upgrades_in_progress,omitempty"`
	SupplyBlockedSeconds float64        `json:"supply_blocked_seconds"`
}

// PhaseBenchmark is the expected end-of-phase state for one phase of a
// reference build. Expected values are non-negative; an expectation of 0
// means "no requirement" and never penalizes.
type PhaseBenchmark struct {
	WorkerCount  int      `json:"worker_count"`
	BaseCount    int      `json:"base_count"`
	GasBuildings int      `json:"gas_buildings"`
	ArmySupply   float64  `json:"army_supply"`
	KeyBuildings []string `json:"key_buildings,omitempty"`
	KeyUnits     []string `json:"key_units,omitempty"`
	KeyUpgrades  []string `json:"key_upgrades,omitempty"`
}

// ReferenceBuild is a coach-curated, phase-by-phase description of an
// idealized execution of a named build order, keyed by matchup.
type ReferenceBuild struct {
	ID        string                   `json:"id"`
	Name      string                   `json:"name"`
	Matchup   string                   `json:"matchup"`
	Phases    map[Phase]PhaseBenchmark `json:"phases"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// PhaseDiff is the structured difference between a player's snapshot and
// a benchmark for one phase. Signed deltas are actual minus expected, so
// negative means behind the build.
type PhaseDiff struct {
	Phase            Phase    `json:"phase"`
	WorkerDiff       int      `json:"worker_diff"`
	BaseDiff         int      `json:"base_diff"`
	GasDiff          int      `json:"gas_diff"`
	ArmySupplyDiff   float64  `json:"army_supply_diff"`
	MissingBuildings []string `json:"missing_buildings,omitempty"`
	ExtraBuildings   []string `json:"extra_buildings,omitempty"`
	MissingUnits     []string `json:"missing_units,omitempty"`
	ExtraUnits       []string `json:"extra_units,omitempty"`
	MissingUpgrades  []string `json:"missing_upgrades,omitempty"`
	ExtraUpgrades    []string `json:"extra_upgrades,omitempty"`

	// 0-100, derived from supply-blocked seconds within the phase.
	SupplyBlockPenalty int `json:"supply_block_penalty"`
}

// ExecutionScore summarizes how closely a game followed a reference
// build: four 0-100 component scores, a weighted total, and a letter grade.
type ExecutionScore struct {
	Economy    int    `json:"economy"`
	Army       int    `json:"army"`
	Tech       int    `json:"tech"`
	Efficiency int    `json:"efficiency"`
	Total      int    `json:"total"`
	Grade      string `json:"grade"`
}

// BuildComparison is the stored result of comparing one replay against
// one reference build.
type BuildComparison struct {
	ReferenceBuildID string         `json:"reference_build_id"`
	PhaseDiffs       []PhaseDiff    `json:"phase_diffs"`
	Score            ExecutionScore `json:"score"`
	ComparedAt       time.Time      `json:"compared_at"`
}
