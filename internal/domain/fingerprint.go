package domain

import "time"

// ReplayFingerprint is the per-player feature record returned by the
// replay-parsing service for one game. It is immutable once parsed; the
// analytics engine only reads it. Optional sub-fields arrive incrementally
// depending on the parser version, so consumers must branch on presence
// and never substitute zero for an absent value.
type ReplayFingerprint struct {
	PlayerName          string       `json:"player_name"`
	SuggestedPlayerName *string      `json:"suggested_player_name,omitempty"`
	Race                Race         `json:"race"`
	Matchup             string       `json:"matchup"`
	Metadata            GameMetadata `json:"metadata"`
	Players             []GamePlayer `json:"players,omitempty"`

	// Timing milestones in game seconds, keyed by milestone name
	// (e.g. "first_expansion", "first_attack").
	Timings map[string]float64 `json:"timings,omitempty"`

	BuildOrder []BuildOrderStep `json:"build_order,omitempty"`

	// Army composition snapshots keyed by game-time seconds.
	ArmySnapshots map[int]map[string]int `json:"army_snapshots,omitempty"`

	// Production events in chronological order.
	ProductionTimeline []ProductionEvent `json:"production_timeline,omitempty"`

	Economy *EconomyStats `json:"economy,omitempty"`

	// Tactical/micro/positioning aggregates, keyed by metric name.
	Tactics map[string]float64 `json:"tactics,omitempty"`

	// Optional dense timelines keyed by game-time seconds.
	SupplyTimeline   map[int]float64 `json:"supply_timeline,omitempty"`
	ResourceTimeline map[int]float64 `json:"resource_timeline,omitempty"`

	DetectedBuild *string `json:"detected_build,omitempty"`
}

type GameMetadata struct {
	Map             string     `json:"map"`
	DurationSeconds float64    `json:"duration"`
	Result          GameResult `json:"result"`
	OpponentRace    Race       `json:"opponent_race"`
	GameType        string     `json:"game_type,omitempty"`
	Category        string     `json:"category,omitempty"`
	PlayedAt        *time.Time `json:"played_at,omitempty"`
}

type GamePlayer struct {
	Name       string     `json:"name"`
	Race       Race       `json:"race"`
	Team       int        `json:"team"`
	IsObserver bool       `json:"is_observer,omitempty"`
	Result     GameResult `json:"result,omitempty"`
}

type BuildOrderStep struct {
	Time   float64 `json:"time"`
	Supply int     `json:"supply"`
	Name   string  `json:"name"`
	Kind   string  `json:"kind,omitempty"` // unit, building, upgrade
}

type ProductionEvent struct {
	Time     float64 `json:"time"`
	Building string  `json:"building"`
	Unit     string  `json:"unit"`
}

// EconomyStats is the economy block of a fingerprint. Every field here is
// optional: nil means the parser did not extract it, which is distinct
// from a measured zero.
type EconomyStats struct {
	// Worker counts keyed by checkpoint game-time seconds.
	WorkerCheckpoints map[int]float64 `json:"workers_at,omitempty"`

	ExpansionCount   *int      `json:"expansion_count,omitempty"`
	ExpansionTimings []float64 `json:"expansion_timings,omitempty"`

	AvgMineralFloat *float64 `json:"avg_mineral_float,omitempty"`
	AvgGasFloat     *float64 `json:"avg_gas_float,omitempty"`

	SupplyBlockCount     *int          `json:"supply_block_count,omitempty"`
	SupplyBlockTotalTime *float64      `json:"supply_block_total_time,omitempty"`
	SupplyBlocks         []SupplyBlock `json:"supply_blocks,omitempty"`

	// Per-building idle seconds over the whole game.
	ProductionIdle map[string]float64 `json:"production_idle,omitempty"`

	// Supply values keyed by checkpoint game-time seconds.
	SupplyCheckpoints map[int]float64 `json:"supply_at,omitempty"`

	// Ability usage efficiency per ability name, 0-1.
	AbilityEfficiency map[string]float64 `json:"ability_efficiency,omitempty"`

	PhaseSnapshots map[Phase]PhaseSnapshot `json:"phase_snapshots,omitempty"`
}

// SupplyBlock is one contiguous period during which the player was
// supply-blocked, in game seconds.
type SupplyBlock struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func (b SupplyBlock) Duration() float64 {
	if b.End < b.Start {
		return 0
	}
	return b.End - b.Start
}
