package domain

import "time"

// Replay is the authoritative per-game record for one user: the parsed
// fingerprint plus upload metadata and, once a comparison has been run,
// its result.
type Replay struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"uploaded_at"`

	// Explicit player-name override set by the user; empty when unset.
	PlayerName string `json:"player_name,omitempty"`

	Fingerprint *ReplayFingerprint `json:"fingerprint,omitempty"`
	Comparison  *BuildComparison   `json:"comparison,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReplayIndexEntry is the lightweight, denormalized summary of one game
// used for lists, trend charts, and cross-game aggregation. Metric fields
// are pointers because 0 and "unknown" are different things when
// averaging; an absent input stays nil all the way through.
type ReplayIndexEntry struct {
	ID         string     `json:"id"`
	Filename   string     `json:"filename"`
	UploadedAt time.Time  `json:"uploaded_at"`
	GameTime   *time.Time `json:"game_time,omitempty"`

	PlayerName   string     `json:"player_name"`
	PlayerRace   Race       `json:"player_race"`
	OpponentName string     `json:"opponent_name"`
	OpponentRace Race       `json:"opponent_race"`
	Matchup      string     `json:"matchup"`
	Result       GameResult `json:"result"`

	DurationSeconds float64 `json:"duration_seconds"`
	Map             string  `json:"map"`

	ReferenceBuildID *string `json:"reference_build_id,omitempty"`
	ComparisonScore  *int    `json:"comparison_score,omitempty"`

	// Pillar scores, 0-100. Vision is reserved for a future parser version.
	ProductionScore *int `json:"production_score,omitempty"`
	SupplyScore     *int `json:"supply_score,omitempty"`
	VisionScore     *int `json:"vision_score,omitempty"`

	// Raw time-penalty metrics in seconds.
	SupplyBlockSeconds    *float64 `json:"supply_block_seconds,omitempty"`
	ProductionIdleSeconds *float64 `json:"production_idle_seconds,omitempty"`

	DetectedBuild *string `json:"detected_build,omitempty"`
}

// ReplayIndex is one user's ordered collection of index entries. Version
// increases monotonically on every write; Count is an integrity check
// against the authoritative replay records.
type ReplayIndex struct {
	UserID    string             `json:"user_id"`
	Version   int64              `json:"version"`
	Count     int                `json:"count"`
	Entries   []ReplayIndexEntry `json:"entries"`
	UpdatedAt time.Time          `json:"updated_at"`
}
