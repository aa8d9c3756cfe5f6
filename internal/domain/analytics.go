package domain

import "time"

// AggregateStats holds the counters and null-safe averages shared by
// time-series buckets and series totals. Average fields are nil when no
// contributing entry carried the underlying metric.
type AggregateStats struct {
	ReplayCount int     `json:"replay_count"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	WinRate     float64 `json:"win_rate"`

	AvgSupplyScore           *float64 `json:"avg_supply_score,omitempty"`
	AvgProductionScore       *float64 `json:"avg_production_score,omitempty"`
	AvgSupplyBlockSeconds    *float64 `json:"avg_supply_block_seconds,omitempty"`
	AvgProductionIdleSeconds *float64 `json:"avg_production_idle_seconds,omitempty"`
}

// TimeSeriesDataPoint is one dated bucket of a trend series.
type TimeSeriesDataPoint struct {
	Date time.Time `json:"date"`
	AggregateStats
	ReplayIDs []string `json:"replay_ids,omitempty"`
}

// TimeSeriesData is an ordered trend series plus totals over the whole
// input set.
type TimeSeriesData struct {
	Period Period                `json:"period"`
	Points []TimeSeriesDataPoint `json:"points"`
	Totals AggregateStats        `json:"totals"`
}

// Period selects the bucketing granularity of a trend series.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodAllTime Period = "all"
)

// NemesisSummary describes the opponent with the highest loss rate among
// opponents met at least a minimum number of times.
type NemesisSummary struct {
	OpponentName string  `json:"opponent_name"`
	Games        int     `json:"games"`
	Losses       int     `json:"losses"`
	LossRate     float64 `json:"loss_rate"`

	// Breakdown by the tracked player's own race in those games.
	ByRace map[Race]NemesisRaceBreakdown `json:"by_race,omitempty"`
}

type NemesisRaceBreakdown struct {
	Games  int `json:"games"`
	Losses int `json:"losses"`
}

// MatchupStats is the aggregate record for one canonical matchup string.
type MatchupStats struct {
	Matchup string  `json:"matchup"`
	Games   int     `json:"games"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	WinRate float64 `json:"win_rate"`

	AvgSupplyBlockSeconds    *float64 `json:"avg_supply_block_seconds,omitempty"`
	AvgProductionIdleSeconds *float64 `json:"avg_production_idle_seconds,omitempty"`
	AvgDurationSeconds       *float64 `json:"avg_duration_seconds,omitempty"`
}

// PlayerStatsSummary groups games by in-game identity. One account holder
// may play under several names, so summaries are keyed by the name that
// actually appears in the replays.
type PlayerStatsSummary struct {
	PlayerName  string  `json:"player_name"`
	Games       int     `json:"games"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	WinRate     float64 `json:"win_rate"`
	PrimaryRace Race    `json:"primary_race"`

	Matchups []MatchupStats  `json:"matchups,omitempty"`
	Nemesis  *NemesisSummary `json:"nemesis,omitempty"`
}

// TimelinePoint is one sample of a dense, fixed-interval timeline.
type TimelinePoint struct {
	Time  int `json:"time"`
	Value int `json:"value"`
}
