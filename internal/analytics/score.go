package analytics

import "math"

// TimeScore maps a time penalty, expressed as percent of game duration,
// to a score: clamp(round(100 - percent*weight), min, max). It is
// monotonically non-increasing in percent.
func TimeScore(percent float64, f FormulaConfig) int {
	s := int(math.Round(100 - percent*f.Weight))
	if s < f.Min {
		return f.Min
	}
	if s > f.Max {
		return f.Max
	}
	return s
}

// TimePenaltyPercent converts a penalty in seconds to percent of game
// duration. A non-positive duration carries no signal, so the result is
// nil rather than zero and every score derived from it stays unknown.
func TimePenaltyPercent(seconds, durationSeconds float64) *float64 {
	if durationSeconds <= 0 {
		return nil
	}
	p := seconds / durationSeconds * 100
	return &p
}

// SupplyBlockScore scores time spent supply-blocked against the game
// duration. Nil when the duration is unusable.
func (c Config) SupplyBlockScore(blockedSeconds, durationSeconds float64) *int {
	percent := TimePenaltyPercent(blockedSeconds, durationSeconds)
	if percent == nil {
		return nil
	}
	s := TimeScore(*percent, c.SupplyBlock)
	return &s
}

// ProductionIdleScore scores production idle time against the game
// duration. Nil when the duration is unusable.
func (c Config) ProductionIdleScore(idleSeconds, durationSeconds float64) *int {
	percent := TimePenaltyPercent(idleSeconds, durationSeconds)
	if percent == nil {
		return nil
	}
	s := TimeScore(*percent, c.ProductionIdle)
	return &s
}
