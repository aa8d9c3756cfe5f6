package analytics

import (
	"math"

	"replay-coach/internal/domain"
)

// Supply pillar penalty model. Separate from the duration-relative
// formula in score.go: this one scores block count and absolute block
// time, with a surcharge on blocks that start before the early-game
// cutoff, where a block hurts the most.
const (
	supplyBlockCountPenalty   = 10.0
	supplyBlockSecondPenalty  = 2.0
	earlyBlockSecondSurcharge = 1.0
	earlyGameCutoffSeconds    = 300.0
)

// Production pillar tiered idle penalty: the first 15 idle seconds are
// free, the next 45 cost half a point per second, everything beyond a
// full point per second.
const (
	idleFreeSeconds     = 15.0
	idleHalfRateSeconds = 60.0
	idleHalfRate        = 0.5
)

// BuildIndexEntry reduces one full replay record to its index entry. It
// is a pure function of the record: building the same unmodified replay
// twice yields identical entries.
func BuildIndexEntry(replay domain.Replay) domain.ReplayIndexEntry {
	entry := domain.ReplayIndexEntry{
		ID:         replay.ID,
		Filename:   replay.Filename,
		UploadedAt: replay.UploadedAt,
	}

	fp := replay.Fingerprint
	if fp == nil {
		return entry
	}

	player, opponent := resolveIdentity(replay.PlayerName, fp)

	entry.PlayerName = player.Name
	entry.PlayerRace = player.Race
	if entry.PlayerRace == domain.RaceUnknown {
		entry.PlayerRace = fp.Race
	}
	entry.OpponentName = opponent.Name
	entry.OpponentRace = opponent.Race
	if entry.OpponentRace == domain.RaceUnknown {
		entry.OpponentRace = fp.Metadata.OpponentRace
	}
	entry.Matchup = domain.Matchup(entry.PlayerRace, entry.OpponentRace)

	entry.Result = player.Result
	if entry.Result == domain.ResultUnknown {
		entry.Result = fp.Metadata.Result
	}

	entry.DurationSeconds = fp.Metadata.DurationSeconds
	entry.Map = fp.Metadata.Map
	entry.GameTime = copyTime(fp.Metadata.PlayedAt)
	entry.DetectedBuild = copyString(fp.DetectedBuild)

	if replay.Comparison != nil {
		entry.ReferenceBuildID = copyString(&replay.Comparison.ReferenceBuildID)
		entry.ComparisonScore = copyInt(&replay.Comparison.Score.Total)
	}

	entry.SupplyScore = supplyPillarScore(fp.Economy)
	entry.ProductionScore = productionPillarScore(replay.Comparison, fp.Economy)
	entry.SupplyBlockSeconds = supplyBlockSeconds(fp.Economy)
	entry.ProductionIdleSeconds = productionIdleSeconds(fp.Economy)

	return entry
}

// resolveIdentity finds the tracked player and their opponent in the
// fingerprint's player list. The name is taken from an ordered fallback
// chain, first match wins: the explicit stored override, then the
// parser's suggestion, then the fingerprint's embedded player name. When
// none of those names matches a listed player, the first non-observer is
// the tracked player and the first opposing-team non-observer is the
// opponent.
func resolveIdentity(storedName string, fp *domain.ReplayFingerprint) (player, opponent domain.GamePlayer) {
	name := storedName
	if name == "" && fp.SuggestedPlayerName != nil {
		name = *fp.SuggestedPlayerName
	}
	if name == "" {
		name = fp.PlayerName
	}

	found := false
	for _, p := range fp.Players {
		if p.IsObserver {
			continue
		}
		if p.Name == name {
			player = p
			found = true
			break
		}
	}
	if !found {
		player = domain.GamePlayer{Name: name, Race: fp.Race}
		for _, p := range fp.Players {
			if !p.IsObserver {
				player = p
				break
			}
		}
	}
	for _, p := range fp.Players {
		if !p.IsObserver && p.Team != player.Team && p.Name != player.Name {
			opponent = p
			break
		}
	}
	return player, opponent
}

func supplyPillarScore(eco *domain.EconomyStats) *int {
	if eco == nil || eco.SupplyBlockCount == nil || eco.SupplyBlockTotalTime == nil {
		return nil
	}
	penalty := float64(*eco.SupplyBlockCount)*supplyBlockCountPenalty +
		*eco.SupplyBlockTotalTime*supplyBlockSecondPenalty
	for _, b := range eco.SupplyBlocks {
		if b.Start < earlyGameCutoffSeconds {
			penalty += b.Duration() * earlyBlockSecondSurcharge
		}
	}
	s := int(math.Round(math.Max(0, 100-penalty)))
	return &s
}

// productionPillarScore is an ordered fallback chain: a prior
// comparison's execution total wins; otherwise the score is derived from
// summed per-building idle seconds; with neither, the score is unknown.
func productionPillarScore(cmp *domain.BuildComparison, eco *domain.EconomyStats) *int {
	if cmp != nil {
		return copyInt(&cmp.Score.Total)
	}
	idle := productionIdleSeconds(eco)
	if idle == nil {
		return nil
	}
	s := int(math.Round(math.Max(0, 100-tieredIdlePenalty(*idle))))
	return &s
}

func tieredIdlePenalty(idleSeconds float64) float64 {
	if idleSeconds <= idleFreeSeconds {
		return 0
	}
	if idleSeconds <= idleHalfRateSeconds {
		return (idleSeconds - idleFreeSeconds) * idleHalfRate
	}
	return (idleHalfRateSeconds-idleFreeSeconds)*idleHalfRate + (idleSeconds - idleHalfRateSeconds)
}

func supplyBlockSeconds(eco *domain.EconomyStats) *float64 {
	if eco == nil {
		return nil
	}
	return copyFloat(eco.SupplyBlockTotalTime)
}

func productionIdleSeconds(eco *domain.EconomyStats) *float64 {
	if eco == nil || eco.ProductionIdle == nil {
		return nil
	}
	var total float64
	for _, s := range eco.ProductionIdle {
		total += s
	}
	return &total
}
