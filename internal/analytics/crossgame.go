package analytics

import (
	"sort"

	"replay-coach/internal/domain"
)

// FindNemesis picks the opponent with the strict-maximum loss rate among
// opponents met at least minGames times. Ties keep the first-encountered
// opponent, with encounter order taken from the entry slice, so callers
// that pass entries in stored order get a deterministic result. Nil when
// no opponent qualifies.
func FindNemesis(entries []domain.ReplayIndexEntry, minGames int) *domain.NemesisSummary {
	type opponentAccum struct {
		games  int
		losses int
		byRace map[domain.Race]domain.NemesisRaceBreakdown
	}

	accums := make(map[string]*opponentAccum)
	var order []string

	for _, e := range entries {
		if e.OpponentName == "" {
			continue
		}
		acc := accums[e.OpponentName]
		if acc == nil {
			acc = &opponentAccum{byRace: make(map[domain.Race]domain.NemesisRaceBreakdown)}
			accums[e.OpponentName] = acc
			order = append(order, e.OpponentName)
		}
		acc.games++
		br := acc.byRace[e.PlayerRace]
		br.Games++
		if e.Result != domain.ResultWin {
			acc.losses++
			br.Losses++
		}
		acc.byRace[e.PlayerRace] = br
	}

	var nemesis *domain.NemesisSummary
	for _, name := range order {
		acc := accums[name]
		if acc.games < minGames {
			continue
		}
		lossRate := float64(acc.losses) / float64(acc.games) * 100
		if nemesis == nil || lossRate > nemesis.LossRate {
			nemesis = &domain.NemesisSummary{
				OpponentName: name,
				Games:        acc.games,
				Losses:       acc.losses,
				LossRate:     lossRate,
				ByRace:       acc.byRace,
			}
		}
	}
	return nemesis
}

// MatchupBreakdown aggregates entries per canonical matchup string,
// sorted by game count descending.
func MatchupBreakdown(entries []domain.ReplayIndexEntry) []domain.MatchupStats {
	type matchupAccum struct {
		games    int
		wins     int
		block    avgAccum
		idle     avgAccum
		duration avgAccum
	}

	accums := make(map[string]*matchupAccum)
	var order []string

	for _, e := range entries {
		if e.Matchup == "" {
			continue
		}
		acc := accums[e.Matchup]
		if acc == nil {
			acc = &matchupAccum{}
			accums[e.Matchup] = acc
			order = append(order, e.Matchup)
		}
		acc.games++
		if e.Result == domain.ResultWin {
			acc.wins++
		}
		acc.block.add(e.SupplyBlockSeconds)
		acc.idle.add(e.ProductionIdleSeconds)
		// A non-positive duration means the duration is unknown, not a
		// zero-length game; keep it out of the average.
		if e.DurationSeconds > 0 {
			d := e.DurationSeconds
			acc.duration.add(&d)
		}
	}

	stats := make([]domain.MatchupStats, 0, len(order))
	for _, m := range order {
		acc := accums[m]
		stats = append(stats, domain.MatchupStats{
			Matchup:                  m,
			Games:                    acc.games,
			Wins:                     acc.wins,
			Losses:                   acc.games - acc.wins,
			WinRate:                  float64(acc.wins) / float64(acc.games) * 100,
			AvgSupplyBlockSeconds:    acc.block.average(),
			AvgProductionIdleSeconds: acc.idle.average(),
			AvgDurationSeconds:       acc.duration.average(),
		})
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Games > stats[j].Games })
	return stats
}

// PlayerSummaries groups entries by in-game identity and computes, per
// identity, the headline record, the most-played race, and that
// identity's own matchup breakdown and nemesis. Sorted by game count
// descending.
func PlayerSummaries(entries []domain.ReplayIndexEntry, minGames int) []domain.PlayerStatsSummary {
	grouped := make(map[string][]domain.ReplayIndexEntry)
	var order []string
	for _, e := range entries {
		if e.PlayerName == "" {
			continue
		}
		if _, ok := grouped[e.PlayerName]; !ok {
			order = append(order, e.PlayerName)
		}
		grouped[e.PlayerName] = append(grouped[e.PlayerName], e)
	}

	summaries := make([]domain.PlayerStatsSummary, 0, len(order))
	for _, name := range order {
		group := grouped[name]
		wins := 0
		for _, e := range group {
			if e.Result == domain.ResultWin {
				wins++
			}
		}
		summaries = append(summaries, domain.PlayerStatsSummary{
			PlayerName:  name,
			Games:       len(group),
			Wins:        wins,
			Losses:      len(group) - wins,
			WinRate:     float64(wins) / float64(len(group)) * 100,
			PrimaryRace: primaryRace(group),
			Matchups:    MatchupBreakdown(group),
			Nemesis:     FindNemesis(group, minGames),
		})
	}
	sort.SliceStable(summaries, func(i, j int) bool { return summaries[i].Games > summaries[j].Games })
	return summaries
}

// primaryRace is the most frequently played race in the group, ties
// broken by first encounter.
func primaryRace(entries []domain.ReplayIndexEntry) domain.Race {
	counts := make(map[domain.Race]int)
	var order []domain.Race
	for _, e := range entries {
		if _, ok := counts[e.PlayerRace]; !ok {
			order = append(order, e.PlayerRace)
		}
		counts[e.PlayerRace]++
	}
	best := domain.RaceUnknown
	bestCount := 0
	for _, r := range order {
		if counts[r] > bestCount {
			best, bestCount = r, counts[r]
		}
	}
	return best
}
