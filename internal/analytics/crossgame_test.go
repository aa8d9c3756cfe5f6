package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"replay-coach/internal/domain"
)

func entryVs(id, opponent string, result domain.GameResult) domain.ReplayIndexEntry {
	e := makeEntry(id, result, utc(2025, time.March, 10))
	e.OpponentName = opponent
	e.OpponentRace = domain.RaceZerg
	return e
}

func TestFindNemesisMinGames(t *testing.T) {
	entries := []domain.ReplayIndexEntry{
		entryVs("a", "Rival", domain.ResultLoss),
		entryVs("b", "Rival", domain.ResultLoss),
	}

	assert.Nil(t, FindNemesis(entries, 3))
}

func TestFindNemesisHighestLossRateWins(t *testing.T) {
	entries := []domain.ReplayIndexEntry{
		// Rival: 3 games, 2 losses (66.7%).
		entryVs("a", "Rival", domain.ResultLoss),
		entryVs("b", "Rival", domain.ResultWin),
		entryVs("c", "Rival", domain.ResultLoss),
		// Grinder: 5 games, 2 losses (40%), more games but lower rate.
		entryVs("d", "Grinder", domain.ResultLoss),
		entryVs("e", "Grinder", domain.ResultWin),
		entryVs("f", "Grinder", domain.ResultWin),
		entryVs("g", "Grinder", domain.ResultLoss),
		entryVs("h", "Grinder", domain.ResultWin),
	}

	nemesis := FindNemesis(entries, 3)

	require.NotNil(t, nemesis)
	assert.Equal(t, "Rival", nemesis.OpponentName)
	assert.Equal(t, 3, nemesis.Games)
	assert.Equal(t, 2, nemesis.Losses)
	assert.InDelta(t, 100.0*2/3, nemesis.LossRate, 1e-9)
}

func TestFindNemesisTieKeepsFirstEncountered(t *testing.T) {
	entries := []domain.ReplayIndexEntry{
		entryVs("a", "First", domain.ResultLoss),
		entryVs("b", "Second", domain.ResultLoss),
		entryVs("c", "First", domain.ResultLoss),
		entryVs("d", "Second", domain.ResultLoss),
		entryVs("e", "First", domain.ResultWin),
		entryVs("f", "Second", domain.ResultWin),
	}

	nemesis := FindNemesis(entries, 3)

	require.NotNil(t, nemesis)
	assert.Equal(t, "First", nemesis.OpponentName)
}

func TestFindNemesisUnknownResultCountsAsLoss(t *testing.T) {
	entries := []domain.ReplayIndexEntry{
		entryVs("a", "Rival", domain.ResultUnknown),
		entryVs("b", "Rival", domain.ResultUnknown),
		entryVs("c", "Rival", domain.ResultWin),
	}

	nemesis := FindNemesis(entries, 3)

	require.NotNil(t, nemesis)
	assert.Equal(t, 2, nemesis.Losses)
}

func TestFindNemesisByRaceBreakdown(t *testing.T) {
	asTerran := entryVs("a", "Rival", domain.ResultLoss)
	asZerg := entryVs("b", "Rival", domain.ResultLoss)
	asZerg.PlayerRace = domain.RaceZerg
	asZerg2 := entryVs("c", "Rival", domain.ResultWin)
	asZerg2.PlayerRace = domain.RaceZerg

	nemesis := FindNemesis([]domain.ReplayIndexEntry{asTerran, asZerg, asZerg2}, 3)

	require.NotNil(t, nemesis)
	assert.Equal(t, domain.NemesisRaceBreakdown{Games: 1, Losses: 1}, nemesis.ByRace[domain.RaceTerran])
	assert.Equal(t, domain.NemesisRaceBreakdown{Games: 2, Losses: 1}, nemesis.ByRace[domain.RaceZerg])
}

func TestFindNemesisIgnoresUnnamedOpponents(t *testing.T) {
	entries := []domain.ReplayIndexEntry{
		entryVs("a", "", domain.ResultLoss),
		entryVs("b", "", domain.ResultLoss),
		entryVs("c", "", domain.ResultLoss),
	}

	assert.Nil(t, FindNemesis(entries, 3))
}

func TestMatchupBreakdown(t *testing.T) {
	tvz1 := makeEntry("a", domain.ResultWin, utc(2025, time.March, 10))
	tvz1.SupplyBlockSeconds = ptrFloat(10)
	tvz1.DurationSeconds = 600
	tvz2 := makeEntry("b", domain.ResultLoss, utc(2025, time.March, 11))
	tvz2.SupplyBlockSeconds = ptrFloat(20)
	tvz2.DurationSeconds = 0 // unknown, excluded from the average
	tvp := makeEntry("c", domain.ResultWin, utc(2025, time.March, 12))
	tvp.Matchup = "TvP"
	tvp.DurationSeconds = 900

	stats := MatchupBreakdown([]domain.ReplayIndexEntry{tvz1, tvz2, tvp})

	require.Len(t, stats, 2)
	// Sorted by game count descending.
	assert.Equal(t, "TvZ", stats[0].Matchup)
	assert.Equal(t, 2, stats[0].Games)
	assert.Equal(t, 1, stats[0].Wins)
	assert.Equal(t, 1, stats[0].Losses)
	assert.InDelta(t, 50, stats[0].WinRate, 1e-9)
	require.NotNil(t, stats[0].AvgSupplyBlockSeconds)
	assert.InDelta(t, 15, *stats[0].AvgSupplyBlockSeconds, 1e-9)
	assert.Nil(t, stats[0].AvgProductionIdleSeconds)
	require.NotNil(t, stats[0].AvgDurationSeconds)
	assert.InDelta(t, 600, *stats[0].AvgDurationSeconds, 1e-9)

	assert.Equal(t, "TvP", stats[1].Matchup)
	assert.Equal(t, 1, stats[1].Games)
}

func TestMatchupBreakdownSkipsBlankMatchup(t *testing.T) {
	blank := makeEntry("a", domain.ResultWin, utc(2025, time.March, 10))
	blank.Matchup = ""

	assert.Empty(t, MatchupBreakdown([]domain.ReplayIndexEntry{blank}))
}

func TestPlayerSummaries(t *testing.T) {
	var entries []domain.ReplayIndexEntry
	// "Hero" plays 3 games, 2 as Terran and 1 as Zerg.
	for i, game := range []struct {
		result domain.GameResult
		race   domain.Race
	}{
		{domain.ResultWin, domain.RaceTerran},
		{domain.ResultLoss, domain.RaceTerran},
		{domain.ResultWin, domain.RaceZerg},
	} {
		e := entryVs(string(rune('a'+i)), "Rival", game.result)
		e.PlayerRace = game.race
		entries = append(entries, e)
	}
	// "Smurf" plays 1 game under a different name.
	smurf := entryVs("z", "Rival", domain.ResultLoss)
	smurf.PlayerName = "Smurf"
	entries = append(entries, smurf)

	summaries := PlayerSummaries(entries, 3)

	require.Len(t, summaries, 2)
	hero := summaries[0]
	assert.Equal(t, "Hero", hero.PlayerName)
	assert.Equal(t, 3, hero.Games)
	assert.Equal(t, 2, hero.Wins)
	assert.Equal(t, 1, hero.Losses)
	assert.InDelta(t, 100.0*2/3, hero.WinRate, 1e-9)
	assert.Equal(t, domain.RaceTerran, hero.PrimaryRace)
	require.NotEmpty(t, hero.Matchups)
	// Hero met Rival 3 times, enough to qualify as their nemesis.
	require.NotNil(t, hero.Nemesis)
	assert.Equal(t, "Rival", hero.Nemesis.OpponentName)

	assert.Equal(t, "Smurf", summaries[1].PlayerName)
	assert.Equal(t, 1, summaries[1].Games)
	// One game is below the nemesis threshold.
	assert.Nil(t, summaries[1].Nemesis)
}

func TestPrimaryRaceTieKeepsFirstEncountered(t *testing.T) {
	zerg := makeEntry("a", domain.ResultWin, utc(2025, time.March, 10))
	zerg.PlayerRace = domain.RaceZerg
	terran := makeEntry("b", domain.ResultWin, utc(2025, time.March, 11))

	assert.Equal(t, domain.RaceZerg, primaryRace([]domain.ReplayIndexEntry{zerg, terran}))
}
