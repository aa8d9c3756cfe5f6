package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRace(t *testing.T) {
	tests := []struct {
		in   string
		want Race
	}{
		{"Terran", RaceTerran},
		{"terran", RaceTerran},
		{"T", RaceTerran},
		{" zerg ", RaceZerg},
		{"p", RaceProtoss},
		{"Random", RaceRandom},
		{"", RaceUnknown},
		{"xel'naga", RaceUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseRace(tt.in), "input %q", tt.in)
	}
}

func TestMatchupPlayerRaceFirst(t *testing.T) {
	assert.Equal(t, "TvZ", Matchup(RaceTerran, RaceZerg))
	assert.Equal(t, "ZvT", Matchup(RaceZerg, RaceTerran))
	assert.Equal(t, "PvP", Matchup(RaceProtoss, RaceProtoss))
	assert.Equal(t, "Rv?", Matchup(RaceRandom, RaceUnknown))
}

func TestSupplyBlockDuration(t *testing.T) {
	assert.InDelta(t, 4, SupplyBlock{Start: 100, End: 104}.Duration(), 1e-9)
	// An inverted window is treated as empty, not negative.
	assert.Zero(t, SupplyBlock{Start: 104, End: 100}.Duration())
}
