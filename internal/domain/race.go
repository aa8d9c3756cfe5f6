package domain

import "strings"

type Race string

const (
	RaceTerran  Race = "Terran"
	RaceZerg    Race = "Zerg"
	RaceProtoss Race = "Protoss"
	RaceRandom  Race = "Random"
	RaceUnknown Race = ""
)

// Letter returns the single-letter abbreviation used in matchup strings.
func (r Race) Letter() string {
	switch r {
	case RaceTerran, RaceZerg, RaceProtoss, RaceRandom:
		return string(r[0])
	}
	return "?"
}

// ParseRace normalizes a race string from upstream parsers, which emit
// either full names or single letters depending on version.
func ParseRace(s string) Race {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "terran", "t":
		return RaceTerran
	case "zerg", "z":
		return RaceZerg
	case "protoss", "p":
		return RaceProtoss
	case "random", "r":
		return RaceRandom
	}
	return RaceUnknown
}

// Matchup builds the canonical matchup string with the tracked player's
// race first, e.g. Terran vs Zerg -> "TvZ".
func Matchup(player, opponent Race) string {
	return player.Letter() + "v" + opponent.Letter()
}

type GameResult string

const (
	ResultWin     GameResult = "Win"
	ResultLoss    GameResult = "Loss"
	ResultUnknown GameResult = ""
)
