package analytics

// FormulaConfig tunes one time-penalty score formula: the points deducted
// per percent of game duration lost, clamped to [Min, Max].
type FormulaConfig struct {
	Weight float64
	Min    int
	Max    int
}

// ComponentWeights are the execution-score component weights. They should
// sum to 1.0.
type ComponentWeights struct {
	Economy    float64
	Army       float64
	Tech       float64
	Efficiency float64
}

// GradeThresholds map an execution total to a letter grade: the grade is
// the first band whose threshold the total meets, otherwise "F".
type GradeThresholds struct {
	S int
	A int
	B int
	C int
	D int
}

func (g GradeThresholds) Grade(total int) string {
	switch {
	case total >= g.S:
		return "S"
	case total >= g.A:
		return "A"
	case total >= g.B:
		return "B"
	case total >= g.C:
		return "C"
	case total >= g.D:
		return "D"
	}
	return "F"
}

// Config is the tuning surface of the analytics engine. It is built once
// at startup and injected into every component so that profiles can be
// tested side by side; nothing in this package reads mutable globals.
type Config struct {
	SupplyBlock    FormulaConfig
	ProductionIdle FormulaConfig

	Components ComponentWeights
	Grades     GradeThresholds

	// Minimum games against one opponent before they can qualify as a
	// nemesis.
	NemesisMinGames int
}

// DefaultConfig returns the tuning used in production. With the default
// weights, 10% of the game supply-blocked scores 75 and 10% production
// idle scores 80.
func DefaultConfig() Config {
	return Config{
		SupplyBlock:    FormulaConfig{Weight: 2.5, Min: 0, Max: 100},
		ProductionIdle: FormulaConfig{Weight: 2.0, Min: 0, Max: 100},
		Components: ComponentWeights{
			Economy:    0.30,
			Army:       0.25,
			Tech:       0.20,
			Efficiency: 0.25,
		},
		Grades:          GradeThresholds{S: 95, A: 85, B: 70, C: 55, D: 40},
		NemesisMinGames: 3,
	}
}
