package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeScoreDefaults(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name    string
		formula FormulaConfig
		percent float64
		want    int
	}{
		{"supply no penalty", cfg.SupplyBlock, 0, 100},
		{"supply 10 percent", cfg.SupplyBlock, 10, 75},
		{"supply 20 percent", cfg.SupplyBlock, 20, 50},
		{"supply 40 percent floors", cfg.SupplyBlock, 40, 0},
		{"supply past floor clamps", cfg.SupplyBlock, 60, 0},
		{"idle no penalty", cfg.ProductionIdle, 0, 100},
		{"idle 10 percent", cfg.ProductionIdle, 10, 80},
		{"idle 50 percent floors", cfg.ProductionIdle, 50, 0},
		{"idle past floor clamps", cfg.ProductionIdle, 80, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeScore(tt.percent, tt.formula))
		})
	}
}

func TestTimeScoreMonotonic(t *testing.T) {
	cfg := DefaultConfig()
	prev := TimeScore(0, cfg.SupplyBlock)
	for p := 1.0; p <= 100; p++ {
		s := TimeScore(p, cfg.SupplyBlock)
		assert.LessOrEqual(t, s, prev, "score must not increase at %.0f%%", p)
		prev = s
	}
}

func TestTimeScoreRounding(t *testing.T) {
	// 1% at weight 2.5 is 97.5 penalty-adjusted, which rounds half away
	// from zero.
	assert.Equal(t, 98, TimeScore(1, FormulaConfig{Weight: 2.5, Min: 0, Max: 100}))
}

func TestTimePenaltyPercent(t *testing.T) {
	p := TimePenaltyPercent(30, 600)
	require.NotNil(t, p)
	assert.InDelta(t, 5.0, *p, 1e-9)

	assert.Nil(t, TimePenaltyPercent(30, 0))
	assert.Nil(t, TimePenaltyPercent(30, -10))
}

func TestSupplyBlockScore(t *testing.T) {
	cfg := DefaultConfig()

	s := cfg.SupplyBlockScore(60, 600)
	require.NotNil(t, s)
	assert.Equal(t, 75, *s)

	assert.Nil(t, cfg.SupplyBlockScore(60, 0))
}

func TestProductionIdleScore(t *testing.T) {
	cfg := DefaultConfig()

	s := cfg.ProductionIdleScore(60, 600)
	require.NotNil(t, s)
	assert.Equal(t, 80, *s)

	assert.Nil(t, cfg.ProductionIdleScore(60, -1))
}

func TestGradeThresholds(t *testing.T) {
	g := DefaultConfig().Grades

	tests := []struct {
		total int
		want  string
	}{
		{100, "S"}, {95, "S"}, {94, "A"}, {85, "A"},
		{84, "B"}, {70, "B"}, {69, "C"}, {55, "C"},
		{54, "D"}, {40, "D"}, {39, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, g.Grade(tt.total), "total %d", tt.total)
	}
}
