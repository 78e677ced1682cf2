package trust

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_NoFindings(t *testing.T) {
	score, b := Score(0, 0, 0, 0)
	assert.Equal(t, 1.0, score)
	assert.Equal(t, Breakdown{Base: 100}, b)
}

func TestScore_Weights(t *testing.T) {
	cases := []struct {
		name                           string
		missing, simulated, crit, warn int
		want                           float64
	}{
		{"one missing dimension", 1, 0, 0, 0, 0.80},
		{"one simulated metric", 0, 1, 0, 0, 0.85},
		{"one critical", 0, 0, 1, 0, 0.90},
		{"one warning", 0, 0, 0, 1, 0.95},
		{"two missing dimensions", 2, 0, 0, 0, 0.60},
		{"mixed", 1, 1, 1, 1, 0.50},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, _ := Score(tc.missing, tc.simulated, tc.crit, tc.warn)
			assert.InDelta(t, tc.want, score, 1e-9)
		})
	}
}

func TestScore_ClampsToZero(t *testing.T) {
	score, b := Score(10, 10, 10, 10)
	assert.Equal(t, 0.0, score)
	// The breakdown keeps the raw penalties for auditability.
	assert.Equal(t, 200.0, b.DimensionPenalty)
	assert.Equal(t, 150.0, b.SimulatedPenalty)
	assert.Equal(t, 100.0, b.CriticalPenalty)
	assert.Equal(t, 50.0, b.WarningPenalty)
}

func TestScore_Monotonic(t *testing.T) {
	// The score never increases as any count goes up.
	base, _ := Score(1, 1, 1, 1)
	for _, counts := range [][4]int{
		{2, 1, 1, 1},
		{1, 2, 1, 1},
		{1, 1, 2, 1},
		{1, 1, 1, 2},
	} {
		s, _ := Score(counts[0], counts[1], counts[2], counts[3])
		assert.LessOrEqual(t, s, base)
	}
}

func TestScore_Breakdown(t *testing.T) {
	score, b := Score(2, 1, 3, 4)
	assert.Equal(t, 100.0, b.Base)
	assert.Equal(t, 40.0, b.DimensionPenalty)
	assert.Equal(t, 15.0, b.SimulatedPenalty)
	assert.Equal(t, 30.0, b.CriticalPenalty)
	assert.Equal(t, 20.0, b.WarningPenalty)
	assert.InDelta(t, (100.0-40-15-30-20)/100, score, 1e-9)
}
