// Package trust implements the trust scorer: a fixed weighted-penalty
// formula mapping violation and missing-data counts to a 0-100 score.
//
// The weights are a policy decision, not derived from the data. They live
// here, behind one function, so they can be revisited without touching any
// validator.
package trust

// Penalty weights, in score points per occurrence.
const (
	BaseScore = 100.0

	MissingDimensionPenalty  = 20.0
	SimulatedMetricPenalty   = 15.0
	CriticalViolationPenalty = 10.0
	WarningPenalty           = 5.0
)

// Breakdown itemizes the score computation for auditability. The final
// score is Base minus the four penalty terms, clamped to [0, 100].
type Breakdown struct {
	Base             float64 `json:"base"`
	DimensionPenalty float64 `json:"dimension_penalty"`
	SimulatedPenalty float64 `json:"simulated_penalty"`
	CriticalPenalty  float64 `json:"critical_penalty"`
	WarningPenalty   float64 `json:"warning_penalty"`
}

// Score computes the trust score as a ratio in [0, 1] plus the itemized
// breakdown. The score is never negative: penalties beyond the base clamp
// to zero.
func Score(missingDimensions, simulatedMetrics, criticals, warnings int) (float64, Breakdown) {
	b := Breakdown{
		Base:             BaseScore,
		DimensionPenalty: MissingDimensionPenalty * float64(missingDimensions),
		SimulatedPenalty: SimulatedMetricPenalty * float64(simulatedMetrics),
		CriticalPenalty:  CriticalViolationPenalty * float64(criticals),
		WarningPenalty:   WarningPenalty * float64(warnings),
	}

	score := b.Base - b.DimensionPenalty - b.SimulatedPenalty - b.CriticalPenalty - b.WarningPenalty
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score / 100, b
}
