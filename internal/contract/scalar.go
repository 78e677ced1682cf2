package contract

import (
	"fmt"
	"math"
)

// CheckRatio verifies that value lies in [0, 1]. NaN is out of range: a
// ratio that is not a number is a lie, not a gap. Returns nil when valid.
func CheckRatio(stage, field string, value float64) *Violation {
	if math.IsNaN(value) || value < 0 || value > 1 {
		return &Violation{
			Kind:    KindOutOfRange,
			Stage:   stage,
			Field:   field,
			Message: fmt.Sprintf("ratio %v outside [0, 1]", value),
		}
	}
	return nil
}

// CheckCount verifies that value is non-negative. Returns nil when valid.
func CheckCount(stage, field string, value int64) *Violation {
	if value < 0 {
		return &Violation{
			Kind:    KindNegativeCount,
			Stage:   stage,
			Field:   field,
			Message: fmt.Sprintf("count %d is negative", value),
		}
	}
	return nil
}
