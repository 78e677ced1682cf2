package normalize

import (
	"fmt"

	"github.com/roach88/veritas/internal/contract"
	"github.com/roach88/veritas/internal/snapshot"
)

// Profiling is the normalized profiling fragment. Dimensions are
// partitioned into computed and unavailable; OverallScore is the arithmetic
// mean of computed scores only, nil when no dimension was computed.
// Unavailable dimensions are excluded from the mean, never treated as zero.
type Profiling struct {
	RowCount              int64       `json:"row_count"`
	ColumnCount           int64       `json:"column_count"`
	OverallScore          *float64    `json:"overall_score,omitempty"`
	ComputedDimensions    []Dimension `json:"computed_dimensions"`
	UnavailableDimensions []string    `json:"unavailable_dimensions"`
}

// Dimension is one computed quality dimension.
type Dimension struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
}

// ProfilingResult carries the normalized fragment, collected violations,
// and the context strings of metrics discarded during normalization.
type ProfilingResult struct {
	Fragment   *Profiling
	Violations []contract.Violation
	Discarded  []string
}

const stageProfiling = "profiling"

// NormalizeProfiling validates and normalizes the profiling fragment.
// A nil fragment yields an empty result.
func NormalizeProfiling(f *snapshot.ProfilingFragment) ProfilingResult {
	var res ProfilingResult
	if f == nil {
		return res
	}

	if v := contract.CheckCount(stageProfiling, "row_count", f.RowCount); v != nil {
		res.Violations = append(res.Violations, *v)
	}
	if v := contract.CheckCount(stageProfiling, "column_count", f.ColumnCount); v != nil {
		res.Violations = append(res.Violations, *v)
	}

	norm := &Profiling{
		RowCount:              f.RowCount,
		ColumnCount:           f.ColumnCount,
		ComputedDimensions:    []Dimension{},
		UnavailableDimensions: []string{},
	}

	var sum float64
	for i, dim := range f.DimensionScores {
		field := fmt.Sprintf("dimension_scores[%d].score", i)

		if !dim.Computed {
			// Uncomputed dimensions must not carry a score.
			if dim.Score != nil {
				res.Violations = append(res.Violations, contract.Violation{
					Kind:    contract.KindMinorDiscrepancy,
					Stage:   stageProfiling,
					Field:   field,
					Message: fmt.Sprintf("dimension %q is not computed but carries score %v; score discarded", dim.Name, *dim.Score),
				})
			}
			res.Violations = append(res.Violations, contract.Violation{
				Kind:    contract.KindUnavailableDimension,
				Stage:   stageProfiling,
				Field:   fmt.Sprintf("dimension_scores[%d]", i),
				Message: fmt.Sprintf("dimension %q has no computed score", dim.Name),
			})
			res.Discarded = append(res.Discarded, fmt.Sprintf("profiling.dimension_scores[%d]: dimension %q unavailable", i, dim.Name))
			norm.UnavailableDimensions = append(norm.UnavailableDimensions, dim.Name)
			continue
		}

		if dim.Score == nil {
			// Claimed computed, delivered nothing. Track as unavailable.
			res.Violations = append(res.Violations, contract.Violation{
				Kind:    contract.KindMinorDiscrepancy,
				Stage:   stageProfiling,
				Field:   field,
				Message: fmt.Sprintf("dimension %q is marked computed but carries no score", dim.Name),
			})
			res.Violations = append(res.Violations, contract.Violation{
				Kind:    contract.KindUnavailableDimension,
				Stage:   stageProfiling,
				Field:   fmt.Sprintf("dimension_scores[%d]", i),
				Message: fmt.Sprintf("dimension %q has no computed score", dim.Name),
			})
			res.Discarded = append(res.Discarded, fmt.Sprintf("profiling.dimension_scores[%d]: dimension %q unavailable", i, dim.Name))
			norm.UnavailableDimensions = append(norm.UnavailableDimensions, dim.Name)
			continue
		}

		if v := contract.CheckRatio(stageProfiling, field, *dim.Score); v != nil {
			res.Violations = append(res.Violations, *v)
			res.Discarded = append(res.Discarded, fmt.Sprintf("profiling.%s: out-of-range score %v discarded", field, *dim.Score))
			continue
		}

		norm.ComputedDimensions = append(norm.ComputedDimensions, Dimension{
			Name:   dim.Name,
			Score:  *dim.Score,
			Weight: dim.Weight,
		})
		sum += *dim.Score
	}

	if n := len(norm.ComputedDimensions); n > 0 {
		mean := sum / float64(n)
		norm.OverallScore = &mean
	}

	res.Fragment = norm
	return res
}
