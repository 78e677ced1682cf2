package normalize

import (
	"fmt"
	"math"

	"github.com/roach88/veritas/internal/contract"
	"github.com/roach88/veritas/internal/snapshot"
)

// Tolerances for the conservation checks. A count mismatch within 1% of the
// total is a minor discrepancy, beyond it a critical truth violation. The
// reported success/failure rates must sum to one within one percentage
// point.
const (
	conservationTolerance = 0.01
	rateSumTolerance      = 0.01
)

// Execution is the normalized execution fragment. TruthVerified records
// whether the conservation law passed + failed = total_rules held within
// tolerance.
type Execution struct {
	Metrics       []Metric `json:"metrics"`
	Summary       Summary  `json:"summary"`
	TruthVerified bool     `json:"truth_verified"`
}

// Metric is one normalized rule metric. Simulated marks a metric that
// reports rates or failures over zero measured rows: numbers with no
// underlying data.
type Metric struct {
	RuleID      string  `json:"rule_id"`
	Dimension   string  `json:"dimension"`
	SuccessRate float64 `json:"success_rate"`
	FailedCount int64   `json:"failed_count"`
	TotalCount  int64   `json:"total_count"`
	Threshold   float64 `json:"threshold"`
	Violated    bool    `json:"violated"`
	Simulated   bool    `json:"simulated,omitempty"`
}

// Summary is the normalized execution summary.
type Summary struct {
	Passed     int64 `json:"passed"`
	Failed     int64 `json:"failed"`
	TotalRules int64 `json:"total_rules"`
}

// ExecutionResult carries the normalized fragment, collected violations,
// discarded-metric context strings, and the simulated-metric count.
type ExecutionResult struct {
	Fragment   *Execution
	Violations []contract.Violation
	Discarded  []string
	Simulated  int
}

const stageExecution = "execution"

// NormalizeExecution validates and normalizes the execution fragment.
// A nil fragment yields an empty result.
//
// Every metric is validated independently, then the summary is verified
// against the conservation law. A summary of all zeroes is a valid empty
// execution and only warns.
func NormalizeExecution(f *snapshot.ExecutionFragment) ExecutionResult {
	var res ExecutionResult
	if f == nil {
		return res
	}

	norm := &Execution{
		Metrics: make([]Metric, 0, len(f.Metrics)),
	}

	for i, m := range f.Metrics {
		if v := contract.CheckRatio(stageExecution, fmt.Sprintf("metrics[%d].success_rate", i), m.SuccessRate); v != nil {
			res.Violations = append(res.Violations, *v)
		}
		if v := contract.CheckRatio(stageExecution, fmt.Sprintf("metrics[%d].threshold", i), m.Threshold); v != nil {
			res.Violations = append(res.Violations, *v)
		}
		if v := contract.CheckCount(stageExecution, fmt.Sprintf("metrics[%d].failed_count", i), m.FailedCount); v != nil {
			res.Violations = append(res.Violations, *v)
		}
		if v := contract.CheckCount(stageExecution, fmt.Sprintf("metrics[%d].total_count", i), m.TotalCount); v != nil {
			res.Violations = append(res.Violations, *v)
		}

		simulated := m.TotalCount == 0 && (m.SuccessRate != 0 || m.FailedCount != 0)
		if simulated {
			res.Simulated++
			res.Discarded = append(res.Discarded, fmt.Sprintf("execution.metrics[%d]: rule %q reports results over zero rows (simulated)", i, m.RuleID))
		}

		norm.Metrics = append(norm.Metrics, Metric{
			RuleID:      m.RuleID,
			Dimension:   m.Dimension,
			SuccessRate: m.SuccessRate,
			FailedCount: m.FailedCount,
			TotalCount:  m.TotalCount,
			Threshold:   m.Threshold,
			Violated:    m.Violated,
			Simulated:   simulated,
		})
	}

	norm.Summary = Summary{
		Passed:     f.Summary.Passed,
		Failed:     f.Summary.Failed,
		TotalRules: f.Summary.TotalRules,
	}
	res.Violations = append(res.Violations, verifySummary(f.Summary, norm)...)

	res.Fragment = norm
	return res
}

// verifySummary checks the conservation law over the summary counts and the
// optional reported rates, setting TruthVerified on the normalized fragment.
func verifySummary(s snapshot.ExecutionSummary, norm *Execution) []contract.Violation {
	var violations []contract.Violation

	countsValid := true
	for _, c := range []struct {
		field string
		value int64
	}{
		{"summary.passed", s.Passed},
		{"summary.failed", s.Failed},
		{"summary.total_rules", s.TotalRules},
	} {
		if v := contract.CheckCount(stageExecution, c.field, c.value); v != nil {
			violations = append(violations, *v)
			countsValid = false
		}
	}

	switch {
	case !countsValid:
		// Negative counts are already critical; the arithmetic over them
		// proves nothing either way.
		norm.TruthVerified = false
	case s.TotalRules == 0 && s.Passed == 0 && s.Failed == 0:
		norm.TruthVerified = true
		violations = append(violations, contract.Violation{
			Kind:    contract.KindEmptyExecution,
			Stage:   stageExecution,
			Field:   "summary",
			Message: "no rules were executed in this run",
		})
	default:
		diff := s.Passed + s.Failed - s.TotalRules
		if diff < 0 {
			diff = -diff
		}
		switch {
		case diff == 0:
			norm.TruthVerified = true
		case float64(diff) > float64(s.TotalRules)*conservationTolerance:
			norm.TruthVerified = false
			violations = append(violations, contract.Violation{
				Kind:    contract.KindExecutionTruth,
				Stage:   stageExecution,
				Field:   "summary",
				Message: fmt.Sprintf("passed %d + failed %d = %d, but total_rules is %d (mismatch %d)", s.Passed, s.Failed, s.Passed+s.Failed, s.TotalRules, diff),
			})
		default:
			norm.TruthVerified = true
			violations = append(violations, contract.Violation{
				Kind:    contract.KindMinorDiscrepancy,
				Stage:   stageExecution,
				Field:   "summary",
				Message: fmt.Sprintf("passed %d + failed %d = %d differs from total_rules %d within tolerance", s.Passed, s.Failed, s.Passed+s.Failed, s.TotalRules),
			})
		}
	}

	if s.SuccessRate != nil {
		if v := contract.CheckRatio(stageExecution, "summary.success_rate", *s.SuccessRate); v != nil {
			violations = append(violations, *v)
		}
	}
	if s.FailureRate != nil {
		if v := contract.CheckRatio(stageExecution, "summary.failure_rate", *s.FailureRate); v != nil {
			violations = append(violations, *v)
		}
	}
	if s.SuccessRate != nil && s.FailureRate != nil && s.TotalRules > 0 {
		if sum := *s.SuccessRate + *s.FailureRate; math.Abs(sum-1) > rateSumTolerance {
			violations = append(violations, contract.Violation{
				Kind:    contract.KindRateSum,
				Stage:   stageExecution,
				Field:   "summary",
				Message: fmt.Sprintf("success_rate %v + failure_rate %v = %v, expected 1", *s.SuccessRate, *s.FailureRate, sum),
			})
		}
	}

	return violations
}
