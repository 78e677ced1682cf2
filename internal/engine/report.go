package engine

import (
	"github.com/roach88/veritas/internal/normalize"
	"github.com/roach88/veritas/internal/trust"
)

// Status is the domain outcome as seen by a transport: "success" when the
// snapshot certified, "error" when it did not. Whether this also drives
// the transport's own status (e.g. an HTTP code) is the caller's policy,
// not the engine's.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Code is the machine-readable outcome code.
type Code string

const (
	CodeCertified Code = "GOVERNANCE_CERTIFIED"
	CodeViolation Code = "DQ_CONTRACT_VIOLATION"
)

// TrustReport itemizes everything the engine found: every inconsistency,
// what was discarded during normalization, and the penalty breakdown
// behind the final score. List fields are always present (empty, not
// null) so consumers never branch on absence.
type TrustReport struct {
	DiscardedMetrics        []string        `json:"discarded_metrics"`
	DeduplicatedRules       int             `json:"deduplicated_rules"`
	InconsistenciesFound    []string        `json:"inconsistencies_found"`
	TruthScore              float64         `json:"truth_score"`
	MissingDimensionsCount  int             `json:"missing_dimensions_count"`
	SimulatedMetricsCount   int             `json:"simulated_metrics_count"`
	CriticalInconsistencies []string        `json:"critical_inconsistencies"`
	WarningInconsistencies  []string        `json:"warning_inconsistencies"`
	ScoreBreakdown          trust.Breakdown `json:"score_breakdown"`
}

// Report is the engine's complete output. Normalized fragments are
// present even on violation so downstream consumers can inspect the
// cleaned data regardless of certification outcome. Violations is set
// only when Status is "error".
type Report struct {
	Status              Status                 `json:"status"`
	Code                Code                   `json:"code"`
	NormalizedProfiling *normalize.Profiling   `json:"normalized_profiling,omitempty"`
	NormalizedExecution *normalize.Execution   `json:"normalized_execution,omitempty"`
	NormalizedIncidents *normalize.Incidents   `json:"normalized_incidents,omitempty"`
	NormalizedRules     *normalize.RuleLibrary `json:"normalized_rules,omitempty"`
	NormalizedDashboard *normalize.Dashboard   `json:"normalized_dashboard,omitempty"`
	TrustReport         TrustReport            `json:"trust_report"`
	Explanation         string                 `json:"explanation"`
	Violations          []string               `json:"violations,omitempty"`
}

// Outcome recovers the governance classification from the report.
func (r *Report) Outcome() Outcome {
	if r.Status == StatusSuccess {
		return OutcomeCertified
	}
	return OutcomeViolation
}

func emptyIfNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
