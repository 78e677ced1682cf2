package snapshot

// PipelineSnapshot aggregates the partial results of every pipeline stage.
// Each fragment is optional; nil means the stage did not report.
type PipelineSnapshot struct {
	Profiling *ProfilingFragment   `json:"profiling,omitempty"`
	Rules     *RuleLibraryFragment `json:"rules,omitempty"`
	Execution *ExecutionFragment   `json:"execution,omitempty"`
	Dashboard *DashboardFragment   `json:"dashboard,omitempty"`
	Incidents *IncidentsFragment   `json:"incidents,omitempty"`
}

// ProfilingFragment is the profiling stage's contribution: table shape plus
// per-dimension quality scores.
type ProfilingFragment struct {
	RowCount        int64            `json:"row_count"`
	ColumnCount     int64            `json:"column_count"`
	DimensionScores []DimensionScore `json:"dimension_scores"`
}

// DimensionScore is one quality dimension (completeness, uniqueness, ...).
// Score is only meaningful when Computed is true; an uncomputed dimension
// must not carry a score.
type DimensionScore struct {
	Name     string   `json:"name"`
	Computed bool     `json:"computed"`
	Score    *float64 `json:"score,omitempty"`
	Weight   float64  `json:"weight"`
}

// RuleLibraryFragment is the authoritative rule catalog at a given version.
type RuleLibraryFragment struct {
	Rules   []Rule `json:"rules"`
	Version int64  `json:"version"`
}

// Rule is one authored data-quality rule.
type Rule struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Dimension string  `json:"dimension"`
	Threshold float64 `json:"threshold"`
}

// ExecutionFragment is the rule-execution stage's contribution: one metric
// per executed rule plus an aggregate summary.
type ExecutionFragment struct {
	Metrics []RuleMetric     `json:"metrics"`
	Summary ExecutionSummary `json:"summary"`
}

// RuleMetric is the measured outcome of executing one rule.
type RuleMetric struct {
	RuleID      string  `json:"rule_id"`
	Dimension   string  `json:"dimension"`
	SuccessRate float64 `json:"success_rate"`
	FailedCount int64   `json:"failed_count"`
	TotalCount  int64   `json:"total_count"`
	Threshold   float64 `json:"threshold"`
	Violated    bool    `json:"violated"`
}

// ExecutionSummary aggregates a run. Passed + Failed must equal TotalRules;
// the engine verifies this, never assumes it. The optional rates, when
// reported, must sum to one for a nonzero run.
type ExecutionSummary struct {
	Passed      int64    `json:"passed"`
	Failed      int64    `json:"failed"`
	TotalRules  int64    `json:"total_rules"`
	SuccessRate *float64 `json:"success_rate,omitempty"`
	FailureRate *float64 `json:"failure_rate,omitempty"`
}

// IncidentsFragment is the incident-creation stage's contribution.
type IncidentsFragment struct {
	Incidents []Incident `json:"incidents"`
}

// Incident is an actionable ticket raised for a failed rule. RuleID is nil
// for incidents raised without a specific rule attribution.
type Incident struct {
	ID        string  `json:"id"`
	RuleID    *string `json:"rule_id,omitempty"`
	Dimension string  `json:"dimension"`
	Severity  string  `json:"severity"`
}

// DashboardFragment is carried through untouched; it is not subject to
// numeric invariants.
type DashboardFragment struct {
	DashboardID *string `json:"dashboard_id,omitempty"`
}
