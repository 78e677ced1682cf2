package engine

import (
	"fmt"

	"github.com/roach88/veritas/internal/consistency"
	"github.com/roach88/veritas/internal/contract"
	"github.com/roach88/veritas/internal/normalize"
	"github.com/roach88/veritas/internal/snapshot"
	"github.com/roach88/veritas/internal/trust"
)

// Certify validates one pipeline snapshot against the cross-stage contract
// and returns the certified-or-violation report.
//
// Every check runs and every violation is collected before the decision is
// made; nothing short-circuits except checks whose fragments are absent.
// A nil snapshot is treated as empty. Certify never panics: an unexpected
// fault inside the engine degrades to the minimal INTERNAL_ERROR report.
func Certify(snap *snapshot.PipelineSnapshot) (report *Report) {
	defer func() {
		if r := recover(); r != nil {
			report = InternalErrorReport(fmt.Sprintf("unexpected fault: %v", r))
		}
	}()

	if snap == nil {
		snap = &snapshot.PipelineSnapshot{}
	}

	prof := normalize.NormalizeProfiling(snap.Profiling)
	rules := normalize.NormalizeRules(snap.Rules)
	exec := normalize.NormalizeExecution(snap.Execution)
	incs := normalize.NormalizeIncidents(snap.Incidents)
	dash := normalize.NormalizeDashboard(snap.Dashboard)

	var violations []contract.Violation
	violations = append(violations, prof.Violations...)
	violations = append(violations, rules.Violations...)
	violations = append(violations, exec.Violations...)
	violations = append(violations, incs.Violations...)

	ref := consistency.CheckReferential(exec.Fragment, rules.Fragment)
	violations = append(violations, ref.Violations...)
	causal := consistency.CheckCausal(exec.Fragment, incs.Fragment)
	violations = append(violations, causal.Violations...)

	// Missing dimensions carry their own penalty weight, so they are
	// counted apart from the generic warning term.
	missing, warnings, criticals := 0, 0, 0
	for _, v := range violations {
		switch {
		case v.Kind == contract.KindUnavailableDimension:
			missing++
		case v.Severity() == contract.SeverityCritical:
			criticals++
		default:
			warnings++
		}
	}

	score, breakdown := trust.Score(missing, exec.Simulated, criticals, warnings)

	var discarded []string
	discarded = append(discarded, prof.Discarded...)
	discarded = append(discarded, rules.Discarded...)
	discarded = append(discarded, exec.Discarded...)

	criticalList := contract.Criticals(violations)

	report = &Report{
		NormalizedProfiling: prof.Fragment,
		NormalizedExecution: exec.Fragment,
		NormalizedIncidents: incs.Fragment,
		NormalizedRules:     rules.Fragment,
		NormalizedDashboard: dash,
		TrustReport: TrustReport{
			DiscardedMetrics:        emptyIfNil(discarded),
			DeduplicatedRules:       rules.Deduplicated,
			InconsistenciesFound:    emptyIfNil(contract.Messages(violations)),
			TruthScore:              score,
			MissingDimensionsCount:  missing,
			SimulatedMetricsCount:   exec.Simulated,
			CriticalInconsistencies: emptyIfNil(contract.Messages(criticalList)),
			WarningInconsistencies:  emptyIfNil(contract.Messages(contract.Warnings(violations))),
			ScoreBreakdown:          breakdown,
		},
	}

	outcome := Decide(violations)
	report.Status = outcome.Status()
	report.Code = outcome.Code()
	if outcome == OutcomeViolation {
		report.Violations = contract.Messages(criticalList)
	}
	report.Explanation = explain(report, ref, causal)

	return report
}

// InternalErrorReport builds the best-effort minimal report for a call
// that could not be evaluated at all (malformed input, unexpected fault).
// The trust score is zero and the single critical entry names the cause;
// the caller's process is never crashed.
func InternalErrorReport(msg string) *Report {
	v := contract.Violation{
		Kind:    contract.KindInternalError,
		Stage:   "engine",
		Message: msg,
	}
	line := v.String()

	return &Report{
		Status: StatusError,
		Code:   CodeViolation,
		TrustReport: TrustReport{
			DiscardedMetrics:        []string{},
			InconsistenciesFound:    []string{line},
			TruthScore:              0,
			CriticalInconsistencies: []string{line},
			WarningInconsistencies:  []string{},
		},
		Explanation: "Internal error: the snapshot could not be evaluated. Trust Score: 0%.",
		Violations:  []string{line},
	}
}
