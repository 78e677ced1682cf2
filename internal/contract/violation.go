// Package contract defines the closed violation taxonomy of the governance
// engine and the scalar validators that feed it.
//
// Every check in the engine reports through the Violation type. Severity is
// a function of the kind, decided here and nowhere else; downstream code
// must never infer severity by inspecting message text.
package contract

import "fmt"

// Kind identifies a violation category. The set is closed: every check in
// the engine reports one of these, and the governance decision depends only
// on which kinds are present.
type Kind string

const (
	// Schema/range violations: a numeric field outside its legal domain.
	KindOutOfRange    Kind = "OUT_OF_RANGE"
	KindNegativeCount Kind = "NEGATIVE_COUNT"

	// Conservation violations: a cross-field arithmetic law fails beyond
	// tolerance.
	KindExecutionTruth Kind = "EXECUTION_TRUTH_VIOLATION"
	KindRateSum        Kind = "RATE_SUM_VIOLATION"

	// KindPhantomRule: an executed rule not found in the authoritative
	// rule library.
	KindPhantomRule Kind = "PHANTOM_RULE"

	// KindOrphanIncident: an incident that does not trace back to a rule
	// that actually failed.
	KindOrphanIncident Kind = "ORPHAN_INCIDENT"

	// KindInternalError: the call itself could not be evaluated (malformed
	// input, unexpected fault). Reported instead of propagating a panic.
	KindInternalError Kind = "INTERNAL_ERROR"

	// Completeness warnings: recoverable, non-blocking. They reduce the
	// trust score but never block certification.
	KindSkippedRule          Kind = "SKIPPED_RULE"
	KindUnavailableDimension Kind = "UNAVAILABLE_DIMENSION"
	KindMinorDiscrepancy     Kind = "MINOR_DISCREPANCY"
	KindEmptyExecution       Kind = "EMPTY_EXECUTION"
)

// Severity classifies a violation as certification-blocking or not.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

// Severity returns the fixed severity of the kind.
func (k Kind) Severity() Severity {
	switch k {
	case KindSkippedRule, KindUnavailableDimension, KindMinorDiscrepancy, KindEmptyExecution:
		return SeverityWarning
	default:
		return SeverityCritical
	}
}

// Violation is one observed breach of the snapshot contract. Stage and
// Field locate the offending value so the final report is self-explanatory
// without re-running the check.
type Violation struct {
	Kind    Kind   `json:"kind"`
	Stage   string `json:"stage"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Severity returns the severity of the violation's kind.
func (v Violation) Severity() Severity {
	return v.Kind.Severity()
}

// String renders the violation as a single report line.
func (v Violation) String() string {
	if v.Field != "" {
		return fmt.Sprintf("%s: %s.%s: %s", v.Kind, v.Stage, v.Field, v.Message)
	}
	return fmt.Sprintf("%s: %s: %s", v.Kind, v.Stage, v.Message)
}

// Criticals filters violations down to certification-blocking ones.
func Criticals(violations []Violation) []Violation {
	var out []Violation
	for _, v := range violations {
		if v.Severity() == SeverityCritical {
			out = append(out, v)
		}
	}
	return out
}

// Warnings filters violations down to non-blocking ones.
func Warnings(violations []Violation) []Violation {
	var out []Violation
	for _, v := range violations {
		if v.Severity() == SeverityWarning {
			out = append(out, v)
		}
	}
	return out
}

// Messages renders violations as report lines, preserving order.
func Messages(violations []Violation) []string {
	out := make([]string, len(violations))
	for i, v := range violations {
		out[i] = v.String()
	}
	return out
}
