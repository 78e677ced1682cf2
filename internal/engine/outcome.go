package engine

import "github.com/roach88/veritas/internal/contract"

// Outcome is the two-state governance classification.
type Outcome string

const (
	OutcomeCertified Outcome = "CERTIFIED"
	OutcomeViolation Outcome = "VIOLATION"
)

// Decide classifies a snapshot from its collected violations: VIOLATION if
// and only if at least one violation is critical. Warnings never block
// certification, and the trust score's magnitude plays no part.
func Decide(violations []contract.Violation) Outcome {
	for _, v := range violations {
		if v.Severity() == contract.SeverityCritical {
			return OutcomeViolation
		}
	}
	return OutcomeCertified
}

// Status maps the outcome onto the transport-visible status field.
func (o Outcome) Status() Status {
	if o == OutcomeCertified {
		return StatusSuccess
	}
	return StatusError
}

// Code maps the outcome onto the transport-visible code field.
func (o Outcome) Code() Code {
	if o == OutcomeCertified {
		return CodeCertified
	}
	return CodeViolation
}
