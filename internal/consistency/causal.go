package consistency

import (
	"fmt"

	"github.com/roach88/veritas/internal/contract"
	"github.com/roach88/veritas/internal/normalize"
)

// CausalResult is the outcome of the incident-causal check.
type CausalResult struct {
	Violations []contract.Violation
	Orphans    int
}

// CheckCausal verifies that every incident traces back to a rule that
// actually failed. An incident referencing a rule that did not fail, or
// any incident at all when no rule failed, is a critical orphan incident:
// effects cannot exist without a cause.
//
// Zero incidents are vacuously clean. The check is skipped when either the
// incidents or the execution fragment is absent, since causality cannot be
// assessed without both sides.
func CheckCausal(exec *normalize.Execution, incidents *normalize.Incidents) CausalResult {
	var res CausalResult
	if exec == nil || incidents == nil || len(incidents.Incidents) == 0 {
		return res
	}

	violated := make(map[string]bool)
	for _, m := range exec.Metrics {
		if m.Violated {
			violated[m.RuleID] = true
		}
	}

	for i, inc := range incidents.Incidents {
		field := fmt.Sprintf("incidents[%d]", i)
		switch {
		case inc.RuleID == nil:
			if len(violated) == 0 {
				res.Orphans++
				res.Violations = append(res.Violations, contract.Violation{
					Kind:    contract.KindOrphanIncident,
					Stage:   "incidents",
					Field:   field,
					Message: fmt.Sprintf("incident %q exists but no rule failed", inc.ID),
				})
			}
		case !violated[*inc.RuleID]:
			res.Orphans++
			res.Violations = append(res.Violations, contract.Violation{
				Kind:    contract.KindOrphanIncident,
				Stage:   "incidents",
				Field:   field,
				Message: fmt.Sprintf("incident %q references rule %q which did not fail", inc.ID, *inc.RuleID),
			})
		}
	}

	return res
}
