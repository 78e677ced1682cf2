package consistency

import (
	"fmt"
	"sort"

	"github.com/roach88/veritas/internal/contract"
	"github.com/roach88/veritas/internal/normalize"
)

// ReferentialResult is the outcome of the rule-referential check.
// PhantomRuleIDs and SkippedRuleIDs are sorted for deterministic output.
type ReferentialResult struct {
	Violations     []contract.Violation
	PhantomRuleIDs []string
	SkippedRuleIDs []string
}

// CheckReferential verifies that every executed rule exists in the rule
// library (an unknown executed ID is a critical phantom rule) and that
// every library rule was executed (an unexecuted library rule is only a
// warning: not running a rule is not inherently wrong).
//
// The check is skipped when either fragment is absent.
func CheckReferential(exec *normalize.Execution, rules *normalize.RuleLibrary) ReferentialResult {
	var res ReferentialResult
	if exec == nil || rules == nil {
		return res
	}

	known := make(map[string]bool, len(rules.Rules))
	for _, r := range rules.Rules {
		known[r.ID] = true
	}
	executed := make(map[string]bool, len(exec.Metrics))
	for _, m := range exec.Metrics {
		executed[m.RuleID] = true
	}

	for id := range executed {
		if !known[id] {
			res.PhantomRuleIDs = append(res.PhantomRuleIDs, id)
		}
	}
	for id := range known {
		if !executed[id] {
			res.SkippedRuleIDs = append(res.SkippedRuleIDs, id)
		}
	}
	sort.Strings(res.PhantomRuleIDs)
	sort.Strings(res.SkippedRuleIDs)

	for _, id := range res.PhantomRuleIDs {
		res.Violations = append(res.Violations, contract.Violation{
			Kind:    contract.KindPhantomRule,
			Stage:   "execution",
			Field:   "metrics",
			Message: fmt.Sprintf("executed rule %q not found in rule library", id),
		})
	}
	for _, id := range res.SkippedRuleIDs {
		res.Violations = append(res.Violations, contract.Violation{
			Kind:    contract.KindSkippedRule,
			Stage:   "rules",
			Field:   "rules",
			Message: fmt.Sprintf("rule %q was not executed in this run", id),
		})
	}

	return res
}

// SummarizeIDs renders up to max IDs for diagnostics, appending the count
// of the rest.
func SummarizeIDs(ids []string, max int) string {
	if len(ids) <= max {
		return joinQuoted(ids)
	}
	return fmt.Sprintf("%s and %d more", joinQuoted(ids[:max]), len(ids)-max)
}

func joinQuoted(ids []string) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%q", id)
	}
	return out
}
