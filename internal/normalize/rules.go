package normalize

import (
	"fmt"

	"github.com/roach88/veritas/internal/contract"
	"github.com/roach88/veritas/internal/snapshot"
)

// RuleLibrary is the normalized rule-library fragment. Rule IDs are unique;
// duplicates from the raw fragment are dropped, first occurrence wins.
type RuleLibrary struct {
	Rules   []snapshot.Rule `json:"rules"`
	Version int64           `json:"version"`
}

// RulesResult carries the normalized fragment, collected violations, the
// context strings of dropped duplicates, and the number of duplicates
// removed.
type RulesResult struct {
	Fragment     *RuleLibrary
	Violations   []contract.Violation
	Discarded    []string
	Deduplicated int
}

const stageRules = "rules"

// NormalizeRules validates and normalizes the rule-library fragment.
// A nil fragment yields an empty result.
func NormalizeRules(f *snapshot.RuleLibraryFragment) RulesResult {
	var res RulesResult
	if f == nil {
		return res
	}

	if v := contract.CheckCount(stageRules, "version", f.Version); v != nil {
		res.Violations = append(res.Violations, *v)
	}

	norm := &RuleLibrary{
		Rules:   []snapshot.Rule{},
		Version: f.Version,
	}

	seen := make(map[string]bool, len(f.Rules))
	for i, rule := range f.Rules {
		if v := contract.CheckRatio(stageRules, fmt.Sprintf("rules[%d].threshold", i), rule.Threshold); v != nil {
			res.Violations = append(res.Violations, *v)
		}

		if seen[rule.ID] {
			res.Deduplicated++
			res.Discarded = append(res.Discarded, fmt.Sprintf("rules.rules[%d]: duplicate rule id %q dropped", i, rule.ID))
			continue
		}
		seen[rule.ID] = true
		norm.Rules = append(norm.Rules, rule)
	}

	res.Fragment = norm
	return res
}
