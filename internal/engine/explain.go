package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/roach88/veritas/internal/consistency"
)

// explain builds the deterministic natural-language summary of a report.
// Every number comes from the normalized fragments or the checker results;
// nothing is fabricated.
func explain(r *Report, ref consistency.ReferentialResult, causal consistency.CausalResult) string {
	var parts []string

	if r.NormalizedProfiling == nil && r.NormalizedExecution == nil &&
		r.NormalizedIncidents == nil && r.NormalizedRules == nil && r.NormalizedDashboard == nil {
		parts = append(parts, "No pipeline fragments were supplied; nothing was checked.")
	}

	if p := r.NormalizedProfiling; p != nil {
		total := len(p.ComputedDimensions) + len(p.UnavailableDimensions)
		if total > 0 {
			if n := len(p.UnavailableDimensions); n > 0 {
				parts = append(parts, fmt.Sprintf("%d/%d dimensions unavailable.", n, total))
			} else {
				parts = append(parts, fmt.Sprintf("%d/%d dimensions computed.", total, total))
			}
		}
	}

	if e := r.NormalizedExecution; e != nil {
		switch {
		case e.Summary.TotalRules == 0 && e.Summary.Passed == 0 && e.Summary.Failed == 0:
			parts = append(parts, "No rules were executed.")
		case e.TruthVerified:
			parts = append(parts, fmt.Sprintf("%d/%d rules passed.", e.Summary.Passed, e.Summary.TotalRules))
			parts = append(parts, "Execution truth verified.")
		default:
			parts = append(parts, fmt.Sprintf("%d/%d rules passed.", e.Summary.Passed, e.Summary.TotalRules))
			parts = append(parts, "Execution truth violated.")
		}
	}

	if n := len(ref.PhantomRuleIDs); n > 0 {
		parts = append(parts, fmt.Sprintf("%s: %s.",
			plural(n, "phantom rule"), consistency.SummarizeIDs(ref.PhantomRuleIDs, 3)))
	}
	if causal.Orphans > 0 {
		parts = append(parts, fmt.Sprintf("%s.", plural(causal.Orphans, "orphan incident")))
	}
	if n := r.TrustReport.DeduplicatedRules; n > 0 {
		parts = append(parts, fmt.Sprintf("%s dropped.", plural(n, "duplicate rule")))
	}

	parts = append(parts, fmt.Sprintf("Trust Score: %d%%.",
		int(math.Round(r.TrustReport.TruthScore*100))))

	return strings.Join(parts, " ")
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
