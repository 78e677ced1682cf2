package normalize

import (
	"github.com/roach88/veritas/internal/contract"
	"github.com/roach88/veritas/internal/snapshot"
)

// Incidents is the normalized incidents fragment. Incidents carry no
// numeric invariants of their own; causal integrity against execution
// results is a cross-stage concern.
type Incidents struct {
	Incidents []snapshot.Incident `json:"incidents"`
}

// IncidentsResult carries the normalized fragment. Violations is always
// empty today but kept for symmetry with the other normalizers.
type IncidentsResult struct {
	Fragment   *Incidents
	Violations []contract.Violation
}

// NormalizeIncidents normalizes the incidents fragment. A nil fragment
// yields an empty result.
func NormalizeIncidents(f *snapshot.IncidentsFragment) IncidentsResult {
	var res IncidentsResult
	if f == nil {
		return res
	}

	norm := &Incidents{Incidents: []snapshot.Incident{}}
	norm.Incidents = append(norm.Incidents, f.Incidents...)
	res.Fragment = norm
	return res
}
