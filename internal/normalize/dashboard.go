package normalize

import "github.com/roach88/veritas/internal/snapshot"

// Dashboard is carried through untouched; it is not subject to numeric
// invariants.
type Dashboard struct {
	DashboardID *string `json:"dashboard_id,omitempty"`
}

// NormalizeDashboard passes the dashboard fragment through. A nil fragment
// yields nil.
func NormalizeDashboard(f *snapshot.DashboardFragment) *Dashboard {
	if f == nil {
		return nil
	}
	return &Dashboard{DashboardID: f.DashboardID}
}
