package consistency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/veritas/internal/contract"
	"github.com/roach88/veritas/internal/normalize"
	"github.com/roach88/veritas/internal/snapshot"
)

func ref(s string) *string { return &s }

func incidents(incs ...snapshot.Incident) *normalize.Incidents {
	return &normalize.Incidents{Incidents: incs}
}

func withFailures(ids ...string) *normalize.Execution {
	e := &normalize.Execution{Metrics: []normalize.Metric{}}
	for _, id := range ids {
		e.Metrics = append(e.Metrics, normalize.Metric{RuleID: id, Violated: true})
	}
	return e
}

func TestCheckCausal_SkippedWhenFragmentAbsent(t *testing.T) {
	assert.Empty(t, CheckCausal(nil, incidents(snapshot.Incident{ID: "i1"})).Violations)
	assert.Empty(t, CheckCausal(withFailures("r1"), nil).Violations)
}

func TestCheckCausal_ZeroIncidentsVacuouslyClean(t *testing.T) {
	// No incidents means no orphans regardless of execution state.
	res := CheckCausal(withFailures("r1", "r2"), incidents())
	assert.Empty(t, res.Violations)
	assert.Zero(t, res.Orphans)

	res = CheckCausal(&normalize.Execution{}, incidents())
	assert.Empty(t, res.Violations)
}

func TestCheckCausal_IncidentTracesToFailedRule(t *testing.T) {
	res := CheckCausal(
		withFailures("r3"),
		incidents(snapshot.Incident{ID: "i1", RuleID: ref("r3")}),
	)
	assert.Empty(t, res.Violations)
}

func TestCheckCausal_OrphanIncident_RuleDidNotFail(t *testing.T) {
	// r3 was executed but did not fail: the incident has no cause.
	exec := &normalize.Execution{Metrics: []normalize.Metric{
		{RuleID: "r3", Violated: false},
	}}
	res := CheckCausal(exec, incidents(snapshot.Incident{ID: "i1", RuleID: ref("r3")}))

	require.Len(t, res.Violations, 1)
	assert.Equal(t, contract.KindOrphanIncident, res.Violations[0].Kind)
	assert.Equal(t, 1, res.Orphans)
	assert.Contains(t, res.Violations[0].Message, `"r3"`)
}

func TestCheckCausal_OrphanIncident_NoRuleFailedAtAll(t *testing.T) {
	// Unattributed incident while nothing failed: still an orphan.
	res := CheckCausal(
		&normalize.Execution{},
		incidents(snapshot.Incident{ID: "i1"}),
	)

	require.Len(t, res.Violations, 1)
	assert.Equal(t, contract.KindOrphanIncident, res.Violations[0].Kind)
}

func TestCheckCausal_UnattributedIncidentAllowedWhenSomethingFailed(t *testing.T) {
	res := CheckCausal(
		withFailures("r1"),
		incidents(snapshot.Incident{ID: "i1"}),
	)
	assert.Empty(t, res.Violations)
}

func TestCheckCausal_MixedIncidents(t *testing.T) {
	res := CheckCausal(
		withFailures("r1"),
		incidents(
			snapshot.Incident{ID: "i1", RuleID: ref("r1")},
			snapshot.Incident{ID: "i2", RuleID: ref("r2")},
			snapshot.Incident{ID: "i3"},
		),
	)

	require.Len(t, res.Violations, 1)
	assert.Contains(t, res.Violations[0].Message, `"i2"`)
}
