package engine

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/roach88/veritas/internal/canonical"
	"github.com/roach88/veritas/internal/snapshot"
)

// assertGoldenReport compares the canonical encoding of a report against a
// golden file. Canonical bytes are the contract here: any drift in key
// order, number formatting, or wording is a regression.
func assertGoldenReport(t *testing.T, name string, report *Report) {
	t.Helper()

	data, err := canonical.Marshal(report)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}

func TestGoldenEmptySnapshot(t *testing.T) {
	assertGoldenReport(t, "empty_snapshot", Certify(&snapshot.PipelineSnapshot{}))
}

func TestGoldenExecutionVerified(t *testing.T) {
	raw := `{
		"execution": {
			"metrics": [
				{"rule_id": "r1", "dimension": "completeness", "success_rate": 0.99, "failed_count": 1, "total_count": 100, "threshold": 0.95, "violated": false}
			],
			"summary": {"passed": 1, "failed": 0, "total_rules": 1}
		}
	}`

	var snap snapshot.PipelineSnapshot
	require.NoError(t, json.Unmarshal([]byte(raw), &snap))

	assertGoldenReport(t, "execution_verified", Certify(&snap))
}

func TestGoldenInternalError(t *testing.T) {
	assertGoldenReport(t, "internal_error", InternalErrorReport("snapshot violates wire contract"))
}
