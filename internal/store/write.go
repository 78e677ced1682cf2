package store

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/roach88/veritas/internal/canonical"
	"github.com/roach88/veritas/internal/engine"
	"github.com/roach88/veritas/internal/snapshot"
)

// Certification is one audit record: the outcome of certifying one
// snapshot at one point in time.
type Certification struct {
	ID            string
	CreatedAt     time.Time
	SnapshotHash  string
	Outcome       engine.Outcome
	Code          engine.Code
	TruthScore    float64
	CriticalCount int
	WarningCount  int
	Report        []byte // canonical report JSON
}

// NewCertification builds an audit record from a snapshot and its report.
// The run ID is random (each run is a distinct event, even over the same
// snapshot); the snapshot hash is content-addressed so identical inputs
// remain linkable.
func NewCertification(snap *snapshot.PipelineSnapshot, report *engine.Report, at time.Time) (Certification, error) {
	hash, err := canonical.Hash(canonical.DomainSnapshot, snap)
	if err != nil {
		return Certification{}, errors.Wrap(err, "hash snapshot")
	}
	reportJSON, err := canonical.Marshal(report)
	if err != nil {
		return Certification{}, errors.Wrap(err, "marshal report")
	}

	return Certification{
		ID:            uuid.NewString(),
		CreatedAt:     at.UTC(),
		SnapshotHash:  hash,
		Outcome:       report.Outcome(),
		Code:          report.Code,
		TruthScore:    report.TrustReport.TruthScore,
		CriticalCount: len(report.TrustReport.CriticalInconsistencies),
		WarningCount:  len(report.TrustReport.WarningInconsistencies),
		Report:        reportJSON,
	}, nil
}

// WriteCertification appends an audit record.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are
// silently ignored.
func (s *Store) WriteCertification(ctx context.Context, cert Certification) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO certifications
		(id, created_at, snapshot_hash, outcome, code, truth_score, critical_count, warning_count, report)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		cert.ID,
		cert.CreatedAt.Format(time.RFC3339Nano),
		cert.SnapshotHash,
		string(cert.Outcome),
		string(cert.Code),
		cert.TruthScore,
		cert.CriticalCount,
		cert.WarningCount,
		string(cert.Report),
	)
	if err != nil {
		return errors.Wrap(err, "write certification")
	}
	return nil
}
