package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/roach88/veritas/internal/engine"
)

// ListCertifications returns the most recent audit records, newest first.
// Ordering is deterministic: created_at DESC, then id for ties.
// Returns an empty slice (not nil) when the trail is empty.
func (s *Store) ListCertifications(ctx context.Context, limit int) ([]Certification, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, snapshot_hash, outcome, code, truth_score, critical_count, warning_count, report
		FROM certifications
		ORDER BY created_at DESC, id COLLATE BINARY ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "query certifications")
	}
	defer rows.Close()

	certs := []Certification{}
	for rows.Next() {
		cert, err := scanCertification(rows)
		if err != nil {
			return nil, err
		}
		certs = append(certs, cert)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate certifications")
	}
	return certs, nil
}

// FindBySnapshotHash returns every certification of one snapshot, newest
// first. Identical snapshots hash identically, so this is the full
// history of one input across runs.
func (s *Store) FindBySnapshotHash(ctx context.Context, hash string) ([]Certification, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, snapshot_hash, outcome, code, truth_score, critical_count, warning_count, report
		FROM certifications
		WHERE snapshot_hash = ?
		ORDER BY created_at DESC, id COLLATE BINARY ASC
	`, hash)
	if err != nil {
		return nil, errors.Wrap(err, "query certifications by hash")
	}
	defer rows.Close()

	certs := []Certification{}
	for rows.Next() {
		cert, err := scanCertification(rows)
		if err != nil {
			return nil, err
		}
		certs = append(certs, cert)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate certifications")
	}
	return certs, nil
}

func scanCertification(rows *sql.Rows) (Certification, error) {
	var (
		cert      Certification
		createdAt string
		outcome   string
		code      string
		report    string
	)
	if err := rows.Scan(
		&cert.ID,
		&createdAt,
		&cert.SnapshotHash,
		&outcome,
		&code,
		&cert.TruthScore,
		&cert.CriticalCount,
		&cert.WarningCount,
		&report,
	); err != nil {
		return Certification{}, errors.Wrap(err, "scan certification")
	}

	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Certification{}, errors.Wrapf(err, "parse created_at %q", createdAt)
	}
	cert.CreatedAt = t
	cert.Outcome = engine.Outcome(outcome)
	cert.Code = engine.Code(code)
	cert.Report = []byte(report)
	return cert, nil
}
