// Package server exposes the governance engine over HTTP. The engine
// itself is pure; every transport concern (timeouts, body limits,
// logging, the status-code policy, audit persistence) lives here.
package server

import (
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/roach88/veritas/internal/canonical"
	"github.com/roach88/veritas/internal/engine"
	"github.com/roach88/veritas/internal/snapshot"
	"github.com/roach88/veritas/internal/store"
)

// maxSnapshotBytes bounds request bodies. Snapshots are summaries, not
// data; anything past this is a client error.
const maxSnapshotBytes = 4 << 20

// Policy maps governance outcomes onto transport status codes.
//
// The transport axis and the domain axis are independent: by default every
// well-formed request answers 200 and the payload carries the outcome, so
// a calling UI can render a violation report directly. Strict transport
// instead answers 422 for a governance violation and 400 for a snapshot
// that breaks the wire contract.
type Policy struct {
	StrictTransport bool
}

// Server wraps the engine with HTTP transport, structured logging, and an
// optional audit trail.
type Server struct {
	log    *zap.Logger
	policy Policy
	audit  *store.Store // nil disables the audit trail
}

// New builds a Server. A nil audit store disables persistence.
func New(log *zap.Logger, policy Policy, audit *store.Store) *Server {
	return &Server{log: log, policy: policy, audit: audit}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/certify", s.handleCertify)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return mux
}

// ListenAndServe serves until the listener fails. Timeouts are set here,
// at the service boundary; the engine has no cancellation semantics.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	s.log.Info("listening", zap.String("addr", addr))
	return srv.ListenAndServe()
}

func (s *Server) handleCertify(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSnapshotBytes))
	if err != nil {
		s.log.Warn("read request", zap.Error(err))
		http.Error(w, "request body unreadable or too large", http.StatusBadRequest)
		return
	}

	status := http.StatusOK
	var report *engine.Report

	snap, err := snapshot.Decode(body)
	if err != nil {
		// Out-of-contract input never crashes the call; it degrades to
		// the minimal violation report.
		report = engine.InternalErrorReport(err.Error())
		if s.policy.StrictTransport {
			status = http.StatusBadRequest
		}
	} else {
		report = engine.Certify(snap)
		if s.policy.StrictTransport && report.Status == engine.StatusError {
			status = http.StatusUnprocessableEntity
		}
		s.persist(r, snap, report)
	}

	data, err := canonical.Marshal(report)
	if err != nil {
		s.log.Error("marshal report", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)

	s.log.Info("certify",
		zap.String("code", string(report.Code)),
		zap.Float64("truth_score", report.TrustReport.TruthScore),
		zap.Int("criticals", len(report.TrustReport.CriticalInconsistencies)),
		zap.Int("http_status", status),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// persist appends the run to the audit trail. Audit failures are logged,
// never surfaced: the certification already happened.
func (s *Server) persist(r *http.Request, snap *snapshot.PipelineSnapshot, report *engine.Report) {
	if s.audit == nil {
		return
	}
	cert, err := store.NewCertification(snap, report, time.Now())
	if err != nil {
		s.log.Error("build audit record", zap.Error(err))
		return
	}
	if err := s.audit.WriteCertification(r.Context(), cert); err != nil {
		s.log.Error("write audit record", zap.Error(err))
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}
