package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/roach88/veritas/internal/store"
)

func postCertify(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/certify", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func TestHandleCertify_Certified(t *testing.T) {
	srv := New(zap.NewNop(), Policy{}, nil)

	rec := postCertify(t, srv, `{"execution": {"metrics": [], "summary": {"passed": 8, "failed": 2, "total_rules": 10}}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	payload := decodeBody(t, rec)
	assert.Equal(t, "success", payload["status"])
	assert.Equal(t, "GOVERNANCE_CERTIFIED", payload["code"])
}

func TestHandleCertify_ViolationStillAnswers200ByDefault(t *testing.T) {
	// Transport and domain outcomes are independent axes: the default
	// policy always answers 200 so a UI can render the violation payload.
	srv := New(zap.NewNop(), Policy{}, nil)

	rec := postCertify(t, srv, `{"execution": {"metrics": [], "summary": {"passed": 8, "failed": 2, "total_rules": 11}}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	payload := decodeBody(t, rec)
	assert.Equal(t, "error", payload["status"])
	assert.Equal(t, "DQ_CONTRACT_VIOLATION", payload["code"])
	assert.NotEmpty(t, payload["violations"])
}

func TestHandleCertify_StrictTransportMapsViolationTo422(t *testing.T) {
	srv := New(zap.NewNop(), Policy{StrictTransport: true}, nil)

	rec := postCertify(t, srv, `{"execution": {"metrics": [], "summary": {"passed": 8, "failed": 2, "total_rules": 11}}}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	payload := decodeBody(t, rec)
	assert.Equal(t, "error", payload["status"])
}

func TestHandleCertify_MalformedSnapshot(t *testing.T) {
	srv := New(zap.NewNop(), Policy{}, nil)

	rec := postCertify(t, srv, `{"execution": {"bogus": true}}`)

	// Out-of-contract input degrades to the minimal violation report
	// over 200, never a crash.
	assert.Equal(t, http.StatusOK, rec.Code)
	payload := decodeBody(t, rec)
	assert.Equal(t, "error", payload["status"])
	violations, ok := payload["violations"].([]any)
	require.True(t, ok)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "INTERNAL_ERROR")

	trust, ok := payload["trust_report"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(0), trust["truth_score"])
}

func TestHandleCertify_MalformedSnapshotStrictTransport(t *testing.T) {
	srv := New(zap.NewNop(), Policy{StrictTransport: true}, nil)

	rec := postCertify(t, srv, `not json at all`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCertify_WritesAuditTrail(t *testing.T) {
	audit, err := store.Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	defer audit.Close()

	srv := New(zap.NewNop(), Policy{}, audit)
	rec := postCertify(t, srv, `{"execution": {"metrics": [], "summary": {"passed": 1, "failed": 0, "total_rules": 1}}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	certs, err := audit.ListCertifications(t.Context(), 10)
	require.NoError(t, err)
	require.Len(t, certs, 1)
	assert.Equal(t, 1.0, certs[0].TruthScore)
}

func TestHealthz(t *testing.T) {
	srv := New(zap.NewNop(), Policy{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
