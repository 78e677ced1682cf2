package snapshot

import (
	_ "embed"
	"encoding/json"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
	"github.com/cockroachdb/errors"
)

//go:embed contract.cue
var contractCUE []byte

var (
	contractOnce  sync.Once
	contractValue cue.Value
	contractCtx   *cue.Context
	contractErr   error
)

// contract compiles the embedded CUE schema once. The compiled value is
// immutable and safe for concurrent unification.
func contract() (*cue.Context, cue.Value, error) {
	contractOnce.Do(func() {
		contractCtx = cuecontext.New()
		schema := contractCtx.CompileBytes(contractCUE, cue.Filename("contract.cue"))
		if err := schema.Err(); err != nil {
			contractErr = errors.Wrap(err, "compile snapshot contract")
			return
		}
		contractValue = schema.LookupPath(cue.ParsePath("#Snapshot"))
		if err := contractValue.Err(); err != nil {
			contractErr = errors.Wrap(err, "lookup #Snapshot")
		}
	})
	return contractCtx, contractValue, contractErr
}

// Decode parses raw JSON into a PipelineSnapshot after unifying it with the
// embedded wire contract. Unknown fields, wrong types, and missing required
// fields are contract errors; the caller maps them to the INTERNAL_ERROR
// report rather than letting them propagate as a fault.
func Decode(data []byte) (*PipelineSnapshot, error) {
	ctx, schema, err := contract()
	if err != nil {
		return nil, err
	}

	expr, err := cuejson.Extract("snapshot.json", data)
	if err != nil {
		return nil, errors.Wrap(err, "parse snapshot JSON")
	}
	value := ctx.BuildExpr(expr)
	if err := value.Err(); err != nil {
		return nil, errors.Wrap(err, "build snapshot value")
	}

	if err := schema.Unify(value).Validate(cue.Concrete(true), cue.Final()); err != nil {
		return nil, errors.Wrap(err, "snapshot violates wire contract")
	}

	var snap PipelineSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrap(err, "decode snapshot")
	}
	return &snap, nil
}
