package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/veritas/internal/canonical"
	"github.com/roach88/veritas/internal/engine"
	"github.com/roach88/veritas/internal/snapshot"
	"github.com/roach88/veritas/internal/store"
)

// NewCertifyCommand creates the certify command.
func NewCertifyCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		noAudit bool
		trace   bool
	)

	cmd := &cobra.Command{
		Use:   "certify <snapshot.json>",
		Short: "Certify a pipeline snapshot against the governance contract",
		Long: `Certify reads one pipeline snapshot (use "-" for stdin), runs every
invariant check, and prints the resulting report.

Exit code 0 means CERTIFIED, 1 means VIOLATION, 2 means the command itself
failed before the snapshot could be evaluated.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCertify(rootOpts, args[0], noAudit, trace, cmd)
		},
	}

	cmd.Flags().BoolVar(&noAudit, "no-audit", false, "skip writing the audit trail")
	cmd.Flags().BoolVar(&trace, "trace", false, "emit a trace id for this run on stderr")
	return cmd
}

func runCertify(opts *RootOptions, path string, noAudit, trace bool, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	// Trace correlation lives at the CLI boundary only. The engine output
	// must stay byte-identical for identical snapshots.
	if trace {
		formatter.VerboseLog("trace_id: %s", uuid.NewString())
	}

	data, err := readSnapshot(path, cmd.InOrStdin())
	if err != nil {
		return WrapExitError(ExitCommandError, "read snapshot", err)
	}
	formatter.VerboseLog("read %d byte(s) from %s", len(data), path)

	var report *engine.Report
	snap, err := snapshot.Decode(data)
	if err != nil {
		// Out-of-contract input degrades to the minimal violation
		// report; it never aborts the command outright.
		formatter.VerboseLog("contract error: %v", err)
		report = engine.InternalErrorReport(err.Error())
	} else {
		report = engine.Certify(snap)
		if err := audit(opts, snap, report, noAudit, formatter); err != nil {
			return err
		}
	}

	if err := outputReport(formatter, report); err != nil {
		return WrapExitError(ExitCommandError, "write report", err)
	}

	if report.Status == engine.StatusError {
		return NewExitError(ExitFailure, "snapshot failed certification")
	}
	return nil
}

func readSnapshot(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// audit appends the run to the configured audit trail. No store path
// configured means no audit.
func audit(opts *RootOptions, snap *snapshot.PipelineSnapshot, report *engine.Report, noAudit bool, formatter *OutputFormatter) error {
	if noAudit || opts.Config.StorePath == "" {
		return nil
	}

	st, err := store.Open(opts.Config.StorePath)
	if err != nil {
		return WrapExitError(ExitCommandError, "open audit store", err)
	}
	defer st.Close()

	cert, err := store.NewCertification(snap, report, time.Now())
	if err != nil {
		return WrapExitError(ExitCommandError, "build audit record", err)
	}
	if err := st.WriteCertification(context.Background(), cert); err != nil {
		return WrapExitError(ExitCommandError, "write audit record", err)
	}
	formatter.VerboseLog("audit record %s written to %s", cert.ID, opts.Config.StorePath)
	return nil
}

func outputReport(formatter *OutputFormatter, report *engine.Report) error {
	if formatter.Format == "json" {
		data, err := canonical.Marshal(report)
		if err != nil {
			return err
		}
		return formatter.JSON(data)
	}

	formatter.Textf("Outcome:     %s (%s)", report.Outcome(), report.Code)
	formatter.Textf("Trust score: %.0f%%", report.TrustReport.TruthScore*100)
	formatter.Textf("%s", report.Explanation)
	if n := len(report.TrustReport.CriticalInconsistencies); n > 0 {
		formatter.Textf("")
		formatter.Textf("Critical inconsistencies (%d):", n)
		for _, line := range report.TrustReport.CriticalInconsistencies {
			formatter.Textf("  - %s", line)
		}
	}
	if n := len(report.TrustReport.WarningInconsistencies); n > 0 {
		formatter.Textf("")
		formatter.Textf("Warnings (%d):", n)
		for _, line := range report.TrustReport.WarningInconsistencies {
			formatter.Textf("  - %s", line)
		}
	}
	return nil
}
