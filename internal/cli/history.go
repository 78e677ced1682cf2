package cli

import (
	"context"
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/veritas/internal/store"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		limit        int
		snapshotHash string
	)

	cmd := &cobra.Command{
		Use:           "history",
		Short:         "List past certification runs from the audit trail",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(rootOpts, limit, snapshotHash, cmd)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to list")
	cmd.Flags().StringVar(&snapshotHash, "snapshot-hash", "", "only runs for this snapshot hash")
	return cmd
}

// historyEntry is the JSON shape of one audit row.
type historyEntry struct {
	ID            string  `json:"id"`
	CreatedAt     string  `json:"created_at"`
	SnapshotHash  string  `json:"snapshot_hash"`
	Outcome       string  `json:"outcome"`
	Code          string  `json:"code"`
	TruthScore    float64 `json:"truth_score"`
	CriticalCount int     `json:"critical_count"`
	WarningCount  int     `json:"warning_count"`
}

func runHistory(opts *RootOptions, limit int, snapshotHash string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if opts.Config.StorePath == "" {
		return NewExitError(ExitCommandError, "no audit store configured: set store_path in the config file")
	}

	st, err := store.Open(opts.Config.StorePath)
	if err != nil {
		return WrapExitError(ExitCommandError, "open audit store", err)
	}
	defer st.Close()

	var certs []store.Certification
	if snapshotHash != "" {
		certs, err = st.FindBySnapshotHash(context.Background(), snapshotHash)
	} else {
		certs, err = st.ListCertifications(context.Background(), limit)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "read audit trail", err)
	}

	if formatter.Format == "json" {
		entries := make([]historyEntry, len(certs))
		for i, c := range certs {
			entries[i] = historyEntry{
				ID:            c.ID,
				CreatedAt:     c.CreatedAt.Format(time.RFC3339Nano),
				SnapshotHash:  c.SnapshotHash,
				Outcome:       string(c.Outcome),
				Code:          string(c.Code),
				TruthScore:    c.TruthScore,
				CriticalCount: c.CriticalCount,
				WarningCount:  c.WarningCount,
			}
		}
		data, err := json.Marshal(entries)
		if err != nil {
			return WrapExitError(ExitCommandError, "encode history", err)
		}
		return formatter.JSON(data)
	}

	if len(certs) == 0 {
		formatter.Textf("no certification runs recorded")
		return nil
	}
	for _, c := range certs {
		formatter.Textf("%s  %s  %-9s  score=%.0f%%  criticals=%d  warnings=%d  snapshot=%.12s",
			c.CreatedAt.Format(time.RFC3339),
			c.ID,
			c.Outcome,
			c.TruthScore*100,
			c.CriticalCount,
			c.WarningCount,
			c.SnapshotHash,
		)
	}
	return nil
}
