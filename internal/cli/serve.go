package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/veritas/internal/server"
	"github.com/roach88/veritas/internal/store"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the governance engine over HTTP",
		Long: `Serve exposes POST /v1/certify. Transport policy comes from the config
file: by default every well-formed request answers 200 and the payload
carries the governance outcome; with strict_transport violations answer
422 and malformed snapshots 400.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(rootOpts, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

func runServe(opts *RootOptions, addr string) error {
	log, err := newLogger(opts.Verbose)
	if err != nil {
		return WrapExitError(ExitCommandError, "init logger", err)
	}
	defer log.Sync()

	var audit *store.Store
	if opts.Config.StorePath != "" {
		audit, err = store.Open(opts.Config.StorePath)
		if err != nil {
			return WrapExitError(ExitCommandError, "open audit store", err)
		}
		defer audit.Close()
		log.Info("audit trail enabled", zap.String("path", opts.Config.StorePath))
	}

	if addr == "" {
		addr = opts.Config.Addr
	}

	srv := server.New(log, server.Policy{StrictTransport: opts.Config.StrictTransport}, audit)
	if err := srv.ListenAndServe(addr); err != nil {
		return WrapExitError(ExitCommandError, "serve", err)
	}
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
