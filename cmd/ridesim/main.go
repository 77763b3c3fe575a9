package main

import (
	"fmt"
	"os"
	"ride-dispatch-service/internal/config"
	"ride-dispatch-service/internal/platform/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	seedPath string
	verbose  bool
	log      *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "ridesim",
		Short: "Replay ride dispatch scenarios against an in-memory fleet",
		Long: `ridesim drives the dispatch service without HTTP or a database.

Without --seed it uses the built-in demo fleet: a robotaxi with LIDAR and a
front camera, a taxi driven by Jane Doe, and one passenger.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !opts.verbose {
				opts.log = zap.NewNop()
				return nil
			}
			log, err := logging.New(config.Get("APP_ENV", "development"), "ridesim")
			if err != nil {
				return err
			}
			opts.log = log
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.seedPath, "seed", "", "YAML fleet seed (default: built-in demo fleet)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable service logging")

	root.AddCommand(newSimulateCmd(opts))
	root.AddCommand(newVehiclesCmd(opts))

	return root
}

func main() {
	config.LoadDotEnv()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
