package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"realty/internal/platform/config"
)

// rootOptions is shared by all subcommands. Flags override the environment.
type rootOptions struct {
	cfg      config.Server
	registry prometheus.Registerer
	gatherer prometheus.Gatherer
}

func main() {
	_ = godotenv.Load()

	opts := &rootOptions{
		cfg:      config.FromEnv(),
		registry: prometheus.DefaultRegisterer,
		gatherer: prometheus.DefaultGatherer,
	}
	if err := newRootCmd(opts).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	root := &cobra.Command{
		Use:           "realty",
		Short:         "Participant registration and real-estate contract store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.cfg.Database.Path, "db", opts.cfg.Database.Path, "SQLite database file")
	root.PersistentFlags().StringVar(&opts.cfg.Log.Level, "log-level", opts.cfg.Log.Level, "debug, info, warn or error")
	root.PersistentFlags().StringVar(&opts.cfg.Log.Format, "log-format", opts.cfg.Log.Format, "json or text")

	root.AddCommand(
		serveCmd(opts),
		contractsCmd(opts),
	)
	return root
}
