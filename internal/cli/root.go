// Package cli implements the crudl command line.
package cli

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	graphql "github.com/llehouerou/crudl-graphql"
	"github.com/llehouerou/crudl-graphql/admin"
	"github.com/llehouerou/crudl-graphql/internal/blogadmin"
	"github.com/llehouerou/crudl-graphql/internal/config"
)

// app is the state shared by the subcommands, set up before each run.
type app struct {
	cfg    config.Config
	logger zerolog.Logger
}

func (a *app) client() *graphql.Client {
	return graphql.NewClient(a.cfg.Endpoint, &http.Client{Timeout: 30 * time.Second}).
		WithLogger(a.logger).
		WithDebug(a.cfg.Debug)
}

func (a *app) descriptor() admin.Descriptor {
	return blogadmin.Descriptor(a.client(), a.logger)
}

// NewRootCmd returns the crudl command.
func NewRootCmd(version string) *cobra.Command {
	a := &app{logger: zerolog.Nop()}
	var (
		configPath string
		endpoint   string
		logLevel   string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:           "crudl",
		Short:         "Admin interface glue for Relay GraphQL APIs",
		Long:          "crudl builds list and mutation queries for a Relay-style GraphQL API, runs a demo blog backend and drives its admin descriptor.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			overrides := map[string]any{}
			flags := cmd.Flags()
			if flags.Changed("endpoint") {
				overrides[config.KeyEndpoint] = endpoint
			}
			if flags.Changed("log-level") {
				overrides[config.KeyLogLevel] = logLevel
			}
			if flags.Changed("debug") {
				overrides[config.KeyDebug] = debug
			}
			if flags.Lookup("listen") != nil && flags.Changed("listen") {
				overrides[config.KeyListen], _ = flags.GetString("listen")
			}
			if flags.Lookup("page-size") != nil && flags.Changed("page-size") {
				overrides[config.KeyPageSize], _ = flags.GetInt("page-size")
			}

			cfg, err := config.Load(configPath, overrides)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = cfg.Logger(cmd.ErrOrStderr()).With().Str("component", "cli").Logger()
			a.logger.Debug().Str("command", cmd.Name()).Str("endpoint", cfg.Endpoint).Msg("command started")
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default ./crudl.yaml)")
	pf.StringVar(&endpoint, "endpoint", "", "GraphQL endpoint URL")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.BoolVar(&debug, "debug", false, "enable debug logging and error details")

	cmd.AddCommand(
		newServeCmd(a),
		newListCmd(a),
		newGetCmd(a),
		newQueryCmd(a),
		newDescribeCmd(a),
	)
	return cmd
}
