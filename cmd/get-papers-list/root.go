// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/get-papers-list/internal/logging"
	"github.com/pdiddy/get-papers-list/internal/secrets"
	"github.com/pdiddy/get-papers-list/pkg/types"
)

const secretsDir = ".secrets/"

// app carries the state shared by all subcommands. It is filled in by the
// root PersistentPreRunE before any RunE executes.
type app struct {
	logger   *zap.Logger
	viper    *viper.Viper
	secrets  secrets.Secrets
	fetchCfg types.FetchConfig
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "get-papers-list <query>",
		Short: "Find PubMed papers with authors from pharmaceutical or biotech companies",
		Long: `get-papers-list searches PubMed for up to 10 papers matching a query,
fetches their summaries and flags authors whose affiliation or email points to
a commercial organization.

Results are printed to the console, or written as CSV with --file. Quote
queries that contain spaces or PubMed syntax:

  get-papers-list "cancer immunotherapy AND 2024[dp]" -f results.csv`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, args[0], a)
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default: ./get-papers-list.yaml or ~/.config/get-papers-list/config.yaml)")
	pf.BoolP("debug", "d", false, "print debug information while running")
	pf.Bool("json", false, "print console output as JSON")

	f := root.Flags()
	f.StringP("file", "f", "", "write results to this CSV file instead of the console")
	f.String("save-run", "", "also write the query and results to this YAML file")
	f.String("db", "", "also append the results to this SQLite archive")
	f.String("email", "", "contact email sent to NCBI (overrides config and .secrets/ncbi-email)")

	root.AddCommand(newVersionCmd(), newShowCmd(a))
	return root
}

// setup builds the logger, loads configuration and secrets.
func (a *app) setup(cmd *cobra.Command) error {
	debug, _ := cmd.Flags().GetBool("debug")
	logger, err := logging.New(debug)
	if err != nil {
		return err
	}
	a.logger = logger

	cfgFile, _ := cmd.Flags().GetString("config")
	v, err := loadConfig(cfgFile, logger)
	if err != nil {
		return err
	}
	a.viper = v

	s, err := secrets.Load(secretsDir, logger)
	if err != nil {
		return err
	}
	a.secrets = s
	if len(s) > 0 {
		keys := s.Keys()
		sort.Strings(keys)
		logger.Debug("loaded secrets", zap.Strings("keys", keys))
	}

	cfg, err := fetchConfig(v)
	if err != nil {
		return err
	}
	emailFlag := ""
	if cmd.Flags().Lookup("email") != nil {
		emailFlag, _ = cmd.Flags().GetString("email")
	}
	if emailFlag == "" {
		emailFlag = cfg.Email
	}
	cfg.Email = s.Get(secrets.KeyNCBIEmail, emailFlag)
	cfg.Tool = s.Get(secrets.KeyNCBITool, cfg.Tool)
	if cfg.Tool == "" {
		cfg.Tool = defaultTool
	}
	a.fetchCfg = cfg
	return nil
}
