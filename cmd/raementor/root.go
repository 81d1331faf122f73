package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/raementor/raementor/internal/config"
	"github.com/raementor/raementor/internal/logging"
)

// app carries state shared by all subcommands
type app struct {
	configPath string
	logLevel   string
	cfg        *config.Config
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "raementor",
		Short: "Draft course objectives grounded in an institutional curriculum document",
		Long: `raementor drafts course objectives (RAE) from a short course description.
It retrieves the most relevant passages of the institutional reference
document and asks a language model to write the objective.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if a.logLevel != "" {
				cfg.Log.Level = a.logLevel
			}
			a.cfg = cfg
			a.logger = logging.New(cfg.Log)
			slog.SetDefault(a.logger)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default: ./config.yaml, ./configs/config.yaml, ~/.raementor/config.yaml)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	cmd.AddCommand(
		newServeCmd(a),
		newSuggestCmd(a),
		newIndexCmd(a),
	)

	return cmd
}
