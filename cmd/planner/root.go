package main

import (
	"github.com/spf13/cobra"

	"ai-task-planner/config"
	"ai-task-planner/pkg/log"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "planner",
		Short:         "Turn free text and voice notes into tasks",
		Long:          `planner runs the task extraction pipeline from the command line and manages the task store.`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default: search ./config, ., /etc/app)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log at the configured level instead of warnings only")

	cmd.AddCommand(
		newSetupCmd(opts),
		newAnalyzeCmd(opts),
		newTasksCmd(opts),
		newCalendarAuthCmd(opts),
	)
	return cmd
}

// load reads the config and builds the logger for a command run.
func (o *rootOptions) load() (*config.Config, log.Logger, error) {
	cfg, err := config.LoadFile(o.configPath)
	if err != nil {
		return nil, nil, err
	}

	level := "warn"
	if o.verbose {
		level = cfg.Logger.Level
	}
	logger := log.Init(log.ZapConfig{
		Level:        level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})
	return cfg, logger, nil
}
