package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ai-task-planner/internal/app"
)

func newSetupCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Create the task schema and insert a sample task into an empty store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			parser, err := app.NewParser(cfg)
			if err != nil {
				return err
			}
			store, err := app.OpenStore(cfg, logger, parser.Location())
			if err != nil {
				return err
			}
			defer store.Close()

			out, err := app.NewTaskUseCase(cmd.Context(), cfg, logger, store.Repo).Setup(cmd.Context())
			if err != nil {
				return fmt.Errorf("setup: %w", err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Schema ready (%s).\n", cfg.Database.Driver)
			if out.Seeded {
				fmt.Fprintf(w, "Inserted sample task #%d %q.\n", out.Sample.ID, out.Sample.Title)
			} else {
				fmt.Fprintln(w, "Store already has tasks, no sample inserted.")
			}
			return nil
		},
	}
}
