package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ai-task-planner/internal/app"
	"ai-task-planner/internal/model"
	"ai-task-planner/internal/task"
)

const displayLayout = "2006-01-02 15:04"

func newTasksCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Inspect stored tasks",
	}
	cmd.AddCommand(newTasksListCmd(opts))
	return cmd
}

func newTasksListCmd(opts *rootOptions) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if status != "" && !model.Status(status).IsValid() {
				return fmt.Errorf("invalid status %q (want %s or %s)", status, model.StatusPending, model.StatusCompleted)
			}

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
			if err := store.Repo.Migrate(cmd.Context()); err != nil {
				return err
			}

			out, err := app.NewTaskUseCase(cmd.Context(), cfg, logger, store.Repo).List(cmd.Context(), task.ListInput{
				Status: model.Status(status),
			})
			if err != nil {
				return err
			}

			if out.Total == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tDATETIME\tTITLE\tTAGS")
			for _, t := range out.Tasks {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", t.ID, t.Status, formatDatetime(t.Datetime, parser), t.Title, strings.Join(t.Tags, ", "))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "filter by status (pending or completed)")
	return cmd
}
