package main

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"ai-task-planner/internal/app"
	"ai-task-planner/internal/intake"
	"ai-task-planner/pkg/datemath"
)

type analyzeOptions struct {
	text   string
	audio  string
	mime   string
	date   string
	commit bool
}

func newAnalyzeCmd(opts *rootOptions) *cobra.Command {
	a := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Extract tasks from text or an audio recording",
		Example: `  planner analyze --text "Sáng mai 9h họp nhóm"
  planner analyze --audio note.webm --mime audio/webm --date 2024-06-10 --commit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts, a)
		},
	}
	cmd.Flags().StringVar(&a.text, "text", "", "task description text")
	cmd.Flags().StringVar(&a.audio, "audio", "", "path to an audio recording")
	cmd.Flags().StringVar(&a.mime, "mime", "", "MIME type of the recording (default: from the file extension)")
	cmd.Flags().StringVar(&a.date, "date", "", "reference date YYYY-MM-DD (default: today)")
	cmd.Flags().BoolVar(&a.commit, "commit", false, "save every extracted task")
	cmd.MarkFlagsMutuallyExclusive("text", "audio")
	cmd.MarkFlagsOneRequired("text", "audio")
	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *rootOptions, a *analyzeOptions) error {
	ctx := cmd.Context()

	cfg, logger, err := opts.load()
	if err != nil {
		return err
	}
	if cfg.Gemini.APIKey == "" {
		return errors.New("gemini.api_key is required for analyze")
	}
	parser, err := app.NewParser(cfg)
	if err != nil {
		return err
	}

	in := intake.AnalyzeInput{}
	if a.date != "" {
		ref, err := time.ParseInLocation("2006-01-02", a.date, parser.Location())
		if err != nil {
			return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", a.date)
		}
		in.ReferenceDate = ref
	}

	if a.audio != "" {
		f, err := os.Open(a.audio)
		if err != nil {
			return fmt.Errorf("open recording: %w", err)
		}
		defer f.Close()

		in.Audio = f
		in.MimeType = a.mime
		if in.MimeType == "" {
			in.MimeType = audioMimeType(a.audio)
		}
		if in.MimeType == "" {
			return fmt.Errorf("cannot infer the MIME type of %q, pass --mime", a.audio)
		}
	} else {
		text := a.text
		in.Text = &text
	}

	store, err := app.OpenStore(cfg, logger, parser.Location())
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Repo.Migrate(ctx); err != nil {
		return err
	}

	taskUC := app.NewTaskUseCase(ctx, cfg, logger, store.Repo)
	uc, err := app.NewIntakeUseCase(cfg, logger, taskUC, parser)
	if err != nil {
		return err
	}

	sess, err := uc.Start(ctx)
	if err != nil {
		return err
	}
	in.SessionID = sess.ID

	snap, err := uc.Analyze(ctx, in)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(snap.Candidates) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return uc.Cancel(ctx, sess.ID)
	}
	if err := printCandidates(cmd, snap.Candidates, parser); err != nil {
		return err
	}

	if !a.commit {
		return uc.Cancel(ctx, sess.ID)
	}

	out, err := uc.Commit(ctx, sess.ID)
	var commitErr *intake.CommitError
	if errors.As(err, &commitErr) {
		for _, e := range commitErr.Failed {
			fmt.Fprintf(cmd.ErrOrStderr(), "failed: %v\n", e)
		}
		return fmt.Errorf("saved %d of %d tasks", len(commitErr.Created), commitErr.Attempted)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\nSaved %d tasks:", len(out.Created))
	for _, t := range out.Created {
		fmt.Fprintf(w, " #%d", t.ID)
	}
	fmt.Fprintln(w)
	return nil
}

func printCandidates(cmd *cobra.Command, cands []intake.CandidateTask, parser *datemath.Parser) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tDATETIME\tTITLE\tDESCRIPTION\tTAGS")
	for i, c := range cands {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i+1, formatDatetime(c.Datetime, parser), c.Title, c.Description, strings.Join(c.Tags, ", "))
	}
	return w.Flush()
}

func formatDatetime(t *time.Time, parser *datemath.Parser) string {
	if t == nil {
		return "-"
	}
	return t.In(parser.Location()).Format(displayLayout)
}

// audioMimeType guesses a recording's MIME type from its extension.
func audioMimeType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".webm":
		return "audio/webm"
	case ".ogg", ".oga", ".opus":
		return "audio/ogg"
	case ".m4a":
		return "audio/mp4"
	}
	if t := mime.TypeByExtension(ext); strings.HasPrefix(t, "audio/") {
		t, _, _ = strings.Cut(t, ";")
		return t
	}
	return ""
}
