package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/fixtures"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/ui"
)

func (a *app) lsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "Print the initial list of a session",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(a.streams.Out, s)
			}
			printCard(a.streams.Out, s, a.cfg.Group)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the list as JSON")
	return cmd
}

func (a *app) runCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "run [script]",
		Short: "Apply a session script and print the resulting list",
		Long: `Reads one command per line from the script file, or stdin when no
file is given, and applies it to a fresh session:

  add <text...>   append an item (blank text is ignored)
  toggle <id>     flip an item's completed flag (alias: done)
  rm <id>         remove an item
  ls              print the list so far

Blank lines and lines starting with # are skipped. Unknown ids are ignored.
Lines may be up to 1 MiB long.`,
		Example: `  printf 'add Buy milk\ntoggle 1\n' | todo run --seed none`,
		Args:    usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := a.streams.In
			name := "stdin"
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open script: %w", err)
				}
				defer f.Close()
				in, name = f, args[0]
			}

			s, err := a.session()
			if err != nil {
				return err
			}
			sc := &script{store: s, log: a.logger, out: a.streams.Out, group: a.cfg.Group}
			if err := sc.run(in); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			if asJSON {
				return writeJSON(a.streams.Out, s)
			}
			printCard(a.streams.Out, s, a.cfg.Group)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the final list as JSON")
	return cmd
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <fixtures.yaml>",
		Short: "Validate a fixtures file",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			seeds, err := fixtures.Load(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			s := todo.New(todo.WithSeed(seeds))
			ui.OK(a.streams.Out, fmt.Sprintf("%s: %d todos (%d remaining, %d completed)",
				args[0], s.Len(), s.Remaining(), s.CompletedCount()))
			if skipped := len(seeds) - s.Len(); skipped > 0 {
				fmt.Fprintln(a.streams.Out, ui.Current().Muted.Render(fmt.Sprintf("%d blank entries skipped", skipped)))
			}
			return nil
		},
	}
}

// -------------- rendering helpers --------------

func printCard(w io.Writer, s *todo.Store, group bool) {
	lines := ui.Lines(s.Items(), group)
	if s.Len() > 0 {
		lines = append(lines, "")
		lines = append(lines, ui.Current().Muted.Render(ui.ProgressBar(s.CompletedCount(), s.Len(), 28)))
		lines = append(lines, ui.Stats(s.Remaining(), s.CompletedCount()))
	}
	fmt.Fprintln(w, ui.Card("Todo App", fmt.Sprintf("%d items", s.Len()), strings.Join(lines, "\n")))
}

type snapshot struct {
	Items     []model.Item `json:"items"`
	Remaining int          `json:"remaining"`
	Completed int          `json:"completed"`
}

func writeJSON(w io.Writer, s *todo.Store) error {
	b, err := json.MarshalIndent(snapshot{
		Items:     s.Items(),
		Remaining: s.Remaining(),
		Completed: s.CompletedCount(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
