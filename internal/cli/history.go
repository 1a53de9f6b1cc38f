package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riftlang/riftc/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	DB    string
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "history",
		Short:         "List recorded compile runs",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, newFormatter(opts.RootOptions, cmd))
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "compile-history database path")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum runs to list")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, formatter *OutputFormatter) error {
	st, err := store.Open(opts.DB)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return NewExitError(ExitCommandError, "history open failed")
	}
	defer st.Close()

	runs, err := st.ListRuns(context.Background(), opts.Limit)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return NewExitError(ExitCommandError, "history read failed")
	}

	if formatter.Format == "json" {
		return formatter.Success(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "no recorded runs")
		return nil
	}
	for _, r := range runs {
		status := "✓"
		if !r.ConsensusOK {
			status = "✗"
		}
		fmt.Fprintf(formatter.Writer, "%s %s → %s (%s mode, %d nodes)",
			status, r.SourcePath, r.Target, r.Mode, r.NodeCount)
		if r.Diagnostic != "" {
			fmt.Fprintf(formatter.Writer, ": %s", r.Diagnostic)
		}
		fmt.Fprintln(formatter.Writer)
	}
	return nil
}
