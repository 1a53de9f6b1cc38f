package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/riftlang/riftc/internal/cir"
	"github.com/riftlang/riftc/internal/linker"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Mode string
}

// CheckResult is the payload for a link-only run.
type CheckResult struct {
	Source      string `json:"source"`
	Mode        string `json:"mode"`
	ConsensusOK bool   `json:"consensus_ok"`
	Diagnostic  string `json:"diagnostic,omitempty"`
	NodeCount   int    `json:"node_count"`
}

// NewCheckCommand creates the check command: link without emitting.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "check <source.rift>",
		Short:         "Link RIFT source and report consensus without emitting",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, newFormatter(opts.RootOptions, cmd), args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Mode, "mode", "classical", "default execution mode when source has no !govern")

	return cmd
}

func runCheck(opts *CheckOptions, formatter *OutputFormatter, sourcePath string) error {
	src, err := os.ReadFile(sourcePath)
	if err != nil {
		_ = formatter.Error(ErrCodeReadFailed, fmt.Sprintf("reading %s: %v", sourcePath, err), nil)
		return NewExitError(ExitCommandError, "read failed")
	}

	prog := linker.Link(string(src), cir.ParseMode(opts.Mode))

	result := CheckResult{
		Source:      sourcePath,
		Mode:        prog.Mode.String(),
		ConsensusOK: prog.ConsensusOK,
		Diagnostic:  prog.Diagnostic,
		NodeCount:   prog.NodeCount(),
	}

	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else if prog.ConsensusOK {
		fmt.Fprintf(formatter.Writer, "✓ %s: consensus ok (%s mode, %d nodes)\n",
			sourcePath, result.Mode, result.NodeCount)
	} else {
		fmt.Fprintf(formatter.Writer, "✗ %s: %s\n", sourcePath, prog.Diagnostic)
	}

	if !prog.ConsensusOK {
		return NewExitError(ExitFailure, "consensus failed")
	}
	return nil
}
