package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/riftlang/riftc/internal/cir"
)

// TargetInfo describes one supported output language.
type TargetInfo struct {
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
}

// NewTargetsCommand creates the targets command.
func NewTargetsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List supported target languages and their extensions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			infos := make([]TargetInfo, 0, len(cir.AllTargets()))
			for _, t := range cir.AllTargets() {
				infos = append(infos, TargetInfo{Name: t.String(), Extensions: t.Extensions()})
			}

			if formatter.Format == "json" {
				return formatter.Success(infos)
			}
			for _, info := range infos {
				fmt.Fprintf(formatter.Writer, "%-12s %s\n", info.Name, strings.Join(info.Extensions, ", "))
			}
			return nil
		},
	}
}
