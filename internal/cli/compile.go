package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/riftlang/riftc/internal/cir"
	"github.com/riftlang/riftc/internal/codec"
	"github.com/riftlang/riftc/internal/linker"
	"github.com/riftlang/riftc/internal/store"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output      string // output file path; target detected from extension
	Target      string // explicit target, overrides extension detection
	Mode        string // default governance mode
	EmitASTJSON bool   // write <source>.ast.json alongside the output
	HistoryDB   string // record the run in this SQLite database
	Manifest    string // compile a yaml-listed batch instead of one file
}

// CompileResult is the success payload for one compiled source.
type CompileResult struct {
	Source    string `json:"source"`
	Output    string `json:"output"`
	Target    string `json:"target"`
	Mode      string `json:"mode"`
	NodeCount int    `json:"node_count"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile [source.rift]",
		Short: "Link RIFT source and emit target-language text",
		Long: `Link RIFT source into canonical IR and emit it as target-language text.

The target language is detected from the output file extension
(.js/.cjs/.mjs, .py, .go, .lua, .wat/.wasm) unless --target is given.
Output is written to a temporary file and renamed on success, so a
failed emission never leaves a truncated output file behind.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd)
			if opts.Manifest != "" {
				return runManifest(opts, formatter)
			}
			if len(args) != 1 {
				_ = formatter.Error(ErrCodeGeneric, "source file required (or use --manifest)", nil)
				return NewExitError(ExitCommandError, "source file required")
			}
			if opts.Output == "" {
				_ = formatter.Error(ErrCodeGeneric, "output file required (-o)", nil)
				return NewExitError(ExitCommandError, "output file required")
			}
			return runCompile(opts, formatter, args[0], opts.Output)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().StringVar(&opts.Target, "target", "", "target language (overrides extension detection)")
	cmd.Flags().StringVar(&opts.Mode, "mode", "classical", "default execution mode when source has no !govern")
	cmd.Flags().BoolVar(&opts.EmitASTJSON, "emit-ast-json", false, "write <source>.ast.json with the linked IR")
	cmd.Flags().StringVar(&opts.HistoryDB, "history", "", "record this run in a compile-history database")
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "compile all jobs listed in a yaml manifest")

	return cmd
}

// runCompile links and emits a single source file.
func runCompile(opts *CompileOptions, formatter *OutputFormatter, sourcePath, outputPath string) error {
	src, err := os.ReadFile(sourcePath)
	if err != nil {
		_ = formatter.Error(ErrCodeReadFailed, fmt.Sprintf("reading %s: %v", sourcePath, err), nil)
		return NewExitError(ExitCommandError, "read failed")
	}

	target, err := resolveTarget(opts.Target, outputPath)
	if err != nil {
		_ = formatter.Error(ErrCodeBadTarget, err.Error(), nil)
		return NewExitError(ExitCommandError, "bad target")
	}

	formatter.VerboseLog("linking %s (target %s)", sourcePath, target)
	prog := linker.Link(string(src), cir.ParseMode(opts.Mode))

	if opts.HistoryDB != "" {
		if err := recordRun(opts.HistoryDB, sourcePath, string(src), target, prog); err != nil {
			_ = formatter.Error(ErrCodeStore, err.Error(), nil)
			return NewExitError(ExitCommandError, "history write failed")
		}
	}

	if !prog.ConsensusOK {
		_ = formatter.Error(ErrCodeConsensus, fmt.Sprintf("%s: %s", sourcePath, prog.Diagnostic), nil)
		return NewExitError(ExitFailure, "consensus failed")
	}

	if opts.EmitASTJSON {
		astJSON, err := cir.MarshalProgram(prog)
		if err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("marshaling IR: %v", err), nil)
			return NewExitError(ExitCommandError, "ast dump failed")
		}
		if err := os.WriteFile(sourcePath+".ast.json", astJSON, 0o644); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("writing ast json: %v", err), nil)
			return NewExitError(ExitCommandError, "ast dump failed")
		}
	}

	if err := writeAtomic(outputPath, func(w io.Writer) error {
		return codec.Emit(prog, w, target)
	}); err != nil {
		_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("writing %s: %v", outputPath, err), nil)
		return NewExitError(ExitCommandError, "emit failed")
	}

	result := CompileResult{
		Source:    sourcePath,
		Output:    outputPath,
		Target:    target.String(),
		Mode:      prog.Mode.String(),
		NodeCount: prog.NodeCount(),
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ Compiled %s → %s (%s, %s mode, %d nodes)\n",
		result.Source, result.Output, result.Target, result.Mode, result.NodeCount)
	return nil
}

// resolveTarget picks the target from an explicit flag or the output
// file extension.
func resolveTarget(flag, outputPath string) (cir.Target, error) {
	if flag != "" {
		return cir.ParseTarget(flag)
	}
	return cir.DetectTarget(outputPath)
}

// recordRun stores one compile attempt, consensus failures included.
func recordRun(dbPath, sourcePath, source string, target cir.Target, prog *cir.Program) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	return st.RecordRun(context.Background(), store.Run{
		ID:          store.NewRunID(),
		SourcePath:  sourcePath,
		SourceHash:  store.HashSource(source),
		Target:      target.String(),
		Mode:        prog.Mode.String(),
		ConsensusOK: prog.ConsensusOK,
		Diagnostic:  prog.Diagnostic,
		NodeCount:   prog.NodeCount(),
	})
}

// writeAtomic writes via emit into a temp file in the destination
// directory and renames it over the target on success. The codec itself
// gives no rollback guarantee, so atomicity lives here.
func writeAtomic(path string, emit func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".riftc-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if err := emit(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
