// Package codec implements phase 2 of the transpiler: rendering a linked
// CIR program as target-language source text.
//
// Each target language has its own renderer so per-target formatting
// stays colocated and independently testable. The WAT target keeps a
// separate two-pass path because its locals must be declared before any
// control flow - a semantic difference, not a formatting one.
package codec

import (
	"fmt"
	"io"
	"strings"

	"github.com/riftlang/riftc/internal/cir"
)

// ConsensusError reports an Emit call on a program whose link pass failed
// consensus validation. Nothing is written in this case.
type ConsensusError struct {
	Diagnostic string
}

func (e *ConsensusError) Error() string {
	return fmt.Sprintf("cannot emit: consensus failed: %s", e.Diagnostic)
}

// renderer renders CIR nodes in one target language's syntax.
//
// renderNode owns the indent depth: while/if increment it after emitting
// their opening line, and block closes decrement it before computing
// their own indentation.
type renderer interface {
	header(w io.Writer, mode string) error
	footer(w io.Writer) error
	renderNode(w io.Writer, n cir.Node, depth *int) error
}

// Emit renders a linked program to w in the given target language.
//
// Emission is incremental: a mid-stream sink error is returned as-is and
// already-written bytes are not rolled back. Callers needing atomicity
// should write to a temporary file and rename on success.
func Emit(prog *cir.Program, w io.Writer, target cir.Target) error {
	if prog == nil {
		return fmt.Errorf("cannot emit nil program")
	}
	if !prog.ConsensusOK {
		return &ConsensusError{Diagnostic: prog.Diagnostic}
	}

	// WAT pre-declares all locals up front, so it gets its own walk.
	if target == cir.TargetWAT {
		return emitWAT(w, prog)
	}

	r, err := rendererFor(target)
	if err != nil {
		return err
	}

	if err := r.header(w, prog.Mode.String()); err != nil {
		return err
	}
	depth := 0
	for _, n := range prog.Nodes {
		if err := r.renderNode(w, n, &depth); err != nil {
			return err
		}
	}
	return r.footer(w)
}

// rendererFor selects the single-pass renderer for a target.
func rendererFor(target cir.Target) (renderer, error) {
	switch target {
	case cir.TargetJS:
		return jsRenderer{}, nil
	case cir.TargetPython:
		return pythonRenderer{}, nil
	case cir.TargetGo:
		return goRenderer{}, nil
	case cir.TargetLua:
		return luaRenderer{}, nil
	default:
		return nil, fmt.Errorf("no renderer for target %s", target)
	}
}

// maxIndentLevels bounds the indentation string for pathological nesting.
const maxIndentLevels = 15

// spaceIndent returns four spaces per depth level.
func spaceIndent(depth int) string {
	if depth > maxIndentLevels {
		depth = maxIndentLevels
	}
	if depth <= 0 {
		return ""
	}
	return strings.Repeat("    ", depth)
}

// tabIndent returns one tab per level.
func tabIndent(levels int) string {
	if levels > maxIndentLevels {
		levels = maxIndentLevels
	}
	if levels <= 0 {
		return ""
	}
	return strings.Repeat("\t", levels)
}
