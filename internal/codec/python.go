package codec

import (
	"fmt"
	"io"

	"github.com/riftlang/riftc/internal/cir"
)

// pythonRenderer emits Python against the pyriftlang runtime binding.
// Python's block structure is purely indentation-based, so BlockClose
// only adjusts depth and emits nothing.
type pythonRenderer struct{}

func (pythonRenderer) header(w io.Writer, mode string) error {
	_, err := fmt.Fprintf(w,
		"# -*- coding: utf-8 -*-\n"+
			"# Generated by RIFTLang v1.0.0 - %s mode\n"+
			"import sys, os\n"+
			"sys.path.insert(0, os.path.join(os.path.dirname(os.path.abspath(__file__)),\n"+
			"                'bindings', 'pyriftlang'))\n"+
			"import rift_binding as rift\n\n",
		mode)
	return err
}

func (pythonRenderer) footer(io.Writer) error { return nil }

func (pythonRenderer) renderNode(w io.Writer, n cir.Node, depth *int) error {
	ind := spaceIndent(*depth)

	switch v := n.(type) {
	case cir.Govern:
		_, err := fmt.Fprintf(w, "%s# RIFT: %s mode\n", ind, v.Mode)
		return err

	case cir.Span:
		_, err := fmt.Fprintf(w, "%s# rift: memory span (%s, %d bytes)\n", ind, v.Kind, v.Bytes)
		return err

	case cir.TypeDef:
		_, err := fmt.Fprintf(w, "%s# type: %s\n", ind, v.Name)
		return err

	case cir.TypeField:
		return nil

	case cir.Assign:
		_, err := fmt.Fprintf(w, "%s%s = %s\n", ind, v.Var, v.Expr)
		return err

	case cir.Policy:
		_, err := fmt.Fprintf(w, "%s# policy: %s\n", ind, v.Name)
		return err

	case cir.While:
		_, err := fmt.Fprintf(w, "%swhile %s:\n", ind, v.Cond)
		*depth++
		return err

	case cir.If:
		_, err := fmt.Fprintf(w, "%sif %s:\n", ind, v.Cond)
		*depth++
		return err

	case cir.BlockClose:
		// Indentation closes the block; nothing to write.
		if *depth > 0 {
			*depth--
		}
		return nil

	case cir.Validate:
		_, err := fmt.Fprintf(w, "%srift.validate(%s)\n", ind, v.Arg)
		return err

	case cir.Comment:
		return renderCommentLine(w, ind, "#", v.Text)

	case cir.Unknown:
		return renderCommentLine(w, ind, "#", v.Text)
	}

	return nil
}
