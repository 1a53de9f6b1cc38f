package codec

import (
	"fmt"
	"io"

	"github.com/riftlang/riftc/internal/cir"
)

// luaRenderer emits Lua against the lua-riftlang runtime binding.
type luaRenderer struct{}

func (luaRenderer) header(w io.Writer, mode string) error {
	_, err := fmt.Fprintf(w,
		"-- Generated by RIFTLang v1.0.0 - %s mode\n"+
			"local rift = dofile('bindings/lua-riftlang/rift_binding.lua')\n\n",
		mode)
	return err
}

func (luaRenderer) footer(io.Writer) error { return nil }

func (luaRenderer) renderNode(w io.Writer, n cir.Node, depth *int) error {
	ind := spaceIndent(*depth)

	switch v := n.(type) {
	case cir.Govern:
		_, err := fmt.Fprintf(w, "%s-- RIFT: %s mode\n", ind, v.Mode)
		return err

	case cir.Span:
		_, err := fmt.Fprintf(w, "%s-- rift: memory span (%s, %d bytes)\n", ind, v.Kind, v.Bytes)
		return err

	case cir.TypeDef:
		_, err := fmt.Fprintf(w, "%s-- type: %s\n", ind, v.Name)
		return err

	case cir.TypeField:
		return nil

	case cir.Assign:
		if v.FirstUse {
			_, err := fmt.Fprintf(w, "%slocal %s = %s\n", ind, v.Var, v.Expr)
			return err
		}
		_, err := fmt.Fprintf(w, "%s%s = %s\n", ind, v.Var, v.Expr)
		return err

	case cir.Policy:
		_, err := fmt.Fprintf(w, "%s-- policy: %s\n", ind, v.Name)
		return err

	case cir.While:
		_, err := fmt.Fprintf(w, "%swhile %s do\n", ind, v.Cond)
		*depth++
		return err

	case cir.If:
		_, err := fmt.Fprintf(w, "%sif %s then\n", ind, v.Cond)
		*depth++
		return err

	case cir.BlockClose:
		if *depth > 0 {
			*depth--
		}
		_, err := fmt.Fprintf(w, "%send\n", spaceIndent(*depth))
		return err

	case cir.Validate:
		_, err := fmt.Fprintf(w, "%srift.validate(%s)\n", ind, v.Arg)
		return err

	case cir.Comment:
		return renderCommentLine(w, ind, "--", v.Text)

	case cir.Unknown:
		return renderCommentLine(w, ind, "--", v.Text)
	}

	return nil
}
