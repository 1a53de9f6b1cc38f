package codec

import (
	"fmt"
	"io"
	"strings"

	"github.com/riftlang/riftc/internal/cir"
)

// emitWAT renders the program as WebAssembly text in two passes.
//
// WAT requires every local declared at the top of the function, not
// interleaved with control flow. Pass 1 pre-declares a local for each
// first-use assignment; pass 2 emits the operations. Numeric literal
// right-hand sides become constants; anything symbolic is emitted as a
// comment plus a zero initialization, since the codec performs no
// expression-level translation.
func emitWAT(w io.Writer, prog *cir.Program) error {
	_, err := fmt.Fprintf(w,
		";; Generated by RIFTLang v1.0.0 - %s mode\n"+
			"(module\n"+
			"  (import \"rift\" \"validate\" (func $rift_validate (param i32) (result i32)))\n"+
			"  (memory (export \"memory\") 1)\n"+
			"  (func $main (export \"main\")\n",
		prog.Mode.String())
	if err != nil {
		return err
	}

	// Pass 1: local declarations.
	for _, n := range prog.Nodes {
		if a, ok := n.(cir.Assign); ok && a.FirstUse {
			if _, err := fmt.Fprintf(w, "    (local $%s i32)\n", a.Var); err != nil {
				return err
			}
		}
	}

	// Pass 2: body.
	depth := 0
	for _, n := range prog.Nodes {
		if err := watNode(w, n, &depth); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintf(w, "  )\n)\n")
	return err
}

func watNode(w io.Writer, n cir.Node, depth *int) error {
	switch v := n.(type) {
	case cir.Govern:
		_, err := fmt.Fprintf(w, "    ;; RIFT: %s mode\n", v.Mode)
		return err

	case cir.Span:
		_, err := fmt.Fprintf(w, "    ;; rift: memory span (%s, %d bytes)\n", v.Kind, v.Bytes)
		return err

	case cir.TypeDef:
		_, err := fmt.Fprintf(w, "    ;; type: %s\n", v.Name)
		return err

	case cir.TypeField:
		return nil

	case cir.Assign:
		if c, ok := watConst(v.Expr); ok {
			_, err := fmt.Fprintf(w, "    (local.set $%s (i32.const %d))\n", v.Var, c)
			return err
		}
		if _, err := fmt.Fprintf(w, "    ;; expr: %s = %s\n", v.Var, v.Expr); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "    (local.set $%s (i32.const 0))\n", v.Var)
		return err

	case cir.Policy:
		_, err := fmt.Fprintf(w, "    ;; policy: %s\n", v.Name)
		return err

	case cir.While:
		_, err := fmt.Fprintf(w, "    (block\n    (loop\n")
		*depth++
		return err

	case cir.If:
		_, err := fmt.Fprintf(w, "    (if (then\n")
		*depth++
		return err

	case cir.BlockClose:
		if *depth > 0 {
			*depth--
		}
		_, err := fmt.Fprintf(w, "    ))\n")
		return err

	case cir.Validate:
		_, err := fmt.Fprintf(w, "    (call $rift_validate (local.get $%s))\n", v.Arg)
		return err

	case cir.Comment:
		return renderCommentLine(w, "    ", ";;", v.Text)

	case cir.Unknown:
		return renderCommentLine(w, "    ", ";;", v.Text)
	}

	return nil
}

// watConst reports whether expr is a bare integer literal: optional sign
// and digits, followed by nothing or whitespace. Trailing garbage after
// whitespace is tolerated the way strtol-based scanning tolerated it.
func watConst(expr string) (int64, bool) {
	s := strings.TrimSpace(expr)
	if s == "" {
		return 0, true
	}

	i := 0
	neg := false
	if s[i] == '+' || s[i] == '-' {
		neg = s[i] == '-'
		i++
	}
	start := i
	var v int64
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		v = v*10 + int64(s[i]-'0')
		i++
	}
	if i == start {
		return 0, false
	}
	if i < len(s) && s[i] != ' ' && s[i] != '\t' {
		return 0, false
	}
	if neg {
		v = -v
	}
	return v, true
}
