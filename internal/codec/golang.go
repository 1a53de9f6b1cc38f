package codec

import (
	"fmt"
	"io"

	"github.com/riftlang/riftc/internal/cir"
)

// goRenderer emits Go source. The whole program body lives inside an
// implicit func main opened by the header, so every line gets one base
// tab plus one per open block. Type definitions lower to real struct
// declarations.
type goRenderer struct{}

// goType maps a RIFT field type to its Go lowering. Unrecognized types
// degrade to interface{}.
func goType(riftType string) string {
	switch riftType {
	case "INT":
		return "int32"
	case "FLOAT":
		return "float64"
	case "STRING":
		return "string"
	default:
		return "interface{}"
	}
}

func (goRenderer) header(w io.Writer, mode string) error {
	_, err := fmt.Fprintf(w,
		"// Generated by RIFTLang v1.0.0 - %s mode\n"+
			"package main\n\n"+
			"import \"fmt\"\n\n"+
			"func main() {\n",
		mode)
	return err
}

func (goRenderer) footer(w io.Writer) error {
	_, err := fmt.Fprintf(w, "\t_ = fmt.Sprintf  // suppress unused import\n}\n")
	return err
}

func (goRenderer) renderNode(w io.Writer, n cir.Node, depth *int) error {
	ind := tabIndent(*depth + 1)

	switch v := n.(type) {
	case cir.Govern:
		_, err := fmt.Fprintf(w, "%s// RIFT: %s mode\n", ind, v.Mode)
		return err

	case cir.Span:
		_, err := fmt.Fprintf(w, "%s// rift: memory span (%s, %d bytes)\n", ind, v.Kind, v.Bytes)
		return err

	case cir.TypeDef:
		_, err := fmt.Fprintf(w, "%stype %s struct {\n", ind, v.Name)
		return err

	case cir.TypeField:
		if _, err := fmt.Fprintf(w, "%s\t%s %s\n", ind, v.Name, goType(v.Type)); err != nil {
			return err
		}
		if v.Last {
			_, err := fmt.Fprintf(w, "%s}\n\n", ind)
			return err
		}
		return nil

	case cir.Assign:
		if v.FirstUse {
			_, err := fmt.Fprintf(w, "%s%s := %s\n", ind, v.Var, v.Expr)
			return err
		}
		_, err := fmt.Fprintf(w, "%s%s = %s\n", ind, v.Var, v.Expr)
		return err

	case cir.Policy:
		_, err := fmt.Fprintf(w, "%s// policy: %s\n", ind, v.Name)
		return err

	case cir.While:
		_, err := fmt.Fprintf(w, "%sfor %s {\n", ind, v.Cond)
		*depth++
		return err

	case cir.If:
		_, err := fmt.Fprintf(w, "%sif %s {\n", ind, v.Cond)
		*depth++
		return err

	case cir.BlockClose:
		if *depth > 0 {
			*depth--
		}
		_, err := fmt.Fprintf(w, "%s}\n", tabIndent(*depth+1))
		return err

	case cir.Validate:
		// Printed through fmt until the go-riftlang binding is importable
		// from generated code.
		_, err := fmt.Fprintf(w, "%sfmt.Printf(\"rift.validate: %%v\\n\", %s)\n", ind, v.Arg)
		return err

	case cir.Comment:
		return renderCommentLine(w, ind, "//", v.Text)

	case cir.Unknown:
		return renderCommentLine(w, ind, "//", v.Text)
	}

	return nil
}
