package cir

// Node is a sealed interface representing one classified RIFT construct.
// Only the concrete types in this file implement it. The linker produces
// nodes in source order; the codec renders them in the same order.
type Node interface {
	node() // Sealed - only these types implement it

	// SourceLine returns the 1-based source line the node was committed on.
	SourceLine() int
}

// Govern records a `!govern classical|quantum|hybrid` directive.
// The directive also updates the Program's resolved mode.
type Govern struct {
	Line int
	Mode string
}

func (Govern) node()             {}
func (n Govern) SourceLine() int { return n.Line }

// Span records a memory-span declaration block:
//
//	align span<kind> { bytes: N }
//
// The span must precede every TypeDef and Assign in a valid program.
type Span struct {
	Line  int
	Kind  string // "fixed", "row", "continuous", ...
	Bytes int
}

func (Span) node()             {}
func (n Span) SourceLine() int { return n.Line }

// TypeDef opens a named record type: `type Name = {`.
type TypeDef struct {
	Line int
	Name string
}

func (TypeDef) node()             {}
func (n TypeDef) SourceLine() int { return n.Line }

// TypeField is one `name: TYPE` line inside a type block.
// Last is set on the final field so record-syntax targets know where to
// close the struct.
type TypeField struct {
	Line int
	Name string
	Type string
	Last bool
}

func (TypeField) node()             {}
func (n TypeField) SourceLine() int { return n.Line }

// Assign records a `name := expr` line. FirstUse marks the first textual
// assignment to the name; targets render it as a declaring binding.
type Assign struct {
	Line     int
	Var      string
	Expr     string
	FirstUse bool
}

func (Assign) node()             {}
func (n Assign) SourceLine() int { return n.Line }

// Policy records a `policy_fn on name { ... }` block header. The body is
// metadata, consumed by the linker and never transpiled.
type Policy struct {
	Line int
	Name string
}

func (Policy) node()             {}
func (n Policy) SourceLine() int { return n.Line }

// While records a `while (cond)` opener. The condition text is verbatim.
type While struct {
	Line int
	Cond string
}

func (While) node()             {}
func (n While) SourceLine() int { return n.Line }

// If records an `if (cond)` opener. The condition text is verbatim.
type If struct {
	Line int
	Cond string
}

func (If) node()             {}
func (n If) SourceLine() int { return n.Line }

// BlockClose records a standalone `}` closing a while/if block.
type BlockClose struct {
	Line int
}

func (BlockClose) node()             {}
func (n BlockClose) SourceLine() int { return n.Line }

// Validate records a `validate(arg)` call. Arg is the call argument text.
type Validate struct {
	Line int
	Arg  string
}

func (Validate) node()             {}
func (n Validate) SourceLine() int { return n.Line }

// Comment records a `//` or `/* */` comment with the marker stripped.
type Comment struct {
	Line int
	Text string
}

func (Comment) node()             {}
func (n Comment) SourceLine() int { return n.Line }

// Unknown is the universal fallback: an unclassifiable line carried
// verbatim so no information is lost. Targets render it as a comment.
type Unknown struct {
	Line int
	Text string
}

func (Unknown) node()             {}
func (n Unknown) SourceLine() int { return n.Line }

// KindOf returns the stable kind name for a node, used in JSON dumps and
// diagnostics. Uses type-switch dispatch to cover all sealed variants.
func KindOf(n Node) string {
	switch n.(type) {
	case Govern:
		return "govern"
	case Span:
		return "span"
	case TypeDef:
		return "type_def"
	case TypeField:
		return "type_field"
	case Assign:
		return "assign"
	case Policy:
		return "policy"
	case While:
		return "while"
	case If:
		return "if"
	case BlockClose:
		return "block_close"
	case Validate:
		return "validate"
	case Comment:
		return "comment"
	case Unknown:
		return "unknown"
	default:
		return ""
	}
}
