// Package linker implements phase 1 of the transpiler: a forward-only,
// single-pass classification of RIFT source lines into canonical IR.
//
// The pass never backtracks and never fails hard on malformed input:
// unrecognized lines degrade to cir.Unknown nodes. The one property it
// enforces is declaration ordering - a memory span must be committed
// before any type definition or assignment. Violations stop the pass and
// surface as a non-consensus program with a line-numbered diagnostic.
package linker

import (
	"bufio"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/riftlang/riftc/internal/cir"
)

// Consensus violation messages. The line number is prepended at the
// violation site so users can fix the source without inspecting the IR.
const (
	msgTypeBeforeSpan   = "type declaration before span (violates memory-first ordering)"
	msgAssignBeforeSpan = "assignment before span declaration (violates memory-first ordering)"
)

// defaultSpanBytes is used when a span block has no bytes: line.
const defaultSpanBytes = 4096

// accumState tracks which multi-line block the pass is currently inside.
// States are mutually exclusive and entered/exited explicitly.
type accumState int

const (
	stateNormal accumState = iota
	stateSpan
	stateType
	statePolicy
)

// linkState is the accumulator for one Link call. It is discarded when
// the pass completes; only the Program survives.
type linkState struct {
	prog  *cir.Program
	state accumState

	seenSpan bool
	depth    int // open while/if blocks

	// pending span block
	spanKind  string
	spanBytes int

	// pending type block, committed atomically when the block closes
	typeDef    cir.TypeDef
	typeFields []cir.TypeField

	// variable names already assigned, for FirstUse
	declared map[string]bool
}

// Link classifies RIFT source into a CIR program in one forward pass.
//
// The returned program has ConsensusOK=false and a line-numbered
// Diagnostic when an ordering invariant is violated; callers must check
// the flag before emitting. All other malformed input degrades to
// cir.Unknown nodes, so the pass always completes.
//
// defaultMode is the execution mode used when the source has no !govern
// directive.
func Link(source string, defaultMode cir.Mode) *cir.Program {
	ls := &linkState{
		prog: &cir.Program{
			Mode:        defaultMode,
			ConsensusOK: false,
		},
		declared: make(map[string]bool),
	}

	// Normalize so visually identical identifiers classify identically.
	sc := bufio.NewScanner(strings.NewReader(norm.NFC.String(source)))
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNum := 0
	for sc.Scan() {
		lineNum++
		trimmed := strings.TrimSpace(sc.Text())
		if trimmed == "" {
			continue
		}

		switch ls.state {
		case stateSpan:
			ls.spanLine(trimmed, lineNum)
		case stateType:
			ls.typeLine(trimmed, lineNum)
		case statePolicy:
			if strings.ContainsRune(trimmed, '}') {
				ls.state = stateNormal
			}
		default:
			if stop := ls.classify(trimmed, lineNum); stop {
				return ls.prog
			}
		}
	}

	// A type block left open at EOF still commits what it collected.
	if ls.state == stateType {
		ls.commitTypeBlock(false)
	}

	ls.prog.ConsensusOK = true
	return ls.prog
}

// spanLine consumes one line (or the tail of the opener line) inside a
// span block.
func (ls *linkState) spanLine(trimmed string, lineNum int) {
	if i := strings.Index(trimmed, "bytes:"); i >= 0 {
		rest := trimmed[i+len("bytes:"):]
		ls.spanBytes = leadingInt(strings.TrimSpace(rest), ls.spanBytes)
	}
	if strings.ContainsRune(trimmed, '}') {
		ls.commit(cir.Span{Line: lineNum, Kind: ls.spanKind, Bytes: ls.spanBytes})
		ls.seenSpan = true
		ls.state = stateNormal
	}
}

// typeLine consumes one line inside a type block.
func (ls *linkState) typeLine(trimmed string, lineNum int) {
	if strings.ContainsRune(trimmed, '}') {
		ls.commitTypeBlock(true)
		return
	}

	// Parse "field_name: FIELD_TYPE," - lines without a colon are
	// consumed without producing a field, same as any other block noise.
	name, ftype, ok := strings.Cut(trimmed, ":")
	if !ok {
		return
	}
	ls.typeFields = append(ls.typeFields, cir.TypeField{
		Line: lineNum,
		Name: strings.TrimSpace(name),
		Type: strings.TrimSuffix(strings.TrimSpace(ftype), ","),
	})
}

// commitTypeBlock commits the buffered TypeDef and its fields as one
// group. Marking the last field here, before anything is committed,
// replaces the original backward fix-up of already-committed nodes.
func (ls *linkState) commitTypeBlock(closed bool) {
	if closed && len(ls.typeFields) > 0 {
		ls.typeFields[len(ls.typeFields)-1].Last = true
	}
	ls.commit(ls.typeDef)
	for _, f := range ls.typeFields {
		ls.commit(f)
	}
	ls.typeDef = cir.TypeDef{}
	ls.typeFields = nil
	ls.state = stateNormal
}

// classify handles one trimmed line in the Normal state. First match
// wins; the order below is the contract. Returns true when the pass must
// stop early on a consensus violation.
func (ls *linkState) classify(trimmed string, lineNum int) bool {
	// Comment.
	if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "/*") {
		ls.commit(cir.Comment{Line: lineNum, Text: stripCommentMarker(trimmed)})
		return false
	}

	// Governance directive.
	if rest, ok := strings.CutPrefix(trimmed, "!govern"); ok {
		mode := governMode(rest)
		ls.prog.Mode = cir.ParseMode(mode)
		ls.commit(cir.Govern{Line: lineNum, Mode: mode})
		return false
	}

	// Memory-span declaration opener. Re-scanning the opener line lets
	// `align span<fixed> { bytes: 2048 }` close on one line, same as
	// one-line type and policy blocks.
	if strings.HasPrefix(trimmed, "align span<") {
		ls.spanKind = spanKind(trimmed)
		ls.spanBytes = defaultSpanBytes
		ls.state = stateSpan
		ls.spanLine(trimmed[len("align span<"):], lineNum)
		return false
	}

	// Type-definition opener.
	if strings.HasPrefix(trimmed, "type ") && strings.ContainsRune(trimmed, '=') {
		if !ls.seenSpan {
			ls.violate(lineNum, msgTypeBeforeSpan)
			return true
		}
		name, _, _ := strings.Cut(trimmed[len("type "):], "=")
		ls.typeDef = cir.TypeDef{Line: lineNum, Name: strings.TrimSpace(name)}
		ls.typeFields = nil
		ls.state = stateType
		// `type Name = { }` on one line closes immediately: a TypeDef
		// with no fields.
		if strings.ContainsRune(trimmed, '}') {
			ls.commitTypeBlock(true)
		}
		return false
	}

	// Policy-function opener. The body is metadata, never transpiled.
	if rest, ok := strings.CutPrefix(trimmed, "policy_fn on"); ok {
		name, _, _ := strings.Cut(strings.TrimSpace(rest), "{")
		ls.commit(cir.Policy{Line: lineNum, Name: strings.TrimSpace(name)})
		if !strings.ContainsRune(trimmed, '}') {
			ls.state = statePolicy
		}
		return false
	}

	// While / if openers. The opening { on the same line is absorbed.
	if strings.HasPrefix(trimmed, "while ") || strings.HasPrefix(trimmed, "while(") {
		ls.commit(cir.While{Line: lineNum, Cond: parenContent(trimmed)})
		ls.depth++
		return false
	}
	if strings.HasPrefix(trimmed, "if ") || strings.HasPrefix(trimmed, "if(") {
		ls.commit(cir.If{Line: lineNum, Cond: parenContent(trimmed)})
		ls.depth++
		return false
	}

	// Standalone block close. A stray } at depth 0 is ignored.
	if trimmed == "}" {
		if ls.depth > 0 {
			ls.commit(cir.BlockClose{Line: lineNum})
			ls.depth--
		}
		return false
	}

	// validate(...) call.
	if strings.HasPrefix(trimmed, "validate(") {
		arg := strings.TrimSuffix(parenContent(trimmed), ")")
		ls.commit(cir.Validate{Line: lineNum, Arg: arg})
		return false
	}

	// Assignment.
	if lhs, rhs, ok := strings.Cut(trimmed, ":="); ok {
		if !ls.seenSpan {
			ls.violate(lineNum, msgAssignBeforeSpan)
			return true
		}
		name := strings.TrimSpace(lhs)
		first := !ls.declared[name]
		ls.declared[name] = true
		ls.commit(cir.Assign{
			Line:     lineNum,
			Var:      name,
			Expr:     stripTrailingComment(strings.TrimSpace(rhs)),
			FirstUse: first,
		})
		return false
	}

	// Lone open brace: a deeper block not absorbed by while/if.
	if trimmed == "{" {
		ls.depth++
		return false
	}

	// Universal fallback: keep the text, lose nothing.
	ls.commit(cir.Unknown{Line: lineNum, Text: trimmed})
	return false
}

// commit appends a node. The node sequence is an ordinary growable slice;
// there is no capacity ceiling.
func (ls *linkState) commit(n cir.Node) {
	ls.prog.Nodes = append(ls.prog.Nodes, n)
}

// violate records a consensus failure with the offending line number.
func (ls *linkState) violate(lineNum int, msg string) {
	ls.prog.ConsensusOK = false
	ls.prog.Diagnostic = fmt.Sprintf("line %d: %s", lineNum, msg)
}
