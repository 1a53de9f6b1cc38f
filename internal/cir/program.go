package cir

// Mode is the resolved execution mode of a program, selected by the last
// `!govern` directive or a caller-supplied default. It affects only
// downstream metadata, never the pipeline's own control flow.
type Mode int

const (
	ModeClassical Mode = iota // sequential, deterministic
	ModeQuantum               // parallel, probabilistic
	ModeHybrid                // context-aware switching
)

// String returns the mode name as it appears in source and emitted headers.
func (m Mode) String() string {
	switch m {
	case ModeQuantum:
		return "quantum"
	case ModeHybrid:
		return "hybrid"
	default:
		return "classical"
	}
}

// ParseMode maps a governance directive word to a Mode.
// Unrecognized words fall back to classical.
func ParseMode(s string) Mode {
	switch s {
	case "quantum":
		return ModeQuantum
	case "hybrid":
		return ModeHybrid
	default:
		return ModeClassical
	}
}

// Program is the ordered CIR node sequence produced by one link pass.
// Insertion order is source order and semantically significant: emission
// is order-preserving. A Program is constructed once, immutable
// thereafter, and consumed by exactly one emit call.
type Program struct {
	Nodes []Node
	Mode  Mode

	// ConsensusOK reports whether span-before-type-before-assign ordering
	// held across the whole source. When false, Diagnostic carries a
	// line-numbered message and the program must not be emitted.
	ConsensusOK bool
	Diagnostic  string
}

// NodeCount returns the number of committed nodes.
func (p *Program) NodeCount() int {
	return len(p.Nodes)
}
