package cir

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Target is one of the output languages the codec can render CIR into.
type Target int

const (
	TargetJS Target = iota
	TargetPython
	TargetGo
	TargetLua
	TargetWAT
)

// String returns the target name used in CLI output.
func (t Target) String() string {
	switch t {
	case TargetJS:
		return "javascript"
	case TargetPython:
		return "python"
	case TargetGo:
		return "go"
	case TargetLua:
		return "lua"
	case TargetWAT:
		return "wat"
	default:
		return fmt.Sprintf("Target(%d)", int(t))
	}
}

// ParseTarget maps a target name to a Target.
func ParseTarget(name string) (Target, error) {
	switch strings.ToLower(name) {
	case "js", "javascript":
		return TargetJS, nil
	case "py", "python":
		return TargetPython, nil
	case "go", "golang":
		return TargetGo, nil
	case "lua":
		return TargetLua, nil
	case "wat", "wasm":
		return TargetWAT, nil
	default:
		return 0, fmt.Errorf("unknown target %q", name)
	}
}

// targetExtensions maps output file extensions to targets.
var targetExtensions = map[string]Target{
	".js":   TargetJS,
	".cjs":  TargetJS,
	".mjs":  TargetJS,
	".py":   TargetPython,
	".go":   TargetGo,
	".lua":  TargetLua,
	".wat":  TargetWAT,
	".wasm": TargetWAT,
}

// DetectTarget selects the target language from an output filename's
// extension.
func DetectTarget(filename string) (Target, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if t, ok := targetExtensions[ext]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("cannot detect target from output filename %q", filename)
}

// Extensions returns the extensions recognized for a target, in a fixed
// order for display.
func (t Target) Extensions() []string {
	switch t {
	case TargetJS:
		return []string{".js", ".cjs", ".mjs"}
	case TargetPython:
		return []string{".py"}
	case TargetGo:
		return []string{".go"}
	case TargetLua:
		return []string{".lua"}
	case TargetWAT:
		return []string{".wat", ".wasm"}
	default:
		return nil
	}
}

// AllTargets lists every supported target in display order.
func AllTargets() []Target {
	return []Target{TargetJS, TargetPython, TargetGo, TargetLua, TargetWAT}
}
