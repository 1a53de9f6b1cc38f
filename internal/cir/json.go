package cir

import (
	"encoding/json"
	"fmt"
)

// MarshalProgram serializes a Program to indented JSON for .ast.json dumps
// and compile-history records. Node objects carry a "kind" discriminator
// plus only the fields meaningful for that kind. encoding/json sorts map
// keys, so output is deterministic.
func MarshalProgram(p *Program) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("cannot marshal nil program")
	}

	nodes := make([]map[string]any, len(p.Nodes))
	for i, n := range p.Nodes {
		nodes[i] = nodeToMap(n)
	}

	doc := map[string]any{
		"mode":         p.Mode.String(),
		"consensus_ok": p.ConsensusOK,
		"nodes":        nodes,
	}
	if p.Diagnostic != "" {
		doc["diagnostic"] = p.Diagnostic
	}

	return json.MarshalIndent(doc, "", "  ")
}

// nodeToMap converts one node to its JSON object form.
func nodeToMap(n Node) map[string]any {
	m := map[string]any{
		"kind": KindOf(n),
		"line": n.SourceLine(),
	}

	switch v := n.(type) {
	case Govern:
		m["mode"] = v.Mode
	case Span:
		m["span_kind"] = v.Kind
		m["bytes"] = v.Bytes
	case TypeDef:
		m["name"] = v.Name
	case TypeField:
		m["name"] = v.Name
		m["type"] = v.Type
		m["last"] = v.Last
	case Assign:
		m["var"] = v.Var
		m["expr"] = v.Expr
		m["first_use"] = v.FirstUse
	case Policy:
		m["name"] = v.Name
	case While:
		m["cond"] = v.Cond
	case If:
		m["cond"] = v.Cond
	case BlockClose:
		// no payload
	case Validate:
		m["arg"] = v.Arg
	case Comment:
		m["text"] = v.Text
	case Unknown:
		m["text"] = v.Text
	}

	return m
}
