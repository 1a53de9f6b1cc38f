package cir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalProgram(t *testing.T) {
	prog := &Program{
		Nodes: []Node{
			Span{Line: 1, Kind: "fixed", Bytes: 4096},
			Assign{Line: 2, Var: "x", Expr: "5", FirstUse: true},
			Validate{Line: 3, Arg: "x"},
		},
		Mode:        ModeClassical,
		ConsensusOK: true,
	}

	data, err := MarshalProgram(prog)
	require.NoError(t, err)

	var doc struct {
		Mode        string           `json:"mode"`
		ConsensusOK bool             `json:"consensus_ok"`
		Nodes       []map[string]any `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "classical", doc.Mode)
	assert.True(t, doc.ConsensusOK)
	require.Len(t, doc.Nodes, 3)
	assert.Equal(t, "span", doc.Nodes[0]["kind"])
	assert.Equal(t, float64(4096), doc.Nodes[0]["bytes"])
	assert.Equal(t, "assign", doc.Nodes[1]["kind"])
	assert.Equal(t, true, doc.Nodes[1]["first_use"])
	assert.Equal(t, "validate", doc.Nodes[2]["kind"])
	assert.Equal(t, "x", doc.Nodes[2]["arg"])
}

func TestMarshalProgramDiagnostic(t *testing.T) {
	prog := &Program{
		Mode:        ModeClassical,
		ConsensusOK: false,
		Diagnostic:  "line 1: assignment before span declaration (violates memory-first ordering)",
	}

	data, err := MarshalProgram(prog)
	require.NoError(t, err)
	assert.Contains(t, string(data), "line 1")
	assert.Contains(t, string(data), `"consensus_ok": false`)
}

func TestMarshalProgramDeterministic(t *testing.T) {
	prog := &Program{
		Nodes: []Node{
			TypeDef{Line: 1, Name: "P"},
			TypeField{Line: 2, Name: "a", Type: "INT", Last: true},
		},
		Mode:        ModeHybrid,
		ConsensusOK: true,
	}

	first, err := MarshalProgram(prog)
	require.NoError(t, err)
	second, err := MarshalProgram(prog)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMarshalProgramNil(t *testing.T) {
	_, err := MarshalProgram(nil)
	assert.Error(t, err)
}
