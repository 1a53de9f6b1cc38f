// Package cir provides the canonical intermediate representation for the
// RIFT transpiler.
//
// This package contains type definitions only. All other internal packages
// import cir; cir imports nothing internal. This ensures the IR remains the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Node is a sealed sum type: exactly one concrete kind per source
//     construct, no "which fields are valid" ambiguity
//   - Every node carries its originating source line for diagnostics
//   - Programs are built once by the linker and never mutated afterwards
package cir
