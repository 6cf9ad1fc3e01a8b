// Package model holds the declaration model shared by both ingestion
// adapters and every generation stage.
//
// Raw* types are what the adapters read; they are never mutated after
// ingestion. Declaration is the binding-facing unit of code generation.
package model

import "strings"

// Direction is the parameter direction declared by the upstream source.
type Direction string

const (
	DirectionIn          Direction = "in"
	DirectionOut         Direction = "out"
	DirectionUnspecified Direction = ""
)

// ParseDirection accepts the direction attribute spellings Doxygen emits.
func ParseDirection(s string) Direction {
	switch strings.TrimSpace(s) {
	case "in":
		return DirectionIn
	case "out":
		return DirectionOut
	case "in,out", "inout":
		// read-write buffers are still arguments from the caller's side
		return DirectionIn
	default:
		return DirectionUnspecified
	}
}

// RawParameter is one documented native parameter.
type RawParameter struct {
	Name        string
	Type        string
	Direction   Direction
	Description string
}

// RawFunction is one native entry point as read from an upstream source.
type RawFunction struct {
	Name              string
	Brief             string
	Detailed          string
	Params            []RawParameter
	ReturnType        string
	ReturnDescription string
}

// Argument is an input-facing argument after classification and type mapping.
type Argument struct {
	Name        string
	Type        string
	Description string
}

// Return is one value produced by a call. Name is empty for the native
// return value and for grouped outputs.
type Return struct {
	Name        string
	Type        string
	Description string
}

// Declaration is the binding-facing view of one public call.
type Declaration struct {
	// Name is the public name, without the native prefix.
	Name string
	// NativeName is the symbol the directives attach to.
	NativeName   string
	Brief        string
	Detailed     string
	Args         []Argument
	OptionalArgs []Argument
	Returns      []Return
	Notes        string
}

// Method returns the declaration as seen through an object method: the
// handle argument is dropped and the display name loses the given prefixes,
// each trimmed in turn.
func (d Declaration) Method(prefixes []string) Declaration {
	m := d
	name := d.NativeName
	for _, p := range prefixes {
		name = strings.TrimPrefix(name, p)
	}
	m.Name = name
	if len(d.Args) > 0 {
		m.Args = append([]Argument(nil), d.Args[1:]...)
	}
	return m
}

// OverloadGroup records a named variant folded into its base declaration.
type OverloadGroup struct {
	Base           string
	Variants       []string
	OptionalParams []string
}

// MergedSignatureSet is one public call documented from several unrelated
// native entry points.
type MergedSignatureSet struct {
	Declaration Declaration
	Sources     []RawFunction
	// Signatures holds the declaration built from each source, in order.
	Signatures []Declaration
}
