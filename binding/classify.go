// Package binding turns raw native function descriptions into
// binding-facing declarations.
//
// Every decision is a lookup in the static tables: the Classifier decides
// which parameters are outputs, the Mapper picks binding type names, the
// Builder assembles one Declaration and the Resolver folds named variants
// and merge groups over the whole set. Table gaps are reported as
// diagnostics and never stop the run.
package binding

import (
	"github.com/teranos/bindgen/ctype"
	"github.com/teranos/bindgen/diag"
	"github.com/teranos/bindgen/model"
	"github.com/teranos/bindgen/tables"
)

// Role is what a parameter becomes in the binding.
type Role int

const (
	// Input parameters become arguments.
	Input Role = iota
	// SimpleOutput parameters become one return value each.
	SimpleOutput
	// GroupedOutputStart heads a registered group of output parameters that
	// together become one return value.
	GroupedOutputStart
	// Error marks a parameter that cannot be classified: it has no type and
	// no name-based rule applies.
	Error
)

func (r Role) String() string {
	switch r {
	case Input:
		return "input"
	case SimpleOutput:
		return "output"
	case GroupedOutputStart:
		return "grouped output"
	default:
		return "error"
	}
}

// IsOutput reports whether the role produces a return value.
func (r Role) IsOutput() bool {
	return r == SimpleOutput || r == GroupedOutputStart
}

// Classifier decides parameter roles from the output tables.
type Classifier struct {
	tables *tables.Tables
}

// NewClassifier returns a classifier over tb.
func NewClassifier(tb *tables.Tables) *Classifier {
	return &Classifier{tables: tb}
}

// Classify returns the role of a single parameter, ignoring groups.
func (c *Classifier) Classify(p model.RawParameter) Role {
	typ := ctype.Normalize(p.Type)
	if c.tables.IsOutputName(p.Name) || c.tables.IsOutputSignature(typ, p.Name) {
		return SimpleOutput
	}
	if typ == "" {
		return Error
	}
	return Input
}

// MatchGroup reports whether params[i] heads a registered group whose
// members follow it exactly. The first matching registration wins; a head
// with missing or mismatched members does not match.
func (c *Classifier) MatchGroup(params []model.RawParameter, i int) (tables.Group, bool) {
	head := params[i]
	for _, g := range c.tables.GroupsFor(ctype.Normalize(head.Type), head.Name) {
		if len(g.Members) > len(params)-i-1 {
			continue
		}
		match := true
		for k, want := range g.Members {
			p := params[i+1+k]
			if ctype.Normalize(p.Type) != want.Type || p.Name != want.Name {
				match = false
				break
			}
		}
		if match {
			return g, true
		}
	}
	return tables.Group{}, false
}

// ClassifyAt classifies params[i], looking ahead for grouped outputs. The
// group is only meaningful when the role is GroupedOutputStart; the caller
// then consumes len(group.Members)+1 parameters.
func (c *Classifier) ClassifyAt(params []model.RawParameter, i int) (Role, tables.Group) {
	if g, ok := c.MatchGroup(params, i); ok {
		return GroupedOutputStart, g
	}
	return c.Classify(params[i]), tables.Group{}
}

// CheckDirection reports a disagreement between the declared direction and
// the classified role. Parameters without a declared direction only
// disagree when they are classified as outputs.
func CheckDirection(fn string, p model.RawParameter, role Role, diags *diag.List) {
	switch {
	case role.IsOutput() && p.Direction != model.DirectionOut:
		diags.Addf(diag.DirectionMismatch, fn, p.Name,
			"argument %s is considered as output, but direction is '%s', should be 'out'", p.Name, p.Direction)
	case !role.IsOutput() && p.Direction == model.DirectionOut:
		diags.Addf(diag.DirectionMismatch, fn, p.Name,
			"argument '%s %s' has direction 'out' but is not considered as output", p.Type, p.Name)
	}
}
