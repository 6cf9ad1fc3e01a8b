package binding

import (
	"strings"

	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/tables"
)

// Mapper maps normalized native types to binding-facing type names.
type Mapper struct {
	tables *tables.Tables
}

// NewMapper returns a mapper over tb.
func NewMapper(tb *tables.Tables) *Mapper {
	return &Mapper{tables: tb}
}

// Argument maps an input argument. ok is false for a table gap.
func (m *Mapper) Argument(typ, name string) (binding string, ok bool) {
	return m.byName(tables.RoleArgument, m.tables.Types.Argument, typ, name)
}

// Output maps a simple output argument. ok is false for a table gap.
func (m *Mapper) Output(typ, name string) (binding string, ok bool) {
	return m.byName(tables.RoleOutput, m.tables.Types.Output, typ, name)
}

func (m *Mapper) byName(role string, table map[string]string, typ, name string) (string, bool) {
	if rule, ok := m.tables.NameRule(role, typ); ok {
		if b, ok := rule.Names[name]; ok {
			return b, true
		}
		if rule.OnUnknown == tables.OnUnknownError {
			return "", false
		}
	}
	b, ok := table[typ]
	return b, ok
}

// Return maps a return value. Types with keyword rules are told apart by
// the return description, case-insensitively, in rule order.
//
// Return panics with an assertion failure when asked to map a type that
// carries no value: callers drop those before mapping.
func (m *Mapper) Return(typ, description string) (binding string, ok bool) {
	if m.tables.IsVoidReturn(typ) {
		panic(errors.AssertionFailedf("return type %q carries no value", typ))
	}
	if rules := m.tables.ReturnRulesFor(typ); len(rules) > 0 {
		descr := strings.ToLower(description)
		for _, r := range rules {
			if strings.Contains(descr, strings.ToLower(r.Keyword)) {
				return r.Binding, true
			}
		}
		return "", false
	}
	b, ok := m.tables.Types.Return[typ]
	return b, ok
}

// HasReturnRules reports whether a type is disambiguated by description.
func (m *Mapper) HasReturnRules(typ string) bool {
	return len(m.tables.ReturnRulesFor(typ)) > 0
}
