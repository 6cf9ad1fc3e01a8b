// Package methods mines a clang AST dump for the free functions that act on
// an object handle and emits them as SWIG %extend methods.
package methods

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/bindgen/ctype"
	"github.com/teranos/bindgen/logger"
	"github.com/teranos/bindgen/model"
	"github.com/teranos/bindgen/tables"
)

// Method is one free function seen as a method of an object.
type Method struct {
	// Native is the C function name.
	Native string
	// Name is the method name, without the object's prefixes.
	Name       string
	ReturnType string
	// Params excludes the handle.
	Params []model.RawParameter
}

// Args renders the C parameter list, or "" without parameters.
func (m Method) Args() string {
	parts := make([]string, 0, len(m.Params))
	for _, p := range m.Params {
		parts = append(parts, p.Type+" "+p.Name)
	}
	return strings.Join(parts, ", ")
}

// ArgNames renders the parameter names only.
func (m Method) ArgNames() string {
	parts := make([]string, 0, len(m.Params))
	for _, p := range m.Params {
		parts = append(parts, p.Name)
	}
	return strings.Join(parts, ", ")
}

// ObjectMethods is the mined method set of one object.
type ObjectMethods struct {
	Object tables.Object
	// Status methods return the native status code.
	Status []Method
	// Value methods return anything else, including nothing.
	Value []Method
}

// All returns the status methods followed by the value methods.
func (o ObjectMethods) All() []Method {
	return append(append([]Method(nil), o.Status...), o.Value...)
}

// Miner groups AST functions into object methods.
type Miner struct {
	tables *tables.Tables
	log    *zap.SugaredLogger
}

// NewMiner returns a miner over tb.
func NewMiner(tb *tables.Tables) *Miner {
	return &Miner{tables: tb, log: logger.ComponentLogger("methods")}
}

// Mine returns one entry per configured object, in table order. Functions
// keep their dump order within each partition.
func (mn *Miner) Mine(fns []model.RawFunction) []ObjectMethods {
	cfg := mn.tables.Methods
	out := make([]ObjectMethods, 0, len(cfg.Objects))
	for _, obj := range cfg.Objects {
		om := ObjectMethods{Object: obj}
		for _, fn := range fns {
			m, ok := mn.method(obj, fn)
			if !ok {
				continue
			}
			if ctype.Normalize(m.ReturnType) == cfg.StatusType {
				om.Status = append(om.Status, m)
			} else {
				om.Value = append(om.Value, m)
			}
		}
		mn.log.Debugw("mined object", logger.FieldObject, obj.Name, "status", len(om.Status), "value", len(om.Value))
		out = append(out, om)
	}
	return out
}

func (mn *Miner) method(obj tables.Object, fn model.RawFunction) (Method, bool) {
	cfg := mn.tables.Methods
	if obj.Ignores(fn.Name) || len(fn.Params) == 0 {
		return Method{}, false
	}
	if !strings.Contains(fn.Params[0].Type, obj.CName) {
		return Method{}, false
	}

	name := obj.MethodName(fn.Name)
	if cfg.IsSkipped(name) {
		mn.log.Debugw("skipped method", logger.FieldFunction, fn.Name, "method", name)
		return Method{}, false
	}

	m := Method{Native: fn.Name, Name: name, ReturnType: fn.ReturnType}
	if override, ok := cfg.ReturnOverrides[fn.Name]; ok {
		m.ReturnType = override
	}
	for _, p := range fn.Params[1:] {
		if cfg.IsIndexName(p.Name) {
			p.Type = ctype.ReplaceToken(p.Type, "int", cfg.IndexType)
		}
		m.Params = append(m.Params, p)
	}
	return m, true
}

// baseName strips a named-variant suffix, longest suffix first.
func baseName(name string, variants []tables.NamedVariant) (string, bool) {
	suffixes := make([]string, 0, len(variants))
	for _, nv := range variants {
		suffixes = append(suffixes, nv.Suffix)
	}
	sort.Slice(suffixes, func(i, j int) bool { return len(suffixes[i]) > len(suffixes[j]) })

	for _, s := range suffixes {
		if strings.HasSuffix(name, s) {
			return strings.TrimSuffix(name, s), true
		}
	}
	return name, false
}
