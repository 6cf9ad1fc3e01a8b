package binding

import (
	"strings"

	"github.com/teranos/bindgen/diag"
	"github.com/teranos/bindgen/logger"
	"github.com/teranos/bindgen/model"
	"github.com/teranos/bindgen/tables"
)

// Resolution is the resolved declaration set of one run.
type Resolution struct {
	// Declarations are in input order, a folded variant taking its base's
	// position. Public names are unique.
	Declarations []model.Declaration
	Groups       []model.OverloadGroup
	Merged       []model.MergedSignatureSet
}

// Lookup returns the declaration with the given public name.
func (r *Resolution) Lookup(name string) (model.Declaration, bool) {
	for _, d := range r.Declarations {
		if d.Name == name {
			return d, true
		}
	}
	return model.Declaration{}, false
}

// Folded reports whether a native name was folded into its base.
func (r *Resolution) Folded(native string) bool {
	for _, g := range r.Groups {
		for _, v := range g.Variants {
			if v == native {
				return true
			}
		}
	}
	return false
}

// Resolver builds the whole declaration set, folding named variants into
// their base and assembling merge groups.
type Resolver struct {
	tables  *tables.Tables
	builder *Builder
}

// NewResolver returns a resolver over tb.
func NewResolver(tb *tables.Tables) *Resolver {
	return &Resolver{tables: tb, builder: NewBuilder(tb)}
}

// Resolve processes fns in order. Ignored functions are dropped; a named
// variant replaces its base, with the variant's naming parameters moved to
// the optional arguments; merge groups whose sources are all present are
// appended to Merged.
func (r *Resolver) Resolve(fns []model.RawFunction, diags *diag.List) *Resolution {
	byName := make(map[string]model.RawFunction, len(fns))
	for _, fn := range fns {
		byName[fn.Name] = fn
	}

	res := &Resolution{}
	for _, fn := range fns {
		if r.isVariant(fn.Name, byName) || r.tables.IsIgnored(fn.Name) {
			continue
		}

		variant, nv, ok := r.findVariant(fn.Name, byName)
		if !ok {
			res.Declarations = append(res.Declarations, r.builder.Build(fn, diags))
			continue
		}

		decl := r.fold(fn.Name, variant, nv, diags)
		res.Declarations = append(res.Declarations, decl)
		res.Groups = append(res.Groups, model.OverloadGroup{
			Base:           fn.Name,
			Variants:       []string{variant.Name},
			OptionalParams: optionalNames(decl),
		})
		r.builder.log.Debugw("folded named variant", logger.FieldFunction, fn.Name, "variant", variant.Name)
	}

	for _, mg := range r.tables.Merge {
		if set, ok := r.merge(mg, byName, res, diags); ok {
			res.Merged = append(res.Merged, set)
		}
	}
	return res
}

// findVariant tests the naming patterns in table order.
func (r *Resolver) findVariant(base string, byName map[string]model.RawFunction) (model.RawFunction, tables.NamedVariant, bool) {
	for _, nv := range r.tables.NamedVariants {
		if v, ok := byName[base+nv.Suffix]; ok {
			return v, nv, true
		}
	}
	return model.RawFunction{}, tables.NamedVariant{}, false
}

// isVariant reports whether name is the named variant of a function in the set.
func (r *Resolver) isVariant(name string, byName map[string]model.RawFunction) bool {
	for _, nv := range r.tables.NamedVariants {
		if !strings.HasSuffix(name, nv.Suffix) {
			continue
		}
		base := strings.TrimSuffix(name, nv.Suffix)
		if _, ok := byName[base]; !ok {
			continue
		}
		// the base must pick this very function, not an earlier pattern
		if v, _, ok := r.findVariant(base, byName); ok && v.Name == name {
			return true
		}
	}
	return false
}

// fold builds the variant and presents it under the base's name.
func (r *Resolver) fold(base string, variant model.RawFunction, nv tables.NamedVariant, diags *diag.List) model.Declaration {
	decl := r.builder.Build(variant, diags)
	decl.Name = r.tables.PublicName(base)
	decl.NativeName = base

	var optional []model.Argument
	for _, want := range nv.Optional {
		for i, arg := range decl.Args {
			if arg.Name == want {
				optional = append(optional, arg)
				decl.Args = append(decl.Args[:i:i], decl.Args[i+1:]...)
				break
			}
		}
	}
	if len(optional) != len(nv.Optional) {
		diags.Addf(diag.Consistency, variant.Name, "",
			"expected %d optional argument(s) %v, but only found %d", len(nv.Optional), nv.Optional, len(optional))
	}
	decl.OptionalArgs = append(decl.OptionalArgs, optional...)
	return decl
}

func (r *Resolver) merge(mg tables.MergeGroup, byName map[string]model.RawFunction, res *Resolution, diags *diag.List) (model.MergedSignatureSet, bool) {
	native := r.tables.NativeName(mg.Name)
	if _, taken := res.Lookup(mg.Name); taken {
		diags.Addf(diag.Consistency, native, "", "merge group %s collides with a documented function", mg.Name)
		return model.MergedSignatureSet{}, false
	}

	set := model.MergedSignatureSet{
		Declaration: model.Declaration{
			Name:       mg.Name,
			NativeName: native,
			Brief:      mg.Brief,
			Detailed:   mg.Detailed,
		},
	}
	for _, src := range mg.Sources {
		fn, ok := byName[src]
		if !ok {
			diags.Addf(diag.Consistency, native, "", "merge group %s: source %s is not documented", mg.Name, src)
			return model.MergedSignatureSet{}, false
		}
		set.Sources = append(set.Sources, fn)
		set.Signatures = append(set.Signatures, r.builder.Build(fn, &diag.List{}))
	}
	return set, true
}

func optionalNames(d model.Declaration) []string {
	names := make([]string, 0, len(d.OptionalArgs))
	for _, a := range d.OptionalArgs {
		names = append(names, a.Name)
	}
	return names
}
