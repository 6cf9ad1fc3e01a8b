// Package doxygen reads the Doxygen XML output of the native API into the
// shared declaration model.
//
// Two documents matter: the file document of the public header, whose
// function members form the public name set, and the public API group
// document, which carries the documented functions.
package doxygen

import (
	"encoding/xml"
	"io"
	"os"
	"path/filepath"

	"github.com/teranos/bindgen/diag"
	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/logger"
	"github.com/teranos/bindgen/model"
	"github.com/teranos/bindgen/tables"
)

// Defaults for Options.
const (
	DefaultHeader = "reshop.h"
	DefaultGroup  = "group__publicAPI.xml"
)

// Options locates the documents next to the index.
type Options struct {
	// Header is the compound name of the public header in the index.
	Header string
	// Group is the file name of the public API group document.
	Group string
}

func (o Options) withDefaults() Options {
	if o.Header == "" {
		o.Header = DefaultHeader
	}
	if o.Group == "" {
		o.Group = DefaultGroup
	}
	return o
}

// Aliases resolves documented parameter names that have no declared
// counterpart.
type Aliases interface {
	Alias(docName string) (tables.ParamAlias, bool)
}

// Source is everything read from one Doxygen run.
type Source struct {
	// Public lists the functions of the public header, in document order.
	Public []string
	// Functions are the documented functions, in document order.
	Functions []model.RawFunction
}

// Load reads the index at indexPath and the documents it leads to.
func Load(indexPath string, opts Options, aliases Aliases, diags *diag.List) (*Source, error) {
	opts = opts.withDefaults()
	dir := filepath.Dir(indexPath)
	log := logger.ComponentLogger("doxygen")

	var idx Index
	if err := decodeFile(indexPath, &idx); err != nil {
		return nil, err
	}

	header, ok := findFileCompound(idx, opts.Header)
	if !ok {
		return nil, errors.WithHintf(
			errors.Newf("no file compound named %s in %s", opts.Header, indexPath),
			"check that %s is listed in the Doxygen INPUT", opts.Header)
	}

	var headerDoc Document
	headerPath := filepath.Join(dir, header.RefID+".xml")
	if err := decodeFile(headerPath, &headerDoc); err != nil {
		return nil, err
	}
	public := PublicFunctions(headerDoc)
	if len(public) == 0 {
		diags.Addf(diag.Consistency, "", "", "could not get any function in %s", headerPath)
	}
	log.Infow("read public header", logger.FieldFile, headerPath, logger.FieldCount, len(public))

	var group Document
	groupPath := filepath.Join(dir, opts.Group)
	if err := decodeFile(groupPath, &group); err != nil {
		return nil, err
	}
	fns := Functions(group, aliases, diags)
	log.Infow("read public API group", logger.FieldFile, groupPath, logger.FieldCount, len(fns))

	return &Source{Public: public, Functions: fns}, nil
}

// Decode reads one Doxygen XML document into v.
func Decode(r io.Reader, v interface{}) error {
	return xml.NewDecoder(r).Decode(v)
}

func decodeFile(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.WrapMissingInput(err, path)
	}
	defer f.Close()
	if err := Decode(f, v); err != nil {
		return errors.Wrapf(err, "failed to parse %s", path)
	}
	return nil
}

func findFileCompound(idx Index, name string) (Compound, bool) {
	for _, c := range idx.Compounds {
		if c.Kind == "file" && c.Name == name {
			return c, true
		}
	}
	return Compound{}, false
}

// PublicFunctions lists the function members of a file document, defined
// ones first within each section, then references.
func PublicFunctions(doc Document) []string {
	var names []string
	for _, c := range doc.Compounds {
		for _, s := range c.Sections {
			for _, m := range s.MemberDefs {
				if m.Kind == "function" {
					names = append(names, m.Name)
				}
			}
			for _, m := range s.Members {
				if m.Kind == "function" {
					names = append(names, m.Name)
				}
			}
		}
	}
	return names
}

// Functions converts the documented functions of a group document.
func Functions(doc Document, aliases Aliases, diags *diag.List) []model.RawFunction {
	var fns []model.RawFunction
	for _, c := range doc.Compounds {
		for _, s := range c.Sections {
			if s.Kind != "func" {
				continue
			}
			for _, m := range s.MemberDefs {
				if m.Kind != "function" {
					continue
				}
				fns = append(fns, Function(m, aliases, diags))
			}
		}
	}
	return fns
}

// Function converts one documented function.
func Function(m MemberDef, aliases Aliases, diags *diag.List) model.RawFunction {
	name := collapse(m.Name)
	brief := m.Brief.First()
	detailed := m.Detailed.First()

	fn := model.RawFunction{
		Name:       name,
		Brief:      brief.Text,
		Detailed:   detailed.Text,
		ReturnType: m.Type.Text,
	}
	reportMarkup(diags, name, m.Type, brief, detailed)

	if ret, ok := returnPara(m.Detailed); ok {
		fn.ReturnDescription = ret.Text
		reportMarkup(diags, name, ret)
	}

	for _, para := range m.Detailed.Paras {
		for _, pl := range para.ParameterLists {
			if pl.Kind != "" && pl.Kind != "param" {
				continue
			}
			for _, item := range pl.Items {
				fn.Params = append(fn.Params, parameters(m, item, aliases, diags)...)
			}
		}
	}
	return fn
}

func parameters(m MemberDef, item ParameterItem, aliases Aliases, diags *diag.List) []model.RawParameter {
	fn := collapse(m.Name)
	descr := item.Description.First()
	reportMarkup(diags, fn, descr)

	var out []model.RawParameter
	for _, pn := range item.Names {
		name := collapse(pn.Name)
		if name == "" {
			diags.Addf(diag.MissingType, fn, "", "missing argument name")
			continue
		}
		p := model.RawParameter{
			Name:        name,
			Direction:   model.ParseDirection(pn.Direction),
			Description: descr.Text,
		}
		if decl, ok := findParam(m, name); ok {
			p.Type = decl.Type.Text
		} else if alias, ok := aliases.Alias(name); ok {
			p.Name = alias.Name
			p.Type = alias.Type
			p.Description = alias.Description
		} else {
			diags.Addf(diag.MissingType, fn, name, "could not find type for parameter %s", name)
		}
		out = append(out, p)
	}
	return out
}

func findParam(m MemberDef, name string) (Param, bool) {
	for _, p := range m.Params {
		if collapse(p.DeclName) == name {
			return p, true
		}
	}
	return Param{}, false
}

// returnPara finds the first paragraph of the first return section.
func returnPara(d Description) (Markup, bool) {
	for _, para := range d.Paras {
		for _, ss := range para.SimpleSects {
			if ss.Kind == "return" && len(ss.Paras) > 0 {
				return ss.Paras[0], true
			}
		}
	}
	return Markup{}, false
}

func reportMarkup(diags *diag.List, fn string, ms ...Markup) {
	for _, m := range ms {
		for _, tag := range m.Unhandled {
			diags.Addf(diag.UnhandledMarkup, fn, "", "unhandled tag %s", tag)
		}
	}
}
