// Package tables holds the static lookup tables that drive classification,
// type mapping, overload resolution and method mining.
//
// The defaults are compiled into the binary from tables.toml. A replacement
// file can be loaded for table maintenance; either way the result is
// validated and then treated as immutable.
package tables

import (
	"bytes"
	_ "embed"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/teranos/bindgen/ctype"
	"github.com/teranos/bindgen/errors"
)

//go:embed tables.toml
var defaultTOML []byte

// Roles a name rule can apply to.
const (
	RoleArgument = "argument"
	RoleOutput   = "output"
)

// What an unlisted name does under a name rule.
const (
	OnUnknownError = "error"
	OnUnknownTable = "table"
)

// Signature is a normalized (type, name) parameter shape.
type Signature struct {
	Type string `toml:"type"`
	Name string `toml:"name"`
}

// Group registers a grouped output: a head parameter followed by the exact
// member parameters, surfaced as one return value.
type Group struct {
	Head              Signature   `toml:"head"`
	Members           []Signature `toml:"members"`
	ReturnType        string      `toml:"return_type"`
	ReturnDescription string      `toml:"return_description"`
}

// TypeTables are the plain lookup tables, one per mapping role.
type TypeTables struct {
	Argument map[string]string `toml:"argument"`
	Output   map[string]string `toml:"output"`
	Return   map[string]string `toml:"return"`
}

// NameRule maps a type to binding types depending on the argument name.
type NameRule struct {
	Role      string            `toml:"role"`
	Types     []string          `toml:"types"`
	OnUnknown string            `toml:"on_unknown"`
	Names     map[string]string `toml:"names"`
}

// ReturnRule disambiguates a return type by a keyword in its description.
type ReturnRule struct {
	Type    string `toml:"type"`
	Keyword string `toml:"keyword"`
	Binding string `toml:"binding"`
}

// NamedVariant is a naming pattern for functions taking an extra name.
type NamedVariant struct {
	Suffix   string   `toml:"suffix"`
	Optional []string `toml:"optional"`
}

// MergeGroup documents several native functions as one public call.
type MergeGroup struct {
	Name     string   `toml:"name"`
	Brief    string   `toml:"brief"`
	Detailed string   `toml:"detailed,omitempty"`
	Sources  []string `toml:"sources"`
}

// ParamAlias supplies the declaration of a documented parameter name that
// has no declared counterpart.
type ParamAlias struct {
	DocName     string `toml:"doc_name"`
	Name        string `toml:"name"`
	Type        string `toml:"type"`
	Description string `toml:"description"`
}

// Object is one native handle type the method miner extends.
type Object struct {
	Name     string   `toml:"name"`
	CName    string   `toml:"cname"`
	Prefixes []string `toml:"prefixes"`
	Ignore   []string `toml:"ignore"`
}

// Methods configures the AST method miner.
type Methods struct {
	Skip            []string          `toml:"skip"`
	IndexType       string            `toml:"index_type"`
	IndexNames      []string          `toml:"index_names"`
	StatusType      string            `toml:"status_type"`
	NoArg           string            `toml:"noarg"`
	ReturnOverrides map[string]string `toml:"return_overrides"`
	Objects         []Object          `toml:"objects"`
}

// Tables is the full set of static configuration.
type Tables struct {
	PublicPrefix     string         `toml:"public_prefix"`
	MethodPrefixes   []string       `toml:"method_prefixes"`
	StatusReturns    []string       `toml:"status_returns"`
	VoidReturns      []string       `toml:"void_returns"`
	Ignore           []string       `toml:"ignore"`
	OutputNames      []string       `toml:"output_names"`
	OutputSignatures []Signature    `toml:"output_signatures"`
	Groups           []Group        `toml:"groups"`
	Types            TypeTables     `toml:"types"`
	NameRules        []NameRule     `toml:"name_rules"`
	ReturnRules      []ReturnRule   `toml:"return_rules"`
	NamedVariants    []NamedVariant `toml:"named_variants"`
	Merge            []MergeGroup   `toml:"merge"`
	ParamAliases     []ParamAlias   `toml:"param_aliases"`
	Methods          Methods        `toml:"methods"`

	source       string
	ignore       map[string]bool
	outputNames  map[string]bool
	outputSigs   map[Signature]bool
	groupsByHead map[Signature][]Group
	aliases      map[string]ParamAlias
}

// Default returns the embedded tables.
func Default() (*Tables, error) {
	return Parse(defaultTOML, "embedded tables.toml")
}

// Load returns the tables at path, or the embedded ones when path is empty.
func Load(path string) (*Tables, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapMissingInput(err, path)
	}
	return Parse(data, path)
}

// Parse decodes and validates a tables document. Unknown keys are rejected
// so a typo in a maintained file does not silently drop a table.
func Parse(data []byte, source string) (*Tables, error) {
	var t Tables
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&t)
	if err != nil {
		return nil, errors.Wrapf(errors.Wrap(errors.ErrInvalidTables, err.Error()), "failed to decode %s", source)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.WithHint(
			errors.NewInvalidTablesError("unknown keys in %s: %s", source, strings.Join(keys, ", ")),
			"run 'bindgen tables' to print the expected layout")
	}

	t.source = source
	if err := t.Validate(); err != nil {
		return nil, err
	}
	t.index()
	return &t, nil
}

// Source names where the tables were read from.
func (t *Tables) Source() string { return t.source }

// WithIgnored returns a copy of t whose ignore list is extended by names.
func (t *Tables) WithIgnored(names []string) *Tables {
	c := *t
	c.Ignore = append(append([]string(nil), t.Ignore...), names...)
	c.index()
	return &c
}

func (t *Tables) index() {
	t.ignore = toSet(t.Ignore)
	t.outputNames = toSet(t.OutputNames)

	t.outputSigs = make(map[Signature]bool, len(t.OutputSignatures))
	for _, s := range t.OutputSignatures {
		t.outputSigs[s] = true
	}

	t.groupsByHead = make(map[Signature][]Group)
	for _, g := range t.Groups {
		t.groupsByHead[g.Head] = append(t.groupsByHead[g.Head], g)
	}

	t.aliases = make(map[string]ParamAlias, len(t.ParamAliases))
	for _, a := range t.ParamAliases {
		t.aliases[a.DocName] = a
	}
}

// IsIgnored reports whether the native function is excluded from generation.
func (t *Tables) IsIgnored(native string) bool { return t.ignore[native] }

// IsOutputName reports whether name is always an output.
func (t *Tables) IsOutputName(name string) bool { return t.outputNames[name] }

// IsOutputSignature reports whether the (normalized type, name) pair is an output.
func (t *Tables) IsOutputSignature(typ, name string) bool {
	return t.outputSigs[Signature{Type: typ, Name: name}]
}

// GroupsFor returns the grouped outputs headed by (normalized type, name),
// in table order.
func (t *Tables) GroupsFor(typ, name string) []Group {
	return t.groupsByHead[Signature{Type: typ, Name: name}]
}

// Alias returns the alias registered for a documented parameter name.
func (t *Tables) Alias(docName string) (ParamAlias, bool) {
	a, ok := t.aliases[docName]
	return a, ok
}

// NameRule returns the first name rule for role that covers typ.
func (t *Tables) NameRule(role, typ string) (NameRule, bool) {
	for _, r := range t.NameRules {
		if r.Role != role {
			continue
		}
		for _, rt := range r.Types {
			if rt == typ {
				return r, true
			}
		}
	}
	return NameRule{}, false
}

// ReturnRulesFor returns the keyword rules for a return type, in table order.
func (t *Tables) ReturnRulesFor(typ string) []ReturnRule {
	var out []ReturnRule
	for _, r := range t.ReturnRules {
		if r.Type == typ {
			out = append(out, r)
		}
	}
	return out
}

// IsStatusReturn reports whether a normalized return type is a status code.
func (t *Tables) IsStatusReturn(typ string) bool { return contains(t.StatusReturns, typ) }

// IsVoidReturn reports whether a normalized return type carries no value.
func (t *Tables) IsVoidReturn(typ string) bool { return contains(t.VoidReturns, typ) }

// PublicName strips the native prefix from a function name.
func (t *Tables) PublicName(native string) string {
	return strings.TrimPrefix(native, t.PublicPrefix)
}

// NativeName restores the native prefix of a public name.
func (t *Tables) NativeName(public string) string {
	return t.PublicPrefix + public
}

// IsIndexName reports whether the miner treats a parameter name as an index.
func (m Methods) IsIndexName(name string) bool { return contains(m.IndexNames, name) }

// IsSkipped reports whether a method name is never emitted.
func (m Methods) IsSkipped(method string) bool { return contains(m.Skip, method) }

// Ignores reports whether the object excludes a native function.
func (o Object) Ignores(native string) bool { return contains(o.Ignore, native) }

// AccessorPrefix is the prefix of the accessor names the binding generates
// for the object's methods ("struct rhp_mdl" -> "rhp_mdl_").
func (o Object) AccessorPrefix() string {
	return strings.TrimPrefix(o.CName, "struct ") + "_"
}

// MethodName strips the object's prefixes from a native name, in order. A
// native name already spelled with the accessor prefix only loses that.
func (o Object) MethodName(native string) string {
	if ap := o.AccessorPrefix(); strings.HasPrefix(native, ap) {
		return strings.TrimPrefix(native, ap)
	}
	name := native
	for _, p := range o.Prefixes {
		name = strings.TrimPrefix(name, p)
	}
	return name
}

// IndexDrift lists miner index names that no argument name rule for the
// miner's index type knows. The two pipelines recognize index parameters
// independently; a non-empty result means they have drifted apart.
func (t *Tables) IndexDrift() []string {
	rule, ok := t.NameRule(RoleArgument, t.Methods.IndexType)
	var drift []string
	for _, n := range t.Methods.IndexNames {
		if !ok {
			drift = append(drift, n)
			continue
		}
		if _, known := rule.Names[n]; !known {
			drift = append(drift, n)
		}
	}
	sort.Strings(drift)
	return drift
}

// Validate checks the tables for structural problems. Type keys that are not
// in normalized form are assertion failures: lookups are always made with
// normalized types, so such an entry could never match.
func (t *Tables) Validate() error {
	for _, typ := range t.typeKeys() {
		if norm := ctype.Normalize(typ); norm != typ {
			return errors.WithHintf(
				errors.AssertionFailedf("type key %q in %s is not normalized", typ, t.source),
				"write it as %q", norm)
		}
	}

	if t.PublicPrefix == "" {
		return errors.NewInvalidTablesError("%s: public_prefix is empty", t.source)
	}
	for _, r := range t.NameRules {
		if r.Role != RoleArgument && r.Role != RoleOutput {
			return errors.NewInvalidTablesError("%s: name rule for %v has unknown role %q", t.source, r.Types, r.Role)
		}
		if r.OnUnknown != OnUnknownError && r.OnUnknown != OnUnknownTable {
			return errors.NewInvalidTablesError("%s: name rule for %v has unknown on_unknown %q", t.source, r.Types, r.OnUnknown)
		}
	}
	for _, g := range t.Groups {
		if len(g.Members) == 0 {
			return errors.NewInvalidTablesError("%s: grouped output headed by %q has no members", t.source, g.Head.Name)
		}
	}
	for _, v := range t.NamedVariants {
		if v.Suffix == "" {
			return errors.NewInvalidTablesError("%s: named variant with empty suffix", t.source)
		}
	}
	for _, m := range t.Merge {
		if len(m.Sources) == 0 {
			return errors.NewInvalidTablesError("%s: merge group %q lists no sources", t.source, m.Name)
		}
	}
	for _, o := range t.Methods.Objects {
		if o.CName == "" {
			return errors.NewInvalidTablesError("%s: method object %q has no cname", t.source, o.Name)
		}
	}
	return nil
}

func (t *Tables) typeKeys() []string {
	var keys []string
	keys = append(keys, t.StatusReturns...)
	keys = append(keys, t.VoidReturns...)
	for _, s := range t.OutputSignatures {
		keys = append(keys, s.Type)
	}
	for _, g := range t.Groups {
		keys = append(keys, g.Head.Type)
		for _, m := range g.Members {
			keys = append(keys, m.Type)
		}
	}
	for _, m := range []map[string]string{t.Types.Argument, t.Types.Output, t.Types.Return} {
		for k := range m {
			keys = append(keys, k)
		}
	}
	for _, r := range t.NameRules {
		keys = append(keys, r.Types...)
	}
	for _, r := range t.ReturnRules {
		keys = append(keys, r.Type)
	}
	for _, a := range t.ParamAliases {
		keys = append(keys, a.Type)
	}
	sort.Strings(keys)
	return keys
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return set
}

func contains(items []string, s string) bool {
	for _, it := range items {
		if it == s {
			return true
		}
	}
	return false
}
