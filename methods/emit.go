package methods

import (
	"fmt"
	"io"
	"strings"

	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/tables"
)

// Artifact file names inside the output directory.
const (
	ExtensionFile = "pyobj_methods.i"
	RenameFile    = "rename_named.i"
)

// Generator names the tool in artifact headers.
const Generator = "bindgen methods"

// Defines lists the macro aliases that let SWIG reach a method through the
// object's accessor name when the native function is spelled differently.
func Defines(objs []ObjectMethods) []string {
	var defines []string
	for _, om := range objs {
		prefix := om.Object.AccessorPrefix()
		for _, m := range om.All() {
			if strings.HasPrefix(m.Native, prefix) {
				continue
			}
			defines = append(defines, fmt.Sprintf("#define %s%s %s", prefix, m.Name, m.Native))
		}
	}
	return defines
}

// WriteExtensions writes one %extend block per object, status methods
// first, followed by a %header block with the aliases when there are any.
func WriteExtensions(w io.Writer, objs []ObjectMethods, tb *tables.Tables) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "// Generated by %s\n\n", Generator)

	for _, om := range objs {
		fmt.Fprintf(&sb, "%%extend %s {\n", om.Object.CName)
		for _, m := range om.Status {
			args := m.Args()
			if args == "" {
				args = tb.Methods.NoArg
			}
			if _, named := baseName(m.Native, tb.NamedVariants); named {
				// the named variant is exposed under its base name
				call := "self"
				if names := m.ArgNames(); names != "" {
					call += ", " + names
				}
				short, _ := baseName(m.Name, tb.NamedVariants)
				fmt.Fprintf(&sb, "\t%s %s(%s) { return %s (%s); };\n", m.ReturnType, short, args, m.Native, call)
				continue
			}
			fmt.Fprintf(&sb, "\t%s %s(%s);\n", m.ReturnType, m.Name, args)
		}
		for _, m := range om.Value {
			args := m.Args()
			if args == "" {
				args = tb.Methods.NoArg
			}
			fmt.Fprintf(&sb, "\t%s %s(%s);\n", m.ReturnType, m.Name, args)
		}
		sb.WriteString("}\n")
	}

	if defines := Defines(objs); len(defines) > 0 {
		sb.WriteString("%header %{\n")
		for _, d := range defines {
			sb.WriteString(d + "\n")
		}
		sb.WriteString("%}\n")
	}

	_, err := io.WriteString(w, sb.String())
	return errors.Wrap(err, "failed to write object extensions")
}

// WriteRenames writes one %rename per named native function, exposing it
// under its public base name. Status methods of every object come first.
func WriteRenames(w io.Writer, objs []ObjectMethods, tb *tables.Tables) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "// Generated by %s\n\n", Generator)

	var ordered []Method
	for _, om := range objs {
		ordered = append(ordered, om.Status...)
	}
	for _, om := range objs {
		ordered = append(ordered, om.Value...)
	}

	seen := make(map[string]bool)
	for _, m := range ordered {
		base, named := baseName(m.Native, tb.NamedVariants)
		if !named || seen[m.Native] {
			continue
		}
		seen[m.Native] = true
		fmt.Fprintf(&sb, "%%rename(%s) %s;\n", tb.PublicName(base), m.Native)
	}

	_, err := io.WriteString(w, sb.String())
	return errors.Wrap(err, "failed to write renames")
}
