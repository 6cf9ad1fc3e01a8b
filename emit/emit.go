// Package emit writes the documentation artifacts of a resolved declaration
// set: SWIG autodoc directives, Python stubs and the per-object method
// docstring table.
package emit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/teranos/bindgen/binding"
	"github.com/teranos/bindgen/diag"
	"github.com/teranos/bindgen/docstring"
	"github.com/teranos/bindgen/errors"
)

// Artifact file names inside the output directory.
const (
	InterfaceFile      = "reshop_docs.i"
	StubFile           = "reshop_docs.py"
	MethodDocsFile     = "pyobj_methods_docstring.i"
	MethodDocsTemplate = "pyobj_methods_docstring.i.in"
)

// Generator names the tool in artifact headers.
const Generator = "bindgen docs"

// WriteInterface writes one autodoc directive per declaration, then one per
// merged signature set.
func WriteInterface(w io.Writer, res *binding.Resolution) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "// Generated by %s\n\n", Generator)

	for _, d := range res.Declarations {
		fmt.Fprintf(&sb, "%%feature(\"autodoc\", \"%s\") %s;\n", quote(docstring.Autodoc(d)), d.NativeName)
	}
	for _, set := range res.Merged {
		merged := docstring.Merge(set)
		fmt.Fprintf(&sb, "%%feature(\"autodoc\", \"%s\") %s;\n", quote(docstring.Render(merged)), merged.NativeName)
	}

	_, err := io.WriteString(w, sb.String())
	return errors.Wrap(err, "failed to write interface annotations")
}

// WriteStubs writes a Python stub per declaration carrying its docstring.
func WriteStubs(w io.Writer, res *binding.Resolution) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Generated by %s\n\n", Generator)

	for _, d := range res.Declarations {
		fmt.Fprintf(&sb, "def %s:\n", docstring.CallSignature(d))
		sb.WriteString("    r\"\"\"\n")
		sb.WriteString(docstring.Render(d))
		sb.WriteString("    \"\"\"\n\n")
	}

	_, err := io.WriteString(w, sb.String())
	return errors.Wrap(err, "failed to write stubs")
}

// MethodDocs maps each native name to its method docstring, as shown on the
// object the handle argument belongs to.
func MethodDocs(res *binding.Resolution, prefixes []string) map[string]string {
	docs := make(map[string]string, len(res.Declarations))
	for _, d := range res.Declarations {
		docs[d.NativeName] = docstring.Method(d, prefixes)
	}
	return docs
}

// WriteMethodDocs executes the method docstring template. The template
// calls {{doc "rhp_mdl_foo"}} to insert the method docstring of a native
// function; names without one insert nothing and are reported.
func WriteMethodDocs(w io.Writer, tmpl []byte, docs map[string]string, diags *diag.List) error {
	t, err := template.New(MethodDocsTemplate).
		Option("missingkey=error").
		Funcs(template.FuncMap{
			"doc": func(native string) string {
				d, ok := docs[native]
				if !ok {
					diags.Addf(diag.Consistency, native, "", "method docstring template references undocumented function %s", native)
					return ""
				}
				return quote(d)
			},
		}).
		Parse(string(tmpl))
	if err != nil {
		return errors.WithHint(
			errors.Wrap(err, "failed to parse method docstring template"),
			"insert docstrings with {{doc \"rhp_native_name\"}}")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "// Generated by %s\n\n", Generator)
	if err := t.Execute(&sb, nil); err != nil {
		return errors.Wrap(err, "failed to execute method docstring template")
	}

	_, err = io.WriteString(w, sb.String())
	return errors.Wrap(err, "failed to write method docstrings")
}

// quote escapes text for a double-quoted SWIG string. Backslashes are left
// alone: math markup already carries doubled ones.
func quote(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// WriteFile replaces path with whatever write produces. The content goes to
// a temporary file in the same directory first, so a failed write leaves
// the previous artifact in place.
func WriteFile(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create output directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(err, "failed to create temporary file for %s", path)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "failed to generate %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "failed to flush %s", path)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return errors.Wrapf(err, "failed to set permissions on %s", path)
	}
	return errors.Wrapf(os.Rename(tmp.Name(), path), "failed to replace %s", path)
}
