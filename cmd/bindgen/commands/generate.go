package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/bindgen/gen"
)

// DocsCmd runs the docstring pipeline
var DocsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Generate docstrings from Doxygen XML",
	Long: `Generate docstring artifacts from the Doxygen XML of the public API.

Writes into the output directory:
  reshop_docs.i               - SWIG autodoc features, one per function
  reshop_docs.py              - Python stubs carrying the same docstrings
  pyobj_methods_docstring.i   - method docstrings, from pyobj_methods_docstring.i.in

Examples:
  bindgen docs --index build/xml/index.xml
  bindgen docs -vv --report diagnostics.yaml`,
	RunE: generate((*gen.Generator).Docs),
}

// MethodsCmd runs the method miner
var MethodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "Generate object methods from a clang AST dump",
	Long: `Generate SWIG %extend blocks from a clang -ast-dump=json of reshop.h.

Writes into the output directory:
  pyobj_methods.i    - %extend blocks for Model, MathPrgm and NashEquilibrium
  rename_named.i     - %rename directives folding the named variants

Examples:
  clang -Xclang -ast-dump=json -fsyntax-only reshop.h > reshop_ast.json
  bindgen methods --ast reshop_ast.json`,
	RunE: generate((*gen.Generator).Methods),
}

// AllCmd runs every configured generator
var AllCmd = &cobra.Command{
	Use:   "all",
	Short: "Run every configured generator",
	RunE:  generate((*gen.Generator).All),
}
