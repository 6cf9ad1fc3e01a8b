// Package clangast reads a clang -ast-dump=json translation unit into the
// shared declaration model.
package clangast

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/model"
)

// Node kinds the adapter looks at.
const (
	KindFunctionDecl = "FunctionDecl"
	KindParmVarDecl  = "ParmVarDecl"
)

// Node is a clang AST node, reduced to the fields the generators use.
type Node struct {
	Kind       string `json:"kind"`
	Name       string `json:"name,omitempty"`
	IsImplicit bool   `json:"isImplicit,omitempty"`
	Type       *Type  `json:"type,omitempty"`
	Inner      []Node `json:"inner,omitempty"`
}

// Type carries clang's spelled type.
type Type struct {
	QualType string `json:"qualType"`
}

func (n Node) qualType() string {
	if n.Type == nil {
		return ""
	}
	return n.Type.QualType
}

// Decode reads a JSON AST dump.
func Decode(r io.Reader) (*Node, error) {
	var root Node
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, errors.Wrap(err, "failed to decode AST dump")
	}
	return &root, nil
}

// Load reads the AST dump at path.
func Load(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapMissingInput(err, path)
	}
	defer f.Close()

	root, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "in %s", path)
	}
	return root, nil
}

// Functions returns the top-level function declarations in dump order.
// A function declared more than once is reported at its first declaration;
// implicit declarations are skipped.
func Functions(root *Node) []model.RawFunction {
	seen := make(map[string]bool)
	var fns []model.RawFunction
	for _, decl := range root.Inner {
		if decl.Kind != KindFunctionDecl || decl.IsImplicit || seen[decl.Name] {
			continue
		}
		seen[decl.Name] = true
		fns = append(fns, Function(decl))
	}
	return fns
}

// Function converts one FunctionDecl node. Directions are unspecified: the
// AST carries none.
func Function(decl Node) model.RawFunction {
	fn := model.RawFunction{
		Name:       decl.Name,
		ReturnType: ReturnType(decl.qualType()),
	}
	for _, child := range decl.Inner {
		if child.Kind != KindParmVarDecl {
			continue
		}
		fn.Params = append(fn.Params, model.RawParameter{
			Name: child.Name,
			Type: child.qualType(),
		})
	}
	return fn
}

// ReturnType extracts the return type from a function's qualType
// ("int (struct rhp_mdl *, unsigned int)" -> "int").
func ReturnType(qualType string) string {
	if i := strings.Index(qualType, "("); i >= 0 {
		qualType = qualType[:i]
	}
	return strings.TrimSpace(qualType)
}
