package clangast

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/model"
)

func TestReturnType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"int (struct rhp_mdl *, unsigned int)", "int"},
		{"const char *(const struct rhp_mdl *)", "const char *"},
		{"unsigned int (void)", "unsigned int"},
		{"double", "double"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ReturnType(tt.in), tt.in)
	}
}

func TestLoad_Functions(t *testing.T) {
	root, err := Load(filepath.Join("testdata", "reshop_ast.json"))
	require.NoError(t, err)
	assert.Equal(t, "TranslationUnitDecl", root.Kind)

	fns := Functions(root)

	var names []string
	for _, fn := range fns {
		names = append(names, fn.Name)
	}
	// implicit and non-function nodes are skipped, the redeclaration of
	// rhp_add_vars is reported once
	assert.Equal(t, []string{
		"rhp_version",
		"rhp_mdl_free",
		"rhp_mdl_getobjequ",
		"rhp_add_vars",
		"rhp_add_varsnamed",
		"rhp_mdl_getname",
		"rhp_mdl_print",
		"rhp_mdl_getvarbyname",
		"rhp_mp_setobjvar",
		"rhp_mathprgm_getobjequ",
		"rhp_mp_addvars_named",
		"rhp_mp_free",
		"rhp_nash_getnumchildren",
		"rhp_solve",
		"rhp_set_option_d",
		"rhp_print_banner",
	}, names)

	assert.Equal(t, model.RawFunction{
		Name:       "rhp_add_vars",
		ReturnType: "int",
		Params: []model.RawParameter{
			{Name: "mdl", Type: "struct rhp_mdl *"},
			{Name: "size", Type: "unsigned int"},
		},
	}, fns[3])

	assert.Empty(t, fns[0].Params)
	assert.Equal(t, "const char *", fns[0].ReturnType)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"kind": `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode AST dump")

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.IsMissingInputError(err))
}
