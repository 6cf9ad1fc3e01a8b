package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDirection(t *testing.T) {
	assert.Equal(t, DirectionIn, ParseDirection("in"))
	assert.Equal(t, DirectionOut, ParseDirection(" out "))
	assert.Equal(t, DirectionIn, ParseDirection("inout"))
	assert.Equal(t, DirectionUnspecified, ParseDirection(""))
	assert.Equal(t, DirectionUnspecified, ParseDirection("sideways"))
}

func TestDeclarationMethod(t *testing.T) {
	d := Declaration{
		Name:       "mdl_setobjvar",
		NativeName: "rhp_mdl_setobjvar",
		Args: []Argument{
			{Name: "mdl", Type: "Model"},
			{Name: "vi", Type: "VariableRef or int"},
		},
	}

	m := d.Method([]string{"rhp_mdl_", "rhp_mp_", "rhp_"})

	assert.Equal(t, "setobjvar", m.Name)
	assert.Equal(t, []Argument{{Name: "vi", Type: "VariableRef or int"}}, m.Args)
	// the original declaration keeps its handle
	assert.Len(t, d.Args, 2)
	assert.Equal(t, "mdl_setobjvar", d.Name)
}

func TestDeclarationMethod_PrefixesTrimmedInOrder(t *testing.T) {
	d := Declaration{NativeName: "rhp_add_vars"}
	assert.Equal(t, "add_vars", d.Method([]string{"rhp_mdl_", "rhp_mp_", "rhp_"}).Name)

	// only leading occurrences are removed
	d = Declaration{NativeName: "rhp_mp_rhp_x"}
	assert.Equal(t, "rhp_x", d.Method([]string{"rhp_mp_"}).Name)
}

func TestDeclarationMethod_NoArgs(t *testing.T) {
	m := Declaration{NativeName: "rhp_version"}.Method([]string{"rhp_"})
	assert.Empty(t, m.Args)
	assert.Equal(t, "version", m.Name)
}
