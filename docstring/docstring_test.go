package docstring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teranos/bindgen/model"
)

func TestFormatDescription(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{"add a value", "Add a value."},
		{"already punctuated.", "Already punctuated."},
		{"  spread\n  over   lines ", "Spread over lines."},
		{"LinearEquation of the row", "LinearEquation of the row."},
		{"élan", "Élan."},
		{":math:`x` is kept", ":math:`x` is kept."},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDescription(tt.in))
		})
	}
}

func TestCallSignature(t *testing.T) {
	arg := func(name string) model.Argument { return model.Argument{Name: name} }

	tests := []struct {
		name string
		decl model.Declaration
		want string
	}{
		{"no arguments", model.Declaration{Name: "version"}, "version()"},
		{"required", model.Declaration{Name: "foo", Args: []model.Argument{arg("mdl"), arg("val")}}, "foo(mdl, val, /)"},
		{
			"optional",
			model.Declaration{Name: "add_vars", Args: []model.Argument{arg("mdl"), arg("size")}, OptionalArgs: []model.Argument{arg("name")}},
			"add_vars(mdl, size, name=None, /)",
		},
		{"only optional", model.Declaration{Name: "f", OptionalArgs: []model.Argument{arg("name")}}, "f(name=None, /)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CallSignature(tt.decl))
		})
	}
}

func fooDeclaration() model.Declaration {
	return model.Declaration{
		Name:       "foo",
		NativeName: "rhp_mdl_foo",
		Brief:      "add a foo",
		Args: []model.Argument{
			{Name: "mdl", Type: "Model", Description: "the model"},
			{Name: "val", Type: "float", Description: "the value"},
		},
		OptionalArgs: []model.Argument{
			{Name: "name", Type: "str", Description: "the name"},
		},
		Returns: []model.Return{
			{Name: "vi", Type: "VariableRef", Description: "the variable"},
			{Type: "int", Description: "count of things."},
		},
	}
}

func TestRender(t *testing.T) {
	want := "Add a foo.\n" +
		"\n" +
		"Parameters\n" +
		"----------\n" +
		"mdl : Model\n" +
		"    The model.\n" +
		"val : float\n" +
		"    The value.\n" +
		"name : str, optional\n" +
		"    The name.\n" +
		"\n" +
		"Returns\n" +
		"-------\n" +
		"vi : VariableRef\n" +
		"    The variable.\n" +
		"int\n" +
		"    Count of things.\n"

	assert.Equal(t, want, Render(fooDeclaration()))
}

func TestRender_BriefOnly(t *testing.T) {
	d := model.Declaration{Name: "version", Brief: "get the version", Detailed: "Some detail."}
	assert.Equal(t, "Get the version.\n\nSome detail.\n", Render(d))

	assert.Equal(t, "\n", Render(model.Declaration{Name: "bare"}))
}

func TestRender_Deterministic(t *testing.T) {
	d := fooDeclaration()
	first := Render(d)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Render(d))
	}
}

func TestMethod(t *testing.T) {
	got := Method(fooDeclaration(), []string{"rhp_mdl_", "rhp_mp_", "rhp_"})

	assert.Contains(t, got, "foo(val, name=None, /)\n--\n\nAdd a foo.\n")
	assert.NotContains(t, got, "mdl : Model")
	assert.Contains(t, got, "val : float\n")
}

func TestAutodoc(t *testing.T) {
	d := model.Declaration{Name: "version", Brief: "get the version"}
	assert.Equal(t, "version()\n--\n\nGet the version.\n", Autodoc(d))
}

func TestMerge(t *testing.T) {
	ei := model.Argument{Name: "ei", Type: "EquationRef or int", Description: "the equation"}
	set := model.MergedSignatureSet{
		Declaration: model.Declaration{
			Name:       "equ_addquad",
			NativeName: "rhp_equ_addquad",
			Brief:      "Add a quadratic term to an equation",
		},
		Signatures: []model.Declaration{
			{Name: "equ_addquadrelative", Brief: "relative", Args: []model.Argument{ei, {Name: "coeff", Type: "float", Description: "the coefficient"}}},
			{Name: "equ_addquadabsolute", Brief: "absolute", Args: []model.Argument{ei}},
		},
	}

	merged := Merge(set)

	wantNotes := "**Signature 1: `equ_addquad(ei, coeff)`**\n" +
		"Relative.\n" +
		"\n" +
		"Parameters\n" +
		"----------\n" +
		"ei : EquationRef or int\n" +
		"    The equation.\n" +
		"coeff : float\n" +
		"    The coefficient.\n" +
		"**Signature 2: `equ_addquad(ei)`**\n" +
		"Absolute.\n" +
		"\n" +
		"Parameters\n" +
		"----------\n" +
		"ei : EquationRef or int\n" +
		"    The equation.\n"
	assert.Equal(t, wantNotes, merged.Notes)
	assert.Equal(t, "Add a quadratic term to an equation.\n"+wantNotes+"\n", Render(merged))

	// the input set is left alone
	assert.Empty(t, set.Declaration.Notes)
}
