package methods

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/bindgen/clangast"
	"github.com/teranos/bindgen/model"
	"github.com/teranos/bindgen/tables"
)

func mine(t *testing.T) ([]ObjectMethods, *tables.Tables) {
	t.Helper()
	tb, err := tables.Default()
	require.NoError(t, err)

	root, err := clangast.Load(filepath.Join("..", "clangast", "testdata", "reshop_ast.json"))
	require.NoError(t, err)

	return NewMiner(tb).Mine(clangast.Functions(root)), tb
}

func names(ms []Method) []string {
	var out []string
	for _, m := range ms {
		out = append(out, m.Name)
	}
	return out
}

func TestMine_Partitions(t *testing.T) {
	objs, _ := mine(t)
	require.Len(t, objs, 3)

	mdl := objs[0]
	assert.Equal(t, "Model", mdl.Object.Name)
	// free is ignored, print and solve are skipped
	assert.Equal(t, []string{"getobjequ", "add_vars", "add_varsnamed", "getvarbyname", "set_option_d"}, names(mdl.Status))
	assert.Equal(t, []string{"getname"}, names(mdl.Value))

	mp := objs[1]
	assert.Equal(t, []string{"setobjvar", "addvars_named"}, names(mp.Status))
	assert.Equal(t, []string{"getobjequ"}, names(mp.Value))
	assert.Equal(t, "rhp_idx", mp.Value[0].ReturnType, "return override")

	nash := objs[2]
	assert.Empty(t, nash.Status)
	assert.Equal(t, []string{"getnumchildren"}, names(nash.Value))
}

func TestMine_IndexReinjection(t *testing.T) {
	objs, _ := mine(t)

	getvar := objs[0].Status[3]
	assert.Equal(t, "rhp_mdl_getvarbyname", getvar.Native)
	assert.Equal(t, []model.RawParameter{
		{Name: "name", Type: "const char *"},
		{Name: "vi", Type: "rhp_idx *"},
	}, getvar.Params)
	assert.Equal(t, "const char * name, rhp_idx * vi", getvar.Args())
	assert.Equal(t, "name, vi", getvar.ArgNames())

	setobjvar := objs[1].Status[0]
	assert.Equal(t, "rhp_idx objvar", setobjvar.Args())
}

func TestMine_HandleMatching(t *testing.T) {
	tb, err := tables.Default()
	require.NoError(t, err)

	fns := []model.RawFunction{
		{Name: "rhp_print_banner", ReturnType: "void", Params: []model.RawParameter{{Name: "level", Type: "int"}}},
		{Name: "rhp_version", ReturnType: "const char *"},
		{Name: "rhp_mdl_getcount", ReturnType: "unsigned int", Params: []model.RawParameter{{Name: "mdl", Type: "const struct rhp_mdl *restrict"}}},
	}
	objs := NewMiner(tb).Mine(fns)

	assert.Empty(t, objs[0].Status)
	require.Len(t, objs[0].Value, 1)
	assert.Equal(t, "getcount", objs[0].Value[0].Name)
	assert.Empty(t, objs[0].Value[0].Params)
}

const wantExtensions = `// Generated by bindgen methods

%extend struct rhp_mdl {
	int getobjequ(rhp_idx * objequ);
	int add_vars(unsigned int size);
	int add_vars(unsigned int size, const char * name) { return rhp_add_varsnamed (self, size, name); };
	int getvarbyname(const char * name, rhp_idx * vi);
	int set_option_d(const char * optname, double optval);
	const char * getname(void);
}
%extend struct rhp_mathprgm {
	int setobjvar(rhp_idx objvar);
	int addvars(unsigned int n, const char * name) { return rhp_mp_addvars_named (self, n, name); };
	rhp_idx getobjequ(void);
}
%extend struct rhp_nash_equilibrium {
	unsigned int getnumchildren(void);
}
%header %{
#define rhp_mdl_add_vars rhp_add_vars
#define rhp_mdl_add_varsnamed rhp_add_varsnamed
#define rhp_mdl_set_option_d rhp_set_option_d
#define rhp_mathprgm_setobjvar rhp_mp_setobjvar
#define rhp_mathprgm_addvars_named rhp_mp_addvars_named
#define rhp_nash_equilibrium_getnumchildren rhp_nash_getnumchildren
%}
`

func TestWriteExtensions(t *testing.T) {
	objs, tb := mine(t)

	var buf bytes.Buffer
	require.NoError(t, WriteExtensions(&buf, objs, tb))
	assert.Equal(t, wantExtensions, buf.String())
}

func TestWriteExtensions_NoDefines(t *testing.T) {
	tb, err := tables.Default()
	require.NoError(t, err)

	objs := []ObjectMethods{{
		Object: tb.Methods.Objects[0],
		Value:  []Method{{Native: "rhp_mdl_getname", Name: "getname", ReturnType: "const char *"}},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteExtensions(&buf, objs, tb))
	assert.NotContains(t, buf.String(), "%header")
	assert.Empty(t, Defines(objs))
}

func TestWriteRenames(t *testing.T) {
	objs, tb := mine(t)

	var buf bytes.Buffer
	require.NoError(t, WriteRenames(&buf, objs, tb))

	want := "// Generated by bindgen methods\n\n" +
		"%rename(add_vars) rhp_add_varsnamed;\n" +
		"%rename(mp_addvars) rhp_mp_addvars_named;\n"
	assert.Equal(t, want, buf.String())
}

func TestBaseName(t *testing.T) {
	tb, err := tables.Default()
	require.NoError(t, err)

	tests := []struct {
		in    string
		want  string
		named bool
	}{
		{"rhp_add_varsnamed", "rhp_add_vars", true},
		{"rhp_mp_addvars_named", "rhp_mp_addvars", true},
		{"addvars_named", "addvars", true},
		{"rhp_mdl_getname", "rhp_mdl_getname", false},
	}
	for _, tt := range tests {
		got, named := baseName(tt.in, tb.NamedVariants)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.named, named, tt.in)
	}
}
