package diag

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/teranos/bindgen/logger"
)

func TestList_ZeroValue(t *testing.T) {
	var l List
	l.Addf(TableGap, "rhp_foo", "vi", "unhandled type %s in argout", "int *")
	l.Add(Diagnostic{Kind: Consistency, Message: "documented but not public"})

	require.Equal(t, 2, l.Len())
	assert.Equal(t, "unhandled type int * in argout", l.Items()[0].Message)
	assert.Equal(t, 1, l.Count(TableGap))
	assert.Equal(t, 0, l.Count(MissingType))
	assert.Equal(t, map[Kind]int{TableGap: 1, Consistency: 1}, l.Counts())
}

func TestList_NilSafe(t *testing.T) {
	var l *List
	assert.Equal(t, 0, l.Len())
	assert.Nil(t, l.Items())
}

func TestList_LogsAtWarn(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, logger.InitializeTo(&buf, logger.VerbosityUser, false))
	defer func() { _ = logger.InitializeTo(&bytes.Buffer{}, logger.VerbosityUser, false) }()

	l := NewList(logger.ComponentLogger("docs"))
	l.Addf(DirectionMismatch, "rhp_bar", "ei", "considered an output but declared %q", "in")

	assert.Equal(t,
		"WARN  docs  considered an output but declared \"in\"  kind=direction-mismatch  function=rhp_bar  argument=ei\n",
		buf.String())
}

func TestList_Merge(t *testing.T) {
	a := &List{}
	b := &List{}
	a.Addf(TableGap, "f", "", "one")
	b.Addf(MissingType, "g", "x", "two")
	b.Addf(TableGap, "g", "y", "three")

	a.Merge(b)
	a.Merge(nil)

	require.Equal(t, 3, a.Len())
	assert.Equal(t, []string{"one", "two", "three"}, messages(a))
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Kind: TableGap, Function: "rhp_foo", Argument: "vi", Message: "no entry"}
	assert.Equal(t, "table-gap in rhp_foo (vi): no entry", d.String())
	assert.Equal(t, "consistency: x", Diagnostic{Kind: Consistency, Message: "x"}.String())
}

func TestWriteReport(t *testing.T) {
	var l List
	l.Addf(TableGap, "rhp_foo", "vi", "no entry")
	l.Addf(Consistency, "rhp_bar", "", "not public")

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, l.Items()))

	var got struct {
		Total       int          `yaml:"total"`
		Diagnostics []Diagnostic `yaml:"diagnostics"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, l.Items(), got.Diagnostics)
	assert.NotContains(t, buf.String(), "argument: \"\"")
}

func TestWriteReportFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, WriteReportFile(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "total: 0\ndiagnostics: []\n", string(data))
}

func messages(l *List) []string {
	var out []string
	for _, d := range l.Items() {
		out = append(out, d.Message)
	}
	return out
}
