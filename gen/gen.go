// Package gen runs the two generators end to end: the docstring pipeline
// over Doxygen XML and the method miner over a clang AST dump.
package gen

import (
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/teranos/bindgen/binding"
	"github.com/teranos/bindgen/clangast"
	"github.com/teranos/bindgen/config"
	"github.com/teranos/bindgen/diag"
	"github.com/teranos/bindgen/doxygen"
	"github.com/teranos/bindgen/emit"
	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/logger"
	"github.com/teranos/bindgen/methods"
	"github.com/teranos/bindgen/tables"
)

// LoadTables reads the tables named by cfg (the embedded ones by default)
// and extends their ignore list with the ignore CSV.
func LoadTables(cfg *config.Config) (*tables.Tables, error) {
	tb, err := tables.Load(cfg.Tables.Path)
	if err != nil {
		return nil, err
	}
	tb, err = tb.LoadIgnoreCSV(cfg.Docs.IgnoreCSV)
	if err != nil {
		return nil, err
	}

	if drift := tb.IndexDrift(); len(drift) > 0 {
		logger.ComponentLogger("tables").Warnw("index names known to the miner but not to the argument rules",
			"names", drift, "source", tb.Source())
	}
	return tb, nil
}

// Generator runs the pipelines with one configuration and one diagnostic list.
type Generator struct {
	cfg      *config.Config
	tables   *tables.Tables
	diags    *diag.List
	progress ProgressEmitter
	log      *zap.SugaredLogger
}

// New returns a generator. A nil progress emitter is silent.
func New(cfg *config.Config, tb *tables.Tables, diags *diag.List, progress ProgressEmitter) *Generator {
	if progress == nil {
		progress = NopEmitter{}
	}
	return &Generator{
		cfg:      cfg,
		tables:   tb,
		diags:    diags,
		progress: progress,
		log:      logger.ComponentLogger("gen"),
	}
}

// Diagnostics returns the diagnostics accumulated so far.
func (g *Generator) Diagnostics() *diag.List { return g.diags }

type artifact struct {
	name  string
	write func(io.Writer) error
}

// Docs runs the docstring pipeline and writes its artifacts to outDir. The
// method docstring table is skipped when the default template is absent.
func (g *Generator) Docs(outDir string) ([]string, error) {
	if err := g.cfg.RequireDocs(); err != nil {
		return nil, err
	}

	g.progress.EmitStage("docs", "reading "+g.cfg.Docs.Index)
	opts := doxygen.Options{Header: g.cfg.Docs.Header, Group: g.cfg.Docs.Group}
	src, err := doxygen.Load(g.cfg.Docs.Index, opts, g.tables, g.diags)
	if err != nil {
		return nil, err
	}
	g.log.Infow("read documentation", logger.FieldCount, len(src.Functions), "public", len(src.Public))

	res := binding.NewResolver(g.tables).Resolve(src.Functions, g.diags)
	emit.CheckConsistency(src.Public, src.Functions, res, g.tables, g.diags)

	arts := []artifact{
		{emit.InterfaceFile, func(w io.Writer) error { return emit.WriteInterface(w, res) }},
		{emit.StubFile, func(w io.Writer) error { return emit.WriteStubs(w, res) }},
	}

	tmplPath := g.cfg.TemplatePath()
	tmpl, err := os.ReadFile(tmplPath)
	switch {
	case err == nil:
		docs := emit.MethodDocs(res, g.tables.MethodPrefixes)
		arts = append(arts, artifact{emit.MethodDocsFile, func(w io.Writer) error {
			return emit.WriteMethodDocs(w, tmpl, docs, g.diags)
		}})
	case os.IsNotExist(err) && g.cfg.Docs.Template == "":
		g.log.Warnw("no method docstring template, skipping "+emit.MethodDocsFile, logger.FieldFile, tmplPath)
	default:
		return nil, errors.WrapMissingInput(err, tmplPath)
	}

	return g.write(outDir, arts)
}

// Methods runs the method miner and writes its artifacts to outDir.
func (g *Generator) Methods(outDir string) ([]string, error) {
	if err := g.cfg.RequireMethods(); err != nil {
		return nil, err
	}

	g.progress.EmitStage("methods", "reading "+g.cfg.Methods.AST)
	root, err := clangast.Load(g.cfg.Methods.AST)
	if err != nil {
		return nil, err
	}
	objs := methods.NewMiner(g.tables).Mine(clangast.Functions(root))

	return g.write(outDir, []artifact{
		{methods.ExtensionFile, func(w io.Writer) error { return methods.WriteExtensions(w, objs, g.tables) }},
		{methods.RenameFile, func(w io.Writer) error { return methods.WriteRenames(w, objs, g.tables) }},
	})
}

// All runs every pipeline that has its input configured.
func (g *Generator) All(outDir string) ([]string, error) {
	if g.cfg.Docs.Index == "" && g.cfg.Methods.AST == "" {
		return nil, errors.WithHint(errors.New("nothing to generate"),
			"configure docs.index, methods.ast or both")
	}

	var written []string
	if g.cfg.Docs.Index != "" {
		files, err := g.Docs(outDir)
		if err != nil {
			return nil, errors.Wrap(err, "docs")
		}
		written = append(written, files...)
	}
	if g.cfg.Methods.AST != "" {
		files, err := g.Methods(outDir)
		if err != nil {
			return nil, errors.Wrap(err, "methods")
		}
		written = append(written, files...)
	}
	return written, nil
}

// Summarize reports the diagnostic totals of the run.
func (g *Generator) Summarize() {
	g.progress.EmitComplete(g.diags.Counts())
}

func (g *Generator) write(outDir string, arts []artifact) ([]string, error) {
	written := make([]string, 0, len(arts))
	for _, a := range arts {
		path := filepath.Join(outDir, a.name)
		if err := emit.WriteFile(path, a.write); err != nil {
			return written, err
		}
		g.log.Debugw("wrote artifact", logger.FieldFile, path)
		g.progress.EmitGenerated(path)
		written = append(written, path)
	}
	return written, nil
}

// Inputs lists the files a run reads, for watch mode. Unset inputs are
// left out; the Doxygen XML directory stands for the documents it holds.
// An absent default template is listed by OptionalInputs instead.
func (g *Generator) Inputs() []string {
	var in []string
	if g.cfg.Docs.Index != "" {
		in = append(in, filepath.Dir(g.cfg.Docs.Index))
		if !g.templateOptional() {
			in = append(in, g.cfg.TemplatePath())
		}
	}
	if g.cfg.Docs.IgnoreCSV != "" {
		in = append(in, g.cfg.Docs.IgnoreCSV)
	}
	if g.cfg.Methods.AST != "" {
		in = append(in, g.cfg.Methods.AST)
	}
	if g.cfg.Tables.Path != "" {
		in = append(in, g.cfg.Tables.Path)
	}
	return in
}

// OptionalInputs lists inputs a run skips while they are absent: the
// default method docstring template.
func (g *Generator) OptionalInputs() []string {
	if g.cfg.Docs.Index != "" && g.templateOptional() {
		return []string{g.cfg.TemplatePath()}
	}
	return nil
}

func (g *Generator) templateOptional() bool {
	if g.cfg.Docs.Template != "" {
		return false
	}
	_, err := os.Stat(g.cfg.TemplatePath())
	return os.IsNotExist(err)
}
