// Package commands holds the bindgen subcommands.
package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/teranos/bindgen/config"
	"github.com/teranos/bindgen/diag"
	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/gen"
	"github.com/teranos/bindgen/logger"
)

// flagKeys binds the path flags over the configuration keys they override.
var flagKeys = map[string]string{
	"docs.index":  "index",
	"methods.ast": "ast",
	"output.dir":  "output",
}

// run is one generation: configuration, tables and a fresh diagnostic list.
type run struct {
	cfg    *config.Config
	gen    *gen.Generator
	report string
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")

	v, err := config.NewViper(configPath)
	if err != nil {
		return nil, err
	}
	if err := bindFlags(cmd, v); err != nil {
		return nil, err
	}
	return config.Load(v)
}

func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	for key, name := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "failed to bind --%s", name)
		}
	}
	return nil
}

func newRun(cmd *cobra.Command) (*run, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	tb, err := gen.LoadTables(cfg)
	if err != nil {
		return nil, err
	}

	verbosity, _ := cmd.Flags().GetCount("verbose")
	report, _ := cmd.Flags().GetString("report")
	diags := diag.NewList(logger.ComponentLogger("diag"))

	return &run{
		cfg:    cfg,
		gen:    gen.New(cfg, tb, diags, gen.NewCLIEmitter(verbosity)),
		report: report,
	}, nil
}

// finish prints the diagnostic summary and writes the report when asked.
func (r *run) finish() error {
	r.gen.Summarize()
	if r.report == "" {
		return nil
	}
	if err := diag.WriteReportFile(r.report, r.gen.Diagnostics().Items()); err != nil {
		return err
	}
	logger.Infow("wrote diagnostic report", logger.FieldFile, r.report)
	return nil
}

// generate builds a runner for cobra commands that run one generator step.
func generate(step func(g *gen.Generator, outDir string) ([]string, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		r, err := newRun(cmd)
		if err != nil {
			return err
		}
		if _, err := step(r.gen, r.cfg.Output.Dir); err != nil {
			return err
		}
		return r.finish()
	}
}
