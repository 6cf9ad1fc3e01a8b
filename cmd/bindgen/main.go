package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/bindgen/cmd/bindgen/commands"
	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/logger"
)

var rootCmd = &cobra.Command{
	Use:   "bindgen",
	Short: "Generate Python binding metadata for the ReSHOP C API",
	Long: `bindgen - Python binding metadata for the ReSHOP C API.

bindgen reads the documentation Doxygen extracts from the C headers and the
AST clang dumps for them, and writes the SWIG interface fragments and Python
stubs the bindings are built from.

Available commands:
  docs     - Docstrings from Doxygen XML
  methods  - Object methods from a clang AST dump
  all      - Both generators
  check    - Verify generated artifacts are up to date
  watch    - Regenerate when an input changes
  tables   - Print the effective translation tables

Examples:
  bindgen all --index build/xml/index.xml --ast build/reshop_ast.json
  bindgen check                  # Inputs from bindgen.toml
  bindgen docs -v --report diagnostics.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(verbosity, false); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	flags.StringP("config", "c", "", "Config file (default: ./bindgen.toml when present)")
	flags.String("report", "", "Write every diagnostic of the run to this YAML file")
	flags.String("index", "", "Doxygen XML index (docs.index)")
	flags.String("ast", "", "clang -ast-dump=json output (methods.ast)")
	flags.StringP("output", "o", "", "Output directory (output.dir)")

	rootCmd.AddCommand(commands.DocsCmd)
	rootCmd.AddCommand(commands.MethodsCmd)
	rootCmd.AddCommand(commands.AllCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.TablesCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
