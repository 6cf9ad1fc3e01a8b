package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/bindgen/gen"
)

// TablesCmd prints the effective tables
var TablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Print the effective translation tables as TOML",
	Long: `Print the translation tables in effect: the embedded defaults, or the file
named by tables.path, with the ignore CSV merged in.

The output is a valid tables file and can seed a replacement:
  bindgen tables > tables.toml
  BINDGEN_TABLES_PATH=tables.toml bindgen all`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		tb, err := gen.LoadTables(cfg)
		if err != nil {
			return err
		}
		return tb.Dump(cmd.OutOrStdout())
	},
}
