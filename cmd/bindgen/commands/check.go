package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/bindgen/errors"
)

// CheckCmd checks if generated artifacts are up to date
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check if generated artifacts are up to date",
	Long: `Check if the artifacts in the output directory match a fresh generation.

This command generates every configured artifact into a temporary directory
and compares each file byte for byte with the one in the output directory.

Exit codes:
  0 - Artifacts are up to date
  1 - Artifacts are out of date, or the check failed

Examples:
  bindgen check
  bindgen check --output python/swig`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	r, err := newRun(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Checking generated artifacts...")

	result, err := r.gen.Check(r.cfg.Output.Dir)
	if err != nil {
		return errors.Wrap(err, "check failed")
	}
	if err := r.finish(); err != nil {
		return err
	}

	if result.UpToDate {
		fmt.Fprintln(out, "✓ Artifacts are up to date")
		return nil
	}

	fmt.Fprintln(out, "✗ Artifacts are out of date.")
	for _, file := range result.Differences {
		fmt.Fprintf(out, "  - %s\n", file)
	}
	return errors.WithHint(errors.ErrOutOfDate, "run 'bindgen all' to update")
}
