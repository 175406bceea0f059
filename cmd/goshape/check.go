package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errNoInput = errors.New("no declaration file given (use -f)")

func wrapFile(name string, err error) error { return fmt.Errorf("%s: %w", name, err) }

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Assemble every declared shape and report definition errors",
	Long: `Assemble every declared shape without writing output.

Checks:
  - property names are unique
  - enum, pattern and format are declared on strings only
  - defaults conform to their declared types
  - fixed records have a value for every property
  - extended and referenced shapes exist and do not form a cycle

Examples:
  goshape check -f shapes.yaml`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := setupLoggerFromEnv()
	_, defs, err := loadCatalog(logger)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, d := range defs {
		fmt.Fprintf(out, "ok  %s\n", d.ID)
	}
	fmt.Fprintf(out, "%d shapes\n", len(defs))
	return nil
}
