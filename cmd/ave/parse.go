package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ave/internal/diagfmt"
	"ave/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.ave",
	Short: "Parse an Ave source file and dump the AST",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	result, err := driver.Parse(args[0], maxDiagnostics(cmd))
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		result.Bag.Sort()
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color: useColor(cmd, os.Stderr),
		})
	}

	return diagfmt.FormatASTPretty(os.Stdout, result.Builder, result.Program, result.FileSet)
}
