package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ave/internal/diagfmt"
	"ave/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.ave",
	Short: "Tokenize an Ave source file",
	Long:  `Tokenize breaks down an Ave source file into its constituent tokens, including the synthetic layout tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("cache", false, "use the token disk cache")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	useCache, _ := cmd.Flags().GetBool("cache")

	var cache *driver.DiskCache
	if useCache {
		if cache, err = driver.OpenDiskCache("ave"); err != nil {
			return fmt.Errorf("failed to open token cache: %w", err)
		}
	}

	result, err := driver.TokenizeCached(cache, args[0], maxDiagnostics(cmd))
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		result.Bag.Sort()
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color: useColor(cmd, os.Stderr),
		})
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
