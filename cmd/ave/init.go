package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Scaffold a new Ave project",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

const manifestTemplate = `[package]
name = %q

[source]
dir = "src"
main = "main.ave"
`

const mainTemplate = `# entry point
func greet(name: str): str
    return "hello, " + name

let message = greet("ave")
`

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	name := filepath.Base(abs)

	manifestPath := filepath.Join(dir, "ave.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("%s already exists", manifestPath)
	}

	if err := os.MkdirAll(filepath.Join(dir, "src"), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(manifestPath, []byte(fmt.Sprintf(manifestTemplate, name)), 0o644); err != nil {
		return err
	}
	mainPath := filepath.Join(dir, "src", "main.ave")
	if err := os.WriteFile(mainPath, []byte(mainTemplate), 0o644); err != nil {
		return err
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		fmt.Fprintf(os.Stdout, "initialized project %q\n", name)
	}
	return nil
}
