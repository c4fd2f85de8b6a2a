package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ave/internal/diagfmt"
	"ave/internal/driver"
	"ave/internal/project"
	"ave/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.ave|dir]",
	Short: "Type-check Ave sources",
	Long: `Check runs the full front-end (lexer, parser, checker) over a file or a
directory of *.ave files. Without an argument the source directory is taken
from the nearest ave.toml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "parallel workers for directory checks (0 = NumCPU)")
	checkCmd.Flags().Bool("ui", false, "render interactive progress for directory checks")
	checkCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	target, err := resolveCheckTarget(args)
	if err != nil {
		return err
	}

	info, err := os.Stat(target)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return checkDir(cmd, target)
	}
	return checkFile(cmd, target)
}

// resolveCheckTarget: явный аргумент или директория исходников из ave.toml.
func resolveCheckTarget(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	manifest, ok, err := project.LoadFrom(".")
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("no ave.toml found\nplease specify a file or directory explicitly, e.g.:\n  ave check path/to/main.ave")
	}
	return manifest.SourceDir(), nil
}

func checkFile(cmd *cobra.Command, path string) error {
	result, err := driver.Check(path, maxDiagnostics(cmd))
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}
	return renderCheck(cmd, result)
}

func renderCheck(cmd *cobra.Command, result *driver.CheckResult) error {
	format, _ := cmd.Flags().GetString("format")
	result.Bag.Sort()

	switch format {
	case "json":
		if err := diagfmt.JSON(os.Stdout, result.Bag, result.FileSet); err != nil {
			return err
		}
	default:
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color: useColor(cmd, os.Stderr),
		})
	}

	if result.HasError() {
		return errExit
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet && format != "json" {
		fmt.Fprintf(os.Stdout, "%s: ok\n", result.File.Path)
	}
	return nil
}

func checkDir(cmd *cobra.Command, dir string) error {
	jobs, _ := cmd.Flags().GetInt("jobs")
	withUI, _ := cmd.Flags().GetBool("ui")

	var events chan driver.Event
	uiDone := make(chan error, 1)
	if withUI && isTerminal(os.Stdout) {
		files, err := driver.ListAveFiles(dir)
		if err != nil {
			return err
		}
		events = make(chan driver.Event, 64)
		model := ui.NewProgressModel(fmt.Sprintf("checking %s", dir), files, events)
		go func() {
			_, err := tea.NewProgram(model).Run()
			uiDone <- err
		}()
	}

	results, err := driver.CheckDir(context.Background(), dir, maxDiagnostics(cmd), jobs, events)
	if events != nil {
		close(events)
		if uiErr := <-uiDone; uiErr != nil {
			fmt.Fprintf(os.Stderr, "ave: progress ui failed: %v\n", uiErr)
		}
	}
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
			failed++
			continue
		}
		r.Result.Bag.Sort()
		diagfmt.Pretty(os.Stderr, r.Result.Bag, r.Result.FileSet, diagfmt.PrettyOpts{
			Color: useColor(cmd, os.Stderr),
		})
		if r.Result.HasError() {
			failed++
		}
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		fmt.Fprintf(os.Stdout, "checked %d files, %d with errors\n", len(results), failed)
	}
	if failed > 0 {
		return errExit
	}
	return nil
}

// errExit — пустая ошибка ради кода возврата 1 без лишнего текста.
var errExit = fmt.Errorf("")
