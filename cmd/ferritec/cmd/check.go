package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ferrite-lang/ferritec/internal/module"
	"github.com/ferrite-lang/ferritec/internal/source"
)

var checkSearchPaths []string

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Parse and type-check a Ferrite file",
	Long: `Parse file and every module it imports, run the type checker
over the result, and print any diagnostics.

Import search paths come from --search-path flags (repeatable), or
ferrite.toml's [import] search_paths if present, or else the file's own
directory.

Examples:
  # Type-check a file sitting alongside its imports
  ferritec check script.fe

  # Add an extra search path for imported modules
  ferritec check --search-path ./units script.fe`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringArrayVar(&checkSearchPaths, "search-path", nil, "directory to search for imported modules (repeatable)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	dir := filepath.Dir(path)

	searchPaths := checkSearchPaths
	if len(searchPaths) == 0 {
		cfg, err := loadConfig(dir)
		if err != nil {
			return fmt.Errorf("reading ferrite.toml: %w", err)
		}
		if cfg != nil {
			searchPaths = cfg.Import.SearchPaths
		}
	}
	if len(searchPaths) == 0 {
		searchPaths = []string{dir}
	}

	moduleName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	l := module.NewLoader(searchPaths)
	_, diags, err := l.ParseModule(moduleName)
	if err != nil {
		return err
	}

	for _, m := range l.Modules() {
		diags = append(diags, module.Check(l.Pool, l.Symbols, m)...)
	}

	errCount := 0
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.Render(l.Files))
		if d.Severity == source.SeverityError {
			errCount++
		}
	}

	if errCount > 0 {
		return fmt.Errorf("%d error(s)", errCount)
	}
	return nil
}
