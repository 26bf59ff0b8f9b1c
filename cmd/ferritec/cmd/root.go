package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "ferritec",
	Short: "Ferrite compiler front-end",
	Long: `ferritec is the front-end (lexer, parser, type checker) for the
Ferrite language: a statically typed, class/interface/generic
imperative language with mutability qualifiers, raw and reference
pointers, nullable types, and RAII-style init/deinit.

This binary is a thin harness over that front-end: it exercises the
lexer, parser, and type checker from a terminal, but does not compile,
link, or execute anything.`,
	Version: Version,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
