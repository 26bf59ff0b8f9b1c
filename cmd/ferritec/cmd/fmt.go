package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ferrite-lang/ferritec/internal/lexer"
	"github.com/ferrite-lang/ferritec/internal/parser"
)

var fmtShowTree bool

var fmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "Print the canonical re-serialization of a Ferrite file",
	Long: `Parse a Ferrite source file and print its canonical
re-serialization (program.String()).

This exercises the parse-print round trip. Operator and subscript
expressions are
printed in their call form (for example "+(a, b)" or "[](arr, i)"),
which the parser does not accept, so output containing them does not
re-parse. It is a debugging aid, not a source-preserving formatter -
comments and exact spacing are not retained.

If no file is provided, reads from stdin.

Examples:
  # Print the canonical form of a file
  ferritec fmt script.fe

  # Also show the parsed tree alongside the re-serialization
  ferritec fmt --tree script.fe`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().BoolVar(&fmtShowTree, "tree", false, "also print the parsed AST as a tree")
}

func runFmt(cmd *cobra.Command, args []string) error {
	var input string
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("error reading file: %w", err)
		}
		input = string(data)
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("error reading stdin: %w", err)
		}
		input = string(data)
	}

	l := lexer.New(input)
	p := parser.New(l)
	p.DisableTerminatorWarnings()
	program := p.ParseProgram()

	if len(p.Errors()) > 0 {
		return reportParserErrors(p.Errors())
	}

	if fmtShowTree {
		fmt.Println(dumpProgramTree(program).String())
		fmt.Println("---")
	}

	fmt.Print(program.String())
	return nil
}
