package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"

	"github.com/ferrite-lang/ferritec/internal/lexer"
	"github.com/ferrite-lang/ferritec/internal/parser"
)

var (
	parseExpression bool
	parseDumpAST    bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse Ferrite source code and display the AST",
	Long: `Parse Ferrite source code and display the Abstract Syntax Tree (AST).

If no file is provided, reads from stdin.
Use -e to parse a single expression from the command line.
Use --dump-ast to show the full AST structure as a tree.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVarP(&parseExpression, "expression", "e", false, "parse an expression from the command line")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the full AST structure")
}

func runParse(cmd *cobra.Command, args []string) error {
	var input string

	if parseExpression {
		if len(args) == 0 {
			return fmt.Errorf("no expression provided")
		}
		input = args[0]
	} else if len(args) > 0 {
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

	if parseExpression {
		expr := p.ParseExpression()
		if len(p.Errors()) > 0 {
			return reportParserErrors(p.Errors())
		}
		if parseDumpAST {
			fmt.Println(dumpTree(expr).String())
		} else {
			fmt.Println(expr.String())
		}
		return nil
	}

	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		return reportParserErrors(p.Errors())
	}

	if parseDumpAST {
		fmt.Println(dumpProgramTree(program).String())
	} else {
		fmt.Println(program.String())
	}

	return nil
}

func reportParserErrors(errs []*parser.ParserError) error {
	fmt.Fprintf(os.Stderr, "Parser errors:\n")
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "  %s\n", err)
	}
	return fmt.Errorf("parsing failed with %d error(s)", len(errs))
}
