package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-minilang/internal/ast"
	"github.com/cwbudde/go-minilang/internal/errors"
	"github.com/cwbudde/go-minilang/internal/lexer"
	"github.com/cwbudde/go-minilang/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a MiniLang file or expression and print the AST",
	Long: `Parse a MiniLang program and print the resulting abstract syntax
tree as an indented tree.

Examples:
  # Parse a source file
  minilang parse program.ml

  # Parse an inline statement
  minilang parse -e "int x; x = 2 + 3 * 4;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseSource,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

func parseSource(_ *cobra.Command, args []string) error {
	input, _, err := resolveInput(args)
	if err != nil {
		return err
	}

	sink := errors.NewSink()
	l := lexer.New(input, sink)
	l.Run()

	var program *ast.Program
	if !sink.HasErrors() {
		program = parser.New(l, sink).ParseProgram()
	}

	if sink.HasErrors() {
		sink.Report(os.Stderr)
		first, _ := sink.First()
		return &exitError{
			msg:  fmt.Sprintf("parsing failed with %d error(s)", sink.Len()),
			code: first.Category.ExitCode(),
		}
	}

	ast.Fprint(os.Stdout, program)
	return nil
}
