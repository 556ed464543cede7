package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-minilang/internal/errors"
	"github.com/cwbudde/go-minilang/internal/lexer"
	"github.com/spf13/cobra"
)

var onlyErrors bool

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a MiniLang file or expression",
	Long: `Tokenize (lex) a MiniLang program and print the resulting token
table: line, column, token name, token class and lexeme.

Examples:
  # Tokenize a source file
  minilang lex program.ml

  # Tokenize an inline expression
  minilang lex -e "int x; x = 42;"

  # Show only lexical errors
  minilang lex --only-errors program.ml`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexSource,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "print only the lexical error report")
}

func lexSource(cmd *cobra.Command, args []string) error {
	input, filename, err := resolveInput(args)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Printf("Tokenizing: %s\n", filename)
		fmt.Printf("Input length: %d bytes\n", len(input))
		fmt.Println("---")
	}

	sink := errors.NewSink()
	l := lexer.New(input, sink)
	l.Run()

	if !onlyErrors {
		l.FormatTokenTable(os.Stdout)
	}

	if sink.HasErrors() {
		sink.Report(os.Stderr)
		first, _ := sink.First()
		return &exitError{
			msg:  fmt.Sprintf("lexical analysis failed with %d error(s)", sink.Len()),
			code: first.Category.ExitCode(),
		}
	}
	return nil
}

// resolveInput picks the source text from the -e flag or a file path.
func resolveInput(args []string) (input, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}
