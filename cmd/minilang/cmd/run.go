package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-minilang/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	evalExpr string
	dumpAST  bool
	emitIR   bool
	trace    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a MiniLang file or expression",
	Long: `Execute a MiniLang program from a file or inline expression.

The program is lexed, parsed, lowered to three-address IR, optimized,
and executed on the IR interpreter. Each PRINT statement writes one
"PRINT OUTPUT: N" line to stdout.

Examples:
  # Run a program
  minilang run program.ml

  # Evaluate an inline program
  minilang run -e "int i; i = 0; while (i < 3) { print i; i = i + 1; }"

  # Run with AST dump and execution trace
  minilang run --dump-ast --trace program.ml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSource,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST before execution")
	runCmd.Flags().BoolVar(&emitIR, "emit-ir", false, "print the IR listings before execution")
	runCmd.Flags().BoolVar(&trace, "trace", false, "trace optimizer passes and executed instructions")
	runCmd.Flags().BoolVar(&noOptimize, "no-optimize", false, "execute the unoptimized IR")
}

func runSource(_ *cobra.Command, args []string) error {
	input, filename, err := resolveInput(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := pipeline.Options{
		Optimize:  cfg.Execution.Optimize && !noOptimize,
		Execute:   true,
		Trace:     cfg.Execution.Trace || trace,
		StepLimit: cfg.Execution.StepLimit,
	}

	res := pipeline.Run(input, filename, opts)

	if dumpAST && res.AST != "" {
		fmt.Println("AST:")
		fmt.Print(res.AST)
		fmt.Println()
	}
	if emitIR {
		printListings(res)
		fmt.Println()
	}
	if res.Trace != "" {
		fmt.Print(res.Trace)
	}
	fmt.Print(res.Output)

	if res.Sink.HasErrors() {
		res.Sink.Report(os.Stderr)
		return &exitError{
			msg:  fmt.Sprintf("run of %s failed with %d error(s)", filename, res.Sink.Len()),
			code: res.ExitCode(),
		}
	}
	return nil
}
