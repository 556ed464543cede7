package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-minilang/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outDir     string
	noOptimize bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [files...]",
	Short: "Compile MiniLang files to three-address IR",
	Long: `Compile one or more MiniLang programs through IR generation and
optimization without executing them. Each input is processed
independently.

By default the generated and optimized IR listings are printed to
stdout. With --out-dir, the full artifact set (token table, AST, IR
listings, error log) is written to a per-input directory instead.

Examples:
  # Print the IR listings for one program
  minilang compile program.ml

  # Compile a batch of test inputs into out/<name>/ directories
  minilang compile --out-dir out tests/*.ml

  # Keep the unoptimized IR only
  minilang compile --no-optimize program.ml`,
	Args: cobra.MinimumNArgs(1),
	RunE: compileSources,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVar(&outDir, "out-dir", "", "write per-input artifact directories under this path")
	compileCmd.Flags().BoolVar(&noOptimize, "no-optimize", false, "skip the IR optimization passes")
}

func compileSources(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if outDir == "" && configPath != "" {
		outDir = cfg.Output.Dir
	}

	opts := pipeline.Options{
		Optimize:  cfg.Execution.Optimize && !noOptimize,
		Execute:   false,
		StepLimit: cfg.Execution.StepLimit,
	}

	var firstErr error
	for _, path := range args {
		res, err := pipeline.RunFile(path, opts)
		if err != nil {
			return err
		}

		if outDir != "" {
			dir := pipeline.ArtifactDir(outDir, path)
			if err := pipeline.WriteArtifacts(res, dir); err != nil {
				return err
			}
			fmt.Printf("%s -> %s\n", path, dir)
		} else if cfg.Output.WriteListings {
			printListings(res)
		}

		if res.Sink.HasErrors() {
			res.Sink.Report(os.Stderr)
			if firstErr == nil {
				firstErr = &exitError{
					msg:  fmt.Sprintf("compilation of %s failed with %d error(s)", path, res.Sink.Len()),
					code: res.ExitCode(),
				}
			}
		}
	}
	return firstErr
}

func printListings(res *pipeline.Result) {
	if res.IR != "" {
		fmt.Println("Generated IR:")
		fmt.Print(res.IR)
	}
	if res.OptimizedIR != "" {
		fmt.Println()
		fmt.Println("Optimized IR:")
		fmt.Print(res.OptimizedIR)
	}
}
