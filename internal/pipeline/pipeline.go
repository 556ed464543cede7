// Package pipeline runs the full compilation pipeline for one source
// input: lex → parse → IR generation → optimization → execution.
// Each stage runs to completion; downstream stages are skipped as
// soon as the diagnostic sink is non-empty.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/go-minilang/internal/ast"
	"github.com/cwbudde/go-minilang/internal/errors"
	"github.com/cwbudde/go-minilang/internal/interp"
	"github.com/cwbudde/go-minilang/internal/ir"
	"github.com/cwbudde/go-minilang/internal/lexer"
	"github.com/cwbudde/go-minilang/internal/parser"
)

// Options configures one pipeline run.
type Options struct {
	// Optimize runs the constant-folding and dead-label passes and
	// executes the optimized IR. Default true.
	Optimize bool

	// Execute runs the interpreter after code generation.
	Execute bool

	// Trace emits PC trace lines and optimizer pass logs into the
	// run's Trace artifact.
	Trace bool

	// StepLimit aborts execution after this many instructions.
	// Zero means no limit.
	StepLimit int
}

// DefaultOptions returns the options used by the CLI when no flags
// override them.
func DefaultOptions() Options {
	return Options{
		Optimize: true,
		Execute:  true,
	}
}

// Result holds every artifact produced for one input.
type Result struct {
	Filename string
	Sink     *errors.Sink

	TokenTable  string
	AST         string
	IR          string
	OptimizedIR string
	Output      string
	Trace       string

	Program   *ast.Program
	Code      ir.Program
	Optimized ir.Program
}

// ExitCode returns 0 on full success, or the exit code of the first
// failing stage's category.
func (r *Result) ExitCode() int {
	if first, ok := r.Sink.First(); ok {
		return first.Category.ExitCode()
	}
	return 0
}

// Run executes the pipeline over one source text. It never returns
// nil; the caller inspects Result.Sink for failure.
func Run(source, filename string, opts Options) *Result {
	res := &Result{
		Filename: filename,
		Sink:     errors.NewSink(),
	}

	var traceBuf strings.Builder

	// Lexical analysis. The token table is captured even when the
	// scan reports errors, so the artifact shows what was recognized.
	l := lexer.New(source, res.Sink)
	l.Run()

	var tokenTable strings.Builder
	l.FormatTokenTable(&tokenTable)
	res.TokenTable = tokenTable.String()

	if res.Sink.HasErrors() {
		return res
	}

	// Parsing.
	p := parser.New(l, res.Sink)
	res.Program = p.ParseProgram()
	if res.Sink.HasErrors() {
		return res
	}
	res.AST = ast.Sprint(res.Program)

	// IR generation.
	res.Code = ir.NewCompiler().Compile(res.Program)
	res.IR = res.Code.String()

	// Optimization.
	executed := res.Code
	if opts.Optimize {
		var optOpts []ir.OptimizerOption
		if opts.Trace {
			optOpts = append(optOpts, ir.WithPassTrace(&traceBuf))
		}
		res.Optimized = ir.NewOptimizer(optOpts...).Optimize(res.Code)
		res.OptimizedIR = res.Optimized.String()
		executed = res.Optimized
	}

	// Execution.
	if opts.Execute {
		var out strings.Builder
		interpOpts := []interp.Option{interp.WithStepLimit(opts.StepLimit)}
		if opts.Trace {
			interpOpts = append(interpOpts, interp.WithTrace(&traceBuf))
		}

		in := interp.New(&out, res.Sink, interpOpts...)
		_ = in.Execute(executed) // the sink carries the failure
		res.Output = out.String()
	}

	res.Trace = traceBuf.String()
	return res
}

// RunFile reads a source file and runs the pipeline over it.
func RunFile(path string, opts Options) (*Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return Run(string(content), path, opts), nil
}

// artifact file names written by WriteArtifacts.
const (
	tokensFile      = "tokens.txt"
	astFile         = "ast.txt"
	irFile          = "ir.txt"
	optimizedIRFile = "ir_optimized.txt"
	outputFile      = "output.txt"
	traceFile       = "trace.txt"
	errorsFile      = "errors.log"
)

// WriteArtifacts writes the run's artifacts into dir, creating it if
// needed. Empty artifacts are skipped; the error log is written only
// when the run failed.
func WriteArtifacts(res *Result, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	files := []struct {
		name    string
		content string
	}{
		{tokensFile, res.TokenTable},
		{astFile, res.AST},
		{irFile, res.IR},
		{optimizedIRFile, res.OptimizedIR},
		{outputFile, res.Output},
		{traceFile, res.Trace},
	}

	for _, f := range files {
		if f.content == "" {
			continue
		}
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, []byte(f.content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	if res.Sink.HasErrors() {
		var report strings.Builder
		res.Sink.Report(&report)
		path := filepath.Join(dir, errorsFile)
		if err := os.WriteFile(path, []byte(report.String()), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}

// ArtifactDir returns the per-input artifact directory for a source
// path: <outDir>/<base name without extension>.
func ArtifactDir(outDir, sourcePath string) string {
	base := filepath.Base(sourcePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, base)
}
