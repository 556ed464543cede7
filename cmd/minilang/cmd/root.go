package cmd

import (
	"fmt"

	"github.com/cwbudde/go-minilang/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "minilang",
	Short: "MiniLang compiler and interpreter",
	Long: `go-minilang is an educational end-to-end compiler and interpreter
for MiniLang, a tiny imperative language with integer variables,
arithmetic, relational tests, conditional and loop control flow, and
a print primitive.

Source text is translated through four stages - lexical analysis,
recursive-descent parsing, three-address IR generation, and IR
optimization - and the optimized IR is executed on a built-in
interpreter.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
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
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML configuration file")
}

// loadConfig resolves the driver configuration for a command run.
func loadConfig() (*config.Config, error) {
	return config.LoadOrDefault(configPath)
}

// exitError carries the process exit code for a failed pipeline stage.
type exitError struct {
	msg  string
	code int
}

func (e *exitError) Error() string { return e.msg }

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if ee, ok := err.(*exitError); ok {
		return ee.code
	}
	return 1
}
