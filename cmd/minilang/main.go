package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-minilang/cmd/minilang/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(cmd.ExitCode(err))
	}
}
