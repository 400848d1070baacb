// Command corelang is the CLI front end for the compiler and
// G-machine: run, disasm, and stats subcommands over the small
// non-strict functional core language (spec.md §1 treats this CLI as
// the only outer surface; grammar/parsing is a minimal internal
// collaborator, not a production front end).
package main

import (
	"fmt"
	"os"

	"corelang/cmd/corelang/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
