package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "corelang",
	Short: "Compiler and G-machine for a small non-strict functional core language",
	Long: `corelang compiles a tiny lazy functional language to G-machine bytecode
and runs it via graph reduction.

It supports integers, saturated constructor application (Pack{tag,arity}),
case expressions over tagged constructors, let/letrec, and a fixed set of
arithmetic, relational, and conditional primitives. It does not support
type checking, pattern matching beyond tagged-constructor case, lambda
literals, or a general-purpose standard library.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a machine limits YAML config file")
}

var configPath string
