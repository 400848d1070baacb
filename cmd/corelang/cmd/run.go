package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"corelang/compiler"
	"corelang/config"
	"corelang/heap"
	"corelang/machine"
)

var traceRun bool

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Compile and run a corelang program, printing its weak head normal form",
	Long: `Compile a corelang program to G-machine bytecode and reduce main to
weak head normal form.

Examples:
  corelang run program.core
  cat program.core | corelang run
  corelang run --trace program.core`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProgram,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&traceRun, "trace", false, "print one line per executed instruction to stderr")
}

func runProgram(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(args)
	if err != nil {
		return err
	}

	compiled, prog, err := compileProgram(source, filename)
	if err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	constrGlobals := compiler.ConstrGlobals(prog)
	m := machine.NewFromProgram(compiled, constrGlobals)
	m.Configure(cfg.MaxStack, cfg.MaxDump, cfg.MaxHeap)
	if traceRun {
		m.Trace = os.Stderr
	}

	_, result, err := m.Run()
	if err != nil {
		return fmt.Errorf("runtime error: %w", err)
	}

	fmt.Println(renderResult(result))
	return nil
}

// renderResult formats a WHNF value the way the spec's CLI contract
// requires: a bare integer for NInt, and a Pack{tag,arity} rendering
// with its (unevaluated) component addresses for NConstr.
func renderResult(n heap.Node) string {
	switch n.Kind {
	case heap.KInt:
		return fmt.Sprintf("%d", n.Int)
	case heap.KConstr:
		return fmt.Sprintf("Pack{%d,%d} %v", n.Tag, len(n.Comp), n.Comp)
	default:
		return fmt.Sprintf("<non-WHNF result, kind=%d>", n.Kind)
	}
}
