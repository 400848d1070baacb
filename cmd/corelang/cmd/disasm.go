package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"corelang/compiler"
	"corelang/gcode"
)

var includePrelude bool

var disasmCmd = &cobra.Command{
	Use:   "disasm [file]",
	Short: "Print the compiled bytecode for every supercombinator",
	Args:  cobra.MaximumNArgs(1),
	RunE:  disasmProgram,
}

func init() {
	rootCmd.AddCommand(disasmCmd)
	disasmCmd.Flags().BoolVar(&includePrelude, "include-prelude", false, "also disassemble the standard prelude's supercombinators")
}

func disasmProgram(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(args)
	if err != nil {
		return err
	}

	compiled, prog, err := compileProgram(source, filename)
	if err != nil {
		return err
	}

	d := gcode.NewDisassembler(os.Stdout)
	preludeNames := preludeScNames()
	for _, sc := range compiled.Scs {
		if !includePrelude && preludeNames[sc.Name] {
			continue
		}
		d.Sc(sc.Name, sc.Arity, sc.Code)
		fmt.Println()
	}

	for _, sc := range compiler.ConstrGlobals(prog) {
		d.Sc(sc.Name, sc.Arity, sc.Code)
		fmt.Println()
	}
	return nil
}

// preludeScNames names every supercombinator the prelude defines, so
// disasm's default view shows only the user's own program.
func preludeScNames() map[string]bool {
	return map[string]bool{
		"False": true, "True": true, "cons": true, "nil": true,
		"compose": true, "id": true,
	}
}
