package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"corelang/compiler"
	"corelang/config"
	"corelang/machine"
)

var statsQuery string

var statsCmd = &cobra.Command{
	Use:   "stats [file]",
	Short: "Run a program and print its execution statistics as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE:  statsProgram,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsQuery, "query", "", "print a single gjson path from the stats document instead of the whole thing")
}

func statsProgram(_ *cobra.Command, args []string) error {
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

	_, result, runErr := m.Run()

	doc := "{}"
	doc, _ = sjson.Set(doc, "steps", m.Stats.Steps)
	doc, _ = sjson.Set(doc, "allocs", m.Stats.Allocs)
	doc, _ = sjson.Set(doc, "unwinds", m.Stats.Unwinds)
	doc, _ = sjson.Set(doc, "max_stack", m.Stats.MaxStack)
	doc, _ = sjson.Set(doc, "max_dump", m.Stats.MaxDump)
	doc, _ = sjson.Set(doc, "heap_size", m.Heap.Size())
	if runErr != nil {
		doc, _ = sjson.Set(doc, "error", runErr.Error())
	} else {
		doc, _ = sjson.Set(doc, "result", renderResult(result))
	}

	if statsQuery != "" {
		fmt.Println(gjson.Get(doc, statsQuery).String())
	} else {
		fmt.Println(doc)
	}
	if runErr != nil {
		return runErr
	}
	return nil
}
