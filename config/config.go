// Package config loads the machine's tunable resource limits from a
// YAML file, grounded on the dws repo's convention of decoding small
// config structs with github.com/goccy/go-yaml rather than hand-rolled
// flag parsing or encoding/json/yaml.v2.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Machine holds the resource ceilings the interpreter enforces. Zero
// values are replaced by Defaults' values by Load.
type Machine struct {
	MaxStack int `yaml:"max_stack"`
	MaxDump  int `yaml:"max_dump"`
	MaxHeap  int `yaml:"max_heap"`
}

// Defaults returns the limits used when no config file is given.
func Defaults() Machine {
	return Machine{
		MaxStack: 100000,
		MaxDump:  10000,
		MaxHeap:  0, // 0 means unbounded
	}
}

// Load reads a YAML config file and fills in any field left at zero
// with its default. A missing path is not an error; Load simply
// returns the defaults.
func Load(path string) (Machine, error) {
	m := Defaults()
	if path == "" {
		return m, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return m, nil
	}
	if err != nil {
		return Machine{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	var override Machine
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Machine{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if override.MaxStack != 0 {
		m.MaxStack = override.MaxStack
	}
	if override.MaxDump != 0 {
		m.MaxDump = override.MaxDump
	}
	if override.MaxHeap != 0 {
		m.MaxHeap = override.MaxHeap
	}
	return m, nil
}
