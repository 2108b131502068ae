// Package fixture loads monster datasets from YAML for seeding a store.
package fixture

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/bestiary/internal/cr"
	"github.com/roach88/bestiary/internal/ir"
)

//go:embed sample.yaml
var sampleYAML []byte

// Dataset is a set of sources and the monsters that cite them.
type Dataset struct {
	Sources  []ir.Source  `yaml:"sources"`
	Monsters []ir.Monster `yaml:"monsters"`
}

// Load reads and parses a dataset YAML file.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a dataset, rejecting unknown fields, and validates it.
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateDataset(&ds); err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}

	return &ds, nil
}

// Sample returns the built-in sample dataset.
func Sample() *Dataset {
	ds, err := Parse(sampleYAML)
	if err != nil {
		panic(fmt.Sprintf("fixture: embedded sample is invalid: %v", err))
	}
	return ds
}

// Official returns the names of the official sources, in file order.
func (d *Dataset) Official() []string {
	var names []string
	for _, s := range d.Sources {
		if s.Official {
			names = append(names, s.Name)
		}
	}
	return names
}

func validateDataset(d *Dataset) error {
	registered := make(map[string]bool, len(d.Sources))
	for i, s := range d.Sources {
		name := ir.NormalizeName(s.Name)
		if name == "" {
			return fmt.Errorf("sources[%d]: name is required", i)
		}
		if registered[name] {
			return fmt.Errorf("sources[%d]: duplicate source %q", i, name)
		}
		registered[name] = true
	}

	for i, m := range d.Monsters {
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("monsters[%d]: name is required", i)
		}
		if !cr.Valid(m.CR) {
			return fmt.Errorf("monsters[%d] %q: %q is not a challenge rating", i, m.Name, m.CR)
		}
		if !validSize(m.Size) {
			return fmt.Errorf("monsters[%d] %q: unknown size %q", i, m.Name, m.Size)
		}
		for _, ref := range ir.SourceRefs(m.Sources) {
			name, _ := ir.SplitSourceRef(ref)
			if !registered[ir.NormalizeName(name)] {
				return fmt.Errorf("monsters[%d] %q: source %q is not registered", i, m.Name, name)
			}
		}
	}

	return nil
}

func validSize(size string) bool {
	for _, s := range ir.Sizes {
		if s == size {
			return true
		}
	}
	return false
}
