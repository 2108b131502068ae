// Package config loads bestiary settings from an optional CUE file.
//
// The file is unified with the embedded #Config definition, which closes the
// set of fields and supplies defaults. A typical file:
//
//	database:    "monsters.db"
//	max_results: 200
//	log_level:   "debug"
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaSource []byte

// Config holds the runtime settings.
type Config struct {
	Database   string `json:"database"`
	MaxResults int    `json:"max_results"`
	LogLevel   string `json:"log_level"`
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Default returns the schema defaults.
func Default() Config {
	cfg, err := decode(nil, "")
	if err != nil {
		panic(fmt.Sprintf("config: embedded schema: %v", err))
	}
	return cfg
}

// Load reads and validates the CUE file at path. An empty path yields the
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return decode(data, path)
}

// Parse validates CUE source held in memory.
func Parse(data []byte) (Config, error) {
	return decode(data, "config.cue")
}

func decode(data []byte, filename string) (Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, formatCUEError(err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	v := def
	if data != nil {
		file := ctx.CompileBytes(data, cue.Filename(filename))
		if err := file.Err(); err != nil {
			return Config{}, formatCUEError(err)
		}
		v = def.Unify(file)
	}

	if err := v.Validate(); err != nil {
		return Config{}, formatCUEError(err)
	}

	var cfg Config
	if err := v.Decode(&cfg); err != nil {
		return Config{}, formatCUEError(err)
	}
	return cfg, nil
}

// formatCUEError flattens a CUE error list into one error carrying every
// message with its position.
func formatCUEError(err error) error {
	return fmt.Errorf("invalid config: %s", strings.TrimSpace(cueerrors.Details(err, nil)))
}
