// Package config loads the perft driver's optional defaults from a TOML
// file, the same way the rest of this corpus keeps engine defaults out of
// code and flags.
package config

import (
	"github.com/BurntSushi/toml"
)

// Perft holds the perft driver's defaults. Any CLI flag the user actually
// passes overrides the matching field.
type Perft struct {
	Depth   int    `toml:"depth"`
	Threads int    `toml:"threads"`
	Bulk    bool   `toml:"bulk"`
	FEN     string `toml:"fen"`
	LogLevel string `toml:"log_level"`
}

// Default returns the built-in defaults used when no config file is given.
func Default() Perft {
	return Perft{
		Depth:    4,
		Threads:  0,
		Bulk:     true,
		FEN:      "",
		LogLevel: "warning",
	}
}

// Load decodes a TOML file into a Perft config seeded with Default values,
// so a file only needs to set the fields it wants to override.
func Load(path string) (Perft, error) {
	cfg := Default()
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}
