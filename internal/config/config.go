// Package config loads cmd/tsrepl's TOML configuration file: the
// delimiters, variable sigil, and REPL behavior a user can pin down instead
// of relying on the compiled-in defaults. Grounded in
// internal/tqw.ScanFileInfo's use of BurntSushi/toml for format-file
// headers - the same library, used here for a much smaller document.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/dekarrin/transcribble/tsexpr"
)

// File is the on-disk shape of a tsrepl config file.
type File struct {
	Syntax  Syntax  `toml:"syntax"`
	Repl    Repl    `toml:"repl"`
	History History `toml:"history"`
}

// Syntax controls the delimiters and strictness tsexpr parses with.
type Syntax struct {
	OpeningDelim string `toml:"opening_delim"`
	ClosingDelim string `toml:"closing_delim"`
	VarSymbol    string `toml:"var_symbol"`
	Strict       bool   `toml:"strict"`
	HexPrefix    string `toml:"hex_prefix"`
}

// Repl controls cmd/tsrepl's own behavior.
type Repl struct {
	// StartMode is "interpolate" or "eval", selecting the REPL's initial
	// :mode - see SPEC_FULL.md's REPL mode toggle.
	StartMode string `toml:"start_mode"`

	MaintainCallStack bool `toml:"maintain_call_stack"`
}

// History is the [history] section of the config file. It is parsed, but
// nothing in tsrepl reads it: the REPL keeps no readline history file.
type History struct {
	Path    string `toml:"path"`
	Disable bool   `toml:"disable"`
}

// Default returns the File matching tsexpr.DefaultOptions() and tsrepl's
// built-in defaults.
func Default() File {
	return File{
		Syntax: Syntax{
			OpeningDelim: "[",
			ClosingDelim: "]",
			VarSymbol:    ".",
			Strict:       false,
		},
		Repl: Repl{
			StartMode: "interpolate",
		},
		History: History{
			Path: "~/.tsrepl_history",
		},
	}
}

// Load reads and parses the TOML file at path. A missing file is not an
// error; it returns Default() unchanged.
func Load(path string) (File, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

func firstByte(s string, fallback byte) byte {
	if len(s) == 0 {
		return fallback
	}
	return s[0]
}

// Options converts the loaded Syntax section into tsexpr.Options, layered
// on top of tsexpr.DefaultOptions().
func (f File) Options() tsexpr.Options {
	opts := tsexpr.DefaultOptions()
	opts.OpeningDelim = firstByte(f.Syntax.OpeningDelim, opts.OpeningDelim)
	opts.ClosingDelim = firstByte(f.Syntax.ClosingDelim, opts.ClosingDelim)
	opts.VarSymbol = firstByte(f.Syntax.VarSymbol, opts.VarSymbol)
	opts.StrictSyntax = f.Syntax.Strict
	if f.Syntax.HexPrefix != "" {
		opts.HexPrefix = f.Syntax.HexPrefix[0]
	}
	opts.MaintainCallStack = f.Repl.MaintainCallStack
	return opts
}
