package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

const configFileName = "grammarsmith.toml"

type fileConfig struct {
	Output outputConfig `toml:"output"`
	Check  checkConfig  `toml:"check"`
	Input  inputConfig  `toml:"input"`
}

type outputConfig struct {
	Color          string `toml:"color"`
	Format         string `toml:"format"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

type checkConfig struct {
	Jobs      int    `toml:"jobs"`
	UI        string `toml:"ui"`
	Extension string `toml:"extension"`
}

type inputConfig struct {
	NFC bool `toml:"nfc"`
}

// flagDefault is a config value destined for the flag of the same meaning.
type flagDefault struct {
	flag  string
	value string
}

func findConfigFile(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadConfig decodes and validates path and returns the values it defines,
// keyed by flag name. Keys absent from the file are not returned.
func loadConfig(path string) ([]flagDefault, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	var out []flagDefault
	if meta.IsDefined("output", "color") {
		if _, err := readUIMode(cfg.Output.Color); err != nil {
			return nil, fmt.Errorf("%s: [output].color must be auto, on or off", path)
		}
		out = append(out, flagDefault{"color", cfg.Output.Color})
	}
	if meta.IsDefined("output", "format") {
		if _, err := readFormat(cfg.Output.Format); err != nil {
			return nil, fmt.Errorf("%s: [output].format: %w", path, err)
		}
		out = append(out, flagDefault{"format", cfg.Output.Format})
	}
	if meta.IsDefined("output", "max_diagnostics") {
		if cfg.Output.MaxDiagnostics < 0 {
			return nil, fmt.Errorf("%s: [output].max_diagnostics must not be negative", path)
		}
		out = append(out, flagDefault{"max-diagnostics", strconv.Itoa(cfg.Output.MaxDiagnostics)})
	}
	if meta.IsDefined("check", "jobs") {
		if cfg.Check.Jobs < 0 {
			return nil, fmt.Errorf("%s: [check].jobs must not be negative", path)
		}
		out = append(out, flagDefault{"jobs", strconv.Itoa(cfg.Check.Jobs)})
	}
	if meta.IsDefined("check", "ui") {
		if _, err := readUIMode(cfg.Check.UI); err != nil {
			return nil, fmt.Errorf("%s: [check].ui must be auto, on or off", path)
		}
		out = append(out, flagDefault{"ui", cfg.Check.UI})
	}
	if meta.IsDefined("check", "extension") {
		if !strings.HasPrefix(cfg.Check.Extension, ".") {
			return nil, fmt.Errorf("%s: [check].extension must start with a dot", path)
		}
		out = append(out, flagDefault{"ext", cfg.Check.Extension})
	}
	if meta.IsDefined("input", "nfc") {
		out = append(out, flagDefault{"nfc", strconv.FormatBool(cfg.Input.NFC)})
	}
	return out, nil
}

// applyConfig fills flags the user did not set from grammarsmith.toml. An
// explicit --config must exist; otherwise a missing file is not an error.
func applyConfig(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if path == "" {
		var ok bool
		path, ok, err = findConfigFile(".")
		if err != nil || !ok {
			return err
		}
	}
	defaults, err := loadConfig(path)
	if err != nil {
		return err
	}
	for _, d := range defaults {
		f := cmd.Flags().Lookup(d.flag)
		if f == nil || f.Changed {
			continue // флаг другой команды или задан явно
		}
		if err := f.Value.Set(d.value); err != nil {
			return fmt.Errorf("%s: %s: %w", path, d.flag, err)
		}
	}
	return nil
}
