package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/encoding/htmlindex"
)

type Config struct {
	App       AppConfig       `toml:"app"`
	Data      DataConfig      `toml:"data"`
	Scripting ScriptingConfig `toml:"scripting"`
	Console   ConsoleConfig   `toml:"console"`
	Rules     RulesConfig     `toml:"rules"`
	Logging   LoggingConfig   `toml:"logging"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Debug     DebugConfig     `toml:"debug"`
}

type AppConfig struct {
	Name string `toml:"name"`
}

type DataConfig struct {
	SpeciesPath string `toml:"species_path"` // empty = embedded first-generation table
}

type ScriptingConfig struct {
	Dir string `toml:"dir"` // holds core/ and combat/; missing = built-in formulas
}

type ConsoleConfig struct {
	Encoding string `toml:"encoding"` // WHATWG label, e.g. "utf-8", "big5", "shift_jis"
}

type RulesConfig struct {
	Starters           []int `toml:"starters"` // species id per starter choice, 1-based
	RepositionOnEvolve bool  `toml:"reposition_on_evolve"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type MetricsConfig struct {
	DumpOnExit bool `toml:"dump_on_exit"`
}

type DebugConfig struct {
	CheckInvariants bool `toml:"check_invariants"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return defaults()
}

func (c *Config) Validate() error {
	if len(c.Rules.Starters) == 0 {
		return fmt.Errorf("rules.starters: at least one starter required")
	}
	for i, id := range c.Rules.Starters {
		if id <= 0 {
			return fmt.Errorf("rules.starters[%d]: species id must be positive, got %d", i, id)
		}
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format: unknown format %q", c.Logging.Format)
	}
	if _, err := htmlindex.Get(c.Console.Encoding); err != nil {
		return fmt.Errorf("console.encoding: %w", err)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		App: AppConfig{
			Name: "Pokedex",
		},
		Scripting: ScriptingConfig{
			Dir: "scripts",
		},
		Console: ConsoleConfig{
			Encoding: "utf-8",
		},
		Rules: RulesConfig{
			Starters: []int{1, 4, 7}, // Bulbasaur, Charmander, Squirtle
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
