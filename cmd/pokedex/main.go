package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pokedexgo/pokedex/internal/config"
	"github.com/pokedexgo/pokedex/internal/console"
	"github.com/pokedexgo/pokedex/internal/core/event"
	"github.com/pokedexgo/pokedex/internal/data"
	"github.com/pokedexgo/pokedex/internal/handler"
	"github.com/pokedexgo/pokedex/internal/menu"
	"github.com/pokedexgo/pokedex/internal/metrics"
	"github.com/pokedexgo/pokedex/internal/scripting"
	"github.com/pokedexgo/pokedex/internal/system"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultConfigPath = "config/pokedex.toml"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

type rootFlags struct {
	config   string
	species  string
	scripts  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	cmd := &cobra.Command{
		Use:           "pokedex",
		Short:         "Interactive per-owner Pokedex catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, &flags)
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.config, "config", "", "config file (default $POKEDEX_CONFIG or "+defaultConfigPath+")")
	pf.StringVar(&flags.species, "species", "", "species YAML file (default: embedded first-generation table)")
	pf.StringVar(&flags.scripts, "scripts", "", "Lua scripts directory")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(newSpeciesCmd(&flags))
	return cmd
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(w io.Writer, name string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "\033[36;1m  ── %s ──\033[0m\n\n", name)
}

func printSection(w io.Writer, title string) {
	lineLen := max(46-len(title)-1, 3)
	fmt.Fprintf(w, "  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(w io.Writer, label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(42-len(label)-len(numStr), 3)
	fmt.Fprintf(w, "  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(w io.Writer, msg string) {
	fmt.Fprintf(w, "  \033[32m✓\033[0m %s\n", msg)
}

// ── Main logic ─────────────────────────────────────────────────────

func run(cmd *cobra.Command, flags *rootFlags) error {
	// 1. Load config
	cfg, err := loadConfig(flags)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	status := cmd.ErrOrStderr()
	printBanner(status, cfg.App.Name)

	// 3. Load species data and scripts
	printSection(status, "Data")
	species, err := loadSpecies(cfg.Data)
	if err != nil {
		return fmt.Errorf("load species: %w", err)
	}
	printStat(status, "Species", species.Count())

	engine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
	if err != nil {
		return fmt.Errorf("init scripting: %w", err)
	}
	defer engine.Close()
	if engine.HasBattleFormula() {
		printOK(status, "Battle formula loaded from "+cfg.Scripting.Dir)
	} else {
		printOK(status, "Built-in battle formula")
	}

	// 4. Wire the catalog service
	bus := event.NewBus()
	recorder := metrics.NewRecorder()
	recorder.Attach(bus)
	system.LogEvents(bus, log)

	dex := system.New(system.Deps{
		Species:         species,
		Scorer:          engine,
		Bus:             bus,
		Log:             log,
		Rules:           cfg.Rules,
		CheckInvariants: cfg.Debug.CheckInvariants,
	})

	// 5. Run the menu until Exit or end of input
	out := cmd.OutOrStdout()
	in, err := console.NewPrompter(cmd.InOrStdin(), out, cfg.Console.Encoding)
	if err != nil {
		dex.Close()
		return err
	}
	reg := menu.NewRegistry(log)
	handler.RegisterAll(reg, &handler.Deps{Dex: dex, In: in, Out: out, Log: log})

	runErr := reg.Run(&menu.Session{}, in, out)
	dex.Close()
	log.Info("session ended")

	if cfg.Metrics.DumpOnExit {
		if err := recorder.Dump(status); err != nil {
			log.Warn("metrics dump failed", zap.Error(err))
		}
	}
	return runErr
}

// loadConfig resolves the config file from the flag, then $POKEDEX_CONFIG,
// then the default path if it exists, and applies flag overrides on top.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	path := flags.config
	if path == "" {
		path = os.Getenv("POKEDEX_CONFIG")
	}
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		}
	}

	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	if flags.species != "" {
		cfg.Data.SpeciesPath = flags.species
	}
	if flags.scripts != "" {
		cfg.Scripting.Dir = flags.scripts
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadSpecies(cfg config.DataConfig) (*data.SpeciesTable, error) {
	if cfg.SpeciesPath == "" {
		return data.LoadDefaultSpeciesTable()
	}
	return data.LoadSpeciesTable(cfg.SpeciesPath)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
