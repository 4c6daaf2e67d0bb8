package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagSeed      = flag.Int64("seed", 0, "Terrain seed (0 keeps the configured seed)")
	flagGenerator = flag.String("generator", "", "Terrain generator: uniform or noise")
	flagWidth     = flag.Int("width", 0, "Map width in chunks")
	flagHeight    = flag.Int("height", 0, "Map height in chunks")
	flagLogFile   = flag.String("log-file", "", "Write JSON logs to this file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSeed != 0 {
		cfg.Generation.Seed = *flagSeed
	}
	if *flagGenerator != "" {
		cfg.Generation.Generator = *flagGenerator
	}
	if *flagWidth > 0 {
		cfg.Map.ChunksWide = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Map.ChunksHigh = *flagHeight
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
