package config

import (
	"github.com/spf13/pflag"

	"github.com/Faultbox/pureparts/pkg/geometry"
)

// Flags holds command-line overrides. Zero values mean "not set".
type Flags struct {
	Config     string
	Debug      bool
	LogLevel   string
	LogFile    string
	Legacy     bool
	BoundsSize string
	Center     string
	Seed       string
}

// BindFlags registers the override flags on fs.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.LogFile, "log-file", "", "Write logs to a rotating file")
	fs.BoolVar(&f.Legacy, "legacy-bounds", false, "Zero-seeded box, diagonal size, half-extent center")
	fs.StringVar(&f.BoundsSize, "size", "", "Model size policy (max_axis, diagonal)")
	fs.StringVar(&f.Center, "center", "", "Model center policy (midpoint, half_extent)")
	fs.StringVar(&f.Seed, "seed", "", "Bounds seed policy (first, origin)")
	return f
}

// ConfigPath returns the explicit config path if provided via --config flag.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return f.Config
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, f *Flags) {
	if f == nil {
		return
	}
	if f.LogLevel != "" {
		cfg.Logging.Level = f.LogLevel
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.Legacy {
		cfg.Loader.Bounds = geometry.LegacyBoundsPolicy()
	}
	if f.BoundsSize != "" {
		cfg.Loader.Bounds.Size = geometry.SizePolicy(f.BoundsSize)
	}
	if f.Center != "" {
		cfg.Loader.Bounds.Center = geometry.CenterPolicy(f.Center)
	}
	if f.Seed != "" {
		cfg.Loader.Bounds.Seed = geometry.SeedPolicy(f.Seed)
	}
}
