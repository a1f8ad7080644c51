package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Log       LogConfig       `mapstructure:"log"`
	Optimizer OptimizerConfig `mapstructure:"optimizer"`
	Input     InputConfig     `mapstructure:"input"`
	Start     StartConfig     `mapstructure:"start"`
	Output    OutputConfig    `mapstructure:"output"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	SeedPath string `mapstructure:"seed_path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type OptimizerConfig struct {
	MaxPasses    int     `mapstructure:"max_passes"`
	MinutesPerKm float64 `mapstructure:"minutes_per_km"`
}

const (
	SourceXLSX     = "xlsx"
	SourcePostgres = "postgres"
)

type InputConfig struct {
	Source          string `mapstructure:"source"`
	Path            string `mapstructure:"path"`
	Sheet           string `mapstructure:"sheet"`
	FirstRowIsStart bool   `mapstructure:"first_row_is_start"`
}

// StartConfig is an explicit start location. It is used only when both
// coordinates are set; pointers distinguish 0 from unset.
type StartConfig struct {
	Lat *float64 `mapstructure:"lat"`
	Lon *float64 `mapstructure:"lon"`
}

type OutputConfig struct {
	Path string `mapstructure:"path"`
}

// Load reads configuration from defaults, an optional .env and config.yaml,
// ROUTEOPT_* environment variables and, when flags is non-nil, command-line flags.
func Load(flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found (using environment variables)")
	}

	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.url", "")
	v.SetDefault("database.seed_path", "data/seeds/points.json")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("optimizer.max_passes", 1000)
	v.SetDefault("optimizer.minutes_per_km", 3.0)
	v.SetDefault("input.source", SourceXLSX)
	v.SetDefault("input.path", "coordenadas.xlsx")
	v.SetDefault("input.sheet", "")
	v.SetDefault("input.first_row_is_start", true)
	v.SetDefault("output.path", "optimized_route.txt")

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	// Environment variables: ROUTEOPT_INPUT_PATH -> input.path
	v.SetEnvPrefix("ROUTEOPT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only resolves keys viper already knows about.
	_ = v.BindEnv("start.lat")
	_ = v.BindEnv("start.lon")
	// Unprefixed names used by the original deployment scripts.
	_ = v.BindEnv("database.url", "ROUTEOPT_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("server.port", "ROUTEOPT_SERVER_PORT", "PORT")

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// bindFlags binds explicitly set flags. Names map to config keys: --input-path -> input.path.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var errs []error
	flags.VisitAll(func(f *pflag.Flag) {
		// Unchanged flags would shadow unset optional keys such as start.lat.
		if !f.Changed {
			return
		}

		key := strings.ReplaceAll(f.Name, "-", ".")
		if strings.Count(key, ".") > 1 {
			// --input-first-row-is-start -> input.first_row_is_start
			section, rest, _ := strings.Cut(key, ".")
			key = section + "." + strings.ReplaceAll(rest, ".", "_")
		}
		if err := v.BindPFlag(key, f); err != nil {
			errs = append(errs, fmt.Errorf("bind flag %q: %w", f.Name, err))
		}
	})
	return errors.Join(errs...)
}

// StartCoordinates returns the configured start location; ok is false when either coordinate is unset.
func (c *Config) StartCoordinates() (lat, lon float64, ok bool) {
	if c.Start.Lat == nil || c.Start.Lon == nil {
		return 0, 0, false
	}
	return *c.Start.Lat, *c.Start.Lon, true
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Optimizer.MaxPasses <= 0 {
		errs = append(errs, fmt.Sprintf("optimizer.max_passes must be positive, got %d", c.Optimizer.MaxPasses))
	}
	if c.Optimizer.MinutesPerKm <= 0 {
		errs = append(errs, fmt.Sprintf("optimizer.minutes_per_km must be positive, got %v", c.Optimizer.MinutesPerKm))
	}

	switch c.Input.Source {
	case SourceXLSX:
		if strings.TrimSpace(c.Input.Path) == "" {
			errs = append(errs, "input.path is required for the xlsx source")
		}
	case SourcePostgres:
		if strings.TrimSpace(c.Database.URL) == "" {
			errs = append(errs, "database.url is required for the postgres source")
		}
	default:
		errs = append(errs, fmt.Sprintf("input.source must be %q or %q, got %q", SourceXLSX, SourcePostgres, c.Input.Source))
	}

	if (c.Start.Lat == nil) != (c.Start.Lon == nil) {
		errs = append(errs, "start.lat and start.lon must be set together")
	}
	if c.Start.Lat != nil && (*c.Start.Lat < -90 || *c.Start.Lat > 90) {
		errs = append(errs, fmt.Sprintf("start.lat must be within [-90, 90], got %v", *c.Start.Lat))
	}
	if c.Start.Lon != nil && (*c.Start.Lon < -180 || *c.Start.Lon > 180) {
		errs = append(errs, fmt.Sprintf("start.lon must be within [-180, 180], got %v", *c.Start.Lon))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
