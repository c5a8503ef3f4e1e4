package fixture

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/goliatone/go-fixtures/convert"
)

// Transform engine names accepted by Config.Engine.
const (
	EngineExpr = "expr"
	EngineCEL  = "cel"
	EngineJS   = "js"
)

// Config holds environment-driven defaults for records.
type Config struct {
	TagName          string   `env:"FIXTURE_TAG_NAME"           envDefault:"fixture"`
	CaseInsensitive  bool     `env:"FIXTURE_CASE_INSENSITIVE"   envDefault:"true"`
	TimeLayouts      []string `env:"FIXTURE_TIME_LAYOUTS"       envSeparator:";"`
	ProgramCacheSize int      `env:"FIXTURE_PROGRAM_CACHE_SIZE" envDefault:"0"`
	Engine           string   `env:"FIXTURE_TRANSFORM_ENGINE"   envDefault:"expr"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		TagName:         "fixture",
		CaseInsensitive: true,
		TimeLayouts:     append([]string(nil), convert.DefaultTimeLayouts...),
		Engine:          EngineExpr,
	}
}

// LoadConfig reads configuration from FIXTURE_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("fixture: parse env: %w", err)
	}
	if len(cfg.TimeLayouts) == 0 {
		cfg.TimeLayouts = append([]string(nil), convert.DefaultTimeLayouts...)
	}
	switch cfg.Engine {
	case EngineExpr, EngineCEL, EngineJS:
	default:
		return DefaultConfig(), fmt.Errorf("fixture: unknown transform engine %q", cfg.Engine)
	}
	return cfg, nil
}
