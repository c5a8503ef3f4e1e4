package fixture

import (
	"github.com/goliatone/go-fixtures/convert"
	"github.com/goliatone/go-fixtures/navigate"
)

// Option configures a Record.
type Option func(*recordConfig)

type recordConfig struct {
	navigator    navigate.Navigator
	converters   *convert.Registry
	logger       BindLogger
	transformer  Transformer
	programCache ProgramCache
	functions    *FunctionRegistry
	settings     Config
	hasSettings  bool
}

func applyOptions(opts []Option) recordConfig {
	cfg := recordConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg.withDefaults()
}

// withDefaults fills collaborators that were not configured explicitly. It
// runs once at construction so read-only operations never initialise state.
func (cfg recordConfig) withDefaults() recordConfig {
	if !cfg.hasSettings {
		cfg.settings = DefaultConfig()
	}
	if cfg.converters == nil {
		cfg.converters = convert.NewRegistry(convert.WithTimeLayouts(cfg.settings.TimeLayouts...))
	}
	if cfg.navigator == nil {
		cfg.navigator = navigate.NewReflect(
			navigate.WithConverter(cfg.converters),
			navigate.WithTagName(cfg.settings.TagName),
			navigate.WithCaseInsensitive(cfg.settings.CaseInsensitive),
		)
	}
	if cfg.logger == nil {
		cfg.logger = noopBindLogger{}
	}
	if cfg.programCache == nil && cfg.settings.ProgramCacheSize > 0 {
		if cache, err := NewLRUProgramCache(cfg.settings.ProgramCacheSize); err == nil {
			cfg.programCache = cache
		}
	}
	return cfg
}

// WithConfig applies environment-style settings. Explicit collaborators such
// as WithNavigator or WithConverters take precedence over derived ones.
func WithConfig(settings Config) Option {
	return func(cfg *recordConfig) {
		cfg.settings = settings
		cfg.hasSettings = true
	}
}

// WithNavigator replaces the reflection navigator used to reach target fields.
func WithNavigator(n navigate.Navigator) Option {
	return func(cfg *recordConfig) {
		cfg.navigator = n
	}
}

// WithConverters replaces the conversion registry. The default navigator
// uses the same registry to coerce values on write.
func WithConverters(registry *convert.Registry) Option {
	return func(cfg *recordConfig) {
		cfg.converters = registry
	}
}

// WithTransformer configures the engine used by ConvertExpr.
func WithTransformer(t Transformer) Option {
	return func(cfg *recordConfig) {
		cfg.transformer = t
	}
}
