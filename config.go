package datefmt

import (
	"time"

	"go.uber.org/zap"
)

// Config captures compiler and cache setup
type Config struct {
	DefaultLocale string
	Store         Store
	Loader        Loader
	Resolver      FallbackResolver
	Logger        *zap.Logger
	MatchTimeout  time.Duration

	compiler *Compiler
	cache    *Cache
}

// Option mutates Config during construction
type Option func(*Config) error

// NewConfig builds Config via supplied options. It fails with a
// ConfigurationError when the default locale has no table.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	cfg.DefaultLocale = normalizeLocale(cfg.DefaultLocale)
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = DefaultLocale
	}

	if cfg.Store == nil {
		if cfg.Loader != nil {
			store, err := NewStaticStoreFromLoader(cfg.Loader)
			if err != nil {
				return nil, err
			}
			cfg.Store = store
		} else {
			cfg.Store = NewDefaultStore()
		}
	}

	if cfg.Resolver == nil {
		cfg.Resolver = NewStaticFallbackResolver()
	}

	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	compiler, err := NewCompiler(cfg.Store,
		WithCompilerDefaultLocale(cfg.DefaultLocale),
		WithCompilerResolver(cfg.Resolver),
		WithCompilerLogger(cfg.Logger),
		WithMatchTimeout(cfg.MatchTimeout))
	if err != nil {
		return nil, err
	}
	if _, _, err := compiler.Names(cfg.DefaultLocale); err != nil {
		return nil, err
	}

	cfg.compiler = compiler
	cfg.cache = NewCache(compiler)
	return cfg, nil
}

// WithDefaultLocale sets the last locale of every fallback chain
func WithDefaultLocale(locale string) Option {
	return func(c *Config) error {
		c.DefaultLocale = locale
		return nil
	}
}

func WithStore(store Store) Option {
	return func(c *Config) error {
		c.Store = store
		return nil
	}
}

func WithLoader(loader Loader) Option {
	return func(c *Config) error {
		c.Loader = loader
		return nil
	}
}

// WithLocaleFiles loads tables from files layered over the bundled ones.
func WithLocaleFiles(paths ...string) Option {
	return func(c *Config) error {
		if len(paths) == 0 {
			return nil
		}
		c.Loader = NewFileLoader(paths...).WithBuiltin()
		return nil
	}
}

func WithFallbackResolver(resolver FallbackResolver) Option {
	return func(c *Config) error {
		c.Resolver = resolver
		return nil
	}
}

func WithFallback(locale string, fallbacks ...string) Option {
	return func(c *Config) error {
		if locale == "" {
			return nil
		}
		resolver, ok := c.Resolver.(*StaticFallbackResolver)
		if !ok {
			if c.Resolver != nil {
				return nil
			}
			resolver = NewStaticFallbackResolver()
			c.Resolver = resolver
		}
		resolver.Set(locale, fallbacks...)
		return nil
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

func WithConfigMatchTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		c.MatchTimeout = timeout
		return nil
	}
}

func (cfg *Config) Compiler() *Compiler {
	if cfg == nil {
		return nil
	}
	return cfg.compiler
}

func (cfg *Config) Cache() *Cache {
	if cfg == nil {
		return nil
	}
	return cfg.cache
}

// DatePipeline builds a datepicker pipeline from typed options.
func (cfg *Config) DatePipeline(opts DatepickerOptions, extra ...PipelineOption) (*DatePipeline, error) {
	hooks := WithParseHooks(LoggingHook(cfg.Logger))
	return NewDatePipelineFromOptions(cfg.compiler, opts, append([]PipelineOption{hooks}, extra...)...)
}

// TimePipeline builds a timepicker pipeline from typed options.
func (cfg *Config) TimePipeline(opts TimepickerOptions, extra ...TimeOption) (*TimePipeline, error) {
	hooks := WithTimeHooks(LoggingHook(cfg.Logger))
	return NewTimePipelineFromOptions(opts, append([]TimeOption{hooks}, extra...)...)
}
