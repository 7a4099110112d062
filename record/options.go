package record

import (
	"go.uber.org/zap"

	"github.com/on-the-ground/memcord/equality"
	"github.com/on-the-ground/memcord/internal/logging"
	"github.com/on-the-ground/memcord/schema"
)

// Mode selects whether a factory validates keys.
type Mode int

const (
	// Development validates every key against the schema. It is the default.
	Development Mode = iota
	// Production skips validation.
	Production
)

func (m Mode) String() string {
	switch m {
	case Development:
		return "development"
	case Production:
		return "production"
	default:
		return "unknown"
	}
}

type config struct {
	schema *schema.Schema
	equals equality.Func
	mode   Mode
	logger *zap.Logger
}

// Option configures a Factory.
type Option func(*config)

func newConfig(opts []Option) config {
	cfg := config{mode: Development}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.equals = equality.Or(cfg.equals)
	cfg.logger = logging.Or(cfg.logger)
	if cfg.mode != Production {
		cfg.mode = Development
	}
	return cfg
}

// WithSchema restricts the factory to the keys of s. A nil schema is open.
func WithSchema(s *schema.Schema) Option {
	return func(c *config) {
		c.schema = s
	}
}

// WithKeys declares the schema inline. It panics on an invalid declaration.
func WithKeys(name string, keys ...string) Option {
	s := schema.MustNew(name, keys...)
	return WithSchema(s)
}

// WithEquals sets the equality strategy. Nil means equality.Identity.
func WithEquals(eq equality.Func) Option {
	return func(c *config) {
		c.equals = eq
	}
}

func WithMode(m Mode) Option {
	return func(c *config) {
		c.mode = m
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}
