package gen

import (
	"errors"
	"log/slog"

	"github.com/gobwas/glob"

	"github.com/syssam/weave/behavior"
)

// Option configures code generation.
type Option func(*Config) error

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithPackage sets the package name of generated files.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithWorkers sets the number of tables generated in parallel.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewConfigError("Workers", n, "must be at least 1")
		}
		c.Workers = n
		return nil
	}
}

// WithTables restricts generation to tables matching the glob pattern,
// e.g. "blog_*".
func WithTables(pattern string) Option {
	return func(c *Config) error {
		g, err := glob.Compile(pattern)
		if err != nil {
			return NewConfigError("Tables", pattern, err.Error())
		}
		c.Tables = g
		return nil
	}
}

// WithIncremental enables skipping unchanged output files.
func WithIncremental(on bool) Option {
	return func(c *Config) error {
		c.Incremental = on
		return nil
	}
}

// WithLogger sets the progress logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithRegistry sets the behavior registry.
func WithRegistry(r *behavior.Registry) Option {
	return func(c *Config) error {
		if r == nil {
			return NewConfigError("Registry", nil, "registry cannot be nil")
		}
		c.Registry = r
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
