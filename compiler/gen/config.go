package gen

import (
	"log/slog"
	"runtime"

	"github.com/gobwas/glob"

	"github.com/syssam/weave/behavior"
	"github.com/syssam/weave/behavior/softdelete"
	"github.com/syssam/weave/behavior/timestampable"
)

// DefaultHeader is the header comment of generated files.
const DefaultHeader = "Code generated by weave. DO NOT EDIT."

// DefaultPackage is the package name of generated files when neither the
// config nor the schema document names one.
const DefaultPackage = "model"

// Config holds the global configuration for code generation.
type Config struct {
	// Target is the output directory of generated files.
	Target string

	// Package is the package name of generated files. It overrides the
	// package declared by the schema document.
	Package string

	// Header is the comment placed at the top of each generated file.
	Header string

	// Workers bounds the number of tables generated in parallel.
	Workers int

	// Tables, when set, restricts generation to tables whose name matches.
	Tables glob.Glob

	// Incremental skips rewriting files whose content did not change since
	// the last run recorded in the manifest.
	Incremental bool

	// Logger receives progress logs. Defaults to a discarding logger.
	Logger *slog.Logger

	// Registry resolves behavior names. Defaults to DefaultRegistry.
	Registry *behavior.Registry
}

// NewConfig returns a config with defaults applied, then opts.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Header:   DefaultHeader,
		Workers:  runtime.GOMAXPROCS(0),
		Logger:   slog.New(slog.DiscardHandler),
		Registry: DefaultRegistry(),
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// DefaultRegistry returns a registry holding the built-in behaviors.
func DefaultRegistry() *behavior.Registry {
	r := behavior.NewRegistry()
	timestampable.Register(r)
	softdelete.Register(r)
	return r
}

// Match reports whether the table is selected for generation.
func (c *Config) Match(table string) bool {
	return c.Tables == nil || c.Tables.Match(table)
}

// logger returns the configured logger or a discarding one.
func (c *Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// registry returns the configured registry or the default one.
func (c *Config) registry() *behavior.Registry {
	if c.Registry == nil {
		return DefaultRegistry()
	}
	return c.Registry
}
