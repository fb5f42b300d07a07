package repository

import "github.com/okian/benchboard/pkg/logger"

const (
	defaultTable  = "scores"
	defaultPrefix = "benchboard"
)

type options struct {
	table  string
	prefix string
	logger logger.Logger
}

// Option applies a configuration option to a store.
type Option func(*options)

// WithTable sets the SQL table name. It must be a plain identifier.
func WithTable(table string) Option {
	return func(o *options) {
		if table != "" {
			o.table = table
		}
	}
}

// WithKeyPrefix sets the prefix of every Redis key.
func WithKeyPrefix(prefix string) Option {
	return func(o *options) {
		if prefix != "" {
			o.prefix = prefix
		}
	}
}

// WithLogger sets the logger used for store diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts ...Option) options {
	o := options{table: defaultTable, prefix: defaultPrefix, logger: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// optionsOf turns resolved options back into an option list.
func optionsOf(o options) []Option {
	return []Option{WithTable(o.table), WithKeyPrefix(o.prefix), WithLogger(o.logger)}
}
