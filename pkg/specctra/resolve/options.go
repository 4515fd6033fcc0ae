package resolve

import (
	"io"
	"log/slog"
)

// Option configures pad and net resolution
type Option func(*options)

type options struct {
	lowerer ShapeLowerer
	logger  *slog.Logger
}

func newOptions(opts []Option) options {
	o := options{
		lowerer: DefaultShapeLowerer,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithShapeLowerer replaces the padstack shape conversion
func WithShapeLowerer(l ShapeLowerer) Option {
	return func(o *options) {
		if l != nil {
			o.lowerer = l
		}
	}
}

// WithLogger sets the logger used for debug output
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
