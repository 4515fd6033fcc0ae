// Package specctra converts a Specctra DSN board description into a routing
// problem.
//
// The conversion runs in four stages, each usable on its own:
//
//	sexp.Parse          text -> expression tree
//	dsn.Build           expression tree -> design model
//	resolve.Resolve     design model -> placed pads and net records
//	problem.Assemble    net records + overrides -> routing problem
//
// Any error aborts the conversion; nothing partial is returned.
package specctra

import (
	"io"
	"log/slog"

	"github.com/OpenTraceLab/dsnroute/pkg/specctra/dsn"
	"github.com/OpenTraceLab/dsnroute/pkg/specctra/problem"
	"github.com/OpenTraceLab/dsnroute/pkg/specctra/resolve"
	"github.com/OpenTraceLab/dsnroute/pkg/specctra/sexp"
)

// Option configures a conversion
type Option func(*config)

type config struct {
	logger   *slog.Logger
	maxDepth int
	lowerer  resolve.ShapeLowerer
}

// WithLogger sets the logger for warnings and debug output
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithMaxDepth limits list nesting in the input
func WithMaxDepth(depth int) Option {
	return func(c *config) { c.maxDepth = depth }
}

// WithShapeLowerer replaces the padstack shape conversion
func WithShapeLowerer(l resolve.ShapeLowerer) Option {
	return func(c *config) { c.lowerer = l }
}

func newConfig(opts []Option) config {
	c := config{maxDepth: sexp.DefaultMaxDepth}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c config) sexpOptions() []sexp.Option {
	return []sexp.Option{sexp.WithMaxDepth(c.maxDepth), sexp.WithLogger(c.logger)}
}

func (c config) resolveOptions() []resolve.Option {
	return []resolve.Option{resolve.WithShapeLowerer(c.lowerer), resolve.WithLogger(c.logger)}
}

// Result carries every stage of a conversion
type Result struct {
	Design  *dsn.Design
	Board   *resolve.Board
	Problem *problem.RoutingProblem
}

// ParseDesign reads a design model from r
func ParseDesign(r io.Reader, opts ...Option) (*dsn.Design, error) {
	c := newConfig(opts)
	return dsn.Parse(r, c.sexpOptions()...)
}

// ResolveBoard reads a design from r and places its pads
func ResolveBoard(r io.Reader, opts ...Option) (*dsn.Design, *resolve.Board, error) {
	c := newConfig(opts)

	design, err := dsn.Parse(r, c.sexpOptions()...)
	if err != nil {
		return nil, nil, err
	}

	board, err := resolve.Resolve(design, c.resolveOptions()...)
	if err != nil {
		return nil, nil, err
	}

	return design, board, nil
}

// Convert runs the whole pipeline on r
func Convert(r io.Reader, extra problem.ExtraInfo, opts ...Option) (*Result, error) {
	c := newConfig(opts)

	design, board, err := ResolveBoard(r, opts...)
	if err != nil {
		return nil, err
	}

	p, err := problem.Assemble(board, extra, problem.WithLogger(c.logger))
	if err != nil {
		return nil, err
	}

	return &Result{Design: design, Board: board, Problem: p}, nil
}

// ConvertFile runs the whole pipeline on a DSN file, which may be gzipped
func ConvertFile(path string, extra problem.ExtraInfo, opts ...Option) (*Result, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Convert(f, extra, opts...)
}
