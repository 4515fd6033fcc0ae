package sexp

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// DefaultMaxDepth bounds list nesting unless overridden with WithMaxDepth.
const DefaultMaxDepth = 1024

// Option configures a Parser
type Option func(*Parser)

// WithMaxDepth sets the maximum list nesting depth. Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		if depth > 0 {
			p.maxDepth = depth
		}
	}
}

// WithLogger sets the logger used for non-fatal warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Parser reads a single top-level S-expression.
// It keeps an explicit stack of open lists instead of recursing, so input
// nesting depth never grows the Go call stack.
type Parser struct {
	maxDepth int
	logger   *slog.Logger
}

// NewParser creates a new parser
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		maxDepth: DefaultMaxDepth,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses the first S-expression from r.
func Parse(r io.Reader, opts ...Option) (Sexp, error) {
	return NewParser(opts...).Parse("", r)
}

// ParseString parses the first S-expression from a string (convenience function)
func ParseString(s string, opts ...Option) (Sexp, error) {
	return Parse(strings.NewReader(s), opts...)
}

// openList is a list whose closing parenthesis has not been seen yet
type openList struct {
	pos      lexer.Position
	elements []Sexp
}

// Parse reads the first expression from r. filename is only used in
// positions reported by errors and warnings.
func (p *Parser) Parse(filename string, r io.Reader) (Sexp, error) {
	lex, err := DSNLexer.Lex(filename, r)
	if err != nil {
		return nil, fmt.Errorf("failed to start lexer: %w", err)
	}
	ts := &tokenStream{lex: lex}

	root, err := p.parseExpr(ts)
	if err != nil {
		return nil, err
	}

	// Anything after the first expression is reported and dropped.
	tok, err := ts.next()
	if err != nil {
		return nil, fmt.Errorf("failed to read trailing input: %w", err)
	}
	if !tok.EOF() {
		p.logger.Warn("trailing input after top-level expression ignored",
			"position", tok.Pos.String(),
			"token", tok.Value)
	}

	return root, nil
}

func (p *Parser) parseExpr(ts *tokenStream) (Sexp, error) {
	var stack []*openList

	for {
		tok, err := ts.next()
		if err != nil {
			return nil, fmt.Errorf("lexical error: %w", err)
		}

		var done Sexp

		switch {
		case tok.EOF():
			if len(stack) == 0 {
				return nil, fmt.Errorf("empty input: no expression found")
			}
			top := stack[len(stack)-1]
			return nil, fmt.Errorf("unterminated list opened at %s: missing ')'", top.pos)

		case tok.Type == tokLParen:
			if len(stack) >= p.maxDepth {
				return nil, fmt.Errorf("nesting depth exceeds limit of %d at %s", p.maxDepth, tok.Pos)
			}
			stack = append(stack, &openList{pos: tok.Pos})
			continue

		case tok.Type == tokRParen:
			if len(stack) == 0 {
				return nil, fmt.Errorf("unexpected ')' at %s", tok.Pos)
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			done = &List{elements: top.elements}

		case tok.Type == tokAtom || tok.Type == tokString:
			done = Atom(tok.Value)

		default:
			return nil, fmt.Errorf("unexpected token %q at %s", tok.Value, tok.Pos)
		}

		if len(stack) == 0 {
			return done, nil
		}
		parent := stack[len(stack)-1]
		parent.elements = append(parent.elements, done)
	}
}
