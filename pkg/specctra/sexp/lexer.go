package sexp

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// DSNLexer defines the lexical structure of Specctra DSN text.
// A quoted string carries no escape processing; anything else that is not
// whitespace or a parenthesis is a bare atom.
var DSNLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},

	// (string_quote ") declares the quote character itself. Matched as one
	// token so the lone quote does not open a string.
	{Name: "QuoteDirective", Pattern: `string_quote\s+"`},

	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "String", Pattern: `"[^"]*"`},
	{Name: "Atom", Pattern: `[^\s()]+`},
})

var (
	tokWhitespace     = DSNLexer.Symbols()["Whitespace"]
	tokQuoteDirective = DSNLexer.Symbols()["QuoteDirective"]
	tokLParen         = DSNLexer.Symbols()["LParen"]
	tokRParen         = DSNLexer.Symbols()["RParen"]
	tokString         = DSNLexer.Symbols()["String"]
	tokAtom           = DSNLexer.Symbols()["Atom"]
)

// tokenStream wraps a participle lexer, dropping whitespace and splitting the
// quote directive into its two atoms.
type tokenStream struct {
	lex     lexer.Lexer
	pending []lexer.Token
}

func (ts *tokenStream) next() (lexer.Token, error) {
	if len(ts.pending) > 0 {
		tok := ts.pending[0]
		ts.pending = ts.pending[1:]
		return tok, nil
	}

	for {
		tok, err := ts.lex.Next()
		if err != nil {
			return lexer.Token{}, err
		}

		switch tok.Type {
		case tokWhitespace:
			continue
		case tokQuoteDirective:
			quote := tok
			quote.Type = tokAtom
			quote.Value = `"`
			ts.pending = append(ts.pending, quote)

			tok.Type = tokAtom
			tok.Value = "string_quote"
			return tok, nil
		case tokString:
			tok.Value = tok.Value[1 : len(tok.Value)-1]
			return tok, nil
		default:
			return tok, nil
		}
	}
}
