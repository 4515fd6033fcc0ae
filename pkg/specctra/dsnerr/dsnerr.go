// Package dsnerr classifies conversion failures.
//
// Grammar errors come from reading and interpreting the DSN text, reference
// errors from identifiers that do not resolve, and configuration errors from
// the caller-supplied overrides or inconsistent problem construction.
package dsnerr

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrGrammar   = errors.New("grammar error")
	ErrReference = errors.New("unresolved reference")
	ErrConfig    = errors.New("configuration error")
)

// Kind is a coarse-grained categorization for errors.
type Kind string

const (
	KindGrammar   Kind = "grammar"
	KindReference Kind = "reference"
	KindConfig    Kind = "config"
)

func (k Kind) sentinel() error {
	switch k {
	case KindGrammar:
		return ErrGrammar
	case KindReference:
		return ErrReference
	case KindConfig:
		return ErrConfig
	}
	return nil
}

// Error wraps an underlying error with the scope it was raised in and a kind.
type Error struct {
	Kind  Kind
	Scope string // e.g. "library/padstack Via_800"
	Err   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := string(e.Kind)
	if e.Scope != "" {
		base = e.Scope + ": " + base
	}
	if e.Err != nil {
		base += ": " + e.Err.Error()
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is makes errors.Is(err, ErrGrammar) and friends match by kind.
func (e *Error) Is(target error) bool {
	return e != nil && target != nil && target == e.Kind.sentinel()
}

// Grammar returns a grammar error for scope.
func Grammar(scope, format string, args ...any) error {
	return &Error{Kind: KindGrammar, Scope: scope, Err: fmt.Errorf(format, args...)}
}

// Reference returns an unresolved-reference error for scope.
func Reference(scope, format string, args ...any) error {
	return &Error{Kind: KindReference, Scope: scope, Err: fmt.Errorf(format, args...)}
}

// Config returns a configuration error for scope.
func Config(scope, format string, args ...any) error {
	return &Error{Kind: KindConfig, Scope: scope, Err: fmt.Errorf(format, args...)}
}

// IsKind helps callers classify errors without inspecting messages.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
