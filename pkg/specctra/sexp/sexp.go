// Package sexp provides the parenthesized-expression reader used for Specctra
// DSN files. The parser produces a generic tree of atoms and lists; schema
// interpretation happens in the dsn package.
package sexp

import (
	"strings"
)

// Sexp represents an S-expression node.
// It is either an Atom or a *List.
type Sexp interface {
	// IsLeaf returns true if this is an atom (not a list)
	IsLeaf() bool

	// String returns the string representation
	String() string
}

// Atom represents a bare or quoted token. Quotes are not retained.
type Atom string

func (a Atom) IsLeaf() bool { return true }

func (a Atom) String() string {
	s := string(a)
	if s == "" || strings.ContainsAny(s, " \t\r\n()") {
		return `"` + s + `"`
	}
	return s
}

// List represents an ordered list of S-expressions
type List struct {
	elements []Sexp
}

// NewList builds a list from the given elements.
func NewList(elements ...Sexp) *List {
	return &List{elements: elements}
}

func (l *List) IsLeaf() bool { return false }

func (l *List) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, elem := range l.elements {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(elem.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Head returns the first element of the list, or nil for an empty list
func (l *List) Head() Sexp {
	if len(l.elements) == 0 {
		return nil
	}
	return l.elements[0]
}

// Get returns the element at the given index
func (l *List) Get(index int) Sexp {
	if index < 0 || index >= len(l.elements) {
		return nil
	}
	return l.elements[index]
}

// Len returns the number of elements in the list
func (l *List) Len() int {
	return len(l.elements)
}

// Items returns a copy of the list elements.
func (l *List) Items() []Sexp {
	out := make([]Sexp, len(l.elements))
	copy(out, l.elements)
	return out
}

// Equal reports whether two trees have the same shape and atoms.
func Equal(a, b Sexp) bool {
	switch x := a.(type) {
	case Atom:
		y, ok := b.(Atom)
		return ok && x == y
	case *List:
		y, ok := b.(*List)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for i := range x.elements {
			if !Equal(x.elements[i], y.elements[i]) {
				return false
			}
		}
		return true
	}
	return a == nil && b == nil
}
