// Package dsn builds a typed board model from Specctra DSN expressions.
//
// Each scope of the file is interpreted through a table keyed by the leading
// keyword of its child lists. Keywords that are recognized but unused map to
// a no-op handler; anything else fails the whole build with an error naming
// the keyword. There is no partial result.
package dsn

import (
	"fmt"
	"io"
	"os"

	"github.com/OpenTraceLab/dsnroute/pkg/specctra/dsnerr"
	"github.com/OpenTraceLab/dsnroute/pkg/specctra/sexp"
)

// RootKeyword is the keyword of the top-level DSN list
const RootKeyword = "pcb"

// handler interprets one child list of a scope
type handler func(node *sexp.List) error

// ignore is bound to keywords that are recognized but carry nothing we use
func ignore(*sexp.List) error { return nil }

// dispatch routes every child of a scope to the handler for its keyword
func dispatch(scope string, children []sexp.Sexp, table map[string]handler) error {
	for _, child := range children {
		list, ok := child.(*sexp.List)
		if !ok {
			return dsnerr.Grammar(scope, "expected a list, found atom %s", child)
		}

		keyword, err := sexp.GetNodeName(list)
		if err != nil {
			return dsnerr.Grammar(scope, "%w", err)
		}

		h, ok := table[keyword]
		if !ok {
			return dsnerr.Grammar(scope, "unknown keyword %q", keyword)
		}

		if err := h(list); err != nil {
			return err
		}
	}
	return nil
}

// ParseFile reads and builds a design from a DSN file
func ParseFile(filename string, opts ...sexp.Option) (*Design, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file, opts...)
}

// Parse reads and builds a design from an io.Reader
func Parse(r io.Reader, opts ...sexp.Option) (*Design, error) {
	root, err := sexp.Parse(r, opts...)
	if err != nil {
		return nil, &dsnerr.Error{Kind: dsnerr.KindGrammar, Scope: "parser", Err: err}
	}
	return Build(root)
}

// Build interprets an expression tree as a DSN design.
// Expected format: (pcb NAME (parser ...) (resolution ...) (structure ...) ...)
func Build(root sexp.Sexp) (*Design, error) {
	rootList, ok := root.(*sexp.List)
	if !ok {
		return nil, dsnerr.Grammar("root", "expected a list at the top level, got atom %s", root)
	}

	rootName, err := sexp.GetNodeName(rootList)
	if err != nil {
		return nil, dsnerr.Grammar("root", "%w", err)
	}
	if rootName != RootKeyword {
		return nil, dsnerr.Grammar("root", "unknown top-level keyword %q: expected %q", rootName, RootKeyword)
	}

	design := &Design{}
	seen := make(map[string]bool)

	// section wraps a parse function so each section may appear only once
	section := func(name string, parse func(*sexp.List) error) handler {
		return func(node *sexp.List) error {
			if seen[name] {
				return dsnerr.Grammar(RootKeyword, "duplicate %q section", name)
			}
			seen[name] = true
			if err := parse(node); err != nil {
				return fmt.Errorf("failed to parse %s section: %w", name, err)
			}
			return nil
		}
	}

	table := map[string]handler{
		"parser": ignore,
		"unit":   ignore,
		"wiring": ignore,
		"resolution": section("resolution", func(n *sexp.List) (err error) {
			design.Resolution, err = parseResolution(n)
			return err
		}),
		"structure": section("structure", func(n *sexp.List) (err error) {
			design.Structure, err = parseStructure(n)
			return err
		}),
		"placement": section("placement", func(n *sexp.List) (err error) {
			design.Placement, err = parsePlacement(n)
			return err
		}),
		"library": section("library", func(n *sexp.List) (err error) {
			design.Library, err = parseLibrary(n)
			return err
		}),
		"network": section("network", func(n *sexp.List) (err error) {
			design.Network, err = parseNetwork(n)
			return err
		}),
	}

	// Bare atoms at the top level are skipped; the first one names the board.
	var sections []sexp.Sexp
	for _, item := range sexp.GetListItems(rootList) {
		if atom, ok := item.(sexp.Atom); ok {
			if design.Name == "" {
				design.Name = string(atom)
			}
			continue
		}
		sections = append(sections, item)
	}

	if err := dispatch(RootKeyword, sections, table); err != nil {
		return nil, err
	}

	for _, name := range []string{"resolution", "structure", "placement", "library", "network"} {
		if !seen[name] {
			return nil, dsnerr.Grammar(RootKeyword, "missing required %q section", name)
		}
	}

	return design, nil
}

// parseResolution extracts the unit declaration
// Expected format: (resolution um 10)
func parseResolution(node *sexp.List) (Resolution, error) {
	unit, err := sexp.GetString(node, 1)
	if err != nil {
		return Resolution{}, dsnerr.Grammar("resolution", "failed to parse unit: %w", err)
	}

	value, err := sexp.GetFloat(node, 2)
	if err != nil {
		return Resolution{}, dsnerr.Grammar("resolution", "failed to parse value: %w", err)
	}

	return Resolution{Unit: unit, Value: value}, nil
}

// parsePoints reads a flat run of numeric atoms as coordinate pairs
func parsePoints(scope string, items []sexp.Sexp) ([]Point, error) {
	if len(items)%2 != 0 {
		return nil, dsnerr.Grammar(scope, "expected an even number of coordinates, got %d", len(items))
	}

	points := make([]Point, 0, len(items)/2)
	for i := 0; i < len(items); i += 2 {
		x, err := sexp.AtomFloat(items[i])
		if err != nil {
			return nil, dsnerr.Grammar(scope, "failed to parse x of point %d: %w", i/2, err)
		}
		y, err := sexp.AtomFloat(items[i+1])
		if err != nil {
			return nil, dsnerr.Grammar(scope, "failed to parse y of point %d: %w", i/2, err)
		}
		points = append(points, Point{X: x, Y: y})
	}

	return points, nil
}
