package dsn

import (
	"github.com/OpenTraceLab/dsnroute/pkg/specctra/dsnerr"
	"github.com/OpenTraceLab/dsnroute/pkg/specctra/sexp"
)

// boundaryHeaderLen is the number of tokens before the coordinates of a
// boundary path: keyword, layer, aperture width.
const boundaryHeaderLen = 3

// parseStructure extracts layers and the board outline
// Expected format: (structure (layer F.Cu ...) (boundary (path pcb 0 x y ...)) (via ...) (rule ...))
func parseStructure(node *sexp.List) (Structure, error) {
	var st Structure
	haveBoundary := false

	table := map[string]handler{
		"layer": func(n *sexp.List) error {
			layer, err := parseLayer(n)
			if err != nil {
				return err
			}
			st.Layers = append(st.Layers, layer)
			return nil
		},
		"boundary": func(n *sexp.List) error {
			if haveBoundary {
				return dsnerr.Grammar("structure", "duplicate boundary")
			}
			points, err := parseBoundary(n)
			if err != nil {
				return err
			}
			st.Boundary = points
			haveBoundary = true
			return nil
		},
		"via":  ignore,
		"rule": ignore,
	}

	if err := dispatch("structure", sexp.GetListItems(node), table); err != nil {
		return Structure{}, err
	}

	if !haveBoundary {
		return Structure{}, dsnerr.Grammar("structure", "missing required boundary")
	}

	return st, nil
}

// parseLayer extracts a layer name
// Expected format: (layer F.Cu (type signal) ...)
func parseLayer(node *sexp.List) (Layer, error) {
	name, err := sexp.GetString(node, 1)
	if err != nil {
		return Layer{}, dsnerr.Grammar("structure/layer", "failed to parse layer name: %w", err)
	}
	return Layer{Name: name}, nil
}

// parseBoundary extracts the outline vertices
// Expected format: (boundary (path pcb 0 x1 y1 x2 y2 ...)) or (boundary (rect pcb x1 y1 x2 y2))
func parseBoundary(node *sexp.List) ([]Point, error) {
	const scope = "structure/boundary"

	outline, err := sexp.GetList(node, 1)
	if err != nil {
		return nil, dsnerr.Grammar(scope, "%w", err)
	}

	if kind, _ := sexp.GetNodeName(outline); kind == "rect" {
		return parseBoundaryRect(outline)
	}

	if outline.Len() < boundaryHeaderLen {
		return nil, dsnerr.Grammar(scope, "expected at least %d header items, got %d", boundaryHeaderLen, outline.Len())
	}

	return parsePoints(scope, outline.Items()[boundaryHeaderLen:])
}

// parseBoundaryRect expands (rect LAYER x1 y1 x2 y2) into its four corners
func parseBoundaryRect(outline *sexp.List) ([]Point, error) {
	const scope = "structure/boundary/rect"

	if outline.Len() != 6 {
		return nil, dsnerr.Grammar(scope, "expected exactly 4 coordinates, got %d", outline.Len()-2)
	}

	corners, err := parsePoints(scope, outline.Items()[2:])
	if err != nil {
		return nil, err
	}

	a, b := corners[0], corners[1]
	return []Point{
		{X: a.X, Y: a.Y},
		{X: b.X, Y: a.Y},
		{X: b.X, Y: b.Y},
		{X: a.X, Y: b.Y},
	}, nil
}
