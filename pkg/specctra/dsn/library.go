package dsn

import (
	"github.com/OpenTraceLab/dsnroute/pkg/specctra/dsnerr"
	"github.com/OpenTraceLab/dsnroute/pkg/specctra/sexp"
)

// minPolygonVertices is the smallest vertex count accepted for a polygon shape
const minPolygonVertices = 3

// parseLibrary extracts images and padstacks
// Expected format: (library (image NAME ...) (padstack NAME ...) ...)
func parseLibrary(node *sexp.List) (Library, error) {
	lib := Library{
		Images:    make(map[string]Image),
		PadStacks: make(map[string]PadStack),
	}

	table := map[string]handler{
		"image": func(n *sexp.List) error {
			img, err := parseImage(n)
			if err != nil {
				return err
			}
			lib.Images[img.Name] = img
			return nil
		},
		"padstack": func(n *sexp.List) error {
			ps, err := parsePadStack(n)
			if err != nil {
				return err
			}
			lib.PadStacks[ps.Name] = ps
			return nil
		},
	}

	if err := dispatch("library", sexp.GetListItems(node), table); err != nil {
		return Library{}, err
	}

	return lib, nil
}

// parseImage extracts a footprint image
// Expected format: (image NAME (outline ...) (pin PADSTACK NUM x y) ...)
// A repeated pin number replaces the earlier pin.
func parseImage(node *sexp.List) (Image, error) {
	name, err := sexp.GetString(node, 1)
	if err != nil {
		return Image{}, dsnerr.Grammar("library/image", "failed to parse image name: %w", err)
	}

	img := Image{Name: name, Pins: make(map[int]Pin)}
	scope := "library/image " + name

	table := map[string]handler{
		"outline": ignore,
		"pin": func(n *sexp.List) error {
			pin, err := parsePin(scope, n)
			if err != nil {
				return err
			}
			img.Pins[pin.Number] = pin
			return nil
		},
	}

	if err := dispatch(scope, node.Items()[2:], table); err != nil {
		return Image{}, err
	}

	return img, nil
}

// parsePin extracts a pin definition
// Expected format: (pin PADSTACK [(rotate deg)] NUM x y)
func parsePin(scope string, node *sexp.List) (Pin, error) {
	scope += "/pin"

	padstack, err := sexp.GetString(node, 1)
	if err != nil {
		return Pin{}, dsnerr.Grammar(scope, "failed to parse padstack name: %w", err)
	}

	pin := Pin{PadstackName: padstack}
	idx := 2

	if rotate, err := sexp.GetList(node, idx); err == nil {
		if kw, _ := sexp.GetNodeName(rotate); kw != "rotate" {
			return Pin{}, dsnerr.Grammar(scope, "unknown keyword %q", kw)
		}
		pin.Rotation, err = sexp.GetFloat(rotate, 1)
		if err != nil {
			return Pin{}, dsnerr.Grammar(scope, "failed to parse pin rotation: %w", err)
		}
		idx++
	}

	pin.Number, err = sexp.GetInt(node, idx)
	if err != nil {
		return Pin{}, dsnerr.Grammar(scope, "failed to parse pin number: %w", err)
	}

	x, err := sexp.GetFloat(node, idx+1)
	if err != nil {
		return Pin{}, dsnerr.Grammar(scope, "failed to parse x coordinate of pin %d: %w", pin.Number, err)
	}

	y, err := sexp.GetFloat(node, idx+2)
	if err != nil {
		return Pin{}, dsnerr.Grammar(scope, "failed to parse y coordinate of pin %d: %w", pin.Number, err)
	}

	pin.Position = Point{X: x, Y: y}
	return pin, nil
}

// parsePadStack extracts a padstack. Only the first shape is kept; a padstack
// with more than one shape is marked through-hole.
// Expected format: (padstack NAME (shape (circle F.Cu 600)) ... (attach off))
func parsePadStack(node *sexp.List) (PadStack, error) {
	name, err := sexp.GetString(node, 1)
	if err != nil {
		return PadStack{}, dsnerr.Grammar("library/padstack", "failed to parse padstack name: %w", err)
	}

	ps := PadStack{Name: name}
	scope := "library/padstack " + name
	shapeCount := 0

	table := map[string]handler{
		"attach": ignore,
		"shape": func(n *sexp.List) error {
			shapeCount++
			if ps.Shape != nil {
				return nil
			}
			shape, err := parseShape(scope, n)
			if err != nil {
				return err
			}
			ps.Shape = shape
			return nil
		},
	}

	if err := dispatch(scope, node.Items()[2:], table); err != nil {
		return PadStack{}, err
	}

	if ps.Shape == nil {
		return PadStack{}, dsnerr.Grammar(scope, "padstack must have at least one shape")
	}

	ps.ThroughHole = shapeCount > 1
	return ps, nil
}

// parseShape extracts the geometry inside a (shape ...) node
func parseShape(scope string, node *sexp.List) (Shape, error) {
	geom, err := sexp.GetList(node, 1)
	if err != nil {
		return nil, dsnerr.Grammar(scope+"/shape", "%w", err)
	}

	kind, err := sexp.GetNodeName(geom)
	if err != nil {
		return nil, dsnerr.Grammar(scope+"/shape", "%w", err)
	}
	scope += "/shape/" + kind

	layer, err := sexp.GetString(geom, 1)
	if err != nil {
		return nil, dsnerr.Grammar(scope, "failed to parse layer: %w", err)
	}

	switch kind {
	case "circle":
		// (circle LAYER diameter [x y])
		diameter, err := sexp.GetFloat(geom, 2)
		if err != nil {
			return nil, dsnerr.Grammar(scope, "failed to parse diameter: %w", err)
		}
		return Circle{Layer: layer, Diameter: diameter}, nil

	case "rect":
		// (rect LAYER x_min y_min x_max y_max)
		if geom.Len() != 6 {
			return nil, dsnerr.Grammar(scope, "expected exactly 4 coordinates, got %d", geom.Len()-2)
		}
		corners, err := parsePoints(scope, geom.Items()[2:])
		if err != nil {
			return nil, err
		}
		return Rect{
			Layer: layer,
			XMin:  corners[0].X,
			YMin:  corners[0].Y,
			XMax:  corners[1].X,
			YMax:  corners[1].Y,
		}, nil

	case "polygon":
		// (polygon LAYER aperture_width x1 y1 x2 y2 ...)
		aperture, err := sexp.GetFloat(geom, 2)
		if err != nil {
			return nil, dsnerr.Grammar(scope, "failed to parse aperture width: %w", err)
		}
		vertices, err := parsePoints(scope, geom.Items()[3:])
		if err != nil {
			return nil, err
		}
		if len(vertices) < minPolygonVertices {
			return nil, dsnerr.Grammar(scope, "expected at least %d vertices, got %d", minPolygonVertices, len(vertices))
		}
		return Polygon{Layer: layer, ApertureWidth: aperture, Vertices: vertices}, nil

	default:
		return nil, dsnerr.Grammar(scope, "unknown shape type %q", kind)
	}
}
