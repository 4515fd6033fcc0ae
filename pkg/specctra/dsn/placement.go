package dsn

import (
	"github.com/OpenTraceLab/dsnroute/pkg/specctra/dsnerr"
	"github.com/OpenTraceLab/dsnroute/pkg/specctra/sexp"
)

// parsePlacement extracts placed components
// Expected format: (placement (component NAME (place REF x y side rot) ...) ...)
func parsePlacement(node *sexp.List) (Placement, error) {
	var placement Placement

	table := map[string]handler{
		"component": func(n *sexp.List) error {
			component, err := parseComponent(n)
			if err != nil {
				return err
			}
			placement.Components = append(placement.Components, component)
			return nil
		},
	}

	if err := dispatch("placement", sexp.GetListItems(node), table); err != nil {
		return Placement{}, err
	}

	return placement, nil
}

// parseComponent extracts one component and its instances
func parseComponent(node *sexp.List) (Component, error) {
	name, err := sexp.GetString(node, 1)
	if err != nil {
		return Component{}, dsnerr.Grammar("placement/component", "failed to parse component name: %w", err)
	}

	component := Component{Name: name}
	scope := "placement/component " + name

	table := map[string]handler{
		"place": func(n *sexp.List) error {
			inst, err := parsePlace(scope, n)
			if err != nil {
				return err
			}
			component.Instances = append(component.Instances, inst)
			return nil
		},
	}

	if err := dispatch(scope, node.Items()[2:], table); err != nil {
		return Component{}, err
	}

	return component, nil
}

// parsePlace extracts a component instance
// Expected format: (place REF x y side rotation ...)
// The side field is recorded but does not affect geometry.
func parsePlace(scope string, node *sexp.List) (Instance, error) {
	reference, err := sexp.GetString(node, 1)
	if err != nil {
		return Instance{}, dsnerr.Grammar(scope, "failed to parse place reference: %w", err)
	}
	scope += "/place " + reference

	x, err := sexp.GetFloat(node, 2)
	if err != nil {
		return Instance{}, dsnerr.Grammar(scope, "failed to parse x position: %w", err)
	}

	y, err := sexp.GetFloat(node, 3)
	if err != nil {
		return Instance{}, dsnerr.Grammar(scope, "failed to parse y position: %w", err)
	}

	side, _ := sexp.GetString(node, 4)

	rotation, err := sexp.GetFloat(node, 5)
	if err != nil {
		return Instance{}, dsnerr.Grammar(scope, "failed to parse rotation: %w", err)
	}

	return Instance{
		Reference: reference,
		Position:  Point{X: x, Y: y},
		Side:      side,
		Rotation:  rotation,
	}, nil
}
