// Package resolve turns a design model into absolute pads and per-net
// routing defaults.
package resolve

import (
	"github.com/OpenTraceLab/dsnroute/pkg/specctra/dsn"
	"github.com/OpenTraceLab/dsnroute/pkg/specctra/dsnerr"
)

// Pad is a component pin placed on the board
type Pad struct {
	Component   string    // Reference designator of the placed instance
	Pin         int       // Pin number within the image
	Position    dsn.Point // Absolute position
	Shape       PadShape
	Rotation    float64 // Instance rotation plus pin rotation, degrees
	Layer       string  // Layer of the padstack's first shape
	ThroughHole bool
	Clearance   float64 // Netclass clearance, set once the pad is bound to a net
}

// Name returns the "REF-PIN" key of the pad
func (p Pad) Name() string {
	return dsn.PinRef{Component: p.Component, Pin: p.Pin}.String()
}

// PadMap maps "REF-PIN" names to placed pads
type PadMap map[string]Pad

// BuildPadMap places every pin of every component instance.
// Each pin position is rotated by the instance rotation and then translated
// to the instance position.
func BuildPadMap(design *dsn.Design, opts ...Option) (PadMap, error) {
	o := newOptions(opts)
	pads := make(PadMap)

	for _, component := range design.Placement.Components {
		image, ok := design.Library.Images[component.Name]
		if !ok {
			return nil, dsnerr.Reference("placement/component "+component.Name, "image %q not found", component.Name)
		}

		for _, inst := range component.Instances {
			for _, number := range image.PinNumbers() {
				pin := image.Pins[number]
				scope := "placement/place " + inst.Reference

				padstack, ok := design.Library.PadStacks[pin.PadstackName]
				if !ok {
					return nil, dsnerr.Reference(scope, "padstack %q not found for pin %d of image %q", pin.PadstackName, number, image.Name)
				}

				shape, err := o.lowerer(padstack.Shape)
				if err != nil {
					return nil, dsnerr.Reference(scope, "padstack %q: %w", padstack.Name, err)
				}

				pad := Pad{
					Component:   inst.Reference,
					Pin:         number,
					Position:    TransformPoint(pin.Position, inst.Rotation, inst.Position),
					Shape:       shape,
					Rotation:    inst.Rotation + pin.Rotation,
					ThroughHole: padstack.ThroughHole,
				}
				if padstack.Shape != nil {
					pad.Layer = padstack.Shape.ShapeLayer()
				}

				if _, exists := pads[pad.Name()]; exists {
					return nil, dsnerr.Reference(scope, "pad %q placed twice", pad.Name())
				}
				pads[pad.Name()] = pad
			}
		}
	}

	o.logger.Debug("placed pads", "count", len(pads))
	return pads, nil
}
