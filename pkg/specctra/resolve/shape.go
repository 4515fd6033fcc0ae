package resolve

import (
	"fmt"

	"github.com/OpenTraceLab/dsnroute/pkg/specctra/dsn"
)

// PadShape is the router-facing geometry of a pad: CirclePad, RectPad or
// RoundRectPad. All shapes are centered on the pad position.
type PadShape interface {
	// Extent returns the unrotated width and height of the shape
	Extent() (width, height float64)
	String() string
}

// CirclePad is a round pad
type CirclePad struct {
	Diameter float64
}

// RectPad is an axis-aligned rectangle before pad rotation is applied
type RectPad struct {
	Width  float64
	Height float64
}

// RoundRectPad is a rectangle with rounded corners
type RoundRectPad struct {
	Width        float64
	Height       float64
	CornerRadius float64
}

func (c CirclePad) Extent() (float64, float64)    { return c.Diameter, c.Diameter }
func (r RectPad) Extent() (float64, float64)      { return r.Width, r.Height }
func (r RoundRectPad) Extent() (float64, float64) { return r.Width, r.Height }

func (c CirclePad) String() string {
	return fmt.Sprintf("circle d=%g", c.Diameter)
}

func (r RectPad) String() string {
	return fmt.Sprintf("rect %gx%g", r.Width, r.Height)
}

func (r RoundRectPad) String() string {
	return fmt.Sprintf("roundrect %gx%g r=%g", r.Width, r.Height, r.CornerRadius)
}

// ShapeLowerer converts a padstack shape into a pad shape.
type ShapeLowerer func(shape dsn.Shape) (PadShape, error)

// DefaultShapeLowerer passes circles through, turns rectangles into a
// width/height pair and approximates polygons with ApproximatePolygon.
//
// Rectangles are assumed to be centered on the pin origin; the offset of an
// off-center rectangle is lost.
func DefaultShapeLowerer(shape dsn.Shape) (PadShape, error) {
	switch s := shape.(type) {
	case dsn.Circle:
		return CirclePad{Diameter: s.Diameter}, nil
	case dsn.Rect:
		return RectPad{Width: s.Width(), Height: s.Height()}, nil
	case dsn.Polygon:
		return ApproximatePolygon(s)
	case nil:
		return nil, fmt.Errorf("padstack has no shape")
	default:
		return nil, fmt.Errorf("unsupported shape %q", shape.Kind())
	}
}

// ApproximatePolygon stands in for a polygon outline with a square whose side
// is the aperture width and whose corners are sharp. The vertices are not
// used.
//
// TODO: replace with the real outline once the router accepts polygon pads.
func ApproximatePolygon(p dsn.Polygon) (PadShape, error) {
	if len(p.Vertices) < 3 {
		return nil, fmt.Errorf("polygon must have at least 3 vertices, got %d", len(p.Vertices))
	}
	return RoundRectPad{
		Width:        p.ApertureWidth,
		Height:       p.ApertureWidth,
		CornerRadius: 0,
	}, nil
}
