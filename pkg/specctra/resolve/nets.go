package resolve

import (
	"github.com/OpenTraceLab/dsnroute/pkg/specctra/dsn"
	"github.com/OpenTraceLab/dsnroute/pkg/specctra/dsnerr"
)

// NetRecord bundles a net's pads with the defaults of its netclass
type NetRecord struct {
	Name                  string
	Pads                  []Pad // In the net's declared pin order
	ClassName             string
	DefaultTraceWidth     float64
	DefaultTraceClearance float64
	ViaDiameter           float64
}

// Board is the resolved board: outline extents and nets in declaration order
type Board struct {
	Name   string
	Width  float64
	Height float64
	Center dsn.Point
	Nets   []NetRecord
}

// Resolve places all pads and builds a record for every net
func Resolve(design *dsn.Design, opts ...Option) (*Board, error) {
	o := newOptions(opts)

	if len(design.Structure.Boundary) == 0 {
		return nil, dsnerr.Grammar("structure/boundary", "boundary has no coordinates")
	}
	bounds := dsn.BoundsOf(design.Structure.Boundary)

	pads, err := BuildPadMap(design, opts...)
	if err != nil {
		return nil, err
	}

	nets, err := ResolveNets(design, pads)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("resolved board",
		"width", bounds.Width(),
		"height", bounds.Height(),
		"nets", len(nets),
	)

	return &Board{
		Name:   design.Name,
		Width:  bounds.Width(),
		Height: bounds.Height(),
		Center: bounds.Center(),
		Nets:   nets,
	}, nil
}

// ResolveNets builds one record per net in declaration order.
// A net listed by several netclasses takes the first one declared.
func ResolveNets(design *dsn.Design, pads PadMap) ([]NetRecord, error) {
	records := make([]NetRecord, 0, len(design.Network.Nets))

	for _, net := range design.Network.Nets {
		record, err := resolveNet(design, pads, net)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func resolveNet(design *dsn.Design, pads PadMap, net dsn.Net) (NetRecord, error) {
	scope := "network/net " + net.Name

	class, ok := design.Network.ClassOf(net.Name)
	if !ok {
		return NetRecord{}, dsnerr.Reference(scope, "net %q belongs to no class", net.Name)
	}

	via, ok := design.Library.PadStacks[class.ViaName]
	if !ok {
		return NetRecord{}, dsnerr.Reference(scope, "via padstack %q of class %q not found", class.ViaName, class.Name)
	}
	circle, ok := via.Shape.(dsn.Circle)
	if !ok {
		return NetRecord{}, dsnerr.Reference(scope, "via padstack %q is not circular", class.ViaName)
	}

	record := NetRecord{
		Name:                  net.Name,
		Pads:                  make([]Pad, 0, len(net.Pins)),
		ClassName:             class.Name,
		DefaultTraceWidth:     class.Width,
		DefaultTraceClearance: class.Clearance,
		ViaDiameter:           circle.Diameter,
	}

	for _, ref := range net.Pins {
		pad, ok := pads[ref.String()]
		if !ok {
			return NetRecord{}, dsnerr.Reference(scope, "pad %q not found", ref.String())
		}
		pad.Clearance = class.Clearance
		record.Pads = append(record.Pads, pad)
	}

	return record, nil
}
