package problem

import (
	"io"
	"log/slog"
	"sort"

	"github.com/OpenTraceLab/dsnroute/pkg/specctra/dsnerr"
	"github.com/OpenTraceLab/dsnroute/pkg/specctra/resolve"
)

// ExtraInfo overrides resolved defaults. Every entry is optional.
type ExtraInfo struct {
	TraceWidth     map[string]float64 // Pad name -> trace width
	TraceClearance map[string]float64 // Pad name -> trace clearance
	SourcePad      map[NetName]string // Net -> pad name to route from
}

// Option configures Assemble
type Option func(*assembler)

// WithLogger sets the logger that receives single-pad net warnings
func WithLogger(l *slog.Logger) Option {
	return func(a *assembler) {
		if l != nil {
			a.logger = l
		}
	}
}

// assembler owns the counters for one Assemble call
type assembler struct {
	logger   *slog.Logger
	extra    ExtraInfo
	nextID   ConnectionID
	netIndex int
}

// Assemble builds a routing problem from resolved nets.
// Nets are added in board order; that order alone decides net colors and
// connection IDs.
func Assemble(board *resolve.Board, extra ExtraInfo, opts ...Option) (*RoutingProblem, error) {
	a := &assembler{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		extra:  extra,
	}
	for _, opt := range opts {
		opt(a)
	}

	if err := validateExtraInfo(board, extra); err != nil {
		return nil, err
	}

	p := NewRoutingProblem(board.Width, board.Height, board.Center)
	for _, net := range board.Nets {
		if err := a.addNet(p, net); err != nil {
			return nil, err
		}
	}

	a.logger.Debug("assembled routing problem",
		"nets", len(board.Nets),
		"connections", p.ConnectionCount(),
	)
	return p, nil
}

func (a *assembler) addNet(p *RoutingProblem, net resolve.NetRecord) error {
	name := NetName(net.Name)

	source, err := a.sourcePad(net)
	if err != nil {
		return err
	}

	width, clearance := a.traceSettings(source.Name(), net)
	err = p.AddNet(NetInfo{
		Name:                 name,
		Color:                DistinctColor(a.netIndex),
		Source:               source,
		SourceTraceWidth:     width,
		SourceTraceClearance: clearance,
	})
	if err != nil {
		return err
	}
	a.netIndex++

	for _, pad := range net.Pads {
		if pad.Name() == source.Name() {
			continue
		}

		width, clearance := a.traceSettings(pad.Name(), net)
		err := p.AddConnection(Connection{
			Net:            name,
			ID:             a.nextID,
			Sink:           pad,
			TraceWidth:     width,
			TraceClearance: clearance,
		})
		if err != nil {
			return err
		}
		a.nextID++
	}

	return nil
}

// sourcePad picks the override if one is set, else the first pad
func (a *assembler) sourcePad(net resolve.NetRecord) (resolve.Pad, error) {
	scope := "net " + net.Name

	if want, ok := a.extra.SourcePad[NetName(net.Name)]; ok {
		for _, pad := range net.Pads {
			if pad.Name() == want {
				return pad, nil
			}
		}
		return resolve.Pad{}, dsnerr.Config(scope, "source pad %q is not in net %q", want, net.Name)
	}

	switch len(net.Pads) {
	case 0:
		return resolve.Pad{}, dsnerr.Config(scope, "net %q has no pads", net.Name)
	case 1:
		a.logger.Warn("net has only one pad", "net", net.Name, "pad", net.Pads[0].Name())
	}

	return net.Pads[0], nil
}

func (a *assembler) traceSettings(pad string, net resolve.NetRecord) (width, clearance float64) {
	width, clearance = net.DefaultTraceWidth, net.DefaultTraceClearance
	if w, ok := a.extra.TraceWidth[pad]; ok {
		width = w
	}
	if c, ok := a.extra.TraceClearance[pad]; ok {
		clearance = c
	}
	return width, clearance
}

// validateExtraInfo rejects overrides that name nets or pads the board
// does not route
func validateExtraInfo(board *resolve.Board, extra ExtraInfo) error {
	nets := make(map[NetName]bool, len(board.Nets))
	pads := make(map[string]bool)
	for _, net := range board.Nets {
		nets[NetName(net.Name)] = true
		for _, pad := range net.Pads {
			pads[pad.Name()] = true
		}
	}

	for _, name := range sortedKeys(extra.SourcePad) {
		if !nets[name] {
			return dsnerr.Config("extra/source_pad", "unknown net %q", name)
		}
	}
	for _, name := range sortedKeys(extra.TraceWidth) {
		if !pads[name] {
			return dsnerr.Config("extra/trace_width", "pad %q is not in any net", name)
		}
	}
	for _, name := range sortedKeys(extra.TraceClearance) {
		if !pads[name] {
			return dsnerr.Config("extra/trace_clearance", "pad %q is not in any net", name)
		}
	}

	return nil
}

func sortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
