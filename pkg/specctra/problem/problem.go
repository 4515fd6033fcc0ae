// Package problem holds the routing problem handed to a router: per-net
// source pads, sink connections and trace settings.
package problem

import (
	"errors"
	"sort"

	"github.com/OpenTraceLab/dsnroute/pkg/specctra/dsn"
	"github.com/OpenTraceLab/dsnroute/pkg/specctra/dsnerr"
	"github.com/OpenTraceLab/dsnroute/pkg/specctra/resolve"
)

// Construction errors. They are returned wrapped in a configuration error.
var (
	ErrDuplicateNet = errors.New("duplicate net")
	ErrUnknownNet   = errors.New("unknown net")
	ErrConnectionID = errors.New("connection id not increasing")
)

// NetName identifies a net
type NetName string

// ConnectionID identifies a connection, unique within one RoutingProblem
type ConnectionID uint64

// Connection is one sink pad to be routed from its net's source
type Connection struct {
	Net            NetName
	ID             ConnectionID
	Sink           resolve.Pad
	TraceWidth     float64
	TraceClearance float64
}

// NetInfo is a net's source pad, color and connections
type NetInfo struct {
	Name                 NetName
	Color                Color
	Source               resolve.Pad
	SourceTraceWidth     float64
	SourceTraceClearance float64
	Connections          map[ConnectionID]Connection
}

// SortedConnections returns the connections by ascending ID
func (n *NetInfo) SortedConnections() []Connection {
	conns := make([]Connection, 0, len(n.Connections))
	for _, c := range n.Connections {
		conns = append(conns, c)
	}
	sort.Slice(conns, func(i, j int) bool { return conns[i].ID < conns[j].ID })
	return conns
}

// RoutingProblem is the board extents plus the nets to route.
// Nets are added with AddNet and connections with AddConnection.
type RoutingProblem struct {
	Width  float64
	Height float64
	Center dsn.Point

	nets  map[NetName]*NetInfo
	order []NetName

	lastID ConnectionID
	anyID  bool
}

// NewRoutingProblem creates an empty problem for a board
func NewRoutingProblem(width, height float64, center dsn.Point) *RoutingProblem {
	return &RoutingProblem{
		Width:  width,
		Height: height,
		Center: center,
		nets:   make(map[NetName]*NetInfo),
	}
}

// AddNet registers a net. A name may only be added once.
func (p *RoutingProblem) AddNet(info NetInfo) error {
	if _, exists := p.nets[info.Name]; exists {
		return dsnerr.Config("problem", "%w %q", ErrDuplicateNet, info.Name)
	}
	if info.Connections == nil {
		info.Connections = make(map[ConnectionID]Connection)
	}
	p.nets[info.Name] = &info
	p.order = append(p.order, info.Name)
	return nil
}

// AddConnection adds a sink to a registered net. IDs must be strictly
// increasing across the whole problem.
func (p *RoutingProblem) AddConnection(conn Connection) error {
	net, ok := p.nets[conn.Net]
	if !ok {
		return dsnerr.Config("problem", "%w %q", ErrUnknownNet, conn.Net)
	}
	if p.anyID && conn.ID <= p.lastID {
		return dsnerr.Config("problem", "%w: %d after %d", ErrConnectionID, conn.ID, p.lastID)
	}

	net.Connections[conn.ID] = conn
	p.lastID = conn.ID
	p.anyID = true
	return nil
}

// Net returns the net with the given name
func (p *RoutingProblem) Net(name NetName) (*NetInfo, bool) {
	info, ok := p.nets[name]
	return info, ok
}

// Nets returns all nets in insertion order
func (p *RoutingProblem) Nets() []*NetInfo {
	nets := make([]*NetInfo, 0, len(p.order))
	for _, name := range p.order {
		nets = append(nets, p.nets[name])
	}
	return nets
}

// ConnectionCount returns the number of connections across all nets
func (p *RoutingProblem) ConnectionCount() int {
	n := 0
	for _, info := range p.nets {
		n += len(info.Connections)
	}
	return n
}
