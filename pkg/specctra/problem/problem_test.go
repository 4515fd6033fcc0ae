package problem

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/dsnroute/pkg/specctra/dsn"
	"github.com/OpenTraceLab/dsnroute/pkg/specctra/dsnerr"
	"github.com/OpenTraceLab/dsnroute/pkg/specctra/resolve"
)

func pad(ref string, pin int) resolve.Pad {
	return resolve.Pad{Component: ref, Pin: pin, Shape: resolve.CirclePad{Diameter: 1}}
}

func testBoard() *resolve.Board {
	return &resolve.Board{
		Width:  100,
		Height: 50,
		Center: dsn.Point{X: 50, Y: 25},
		Nets: []resolve.NetRecord{
			{
				Name:                  "GND",
				Pads:                  []resolve.Pad{pad("R1", 1), pad("J1", 1)},
				DefaultTraceWidth:     250,
				DefaultTraceClearance: 200,
			},
			{
				Name:                  "VCC",
				Pads:                  []resolve.Pad{pad("R1", 2), pad("R2", 1), pad("J1", 2)},
				DefaultTraceWidth:     400,
				DefaultTraceClearance: 300,
			},
			{
				Name:                  "SIG",
				Pads:                  []resolve.Pad{pad("R2", 2)},
				DefaultTraceWidth:     250,
				DefaultTraceClearance: 200,
			},
		},
	}
}

func TestAssemble(t *testing.T) {
	p, err := Assemble(testBoard(), ExtraInfo{})
	require.NoError(t, err)

	assert.Equal(t, 100.0, p.Width)
	assert.Equal(t, 50.0, p.Height)
	assert.Equal(t, dsn.Point{X: 50, Y: 25}, p.Center)

	nets := p.Nets()
	require.Len(t, nets, 3)
	assert.Equal(t, NetName("GND"), nets[0].Name)
	assert.Equal(t, NetName("VCC"), nets[1].Name)
	assert.Equal(t, NetName("SIG"), nets[2].Name)

	gnd := nets[0]
	assert.Equal(t, "R1-1", gnd.Source.Name())
	assert.Equal(t, 250.0, gnd.SourceTraceWidth)
	require.Len(t, gnd.Connections, 1)
	assert.Equal(t, "J1-1", gnd.Connections[0].Sink.Name())

	vcc := nets[1]
	assert.Equal(t, "R1-2", vcc.Source.Name())
	conns := vcc.SortedConnections()
	require.Len(t, conns, 2)
	assert.Equal(t, ConnectionID(1), conns[0].ID)
	assert.Equal(t, "R2-1", conns[0].Sink.Name())
	assert.Equal(t, ConnectionID(2), conns[1].ID)
	assert.Equal(t, "J1-2", conns[1].Sink.Name())
	assert.Equal(t, 400.0, conns[1].TraceWidth)
	assert.Equal(t, 300.0, conns[1].TraceClearance)

	assert.Empty(t, nets[2].Connections)
	assert.Equal(t, 3, p.ConnectionCount())

	for i, net := range nets {
		assert.Equal(t, DistinctColor(i), net.Color, "color of %s", net.Name)
	}
}

func TestAssembleIsReproducible(t *testing.T) {
	first, err := Assemble(testBoard(), ExtraInfo{})
	require.NoError(t, err)
	second, err := Assemble(testBoard(), ExtraInfo{})
	require.NoError(t, err)

	a, b := first.Nets(), second.Nets()
	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].Color, b[i].Color)
		assert.Equal(t, a[i].SortedConnections(), b[i].SortedConnections())
	}
}

func TestAssembleOverrides(t *testing.T) {
	extra := ExtraInfo{
		TraceWidth:     map[string]float64{"J1-2": 600, "R2-1": 500},
		TraceClearance: map[string]float64{"J1-2": 150},
		SourcePad:      map[NetName]string{"VCC": "J1-2"},
	}

	p, err := Assemble(testBoard(), extra)
	require.NoError(t, err)

	vcc, ok := p.Net("VCC")
	require.True(t, ok)
	assert.Equal(t, "J1-2", vcc.Source.Name())
	assert.Equal(t, 600.0, vcc.SourceTraceWidth)
	assert.Equal(t, 150.0, vcc.SourceTraceClearance)

	conns := vcc.SortedConnections()
	require.Len(t, conns, 2)
	assert.Equal(t, "R1-2", conns[0].Sink.Name())
	assert.Equal(t, 400.0, conns[0].TraceWidth)
	assert.Equal(t, "R2-1", conns[1].Sink.Name())
	assert.Equal(t, 500.0, conns[1].TraceWidth)
	assert.Equal(t, 300.0, conns[1].TraceClearance)
}

func TestAssembleErrors(t *testing.T) {
	tests := []struct {
		name    string
		board   func() *resolve.Board
		extra   ExtraInfo
		wantErr error
		wantMsg string
	}{
		{
			name:    "source pad not in net",
			board:   testBoard,
			extra:   ExtraInfo{SourcePad: map[NetName]string{"GND": "R2-1"}},
			wantMsg: `source pad "R2-1" is not in net "GND"`,
		},
		{
			name:    "source pad for unknown net",
			board:   testBoard,
			extra:   ExtraInfo{SourcePad: map[NetName]string{"NOPE": "R1-1"}},
			wantMsg: `unknown net "NOPE"`,
		},
		{
			name:    "width override for unknown pad",
			board:   testBoard,
			extra:   ExtraInfo{TraceWidth: map[string]float64{"U7-1": 100}},
			wantMsg: `pad "U7-1" is not in any net`,
		},
		{
			name:    "clearance override for unknown pad",
			board:   testBoard,
			extra:   ExtraInfo{TraceClearance: map[string]float64{"U7-1": 100}},
			wantMsg: `pad "U7-1" is not in any net`,
		},
		{
			name: "net with no pads",
			board: func() *resolve.Board {
				b := testBoard()
				b.Nets[2].Pads = nil
				return b
			},
			wantMsg: `net "SIG" has no pads`,
		},
		{
			name: "duplicate net name",
			board: func() *resolve.Board {
				b := testBoard()
				b.Nets[2].Name = "GND"
				return b
			},
			wantErr: ErrDuplicateNet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Assemble(tt.board(), tt.extra)
			require.Error(t, err)
			assert.Nil(t, p)
			assert.True(t, dsnerr.IsKind(err, dsnerr.KindConfig), "want config error, got %v", err)
			assert.ErrorIs(t, err, dsnerr.ErrConfig)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestAssembleWarnsOnSinglePadNet(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	p, err := Assemble(testBoard(), ExtraInfo{}, WithLogger(logger))
	require.NoError(t, err)

	sig, ok := p.Net("SIG")
	require.True(t, ok)
	assert.Equal(t, "R2-2", sig.Source.Name())
	assert.Empty(t, sig.Connections)

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "net=SIG")
}

func TestRoutingProblemGuards(t *testing.T) {
	p := NewRoutingProblem(1, 1, dsn.Point{})

	require.NoError(t, p.AddNet(NetInfo{Name: "A"}))
	err := p.AddNet(NetInfo{Name: "A"})
	assert.ErrorIs(t, err, ErrDuplicateNet)

	err = p.AddConnection(Connection{Net: "B", ID: 0})
	assert.ErrorIs(t, err, ErrUnknownNet)

	require.NoError(t, p.AddConnection(Connection{Net: "A", ID: 0}))
	require.NoError(t, p.AddConnection(Connection{Net: "A", ID: 5}))

	err = p.AddConnection(Connection{Net: "A", ID: 5})
	assert.ErrorIs(t, err, ErrConnectionID)
	err = p.AddConnection(Connection{Net: "A", ID: 3})
	assert.True(t, errors.Is(err, ErrConnectionID))

	a, ok := p.Net("A")
	require.True(t, ok)
	assert.Len(t, a.Connections, 2)

	_, ok = p.Net("B")
	assert.False(t, ok)
}

func TestConnectionIDsStrictlyIncrease(t *testing.T) {
	p, err := Assemble(testBoard(), ExtraInfo{})
	require.NoError(t, err)

	var ids []ConnectionID
	for _, net := range p.Nets() {
		for _, c := range net.SortedConnections() {
			ids = append(ids, c.ID)
		}
	}

	require.NotEmpty(t, ids)
	assert.Equal(t, ConnectionID(0), ids[0])
	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i], ids[i-1])
	}
}
