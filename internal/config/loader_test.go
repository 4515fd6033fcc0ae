package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/dsnroute/pkg/specctra/dsnerr"
	"github.com/OpenTraceLab/dsnroute/pkg/specctra/problem"
)

func TestLoadExtraInfo(t *testing.T) {
	extra, err := LoadExtraInfo(filepath.Join("testdata", "extra.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 400.0, extra.TraceWidth["R2-1"])
	assert.Equal(t, 600.0, extra.TraceWidth["J1-2"])
	assert.Equal(t, 150.0, extra.TraceClearance["J1-2"])
	assert.Equal(t, "J1-2", extra.SourcePad[problem.NetName("VCC")])
}

func TestLoadExtraInfoEmpty(t *testing.T) {
	extra, err := LoadExtraInfo(filepath.Join("testdata", "empty.yaml"))
	require.NoError(t, err)
	assert.Empty(t, extra.TraceWidth)
	assert.Empty(t, extra.TraceClearance)
	assert.Empty(t, extra.SourcePad)
}

func TestLoadExtraInfoErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		wantMsg string
	}{
		{name: "missing file", file: "missing.yaml", wantMsg: "missing.yaml"},
		{name: "negative width", file: "extra_negative.yaml", wantMsg: "trace_width.R2-1: must not be negative"},
		{name: "unknown key", file: "extra_unknown.yaml", wantMsg: "trace_widths"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join("testdata", tt.file)
			_, err := LoadExtraInfo(path)
			require.Error(t, err)
			assert.True(t, dsnerr.IsKind(err, dsnerr.KindConfig))
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestMapExtraInfoRejectsEmptySourcePad(t *testing.T) {
	_, err := MapExtraInfo("inline", YAMLExtraInfo{SourcePad: map[string]string{"GND": ""}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source_pad.GND")
}
