package config

import (
	"fmt"
	"sort"

	"github.com/OpenTraceLab/dsnroute/pkg/specctra/dsnerr"
	"github.com/OpenTraceLab/dsnroute/pkg/specctra/problem"
)

// MapExtraInfo validates the DTO and converts it to problem.ExtraInfo
func MapExtraInfo(path string, dto YAMLExtraInfo) (problem.ExtraInfo, error) {
	if err := checkNonNegative("trace_width", dto.TraceWidth); err != nil {
		return problem.ExtraInfo{}, &dsnerr.Error{Kind: dsnerr.KindConfig, Scope: path, Err: err}
	}
	if err := checkNonNegative("trace_clearance", dto.TraceClearance); err != nil {
		return problem.ExtraInfo{}, &dsnerr.Error{Kind: dsnerr.KindConfig, Scope: path, Err: err}
	}

	extra := problem.ExtraInfo{
		TraceWidth:     dto.TraceWidth,
		TraceClearance: dto.TraceClearance,
	}
	if len(dto.SourcePad) > 0 {
		extra.SourcePad = make(map[problem.NetName]string, len(dto.SourcePad))
		for net, pad := range dto.SourcePad {
			if pad == "" {
				return problem.ExtraInfo{}, &dsnerr.Error{
					Kind:  dsnerr.KindConfig,
					Scope: path,
					Err:   fmt.Errorf("source_pad.%s: empty pad name", net),
				}
			}
			extra.SourcePad[problem.NetName(net)] = pad
		}
	}

	return extra, nil
}

func checkNonNegative(field string, values map[string]float64) error {
	pads := make([]string, 0, len(values))
	for pad := range values {
		pads = append(pads, pad)
	}
	sort.Strings(pads)

	for _, pad := range pads {
		if values[pad] < 0 {
			return fmt.Errorf("%s.%s: must not be negative, got %g", field, pad, values[pad])
		}
	}
	return nil
}
