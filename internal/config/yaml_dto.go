package config

// YAMLExtraInfo is the on-disk form of the routing overrides
type YAMLExtraInfo struct {
	TraceWidth     map[string]float64 `yaml:"trace_width"`
	TraceClearance map[string]float64 `yaml:"trace_clearance"`
	SourcePad      map[string]string  `yaml:"source_pad"`
}
