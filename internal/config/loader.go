// Package config loads routing overrides from YAML.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/OpenTraceLab/dsnroute/pkg/specctra/dsnerr"
	"github.com/OpenTraceLab/dsnroute/pkg/specctra/problem"
)

// LoadExtraInfo reads an override file. Unknown keys are rejected.
func LoadExtraInfo(path string) (problem.ExtraInfo, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return problem.ExtraInfo{}, &dsnerr.Error{Kind: dsnerr.KindConfig, Scope: path, Err: err}
	}

	var dto YAMLExtraInfo
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&dto); err != nil && !errors.Is(err, io.EOF) {
		return problem.ExtraInfo{}, &dsnerr.Error{Kind: dsnerr.KindConfig, Scope: path, Err: err}
	}

	return MapExtraInfo(path, dto)
}
