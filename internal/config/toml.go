package config

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// ParseTOML decodes content over Default. Unknown keys are an error so
// typos do not pass silently.
func ParseTOML(content []byte) (HostConfig, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var de *toml.DecodeError
		if errors.As(err, &de) {
			row, col := de.Position()
			return HostConfig{}, fmt.Errorf("toml config line %d column %d: %w", row, col, err)
		}
		return HostConfig{}, fmt.Errorf("toml config: %w", err)
	}
	return cfg, nil
}

// EncodeTOML writes cfg in the format ParseTOML reads.
func EncodeTOML(cfg HostConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode toml config: %w", err)
	}
	return buf.Bytes(), nil
}
