package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Format is a configuration file syntax.
type Format int

const (
	FormatUnknown Format = iota
	FormatLua
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatLua:
		return "lua"
	case FormatTOML:
		return "toml"
	}
	return "unknown"
}

// ErrUnknownFormat is returned when content is neither Lua nor TOML.
var ErrUnknownFormat = errors.New("config: unrecognised format")

var luaConfigPattern = regexp.MustCompile(`(?m)^\s*canvas\.config\s*=`)

// DetectFormat picks a syntax from the file extension, then by content.
func DetectFormat(path string, content []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lua":
		return FormatLua
	case ".toml":
		return FormatTOML
	}
	if luaConfigPattern.Match(content) {
		return FormatLua
	}
	var probe map[string]any
	if toml.Unmarshal(content, &probe) == nil {
		return FormatTOML
	}
	return FormatUnknown
}

// Parse decodes content, expands environment references and validates
// the result. path is only used to pick the format.
func Parse(path string, content []byte) (HostConfig, error) {
	var (
		cfg HostConfig
		err error
	)
	switch DetectFormat(path, content) {
	case FormatLua:
		p := NewLuaParser(nil)
		defer p.Close()
		cfg, err = p.Parse(content)
	case FormatTOML:
		cfg, err = ParseTOML(content)
	default:
		return HostConfig{}, ErrUnknownFormat
	}
	if err != nil {
		return HostConfig{}, err
	}
	ExpandEnvConfig(&cfg)
	if cfg.Script != "" && !filepath.IsAbs(cfg.Script) && path != "" {
		cfg.Script = filepath.Join(filepath.Dir(path), cfg.Script)
	}
	if err := cfg.Validate(); err != nil {
		return HostConfig{}, err
	}
	return cfg, nil
}

// ParseFile reads and parses the file at path.
func ParseFile(path string) (HostConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return HostConfig{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(path, content)
	if err != nil {
		return HostConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
