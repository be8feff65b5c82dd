package config

import (
	"os"
	"regexp"
	"strings"
)

// envPattern matches ${VAR}, ${VAR:-default} and $VAR.
var envPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([a-zA-Z_][a-zA-Z0-9_]*)`)

// ExpandEnv replaces environment references in s. ${VAR:-default} yields
// default when VAR is unset or empty; other unset variables expand to "".
func ExpandEnv(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(m string) string {
		if name, ok := strings.CutPrefix(m, "${"); ok {
			name = strings.TrimSuffix(name, "}")
			if name, def, ok := strings.Cut(name, ":-"); ok {
				if v := os.Getenv(name); v != "" {
					return v
				}
				return def
			}
			return os.Getenv(name)
		}
		return os.Getenv(m[1:])
	})
}

// ExpandEnvConfig expands every string field of cfg in place.
func ExpandEnvConfig(cfg *HostConfig) {
	if cfg == nil {
		return
	}
	for _, p := range []*string{
		&cfg.AspectRatio, &cfg.LightBackground, &cfg.DarkBackground,
		&cfg.Title, &cfg.Theme, &cfg.Script,
	} {
		*p = ExpandEnv(*p)
	}
	for i, s := range cfg.Scene {
		cfg.Scene[i] = ExpandEnv(s)
	}
}
