package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Kind is the type an environment value is converted to.
type Kind int

const (
	// KindAuto guesses the type from the value.
	KindAuto Kind = iota
	KindString
	KindBool
	KindInt
)

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // e.g. "PSGA_"
	mapping map[string]string // env var -> config path
	kinds   map[string]Kind   // config path -> value kind
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "PSGA_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		kinds:   defaultEnvKinds(),
		environ: os.Environ,
	}
}

// defaultEnvMapping returns the mappings whose section or key contains an
// underscore and therefore can't be derived from the variable name.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL":                     "logging.level",
		prefix + "LOG_FILE":                      "logging.file",
		prefix + "DISPATCHER_EXIT_EVENT":         "dispatcher.exit_event",
		prefix + "DISPATCHER_MENU_DELIMITER":     "dispatcher.menu_delimiter",
		prefix + "DISPATCHER_RECOVER_FROM_PANIC": "dispatcher.recover_from_panic",
		prefix + "REST_BASE_URL":                 "rest.base_url",
		prefix + "REST_RETRY_MAX":                "rest.retry_max",
	}
}

// defaultEnvKinds types the known settings so that a string setting set to
// "off" or "42" stays a string.
func defaultEnvKinds() map[string]Kind {
	return map[string]Kind{
		"logging.level":                 KindString,
		"logging.file":                  KindString,
		"dispatcher.exit_event":         KindString,
		"dispatcher.menu_delimiter":     KindString,
		"dispatcher.recover_from_panic": KindBool,
		"dispatcher.metrics":            KindBool,
		"rest.addr":                     KindString,
		"rest.base_url":                 KindString,
		"rest.retry_max":                KindInt,
		"rest.timeout":                  KindString,
	}
}

// Load reads environment variables and returns a configuration map.
// Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}

		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		v, err := convertValue(value, l.kinds[path])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		setByPath(config, path, v)
	}

	return config, nil
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = configPath
}

// SetKind declares the type of the value stored at configPath.
func (l *EnvLoader) SetKind(configPath string, kind Kind) {
	if l.kinds == nil {
		l.kinds = make(map[string]Kind)
	}
	l.kinds[configPath] = kind
}

// envToPath converts PSGA_REST_ADDR to rest.addr: the first word is the
// section, the rest form the key joined with underscores.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, key, ok := strings.Cut(name, "_")
	if !ok || section == "" || key == "" {
		return ""
	}
	return section + "." + key
}

func convertValue(s string, kind Kind) (any, error) {
	switch kind {
	case KindString:
		return s, nil
	case KindBool:
		if b, ok := parseBool(s); ok {
			return b, nil
		}
		return nil, fmt.Errorf("invalid boolean %q", s)
	case KindInt:
		i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", s)
		}
		return i, nil
	}
	return parseValue(s), nil
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, true
	case "false", "no", "off", "0":
		return false, true
	}
	return false, false
}

// parseValue attempts to parse the string value into an appropriate type.
// Numbers stay numbers; "1" and "0" are not treated as booleans.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err == nil {
			return v
		}
	}

	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		if next, ok := current[part].(map[string]any); ok {
			current = next
		} else {
			next := make(map[string]any)
			current[part] = next
			current = next
		}
	}

	current[parts[len(parts)-1]] = value
}
