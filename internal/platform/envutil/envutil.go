package envutil

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/lessonbridge-backend/internal/platform/logger"
)

// LookupFunc matches os.LookupEnv so callers can swap in a map for tests.
type LookupFunc func(key string) (string, bool)

// OS is the process environment.
var OS LookupFunc = os.LookupEnv

// FromMap returns a LookupFunc backed by m.
func FromMap(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// String returns the value of key, or def when key is unset or empty.
// A set value is returned verbatim.
func String(lookup LookupFunc, key, def string, log *logger.Logger) string {
	if log != nil {
		log = log.With("env_var", key)
	}
	val, ok := lookup(key)
	if !ok || val == "" {
		if log != nil {
			log.Debug("Environment variable not found, using default", "default", def)
		}
		return def
	}
	if log != nil {
		log.Debug("Environment variable found, using environment", "environment", val)
	}
	return val
}

func Int(lookup LookupFunc, key string, def int, log *logger.Logger) int {
	raw, ok := lookup(key)
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return def
	}
	i, err := strconv.Atoi(raw)
	if err != nil {
		if log != nil {
			log.Debug("Environment variable could not be parsed as int, using default", "env_var", key, "providedVal", raw, "defaultVal", def, "error", err)
		}
		return def
	}
	return i
}

func Bool(lookup LookupFunc, key string, def bool) bool {
	raw, ok := lookup(key)
	if !ok {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}

// Duration accepts Go duration strings ("10s") or a bare integer of seconds.
func Duration(lookup LookupFunc, key string, def time.Duration, log *logger.Logger) time.Duration {
	raw, ok := lookup(key)
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	if log != nil {
		log.Debug("Environment variable could not be parsed as duration, using default", "env_var", key, "providedVal", raw, "defaultVal", def.String())
	}
	return def
}

// List splits a comma separated value, dropping blanks.
func List(lookup LookupFunc, key string, def []string) []string {
	raw, ok := lookup(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
