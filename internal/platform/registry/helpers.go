package registry

import (
	"strconv"
	"time"
)

// Type-safe extraction helpers for the cfg.Custom map of a source factory.
// Values may arrive as native Go types (defaults), as YAML/JSON scalars or
// as strings from environment variables.

// GetStringConfig returns the value for key, or defaultValue when the key is
// missing, not a string, or empty.
func GetStringConfig(custom map[string]interface{}, key, defaultValue string) string {
	if custom == nil {
		return defaultValue
	}
	if val, ok := custom[key].(string); ok && val != "" {
		return val
	}
	return defaultValue
}

// GetIntConfig accepts int, int64, float64 and numeric strings.
func GetIntConfig(custom map[string]interface{}, key string, defaultValue int) int {
	if custom == nil {
		return defaultValue
	}

	switch val := custom[key].(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	case string:
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultValue
}

// GetBoolConfig accepts bool and strconv.ParseBool strings.
func GetBoolConfig(custom map[string]interface{}, key string, defaultValue bool) bool {
	if custom == nil {
		return defaultValue
	}

	switch val := custom[key].(type) {
	case bool:
		return val
	case string:
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultValue
}

// GetDurationConfig accepts:
//   - time.Duration
//   - int / int64 / float64 (nanoseconds)
//   - string (time.ParseDuration)
func GetDurationConfig(custom map[string]interface{}, key string, defaultValue time.Duration) time.Duration {
	if custom == nil {
		return defaultValue
	}

	switch val := custom[key].(type) {
	case time.Duration:
		return val
	case int:
		return time.Duration(val)
	case int64:
		return time.Duration(val)
	case float64:
		return time.Duration(val)
	case string:
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultValue
}
