package behavior

import (
	"fmt"
	"maps"
	"slices"
)

// Params is a behavior's resolved parameter mapping. It is read-only once
// resolved.
type Params map[string]string

// Resolve layers overrides on top of defaults. Override keys that have no
// default are preserved as-is. Resolve never fails and the result always
// holds every default key.
func Resolve(defaults, overrides map[string]string) Params {
	p := make(Params, len(defaults)+len(overrides))
	maps.Copy(p, defaults)
	maps.Copy(p, overrides)
	return p
}

// Get returns the value of key.
func (p Params) Get(key string) string { return p[key] }

// Bool reports whether key holds exactly "true". No other spelling counts.
func (p Params) Bool(key string) bool { return p[key] == "true" }

// ParseBool returns the boolean value of key. Only the literals "true" and
// "false" are accepted.
func (p Params) ParseBool(key string) (bool, error) {
	return ParseBool(p[key])
}

// Keys returns the parameter names in sorted order.
func (p Params) Keys() []string {
	return slices.Sorted(maps.Keys(p))
}

// ParseBool parses a boolean parameter literal.
func ParseBool(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q: want \"true\" or \"false\"", s)
	}
}
