package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadOverride is returned for a -set value that is not key=value.
var ErrBadOverride = errors.New("config: override must be key=value")

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

// Set appends one override.
func (l *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("%w: %q", ErrBadOverride, value)
	}
	*l = append(*l, value)
	return nil
}

// Map parses the overrides; later keys win.
func (l KVList) Map() (map[string]string, error) {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrBadOverride, kv)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}

// Resolve loads the tuning file at path, when given, and applies overrides
// on top of it.
func Resolve(path string, overrides KVList) (map[string]string, error) {
	base := map[string]string{}
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		base = loaded
	}
	sets, err := overrides.Map()
	if err != nil {
		return nil, err
	}
	return Merge(base, sets), nil
}
