// Package config loads YAML tuning files into the flat key/value form the
// engine constructors accept.
package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load reads a tuning file. Top-level sections group keys for readability
// only: nested mappings are flattened and every leaf key must be unique.
//
//	world:
//	  tiling: hex
//	  width: 32
//	spheres:
//	  gravity: 0.01
func Load(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Parse flattens YAML content.
func Parse(raw []byte) (map[string]string, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("tuning yaml: %w", err)
	}
	out := make(map[string]string)
	if err := flatten(out, "", doc); err != nil {
		return nil, err
	}
	return out, nil
}

func flatten(out map[string]string, section string, node map[string]any) error {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := node[k].(type) {
		case map[string]any:
			if err := flatten(out, k, v); err != nil {
				return err
			}
		case []any:
			return fmt.Errorf("tuning yaml: %s: lists are not supported", k)
		default:
			if _, dup := out[k]; dup {
				return fmt.Errorf("tuning yaml: key %q repeated (in section %q)", k, section)
			}
			out[k] = scalar(v)
		}
	}
	return nil
}

func scalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// Merge returns base overlaid with overrides. Neither input is modified.
func Merge(base, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Save writes a flat map as a single-section YAML file, e.g. to capture the
// tunables that produced an interesting run.
func Save(path, section string, values map[string]string) error {
	doc := map[string]map[string]string{section: values}
	raw, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
