package provider

import (
	"encoding/json"
	"strconv"
)

// Providers disagree on field names for the same concept ("video_url"
// vs "videoUrl" vs "output.url"). Call sites declare one ordered
// priority list per field instead of scattering ad hoc lookup chains.

// FirstString returns the first non-empty string value among keys, in
// order.
func FirstString(fields map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		v, ok := fields[k]
		if !ok {
			continue
		}
		if s, ok := v.(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// FirstNumber returns the first numeric value among keys, in order.
// JSON decoding may deliver numbers as float64, json.Number, int, or
// numeric strings depending on the provider; all are accepted.
func FirstNumber(fields map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		v, ok := fields[k]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case int:
			return float64(n), true
		case int64:
			return float64(n), true
		case json.Number:
			if f, err := n.Float64(); err == nil {
				return f, true
			}
		case string:
			if f, err := strconv.ParseFloat(n, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}
