// Package timex provides a time.Duration wrapper that config files can
// spell either as a Go duration string ("3s", "1m30s") or as an integer
// number of nanoseconds.
package timex

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that decodes from JSON and YAML.
type Duration struct {
	time.Duration
}

func parse(v any) (time.Duration, error) {
	switch x := v.(type) {
	case string:
		return time.ParseDuration(x)
	case float64:
		return time.Duration(x), nil
	case int:
		return time.Duration(x), nil
	default:
		return 0, fmt.Errorf("invalid duration %v", v)
	}
}

// UnmarshalJSON accepts "3s" or 3000000000.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	dur, err := parse(v)
	if err != nil {
		return err
	}
	d.Duration = dur
	return nil
}

// MarshalJSON writes the duration in its string form.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalYAML accepts the same forms as UnmarshalJSON.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	dur, err := parse(v)
	if err != nil {
		return err
	}
	d.Duration = dur
	return nil
}
