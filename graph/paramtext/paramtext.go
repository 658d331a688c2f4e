// Package paramtext provides the JSON-shaped helpers the kernel and
// command layer use to read, write, clone, and compare node Params and
// Socket Metadata: dotted-path access over the param bag, structural
// (order-insensitive) equality, and deep cloning so that one Graph value
// never observes mutations made through another.
package paramtext

import (
	"encoding/json"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// CloneValue returns a deep copy of v. v is expected to be JSON-shaped
// data (the only kind Params/Metadata ever hold: maps, slices, strings,
// numbers, bools, nil) so a marshal/unmarshal round trip is a correct and
// simple deep copy — the same approach the kernel uses everywhere else it
// needs to compare or snapshot param bags.
func CloneValue(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		// Params/Metadata are documented to be JSON-shaped; a caller that
		// violates this gets an unmodified reference back rather than a
		// panic, since struct-shaped Go values are still loggable/usable
		// even though they can't be deep-cloned this way.
		return v
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}

// CloneParams returns a deep copy of a Params/Metadata map, or nil if m
// is nil.
func CloneParams(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	cloned, ok := CloneValue(m).(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
	return cloned
}

// Get reads the dotted path from a Params map, returning (nil, false) if
// the path is absent. path follows gjson syntax ("a.b.2.c").
func Get(params map[string]interface{}, path string) (interface{}, bool) {
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, false
	}
	result := gjson.GetBytes(raw, path)
	if !result.Exists() {
		return nil, false
	}
	return result.Value(), true
}

// Set returns a new Params map with path set to value, leaving the input
// map untouched. path follows sjson syntax and creates intermediate
// objects/arrays as needed.
func Set(params map[string]interface{}, path string, value interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	updated, err := sjson.SetBytes(raw, path, value)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := json.Unmarshal(updated, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete returns a new Params map with path removed, leaving the input
// map untouched.
func Delete(params map[string]interface{}, path string) (map[string]interface{}, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	updated, err := sjson.DeleteBytes(raw, path)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := json.Unmarshal(updated, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Equal reports whether two JSON-shaped values are structurally equal:
// same keys and values regardless of map key order. Used by IsNoop, where
// two Params maps built independently should compare equal even if Go's
// map iteration order differs.
func Equal(a, b interface{}) bool {
	ra, err1 := json.Marshal(a)
	rb, err2 := json.Marshal(b)
	if err1 != nil || err2 != nil {
		return false
	}
	// Round trip both through a canonical (sorted-key, compact) form
	// before comparing bytes: decoding to generic JSON values and
	// re-encoding makes a struct and a map with the same fields encode
	// alike (encoding/json sorts map keys), and pretty's compact
	// ugly-printer strips any whitespace.
	ca, err1 := canonicalize(ra)
	cb, err2 := canonicalize(rb)
	if err1 != nil || err2 != nil {
		return false
	}
	return string(ca) == string(cb)
}

func canonicalize(raw []byte) ([]byte, error) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	sorted, err := json.Marshal(sortKeys(v))
	if err != nil {
		return nil, err
	}
	return pretty.Ugly(sorted), nil
}

// sortKeys recursively rebuilds maps as a stable structure so that
// json.Marshal (which already sorts map[string]interface{} keys) produces
// byte-identical output for structurally-equal values.
func sortKeys(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = sortKeys(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = sortKeys(val)
		}
		return out
	default:
		return t
	}
}

// Pretty renders v as indented JSON text, using the same printer the
// document layer uses for on-disk/export snapshots.
func Pretty(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return pretty.Pretty(raw), nil
}
