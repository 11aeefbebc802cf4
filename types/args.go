package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Args is an ordered mapping from argument name to value.
//
// Setting an existing name replaces its value but keeps the position of
// its first insertion, so a merge of several sources enumerates keys in
// the order they were first seen while the last write wins.
//
// The zero value is an empty Args ready to use.
type Args struct {
	keys   []string
	values map[string]any
}

// NewArgs builds Args from alternating name/value pairs.
// It panics if a name is not a string or a value is missing.
func NewArgs(kv ...any) Args {
	if len(kv)%2 != 0 {
		panic(fmt.Sprintf("types.NewArgs: odd number of arguments (%d)", len(kv)))
	}
	var a Args
	for i := 0; i < len(kv); i += 2 {
		name, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("types.NewArgs: argument name must be a string; got %T", kv[i]))
		}
		a.Set(name, kv[i+1])
	}
	return a
}

// Set assigns value to name.
func (a *Args) Set(name string, value any) {
	if a.values == nil {
		a.values = make(map[string]any)
	}
	if _, ok := a.values[name]; !ok {
		a.keys = append(a.keys, name)
	}
	a.values[name] = value
}

// Get returns the value stored under name.
func (a Args) Get(name string) (any, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Delete removes name, if present.
func (a *Args) Delete(name string) {
	if _, ok := a.values[name]; !ok {
		return
	}
	delete(a.values, name)
	for i, k := range a.keys {
		if k == name {
			a.keys = append(a.keys[:i:i], a.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (a Args) Len() int {
	return len(a.keys)
}

// Keys returns the names in enumeration order.
func (a Args) Keys() []string {
	keys := make([]string, len(a.keys))
	copy(keys, a.keys)
	return keys
}

// Each calls fn for every entry in enumeration order.
func (a Args) Each(fn func(name string, value any)) {
	for _, k := range a.keys {
		fn(k, a.values[k])
	}
}

// Clone returns an independent copy of a. Values are copied shallowly.
func (a Args) Clone() Args {
	var c Args
	a.Each(c.Set)
	return c
}

// Map returns the entries as a plain map. Order is lost.
func (a Args) Map() map[string]any {
	m := make(map[string]any, len(a.keys))
	a.Each(func(name string, value any) { m[name] = value })
	return m
}

// MergeArgs merges sources from lowest to highest precedence.
//
// Keys are enumerated in first-seen order; on collision the value of the
// later source wins.
func MergeArgs(sources ...Args) Args {
	var merged Args
	for _, src := range sources {
		src.Each(merged.Set)
	}
	return merged
}

// MarshalJSON encodes a as a JSON object, preserving key order.
func (a Args) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range a.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(a.values[k])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal argument %q: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into a, preserving key order.
func (a *Args) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("args: expected JSON object, got %v", tok)
	}
	var out Args
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("args: expected object key, got %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("args: failed to decode %q: %w", name, err)
		}
		out.Set(name, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*a = out
	return nil
}
