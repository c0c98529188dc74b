package command

import (
	"sort"
	"strings"
)

// Params is the parameter set passed to a command. It is a value object:
// two Params with the same entries are equal regardless of identity.
type Params map[string]string

// NewParams builds Params from alternating key/value strings.
// A trailing key without a value is ignored.
func NewParams(kv ...string) Params {
	p := make(Params, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		p[kv[i]] = kv[i+1]
	}
	return p
}

// Get returns the value for name, or "" if unset.
func (p Params) Get(name string) string {
	return p[name]
}

// Set returns a copy of p with name set to value.
func (p Params) Set(name, value string) Params {
	c := p.Clone()
	c[name] = value
	return c
}

// IsEmpty returns true if no parameter is set. Nil Params are empty.
func (p Params) IsEmpty() bool {
	return len(p) == 0
}

// Equal reports whether p and other hold the same entries.
// Nil and empty Params are equal.
func (p Params) Equal(other Params) bool {
	if len(p) != len(other) {
		return false
	}
	for k, v := range p {
		ov, ok := other[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// Clone returns an independent copy. Cloning nil yields an empty, non-nil map.
func (p Params) Clone() Params {
	c := make(Params, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

// Keys returns parameter names in sorted order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String returns a stable representation like "action=in,percent=200".
func (p Params) String() string {
	keys := p.Keys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + p[k]
	}
	return strings.Join(parts, ",")
}
