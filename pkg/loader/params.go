package loader

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

type ParameterSet map[string]string

// Equal compares key sets and values, a nil set equals an empty one
func (p ParameterSet) Equal(o ParameterSet) bool {
	if len(p) != len(o) {
		return false
	}

	for k, v := range p {
		if ov, ok := o[k]; !ok || ov != v {
			return false
		}
	}

	return true
}

// Signature is a canonical encoding of the set, two sets are Equal iff their signatures match
func (p ParameterSet) Signature() string {
	keys := make([]string, 0, len(p))

	for k := range p {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	parts := make([]string, 0, len(keys))

	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", url.QueryEscape(k), url.QueryEscape(p[k])))
	}

	return strings.Join(parts, "&")
}

func (p ParameterSet) Clone() ParameterSet {
	c := make(ParameterSet, len(p))

	for k, v := range p {
		c[k] = v
	}

	return c
}

func (p ParameterSet) String() string {
	return "{" + p.Signature() + "}"
}

// Require builds a supplier returning the named values from lookup, failing with
// ErrParameterUnavailable when one of them is absent or empty
func Require(lookup func(string) (string, bool), names ...string) ParamSupplier {
	return func() (ParameterSet, error) {
		params := make(ParameterSet, len(names))

		for _, name := range names {
			v, ok := lookup(name)

			if !ok || v == "" {
				return nil, fmt.Errorf("%w: %s", ErrParameterUnavailable, name)
			}

			params[name] = v
		}

		return params, nil
	}
}

// Static always supplies the same parameters
func Static(params ParameterSet) ParamSupplier {
	c := params.Clone()

	return func() (ParameterSet, error) {
		return c.Clone(), nil
	}
}
