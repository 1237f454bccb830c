package value

import (
	"strconv"
	"strings"
)

// ParamValue is one actual parameter of a ParametricUse: either a
// concrete integer or a nested parametric use (e.g. a module parametrized
// by another module's instantiation).
type ParamValue struct {
	IsUse bool
	Int   int64
	Use   *ParametricUse
}

func IntParam(n int64) ParamValue          { return ParamValue{Int: n} }
func UseParam(u *ParametricUse) ParamValue { return ParamValue{IsUse: true, Use: u} }

func (p ParamValue) render() string {
	if p.IsUse {
		return p.Use.Render()
	}
	return strconv.FormatInt(p.Int, 10)
}

func (p ParamValue) equal(o ParamValue) bool {
	if p.IsUse != o.IsUse {
		return false
	}
	if p.IsUse {
		return p.Use.Equal(o.Use)
	}
	return p.Int == o.Int
}

// ParametricUse is a fingerprint of one on-demand specialization request:
// a declared name plus the actual parameters it was invoked with. The
// driver worklist dedupes on structural equality of these fingerprints.
type ParametricUse struct {
	Name   string
	Escape bool
	Params []ParamValue
}

// Equal reports structural equality on Name and Params (Escape is a
// rendering detail, not part of the identity).
func (u *ParametricUse) Equal(o *ParametricUse) bool {
	if u == o {
		return true
	}
	if u == nil || o == nil {
		return false
	}
	if u.Name != o.Name || len(u.Params) != len(o.Params) {
		return false
	}
	for i := range u.Params {
		if !u.Params[i].equal(o.Params[i]) {
			return false
		}
	}
	return true
}

// Hash is an FNV-style mix of the name and each parameter, used to bucket
// uses before falling back to Equal for exact dedup.
func (u *ParametricUse) Hash() uint64 {
	const offset64 = 14695981039346656037
	const prime64 = 1099511628211
	h := uint64(offset64)
	mix := func(s string) {
		for i := 0; i < len(s); i++ {
			h ^= uint64(s[i])
			h *= prime64
		}
	}
	mix(u.Name)
	for _, p := range u.Params {
		if p.IsUse {
			mix(strconv.FormatUint(p.Use.Hash(), 16))
		} else {
			mix(strconv.FormatInt(p.Int, 10))
		}
	}
	return h
}

// Render produces the canonical name#(p1,p2,...) string; if Escape is set
// the result is wrapped in the backend's identifier-escape delimiters so
// it parses as a single legal identifier.
func (u *ParametricUse) Render() string {
	var b strings.Builder
	b.WriteString(u.Name)
	if len(u.Params) > 0 {
		b.WriteString("#(")
		for i, p := range u.Params {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(p.render())
		}
		b.WriteString(")")
	}
	if !u.Escape {
		return b.String()
	}
	return "\\" + b.String() + " "
}
