package hlslbuild

import (
	"errors"
	"strings"
)

// reservedWords are identifiers that cannot be used as parameter or variable
// names in generated code. Shading languages match keywords exactly, not
// case-insensitively, so the set is stored verbatim.
var reservedWords = map[string]struct{}{
	"void": {}, "float": {}, "half": {}, "double": {}, "int": {}, "uint": {},
	"bool": {}, "true": {}, "false": {}, "return": {}, "if": {}, "else": {},
	"for": {}, "while": {}, "do": {}, "switch": {}, "case": {}, "break": {},
	"continue": {}, "discard": {}, "const": {}, "static": {}, "struct": {},
	"in": {}, "out": {}, "inout": {}, "uniform": {}, "sampler": {},
	"vec2": {}, "vec3": {}, "vec4": {}, "mat2": {}, "mat3": {}, "mat4": {},
	"float2": {}, "float3": {}, "float4": {}, "half2": {}, "half3": {}, "half4": {},
}

const unnamedIdentifier = "unnamed"

func isIdentRune(r rune, first bool) bool {
	switch {
	case r == '_':
		return true
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return !first
	}
	return false
}

// SanitizeIdentifier maps an arbitrary display name to a legal code
// identifier: illegal runes become underscores, a leading digit gets an
// underscore prefix and reserved words get an underscore suffix. The mapping
// is deterministic; two display names may still collide after sanitization,
// which node validation reports as an error.
func SanitizeIdentifier(name string) string {
	if name == "" {
		return unnamedIdentifier
	}
	var sb strings.Builder
	sb.Grow(len(name) + 1)
	for i, r := range name {
		if isIdentRune(r, i == 0) {
			sb.WriteRune(r)
		} else if i == 0 && r >= '0' && r <= '9' {
			sb.WriteByte('_')
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
	}
	out := sb.String()
	if _, reserved := reservedWords[out]; reserved {
		out += "_"
	}
	return out
}

// ValidateIdentifier reports whether name is already a legal identifier
// without sanitization.
func ValidateIdentifier(name string) error {
	if name == "" {
		return errors.New("empty identifier")
	}
	for i, r := range name {
		if !isIdentRune(r, i == 0) {
			return newError(ErrInvalidIdentifier, "identifier %q has illegal character %q", name, r)
		}
	}
	if _, reserved := reservedWords[name]; reserved {
		return newError(ErrInvalidIdentifier, "identifier %q is a reserved word", name)
	}
	return nil
}
