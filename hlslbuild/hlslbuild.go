// Package hlslbuild generates shader source code from customfn graphs.
// Every function node becomes a deduplicated function definition plus a
// per-node call site of declarations and a call statement. Generation is
// append based over byte buffers and is a pure function of the graph
// snapshot; the Registry is the only mutable state of a generation pass.
package hlslbuild

import (
	"bytes"
	"strconv"

	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"

	"github.com/shadergraph/customfn"
)

// Precision selects the numeric precision variant of generated functions.
// It suffixes function names and selects the floating point type prefix.
type Precision uint8

const (
	PrecisionFloat Precision = iota
	PrecisionHalf
)

// Suffix returns the textual qualifier appended to function names, i.e. the
// "float" of "MyFunction_float".
func (p Precision) Suffix() string {
	if p == PrecisionHalf {
		return "half"
	}
	return "float"
}

// Dialect selects the target shading language flavor for type names and
// constructor syntax.
type Dialect uint8

const (
	// DialectHLSL renders float3/float3x3 style type names.
	DialectHLSL Dialect = iota
	// DialectGLSL renders vec3/mat3 style type names. GLSL has no half
	// scalar type so precision degrades to float. Used to feed generated
	// programs to a GL compiler for verification.
	DialectGLSL
)

// GenerationMode distinguishes interactive preview builds from final builds.
// Preview builds keep partially configured nodes alive by declaring their
// first output so downstream nodes have something to read.
type GenerationMode uint8

const (
	ModeFinal GenerationMode = iota
	ModePreview
)

// TypeString renders a slot type for the dialect at the given precision.
func (d Dialect) TypeString(t customfn.ShaderType, p Precision) string {
	if d == DialectGLSL {
		return t.String() // vec3, mat3...
	}
	prefix := p.Suffix()
	switch t {
	case customfn.TypeFloat:
		return prefix
	case customfn.TypeVec2:
		return prefix + "2"
	case customfn.TypeVec3:
		return prefix + "3"
	case customfn.TypeVec4:
		return prefix + "4"
	case customfn.TypeMat2:
		return prefix + "2x2"
	case customfn.TypeMat3:
		return prefix + "3x3"
	case customfn.TypeMat4:
		return prefix + "4x4"
	case customfn.TypeInt:
		return "int"
	case customfn.TypeBool:
		return "bool"
	}
	return "void"
}

// constructor returns the constructor name used for literal values of t.
// GLSL matrix constructors are mat2/mat3/mat4 and vectors vec2..vec4;
// HLSL reuses the type name.
func (d Dialect) constructor(t customfn.ShaderType, p Precision) string {
	return d.TypeString(t, p)
}

const decimalDigits = 9

// AppendFloat appends a decimal literal with trailing zeros trimmed.
func AppendFloat(b []byte, v float32) []byte {
	start := len(b)
	b = strconv.AppendFloat(b, float64(v), 'f', decimalDigits, 32)
	idx := bytes.IndexByte(b[start:], '.')
	// Trim trailing zeroes but keep one decimal so the literal stays a float.
	end := len(b)
	for i := len(b) - 1; idx >= 0 && i > idx+start+1 && b[i] == '0'; i-- {
		end--
	}
	return b[:end]
}

// AppendFloats appends comma separated float literals.
func AppendFloats(b []byte, s ...float32) []byte {
	for i, v := range s {
		b = AppendFloat(b, v)
		if i != len(s)-1 {
			b = append(b, ',')
		}
	}
	return b
}

// AppendValue appends a literal expression for the value, rendered for the
// dialect and precision, i.e. float3(1.0,2.0,3.0).
func AppendValue(b []byte, v customfn.Value, d Dialect, p Precision) []byte {
	switch v.Kind() {
	case customfn.TypeFloat:
		return AppendFloat(b, v.Float())
	case customfn.TypeInt:
		return strconv.AppendInt(b, int64(v.Int()), 10)
	case customfn.TypeBool:
		return strconv.AppendBool(b, v.Bool())
	}
	b = append(b, d.constructor(v.Kind(), p)...)
	b = append(b, '(')
	var comps [16]float32
	b = AppendFloats(b, v.AppendComponents(comps[:0])...)
	b = append(b, ')')
	return b
}

// AppendZeroValue appends a zero literal of the slot type.
func AppendZeroValue(b []byte, t customfn.ShaderType, d Dialect, p Precision) []byte {
	switch t {
	case customfn.TypeFloat:
		return append(b, "0.0"...)
	case customfn.TypeInt:
		return append(b, '0')
	case customfn.TypeBool:
		return append(b, "false"...)
	}
	b = append(b, d.constructor(t, p)...)
	b = append(b, '(')
	n := t.Components()
	for i := 0; i < n; i++ {
		b = append(b, "0.0"...)
		if i != n-1 {
			b = append(b, ',')
		}
	}
	b = append(b, ')')
	return b
}

// AppendVec2Literal appends a vec2 constructor expression.
func AppendVec2Literal(b []byte, v ms2.Vec, d Dialect, p Precision) []byte {
	return AppendValue(b, customfn.Vec2Value(v), d, p)
}

// AppendVec3Literal appends a vec3 constructor expression.
func AppendVec3Literal(b []byte, v ms3.Vec, d Dialect, p Precision) []byte {
	return AppendValue(b, customfn.Vec3Value(v), d, p)
}
