// Package customfn models graphs of user-authored shader function nodes.
// Each node binds a function definition, inline text or an external include
// file, to a set of typed input and output slots. The hlslbuild package
// consumes these graphs to generate shader source code.
package customfn

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// ShaderType enumerates the value types a slot can carry.
type ShaderType uint8

const (
	TypeFloat ShaderType = iota
	TypeVec2
	TypeVec3
	TypeVec4
	TypeMat2
	TypeMat3
	TypeMat4
	TypeInt
	TypeBool
	maxShaderType
)

// String returns the type's name in generated-code terms, independent of
// target dialect and precision.
func (t ShaderType) String() string {
	switch t {
	case TypeFloat:
		return "float"
	case TypeVec2:
		return "vec2"
	case TypeVec3:
		return "vec3"
	case TypeVec4:
		return "vec4"
	case TypeMat2:
		return "mat2"
	case TypeMat3:
		return "mat3"
	case TypeMat4:
		return "mat4"
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	default:
		return "unknown"
	}
}

// IsValid reports whether t is a member of the closed type enumeration.
func (t ShaderType) IsValid() bool { return t < maxShaderType }

// Components returns the number of scalar components of the type.
func (t ShaderType) Components() int {
	switch t {
	case TypeFloat, TypeInt, TypeBool:
		return 1
	case TypeVec2:
		return 2
	case TypeVec3:
		return 3
	case TypeVec4, TypeMat2:
		return 4
	case TypeMat3:
		return 9
	case TypeMat4:
		return 16
	}
	return 0
}

// SlotDir is the direction of a slot on its owning node.
type SlotDir uint8

const (
	DirInput SlotDir = iota
	DirOutput
)

func (d SlotDir) String() string {
	if d == DirInput {
		return "input"
	}
	return "output"
}

// SourceMode selects where a node's function definition comes from.
type SourceMode uint8

const (
	// SourceFile references an external include file containing the definition.
	SourceFile SourceMode = iota
	// SourceInline carries the function body verbatim on the node.
	SourceInline
)

func (m SourceMode) String() string {
	switch m {
	case SourceFile:
		return "file"
	case SourceInline:
		return "inline"
	default:
		return "unknown"
	}
}

// Placeholder values shown to authors before they configure a node. A spec
// still carrying a placeholder is treated as not yet configured.
const (
	DefaultFunctionName = "Enter function name here..."
	DefaultFunctionBody = "Enter function body here..."
)

// FileRef is an opaque reference to an include file. Resolution to a real
// path is delegated to the enclosing build via a path resolver; the raw
// string doubles as a fallback path for references stored by older versions.
type FileRef string

// FunctionSpec is a node's function identity and definition source.
// Exactly one of File/Body is meaningful, selected by Mode.
type FunctionSpec struct {
	Mode SourceMode
	// Name is the function identifier without precision suffix.
	Name string
	File FileRef
	Body string
}

// Slot is a typed, directional port on a function node. ID is stable and
// unique within the owning node. Name must sanitize to a unique identifier
// among the node's slots since it becomes a parameter name in generated
// headers. Default is used for inputs with no incoming edge.
type Slot struct {
	ID      int
	Dir     SlotDir
	Type    ShaderType
	Name    string
	Default Value
}

// Value is a scalar, vector or matrix literal used as a slot default.
// The zero Value is a float zero.
type Value struct {
	kind ShaderType
	f    float32
	i    int32
	b    bool
	v2   ms2.Vec
	v3   ms3.Vec
	v4   [2]ms2.Vec
	m2   ms2.Mat2
	m3   ms3.Mat3
	m4   ms3.Mat4
}

func FloatValue(v float32) Value   { return Value{kind: TypeFloat, f: v} }
func IntValue(v int32) Value       { return Value{kind: TypeInt, i: v} }
func BoolValue(v bool) Value       { return Value{kind: TypeBool, b: v} }
func Vec2Value(v ms2.Vec) Value    { return Value{kind: TypeVec2, v2: v} }
func Vec3Value(v ms3.Vec) Value    { return Value{kind: TypeVec3, v3: v} }
func Vec4Value(v [2]ms2.Vec) Value { return Value{kind: TypeVec4, v4: v} }
func Mat2Value(m ms2.Mat2) Value   { return Value{kind: TypeMat2, m2: m} }
func Mat3Value(m ms3.Mat3) Value   { return Value{kind: TypeMat3, m3: m} }
func Mat4Value(m ms3.Mat4) Value   { return Value{kind: TypeMat4, m4: m} }

// Kind returns the type of the stored literal.
func (v Value) Kind() ShaderType { return v.kind }

func (v Value) Float() float32   { return v.f }
func (v Value) Int() int32       { return v.i }
func (v Value) Bool() bool       { return v.b }
func (v Value) Vec2() ms2.Vec    { return v.v2 }
func (v Value) Vec3() ms3.Vec    { return v.v3 }
func (v Value) Vec4() [2]ms2.Vec { return v.v4 }
func (v Value) Mat2() ms2.Mat2   { return v.m2 }
func (v Value) Mat3() ms3.Mat3   { return v.m3 }
func (v Value) Mat4() ms3.Mat4   { return v.m4 }

// AppendComponents appends the scalar components of the literal to dst in
// declaration order. Matrix components follow column major order as laid out
// by the geometry package's Array methods.
func (v Value) AppendComponents(dst []float32) []float32 {
	switch v.kind {
	case TypeFloat:
		dst = append(dst, v.f)
	case TypeInt:
		dst = append(dst, float32(v.i))
	case TypeBool:
		if v.b {
			dst = append(dst, 1)
		} else {
			dst = append(dst, 0)
		}
	case TypeVec2:
		arr := v.v2.Array()
		dst = append(dst, arr[:]...)
	case TypeVec3:
		arr := v.v3.Array()
		dst = append(dst, arr[:]...)
	case TypeVec4:
		dst = append(dst, v.v4[0].X, v.v4[0].Y, v.v4[1].X, v.v4[1].Y)
	case TypeMat2:
		arr := v.m2.Array()
		dst = append(dst, arr[:]...)
	case TypeMat3:
		arr := v.m3.Array()
		dst = append(dst, arr[:]...)
	case TypeMat4:
		arr := v.m4.Array()
		dst = append(dst, arr[:]...)
	}
	return dst
}

// Finite reports whether all components of the literal are finite numbers.
// Non-finite defaults render as literals the downstream shader compiler
// rejects, so builds warn about them.
func (v Value) Finite() bool {
	var buf [16]float32
	for _, c := range v.AppendComponents(buf[:0]) {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}
