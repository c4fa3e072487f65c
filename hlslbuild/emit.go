package hlslbuild

import (
	"strconv"

	"github.com/shadergraph/customfn"
)

// AppendSlotVariable appends the generated-code variable name holding a
// slot's value at its node's call site. The name is derived from the node
// and slot ids only, so declarations and call arguments always agree and
// names never collide across nodes.
func AppendSlotVariable(dst []byte, nodeID, slotID int) []byte {
	dst = append(dst, "_cf"...)
	dst = strconv.AppendInt(dst, int64(nodeID), 10)
	dst = append(dst, '_')
	dst = strconv.AppendInt(dst, int64(slotID), 10)
	return dst
}

// SlotVariable is the string form of AppendSlotVariable.
func SlotVariable(nodeID, slotID int) string {
	return string(AppendSlotVariable(nil, nodeID, slotID))
}

// AppendFunctionName appends the precision-qualified function name,
// i.e. "MyFunction_float".
func AppendFunctionName(dst []byte, spec customfn.FunctionSpec, p Precision) []byte {
	dst = append(dst, spec.Name...)
	dst = append(dst, '_')
	dst = append(dst, p.Suffix()...)
	return dst
}

// AppendFunctionHeader appends the function prototype without a trailing
// brace or semicolon:
//
//	void Name_float(float3 In, out float3 Out)
//
// Inputs precede outputs, each in slot insertion order. Parameter names are
// the sanitized slot display names; node validation guarantees they do not
// collide within one node.
func AppendFunctionHeader(dst []byte, spec customfn.FunctionSpec, inputs, outputs []customfn.Slot, d Dialect, p Precision) []byte {
	dst = append(dst, "void "...)
	dst = AppendFunctionName(dst, spec, p)
	dst = append(dst, '(')
	for i, s := range inputs {
		if i > 0 {
			dst = append(dst, ", "...)
		}
		dst = append(dst, d.TypeString(s.Type, p)...)
		dst = append(dst, ' ')
		dst = append(dst, SanitizeIdentifier(s.Name)...)
	}
	for i, s := range outputs {
		if i > 0 || len(inputs) > 0 {
			dst = append(dst, ", "...)
		}
		dst = append(dst, "out "...)
		dst = append(dst, d.TypeString(s.Type, p)...)
		dst = append(dst, ' ')
		dst = append(dst, SanitizeIdentifier(s.Name)...)
	}
	dst = append(dst, ')')
	return dst
}

// InputResolver produces the value expression feeding an input slot:
// the adapted producer expression when an edge exists, the slot's default
// literal otherwise. An empty result is legal and simply yields an empty
// argument in the generated call; unresolvable wiring is an authoring state
// recovered downstream, not a generation fault.
type InputResolver func(slot customfn.Slot) string

// AppendCallSite appends a node's generated statements: one declaration per
// output slot followed by the call, with input expressions before output
// variables, matching the header's parameter order.
//
// Invalid nodes emit nothing, except in preview mode where the first output
// slot (if any) is declared uninitialized so downstream preview code still
// has a typed variable to read.
func AppendCallSite(dst []byte, node *customfn.FunctionNode, valid bool, mode GenerationMode, resolve InputResolver, d Dialect, p Precision) []byte {
	if !valid {
		if mode != ModePreview || len(node.Outputs) == 0 {
			return dst
		}
		first := node.Outputs[0]
		dst = append(dst, d.TypeString(first.Type, p)...)
		dst = append(dst, ' ')
		dst = AppendSlotVariable(dst, node.ID, first.ID)
		dst = append(dst, ";\n"...)
		return dst
	}
	for _, s := range node.Outputs {
		dst = append(dst, d.TypeString(s.Type, p)...)
		dst = append(dst, ' ')
		dst = AppendSlotVariable(dst, node.ID, s.ID)
		dst = append(dst, ";\n"...)
	}
	dst = AppendFunctionName(dst, node.Spec, p)
	dst = append(dst, '(')
	for i, s := range node.Inputs {
		if i > 0 {
			dst = append(dst, ", "...)
		}
		dst = append(dst, resolve(s)...)
	}
	for i, s := range node.Outputs {
		if i > 0 || len(node.Inputs) > 0 {
			dst = append(dst, ", "...)
		}
		dst = AppendSlotVariable(dst, node.ID, s.ID)
	}
	dst = append(dst, ");\n"...)
	return dst
}

// ExpressionAdapter produces a value expression for a producer node's
// output slot, adapted to the consuming slot's type.
type ExpressionAdapter interface {
	Adapt(producer *customfn.FunctionNode, producerSlotID int, target customfn.ShaderType) string
}

// castAdapter is the default ExpressionAdapter: it names the producer's
// call-site variable and wraps it in a cast or swizzle when the types
// differ. A missing producer slot adapts to the empty expression.
type castAdapter struct {
	dialect   Dialect
	precision Precision
}

func (a castAdapter) Adapt(producer *customfn.FunctionNode, producerSlotID int, target customfn.ShaderType) string {
	slot, ok := producer.Output(producerSlotID)
	if !ok {
		return ""
	}
	expr := SlotVariable(producer.ID, producerSlotID)
	return adaptExpr(expr, slot.Type, target, a.dialect, a.precision)
}

// vectorSize returns the component count for scalar/vector types and 0 for
// matrices, which have no implicit adaptation.
func vectorSize(t customfn.ShaderType) int {
	switch t {
	case customfn.TypeFloat, customfn.TypeInt, customfn.TypeBool:
		return 1
	case customfn.TypeVec2:
		return 2
	case customfn.TypeVec3:
		return 3
	case customfn.TypeVec4:
		return 4
	}
	return 0
}

var swizzles = [...]string{1: ".x", 2: ".xy", 3: ".xyz", 4: ".xyzw"}

// adaptExpr rewrites expr of type from into an expression of type to.
// Scalars splat to vectors, wider vectors truncate by swizzle and narrower
// vectors pad with zeros. Matrix conversions pass through unchanged and are
// left to the downstream shader compiler.
func adaptExpr(expr string, from, to customfn.ShaderType, d Dialect, p Precision) string {
	if from == to || expr == "" {
		return expr
	}
	nf, nt := vectorSize(from), vectorSize(to)
	if nf == 0 || nt == 0 {
		return expr
	}
	ctor := d.TypeString(to, p)
	switch {
	case nf == 1 && nt == 1:
		// Scalar conversion, i.e. int to float.
		if d == DialectHLSL {
			return "((" + ctor + ")(" + expr + "))"
		}
		return ctor + "(" + expr + ")"
	case nf == 1:
		// Scalar splat to vector.
		if d == DialectHLSL {
			return "((" + ctor + ")(" + expr + "))"
		}
		return ctor + "(" + expr + ")"
	case nf > nt:
		// Truncate by swizzle.
		s := "(" + expr + ")" + swizzles[nt]
		if nt == 1 && to != customfn.TypeFloat {
			return adaptExpr(s, customfn.TypeFloat, to, d, p)
		}
		return s
	default:
		// Pad with zeros.
		out := ctor + "(" + expr
		for i := nf; i < nt; i++ {
			out += ", 0.0"
		}
		return out + ")"
	}
}
