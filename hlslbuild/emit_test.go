package hlslbuild_test

import (
	"strings"
	"testing"

	"github.com/soypat/geometry/ms3"

	"github.com/shadergraph/customfn"
	"github.com/shadergraph/customfn/hlslbuild"
)

func vec3Slot(id int, dir customfn.SlotDir, name string) customfn.Slot {
	return customfn.Slot{ID: id, Dir: dir, Type: customfn.TypeVec3, Name: name}
}

func TestAppendFunctionHeader(t *testing.T) {
	spec := customfn.FunctionSpec{Mode: customfn.SourceFile, Name: "Foo", File: "a.hlsl"}
	inputs := []customfn.Slot{vec3Slot(0, customfn.DirInput, "In")}
	outputs := []customfn.Slot{vec3Slot(1, customfn.DirOutput, "Out")}

	got := string(hlslbuild.AppendFunctionHeader(nil, spec, inputs, outputs, hlslbuild.DialectHLSL, hlslbuild.PrecisionFloat))
	want := "void Foo_float(float3 In, out float3 Out)"
	if got != want {
		t.Errorf("header mismatch:\ngot  %q\nwant %q", got, want)
	}

	got = string(hlslbuild.AppendFunctionHeader(nil, spec, inputs, outputs, hlslbuild.DialectHLSL, hlslbuild.PrecisionHalf))
	want = "void Foo_half(half3 In, out half3 Out)"
	if got != want {
		t.Errorf("half header mismatch:\ngot  %q\nwant %q", got, want)
	}

	got = string(hlslbuild.AppendFunctionHeader(nil, spec, inputs, outputs, hlslbuild.DialectGLSL, hlslbuild.PrecisionFloat))
	want = "void Foo_float(vec3 In, out vec3 Out)"
	if got != want {
		t.Errorf("glsl header mismatch:\ngot  %q\nwant %q", got, want)
	}
}

func TestHeaderSanitizesParameterNames(t *testing.T) {
	spec := customfn.FunctionSpec{Mode: customfn.SourceInline, Name: "Foo", Body: "x"}
	inputs := []customfn.Slot{
		{ID: 0, Dir: customfn.DirInput, Type: customfn.TypeFloat, Name: "My Value"},
		{ID: 1, Dir: customfn.DirInput, Type: customfn.TypeFloat, Name: "2nd"},
		{ID: 2, Dir: customfn.DirInput, Type: customfn.TypeFloat, Name: "out"},
	}
	got := string(hlslbuild.AppendFunctionHeader(nil, spec, inputs, nil, hlslbuild.DialectHLSL, hlslbuild.PrecisionFloat))
	want := "void Foo_float(float My_Value, float _2nd, float out_)"
	if got != want {
		t.Errorf("sanitized header mismatch:\ngot  %q\nwant %q", got, want)
	}
}

func TestAppendCallSiteValid(t *testing.T) {
	node := &customfn.FunctionNode{
		ID:   7,
		Spec: customfn.FunctionSpec{Mode: customfn.SourceInline, Name: "Foo", Body: "Out = In;"},
		Inputs: []customfn.Slot{
			vec3Slot(0, customfn.DirInput, "In"),
		},
		Outputs: []customfn.Slot{
			vec3Slot(1, customfn.DirOutput, "Out"),
			{ID: 2, Dir: customfn.DirOutput, Type: customfn.TypeFloat, Name: "Len"},
		},
	}
	resolve := func(s customfn.Slot) string { return "inputExpr" }
	got := string(hlslbuild.AppendCallSite(nil, node, true, hlslbuild.ModeFinal, resolve, hlslbuild.DialectHLSL, hlslbuild.PrecisionFloat))
	want := "float3 _cf7_1;\nfloat _cf7_2;\nFoo_float(inputExpr, _cf7_1, _cf7_2);\n"
	if got != want {
		t.Errorf("call site mismatch:\ngot  %q\nwant %q", got, want)
	}
}

func TestAppendCallSiteInvalidPreview(t *testing.T) {
	node := &customfn.FunctionNode{
		ID:      3,
		Spec:    customfn.FunctionSpec{Mode: customfn.SourceInline, Name: customfn.DefaultFunctionName},
		Outputs: []customfn.Slot{vec3Slot(4, customfn.DirOutput, "Out"), vec3Slot(5, customfn.DirOutput, "Other")},
	}
	resolve := func(s customfn.Slot) string { return "" }

	// Preview declares only the first output, with no call.
	got := string(hlslbuild.AppendCallSite(nil, node, false, hlslbuild.ModePreview, resolve, hlslbuild.DialectHLSL, hlslbuild.PrecisionFloat))
	if got != "float3 _cf3_4;\n" {
		t.Errorf("preview fallback mismatch: %q", got)
	}

	// Final mode emits nothing for invalid nodes.
	got = string(hlslbuild.AppendCallSite(nil, node, false, hlslbuild.ModeFinal, resolve, hlslbuild.DialectHLSL, hlslbuild.PrecisionFloat))
	if got != "" {
		t.Errorf("final mode should emit nothing, got %q", got)
	}

	// No outputs means nothing even in preview.
	node.Outputs = nil
	got = string(hlslbuild.AppendCallSite(nil, node, false, hlslbuild.ModePreview, resolve, hlslbuild.DialectHLSL, hlslbuild.PrecisionFloat))
	if got != "" {
		t.Errorf("no-output preview should emit nothing, got %q", got)
	}
}

// argCount counts top level comma separated entries of the parenthesized
// list in s.
func argCount(t *testing.T, s string) int {
	t.Helper()
	open := strings.IndexByte(s, '(')
	close_ := strings.LastIndexByte(s, ')')
	if open < 0 || close_ < open {
		t.Fatalf("no argument list in %q", s)
	}
	inner := s[open+1 : close_]
	if strings.TrimSpace(inner) == "" {
		return 0
	}
	depth, count := 0, 1
	for _, r := range inner {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				count++
			}
		}
	}
	return count
}

func TestHeaderCallSiteRoundTrip(t *testing.T) {
	// The call argument list must match the header parameter list in length
	// and order (inputs then outputs) for any slot set.
	for _, tc := range []struct {
		name    string
		inputs  []customfn.Slot
		outputs []customfn.Slot
	}{
		{"one in one out", []customfn.Slot{vec3Slot(0, customfn.DirInput, "In")}, []customfn.Slot{vec3Slot(1, customfn.DirOutput, "Out")}},
		{"no inputs", nil, []customfn.Slot{vec3Slot(1, customfn.DirOutput, "Out")}},
		{"many", []customfn.Slot{
			vec3Slot(0, customfn.DirInput, "A"),
			{ID: 1, Dir: customfn.DirInput, Type: customfn.TypeFloat, Name: "B"},
			{ID: 2, Dir: customfn.DirInput, Type: customfn.TypeMat4, Name: "C"},
		}, []customfn.Slot{
			vec3Slot(3, customfn.DirOutput, "X"),
			{ID: 4, Dir: customfn.DirOutput, Type: customfn.TypeBool, Name: "Y"},
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			spec := customfn.FunctionSpec{Mode: customfn.SourceInline, Name: "Fn", Body: "x"}
			node := &customfn.FunctionNode{ID: 1, Spec: spec, Inputs: tc.inputs, Outputs: tc.outputs}
			header := string(hlslbuild.AppendFunctionHeader(nil, spec, tc.inputs, tc.outputs, hlslbuild.DialectHLSL, hlslbuild.PrecisionFloat))
			call := string(hlslbuild.AppendCallSite(nil, node, true, hlslbuild.ModeFinal, func(s customfn.Slot) string { return "e" }, hlslbuild.DialectHLSL, hlslbuild.PrecisionFloat))
			callStmt := call[strings.Index(call, "Fn_float("):]
			nparams := argCount(t, header)
			nargs := argCount(t, callStmt)
			if nparams != len(tc.inputs)+len(tc.outputs) {
				t.Errorf("header has %d params, want %d", nparams, len(tc.inputs)+len(tc.outputs))
			}
			if nargs != nparams {
				t.Errorf("call has %d args, header has %d params", nargs, nparams)
			}
		})
	}
}

func TestAppendValueLiterals(t *testing.T) {
	for _, tc := range []struct {
		v    customfn.Value
		d    hlslbuild.Dialect
		want string
	}{
		{customfn.FloatValue(0.5), hlslbuild.DialectHLSL, "0.5"},
		{customfn.FloatValue(-2), hlslbuild.DialectHLSL, "-2.0"},
		{customfn.IntValue(3), hlslbuild.DialectHLSL, "3"},
		{customfn.BoolValue(true), hlslbuild.DialectHLSL, "true"},
		{customfn.Vec3Value(ms3.Vec{X: 1, Y: 2, Z: 3}), hlslbuild.DialectHLSL, "float3(1.0,2.0,3.0)"},
		{customfn.Vec3Value(ms3.Vec{X: 1, Y: 2, Z: 3}), hlslbuild.DialectGLSL, "vec3(1.0,2.0,3.0)"},
	} {
		got := string(hlslbuild.AppendValue(nil, tc.v, tc.d, hlslbuild.PrecisionFloat))
		if got != tc.want {
			t.Errorf("AppendValue: got %q, want %q", got, tc.want)
		}
	}
	zero := string(hlslbuild.AppendZeroValue(nil, customfn.TypeVec2, hlslbuild.DialectGLSL, hlslbuild.PrecisionFloat))
	if zero != "vec2(0.0,0.0)" {
		t.Errorf("zero literal: %q", zero)
	}
}

func TestSlotVariableStability(t *testing.T) {
	a := hlslbuild.SlotVariable(7, 1)
	b := string(hlslbuild.AppendSlotVariable(nil, 7, 1))
	if a != b || a != "_cf7_1" {
		t.Errorf("slot variable not stable: %q vs %q", a, b)
	}
	if hlslbuild.SlotVariable(71, 0) == hlslbuild.SlotVariable(7, 10) {
		t.Error("distinct node/slot pairs must not collide")
	}
}
