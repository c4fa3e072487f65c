package hlsllib_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shadergraph/customfn"
	"github.com/shadergraph/customfn/hlslbuild"
	"github.com/shadergraph/customfn/hlslbuild/hlsllib"
)

func TestSnippetNames(t *testing.T) {
	for _, tc := range []struct {
		src  hlslbuild.FunctionSource
		name string
	}{
		{hlsllib.Remap(), "Remap_float"},
		{hlsllib.Smootherstep(), "Smootherstep_float"},
	} {
		if tc.src.Name != tc.name {
			t.Errorf("snippet name %q, want %q", tc.src.Name, tc.name)
		}
		if !bytes.HasPrefix(tc.src.Source, []byte("void "+tc.name+"(")) {
			t.Errorf("snippet %q source does not define itself:\n%s", tc.name, tc.src.Source)
		}
	}
}

func TestSnippetInGeneratedSource(t *testing.T) {
	p := hlslbuild.NewDefaultProgrammer()
	if err := p.RegisterSource(hlsllib.Remap()); err != nil {
		t.Fatal(err)
	}
	g := customfn.NewGraph()
	g.AddNode(customfn.FunctionNode{
		ID:   1,
		Spec: customfn.FunctionSpec{Mode: customfn.SourceInline, Name: "Normalize01", Body: "Remap_float(In, -1.0, 1.0, 0.0, 1.0, Out);"},
		Inputs: []customfn.Slot{
			{ID: 0, Dir: customfn.DirInput, Type: customfn.TypeFloat, Name: "In"},
		},
		Outputs: []customfn.Slot{
			{ID: 1, Dir: customfn.DirOutput, Type: customfn.TypeFloat, Name: "Out"},
		},
	})
	if err := g.Err(); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if _, err := p.WriteSource(&buf, g); err != nil {
		t.Fatal(err)
	}
	src := buf.String()
	helperAt := strings.Index(src, "void Remap_float(")
	userAt := strings.Index(src, "void Normalize01_float(")
	if helperAt < 0 || userAt < 0 || helperAt > userAt {
		t.Errorf("helper must be defined before its caller:\n%s", src)
	}
}
