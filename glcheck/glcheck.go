// Package glcheck compiles generated shader source on the GPU to verify it
// before it ships inside a larger pipeline. Requires CGo and a GL context;
// without CGo the entry points return a sentinel error.
package glcheck

import (
	"bytes"

	"github.com/shadergraph/customfn"
	"github.com/shadergraph/customfn/hlslbuild"
)

// CheckGraph generates a standalone GLSL compute program for the graph and
// compiles it on the current GL context. Returns the generated source along
// with the compile result so failures can be inspected. The programmer's
// dialect is forced to GLSL.
func CheckGraph(g *customfn.Graph, p *hlslbuild.Programmer) (source string, err error) {
	if p == nil {
		p = hlslbuild.NewDefaultProgrammer()
	}
	p.Dialect = hlslbuild.DialectGLSL
	var buf bytes.Buffer
	_, err = p.WriteComputeShader(&buf, g)
	if err != nil {
		return buf.String(), err
	}
	return buf.String(), CompileCheck(buf.String())
}
