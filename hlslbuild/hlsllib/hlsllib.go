// Package hlsllib ships pre-written helper function definitions that inline
// node bodies can call. Helpers use only scalar float types so the same
// source is legal in both target dialects.
package hlsllib

import (
	_ "embed"

	"github.com/shadergraph/customfn/hlslbuild"
)

//go:embed remap.hlsl
var remapSrc []byte

// Remap linearly remaps a value between ranges:
//
//	void Remap_float(float In, float InMin, float InMax, float OutMin, float OutMax, out float Out)
func Remap() hlslbuild.FunctionSource {
	src, _ := hlslbuild.MakeFunctionSource(remapSrc)
	return src
}

//go:embed smootherstep.hlsl
var smootherstepSrc []byte

// Smootherstep is Perlin's quintic smoothstep variant:
//
//	void Smootherstep_float(float Edge0, float Edge1, float In, out float Out)
func Smootherstep() hlslbuild.FunctionSource {
	src, _ := hlslbuild.MakeFunctionSource(smootherstepSrc)
	return src
}
