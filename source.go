// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glprog

import (
	"github.com/gogpu/glprog/driver"
)

// Dialect tags the language a shader source was authored in. The tag is
// resolved by source preparation before the pipeline sees the text; the
// pipeline never inspects the text itself.
//
// The dialect decides the sampler reflection policy: dialects with native
// separate sampler objects (HLSL, WGSL) reflect textures and samplers as
// independent resources for consistency with other backends, while GLSL-family
// sources reflect them as combined texture+sampler resources.
type Dialect uint8

const (
	// DialectDefault is an unresolved dialect, treated as GLSL.
	DialectDefault Dialect = iota
	// DialectGLSL is OpenGL Shading Language source.
	DialectGLSL
	// DialectHLSL is source translated from HLSL.
	DialectHLSL
	// DialectWGSL is WebGPU Shading Language source.
	DialectWGSL
)

// String returns the dialect name.
func (d Dialect) String() string {
	switch d {
	case DialectDefault:
		return "default"
	case DialectGLSL:
		return "glsl"
	case DialectHLSL:
		return "hlsl"
	case DialectWGSL:
		return "wgsl"
	default:
		return "unknown"
	}
}

// CombinedSamplers reports whether reflection merges texture+sampler pairs
// into one combined resource for this dialect.
func (d Dialect) CombinedSamplers() bool {
	return d == DialectDefault || d == DialectGLSL
}

// Source is one shader's finalized source text plus its resolved dialect
// tag. It is consumed by value at facade construction and never mutated.
type Source struct {
	// Name identifies the shader in logs, errors, and diagnostics.
	Name string

	// Stage is the pipeline stage the source targets.
	Stage driver.Stage

	// Text is the finalized source text, submitted to the driver as-is.
	// Preprocessing and macro expansion happen before the pipeline.
	Text string

	// Dialect is the resolved source dialect tag.
	Dialect Dialect
}
