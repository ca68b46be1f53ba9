// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package nagadriver

import (
	"fmt"

	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/glprog/driver"
)

// programObj implements driver.Program. Linking a separable program runs
// the naga GLSL backend, which is where a GL driver would also resolve
// texture+sampler pairs into combined uniforms.
type programObj struct {
	dev       *Device
	separable bool
	attached  []*shaderObj

	linked bool
	ok     bool
	log    string
	// modules snapshots the IR of each successfully linked stage. Kept on
	// the program so introspection keeps working after shaders are
	// detached, just like a linked GL program binary.
	modules []*ir.Module
	// pairedSampler maps a texture name to the sampler it is sampled with,
	// recovered from the module's image sample expressions.
	pairedSampler map[string]string
	// remaining counts completion polls that still report false.
	remaining int
	released  bool
}

// SetSeparable marks the program as separable. Like GL's
// GL_PROGRAM_SEPARABLE it only takes effect if set before Link.
func (p *programObj) SetSeparable(separable bool) {
	if !p.linked {
		p.separable = separable
	}
}

// Attach attaches a compiled shader to the program.
func (p *programObj) Attach(sh driver.Shader) {
	if s, ok := sh.(*shaderObj); ok {
		p.attached = append(p.attached, s)
	}
}

// Detach detaches a previously attached shader.
func (p *programObj) Detach(sh driver.Shader) {
	s, ok := sh.(*shaderObj)
	if !ok {
		return
	}
	for i, a := range p.attached {
		if a == s {
			p.attached = append(p.attached[:i], p.attached[i+1:]...)
			return
		}
	}
}

// Link links the attached shaders. The work happens inline; in async mode
// completion is still reported through polling.
func (p *programObj) Link() {
	p.linked = true
	p.remaining = 0
	if p.dev.caps.AsyncCompile {
		p.remaining = p.dev.linkLatency
	}

	if len(p.attached) == 0 {
		p.ok = false
		p.log = "error: no shader objects attached to program"
		return
	}
	for _, s := range p.attached {
		if !s.ok || s.module == nil {
			p.ok = false
			p.log = fmt.Sprintf("error: attached %s shader was not successfully compiled", s.stage)
			return
		}
	}

	// Lower each stage through the GLSL backend to validate that the
	// module survives GL-style code generation, and recover the
	// texture+sampler pairs reflection reports in combined mode.
	p.pairedSampler = make(map[string]string)
	p.modules = nil
	for _, s := range p.attached {
		opts := glsl.DefaultOptions()
		if s.stage == driver.StageCompute {
			opts.LangVersion = glsl.Version430
		}
		if _, _, err := glsl.Compile(s.module, opts); err != nil {
			p.ok = false
			p.log = fmt.Sprintf("error: %s stage: %v", s.stage, err)
			p.modules = nil
			return
		}
		recordPairs(p.pairedSampler, s.module)
		p.modules = append(p.modules, s.module)
	}

	p.ok = true
	p.log = ""
}

// recordPairs maps each sampled texture global to the sampler global it is
// sampled with, by walking every function's image sample expressions. A
// texture sampled through more than one sampler keeps the last pairing.
func recordPairs(dst map[string]string, module *ir.Module) {
	for fi := range module.Functions {
		fn := &module.Functions[fi]
		for _, expr := range fn.Expressions {
			is, ok := expr.Kind.(ir.ExprImageSample)
			if !ok {
				continue
			}
			tex := operandGlobalName(module, fn, is.Image)
			samp := operandGlobalName(module, fn, is.Sampler)
			if tex != "" && samp != "" {
				dst[tex] = samp
			}
		}
	}
}

// operandGlobalName resolves an operand expression to the name of the global
// variable it references, unwrapping loads.
func operandGlobalName(module *ir.Module, fn *ir.Function, h ir.ExpressionHandle) string {
	for {
		if int(h) >= len(fn.Expressions) {
			return ""
		}
		switch k := fn.Expressions[h].Kind.(type) {
		case ir.ExprGlobalVariable:
			if int(k.Variable) >= len(module.GlobalVariables) {
				return ""
			}
			return module.GlobalVariables[k.Variable].Name
		case ir.ExprLoad:
			h = k.Pointer
		default:
			return ""
		}
	}
}

// CompletionStatus reports whether the driver finished the last link.
// In async mode it counts down the configured latency.
func (p *programObj) CompletionStatus() bool {
	if !p.linked {
		return false
	}
	if p.remaining > 0 {
		p.remaining--
		return false
	}
	return true
}

// LinkStatus reports whether the last link succeeded.
func (p *programObj) LinkStatus() bool { return p.ok }

// InfoLog returns the link log.
func (p *programObj) InfoLog() string { return p.log }

// Resources enumerates the active bindings of all attached modules.
func (p *programObj) Resources(ctx driver.ContextState, withLayouts bool) ([]driver.Resource, error) {
	cs, ok := ctx.(*contextState)
	if !ok || cs.dev != p.dev {
		return nil, driver.ErrBadContextState
	}
	if !p.linked || !p.ok {
		return nil, fmt.Errorf("nagadriver: program is not successfully linked")
	}

	var res []driver.Resource
	for _, m := range p.modules {
		res = append(res, moduleResources(m, p.pairedSampler, withLayouts)...)
	}
	return res, nil
}

// Release frees the program. Attached shaders are not affected.
func (p *programObj) Release() {
	p.released = true
	p.attached = nil
	p.modules = nil
}
