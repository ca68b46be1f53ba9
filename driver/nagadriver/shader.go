// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package nagadriver

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/glprog/driver"
)

// shaderObj implements driver.Shader on top of the naga frontend.
type shaderObj struct {
	dev   *Device
	stage driver.Stage
	src   string

	module   *ir.Module
	log      string
	ok       bool
	compiled bool
	// remaining counts completion polls that still report false.
	remaining int
	released  bool
}

// Source replaces the shader's source text.
func (s *shaderObj) Source(src string) {
	s.src = src
}

// Compile runs the naga frontend on the current source. The work happens
// inline; in async mode completion is still reported through polling.
func (s *shaderObj) Compile() {
	s.compiled = true
	s.remaining = 0
	if s.dev.caps.AsyncCompile {
		s.remaining = s.dev.compileLatency
	}

	s.module, s.log, s.ok = frontendCompile(s.src, s.stage)
}

// frontendCompile parses, lowers, and validates WGSL source and checks that
// an entry point for the requested stage exists.
func frontendCompile(src string, stage driver.Stage) (*ir.Module, string, bool) {
	ast, err := naga.Parse(src)
	if err != nil {
		return nil, fmt.Sprintf("ERROR: %v", err), false
	}
	module, err := naga.LowerWithSource(ast, src)
	if err != nil {
		return nil, fmt.Sprintf("ERROR: %v", err), false
	}
	verrs, err := naga.Validate(module)
	if err != nil {
		return nil, fmt.Sprintf("ERROR: %v", err), false
	}
	if len(verrs) > 0 {
		log := ""
		for _, ve := range verrs {
			log += fmt.Sprintf("ERROR: %v\n", ve)
		}
		return nil, log, false
	}
	if !hasEntryPoint(module, stage) {
		return nil, fmt.Sprintf("ERROR: no %s entry point in shader source", stage), false
	}
	return module, "", true
}

func hasEntryPoint(module *ir.Module, stage driver.Stage) bool {
	want := irStage(stage)
	for _, ep := range module.EntryPoints {
		if ep.Stage == want {
			return true
		}
	}
	return false
}

func irStage(stage driver.Stage) ir.ShaderStage {
	switch stage {
	case driver.StageVertex:
		return ir.StageVertex
	case driver.StageFragment:
		return ir.StageFragment
	default:
		return ir.StageCompute
	}
}

// CompletionStatus reports whether the driver finished the last compile.
// In async mode it counts down the configured latency.
func (s *shaderObj) CompletionStatus() bool {
	if !s.compiled {
		return false
	}
	if s.remaining > 0 {
		s.remaining--
		return false
	}
	return true
}

// CompileStatus reports whether the last compile succeeded.
func (s *shaderObj) CompileStatus() bool { return s.ok }

// InfoLog returns the compile log.
func (s *shaderObj) InfoLog() string { return s.log }

// Release frees the shader. Safe to call while a compile is in flight;
// the frontend holds no background state.
func (s *shaderObj) Release() {
	s.released = true
	s.module = nil
}
