// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glprog

import (
	"github.com/gogpu/glprog/driver"
)

// mockDevice implements driver.Device for testing. Results and latencies
// are scripted per device; created objects are tracked so tests can assert
// that every handle is released exactly once.
type mockDevice struct {
	caps driver.Capabilities
	ctx  driver.ContextState

	compileOK      bool
	compileLog     string
	compileLatency int
	linkOK         bool
	linkLog        string
	linkLatency    int
	resources      []driver.Resource
	resourcesErr   error

	createShaderErr  error
	createProgramErr error

	shaders  []*mockShader
	programs []*mockProgram
}

func newMockDevice() *mockDevice {
	d := &mockDevice{
		caps:      driver.Capabilities{AsyncCompile: true, SeparablePrograms: true},
		compileOK: true,
		linkOK:    true,
	}
	d.ctx = d
	return d
}

func (d *mockDevice) Name() string                      { return "mock" }
func (d *mockDevice) Caps() driver.Capabilities         { return d.caps }
func (d *mockDevice) ContextState() driver.ContextState { return d.ctx }

func (d *mockDevice) CreateShader(stage driver.Stage) (driver.Shader, error) {
	if d.createShaderErr != nil {
		return nil, d.createShaderErr
	}
	s := &mockShader{dev: d, stage: stage}
	d.shaders = append(d.shaders, s)
	return s, nil
}

func (d *mockDevice) CreateProgram() (driver.Program, error) {
	if d.createProgramErr != nil {
		return nil, d.createProgramErr
	}
	p := &mockProgram{dev: d}
	d.programs = append(d.programs, p)
	return p, nil
}

// leaked reports handles that were never released, and overReleased those
// released more than once.
func (d *mockDevice) leaked() int {
	n := 0
	for _, s := range d.shaders {
		if s.released == 0 {
			n++
		}
	}
	for _, p := range d.programs {
		if p.released == 0 {
			n++
		}
	}
	return n
}

func (d *mockDevice) overReleased() int {
	n := 0
	for _, s := range d.shaders {
		if s.released > 1 {
			n++
		}
	}
	for _, p := range d.programs {
		if p.released > 1 {
			n++
		}
	}
	return n
}

type mockShader struct {
	dev       *mockDevice
	stage     driver.Stage
	src       string
	compiled  bool
	remaining int
	polls     int
	released  int
}

func (s *mockShader) Source(src string) { s.src = src }

func (s *mockShader) Compile() {
	s.compiled = true
	s.remaining = s.dev.compileLatency
}

func (s *mockShader) CompletionStatus() bool {
	s.polls++
	if s.remaining > 0 {
		s.remaining--
		return false
	}
	return s.compiled
}

func (s *mockShader) CompileStatus() bool { return s.dev.compileOK }
func (s *mockShader) InfoLog() string     { return s.dev.compileLog }
func (s *mockShader) Release()            { s.released++ }

type mockProgram struct {
	dev *mockDevice

	separable          bool
	separableAfterLink bool
	attached           []driver.Shader
	detached           []driver.Shader
	linked             bool
	remaining          int
	polls              int
	released           int
	resourceCalls      int
	lastWithLayouts    bool
	lastCtx            driver.ContextState
}

func (p *mockProgram) SetSeparable(separable bool) {
	p.separable = separable
	if p.linked {
		p.separableAfterLink = true
	}
}

func (p *mockProgram) Attach(sh driver.Shader) { p.attached = append(p.attached, sh) }
func (p *mockProgram) Detach(sh driver.Shader) { p.detached = append(p.detached, sh) }

func (p *mockProgram) Link() {
	p.linked = true
	p.remaining = p.dev.linkLatency
}

func (p *mockProgram) CompletionStatus() bool {
	p.polls++
	if p.remaining > 0 {
		p.remaining--
		return false
	}
	return p.linked
}

func (p *mockProgram) LinkStatus() bool { return p.dev.linkOK }
func (p *mockProgram) InfoLog() string  { return p.dev.linkLog }

func (p *mockProgram) Resources(ctx driver.ContextState, withLayouts bool) ([]driver.Resource, error) {
	p.resourceCalls++
	p.lastCtx = ctx
	p.lastWithLayouts = withLayouts
	if p.dev.resourcesErr != nil {
		return nil, p.dev.resourcesErr
	}
	return p.dev.resources, nil
}

func (p *mockProgram) Release() { p.released++ }

// testSource returns a minimal valid Source for facade tests.
func testSource() Source {
	return Source{
		Name:    "test",
		Stage:   driver.StageFragment,
		Text:    "@fragment fn main() {}",
		Dialect: DialectWGSL,
	}
}
