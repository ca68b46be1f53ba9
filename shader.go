// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glprog

import (
	"errors"
	"fmt"

	"github.com/gogpu/glprog/driver"
)

// Status is the externally visible state of a Shader.
type Status uint8

const (
	// StatusCompiling means the pipeline has not reached a terminal state;
	// keep polling Status.
	StatusCompiling Status = iota
	// StatusReady means the shader compiled (and, where supported, linked
	// and reflected) successfully.
	StatusReady
	// StatusFailed means compilation or linking failed.
	StatusFailed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusCompiling:
		return "compiling"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Shader owns one shader's compiled driver object and, once complete, its
// reflected resource interface. It is created by [New] and driven to
// completion by polling [Shader.Status].
//
// A Shader is not safe for concurrent use: all mutation happens on the
// goroutine that polls Status, which is also the only goroutine that may
// query resources or release the shader.
type Shader struct {
	name    string
	stage   driver.Stage
	dialect Dialect
	source  string

	dev  driver.Device
	unit *compileUnit

	// builder exists until the pipeline reaches a terminal state and is
	// discarded the instant it does, together with builder-only resources.
	builder *builder

	// resources is created once, on the single successful transition into
	// the complete state, and is immutable afterwards.
	resources *resourceSet

	diag []byte
	err  error
}

// New creates a shader from finalized source and starts the compile/link
// pipeline on the given device.
//
// In blocking mode (the default, or whenever the device lacks async
// compilation) the pipeline runs to a terminal state inside New, and a
// compile or link failure is returned as an error unless
// [WithDeferredErrors] was set. With [WithAsyncCompile] on a capable
// device, New returns immediately and the caller polls [Shader.Status];
// failures are then never returned synchronously and surface only through
// the status query.
func New(dev driver.Device, src Source, opts ...Option) (*Shader, error) {
	if dev == nil {
		return nil, errors.New("glprog: device must not be nil")
	}
	if src.Text == "" {
		return nil, errors.New("glprog: source text must not be empty")
	}

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	async := cfg.async && dev.Caps().AsyncCompile

	unit, err := newCompileUnit(dev, src, async)
	if err != nil {
		return nil, fmt.Errorf("glprog: create shader: %w", err)
	}

	s := &Shader{
		name:    src.Name,
		stage:   src.Stage,
		dialect: src.Dialect,
		source:  src.Text,
		dev:     dev,
		unit:    unit,
	}
	s.builder = &builder{
		sh:          s,
		async:       async,
		wantDiag:    cfg.diagnostics,
		withLayouts: cfg.bufferLayouts,
		raise:       !async && !cfg.deferredErrors,
	}

	// Force one tick: a blocking configuration reaches a terminal state
	// here, and an async one gets its compile submitted.
	raise := s.builder.raise
	s.Status()

	if raise && s.err != nil {
		return nil, s.err
	}
	return s, nil
}

// Status advances the pipeline if it is still running and returns the
// shader's state. Once a terminal state is reached the state machine is
// discarded and Status becomes a pure query; callers poll it on their own
// cadence (e.g. once per frame) until it stops returning StatusCompiling.
func (s *Shader) Status() Status {
	if s.builder != nil {
		if s.builder.tick() {
			s.err = s.builder.err
			s.builder = nil
		}
	}
	if s.builder != nil {
		return StatusCompiling
	}
	if s.unit.obj != nil {
		return StatusReady
	}
	return StatusFailed
}

// checkResourcesReady guards the reflection queries. Calling them while
// the pipeline is still running is a programming error. On a device
// without separable programs reflection was never computed; that degrades
// to a warning, not a fault.
func (s *Shader) checkResourcesReady() bool {
	if s.builder != nil {
		panic("glprog: shader resources are not available until the shader is compiled; use Status to check the shader status")
	}
	if !s.dev.Caps().SeparablePrograms {
		Logger().Warn("shader resource queries are not available when separate shader objects are unsupported",
			"shader", s.name)
		return false
	}
	return s.resources != nil
}

// ResourceCount returns the number of reflected resources.
// It must not be called while Status reports StatusCompiling.
func (s *Shader) ResourceCount() int {
	if !s.checkResourcesReady() {
		return 0
	}
	return len(s.resources.descs)
}

// ResourceAt returns the resource at the given index. Uniform buffer
// resources always occupy the leading indices. The index must be in
// [0, ResourceCount()); anything else is a programming error and panics.
func (s *Shader) ResourceAt(index int) ResourceDesc {
	if !s.checkResourcesReady() {
		return ResourceDesc{}
	}
	if index < 0 || index >= len(s.resources.descs) {
		panic("glprog: resource index out of range")
	}
	return s.resources.descs[index]
}

// ConstantBufferLayoutAt returns the member layout of the uniform buffer
// resource at the given index, or nil when the index does not name a
// uniform buffer or layouts were not requested via [WithBufferLayouts].
// Uniform buffers always go first in the resource set, so valid indices
// are [0, number of uniform buffers).
func (s *Shader) ConstantBufferLayoutAt(index int) *BufferLayout {
	if !s.checkResourcesReady() {
		return nil
	}
	if index < 0 || index >= s.resources.bufferCount {
		Logger().Warn("constant buffer index is out of range",
			"shader", s.name, "index", index, "buffers", s.resources.bufferCount)
		return nil
	}
	return s.resources.layouts[index]
}

// Diagnostics returns the diagnostics buffer captured for this shader:
// the driver log, a NUL separator, and the full source text. It is nil
// unless [WithDiagnostics] was set and the driver produced a log.
func (s *Shader) Diagnostics() []byte { return s.diag }

// Err returns the recorded compile or link failure, nil while the pipeline
// is running or after success. In non-blocking mode this is the only way
// to inspect the failure; Status reports it as StatusFailed.
func (s *Shader) Err() error { return s.err }

// Name returns the shader name.
func (s *Shader) Name() string { return s.name }

// Stage returns the pipeline stage the shader targets.
func (s *Shader) Stage() driver.Stage { return s.stage }

// Dialect returns the resolved source dialect tag.
func (s *Shader) Dialect() Dialect { return s.dialect }

// Release frees the shader's driver handles. It is safe to call at any
// point, including while the pipeline is still mid-flight, and is
// idempotent. After Release the shader must not be used.
func (s *Shader) Release() {
	if s.builder != nil {
		s.builder.destroy()
		s.builder = nil
	}
	s.unit.release()
}
