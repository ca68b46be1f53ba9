// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package nagadriver provides a pure Go software driver for glprog, backed
// by the gogpu/naga shader compiler.
//
// The driver compiles WGSL source: a compile runs the naga frontend
// (parse, lower, validate), and linking a separable program runs the GLSL
// backend, which performs the same texture+sampler combining a GL driver
// would. Reflection is served straight from the naga IR, so resource
// bindings and buffer layouts match what a real driver would report for the
// generated GLSL.
//
// Because everything runs in-process, the driver completes work
// synchronously. It still advertises async compilation and answers
// completion polls, with an optional artificial latency so callers can
// exercise their polling paths deterministically:
//
//	dev := nagadriver.New(nagadriver.WithCompileLatency(3))
//
// The driver registers itself under the name "naga" on import.
package nagadriver

import (
	"github.com/gogpu/glprog/driver"
)

// init registers the naga driver on package import.
func init() {
	driver.Register(driver.DriverNaga, func() driver.Device {
		return New()
	})
}

// Device is a software device backed by the naga compiler.
type Device struct {
	caps           driver.Capabilities
	compileLatency int
	linkLatency    int
	ctx            *contextState
}

// contextState is the device's active context handle. Reflection queries
// check that the handle they receive belongs to the same device.
type contextState struct {
	dev *Device
}

// Option configures a Device during creation.
type Option func(*Device)

// WithoutAsyncCompile disables the async-compilation capability, collapsing
// every pipeline built on the device to blocking, single-poll behavior.
func WithoutAsyncCompile() Option {
	return func(d *Device) {
		d.caps.AsyncCompile = false
	}
}

// WithoutSeparablePrograms disables the separable-programs capability.
// Pipelines built on the device skip per-stage reflection.
func WithoutSeparablePrograms() Option {
	return func(d *Device) {
		d.caps.SeparablePrograms = false
	}
}

// WithCompileLatency makes shader completion polls report false n times
// before reporting true. Only observed in async mode; it has no effect on
// the compile result.
func WithCompileLatency(n int) Option {
	return func(d *Device) {
		d.compileLatency = n
	}
}

// WithLinkLatency makes program completion polls report false n times
// before reporting true. Only observed in async mode.
func WithLinkLatency(n int) Option {
	return func(d *Device) {
		d.linkLatency = n
	}
}

// New creates a software device. By default both capabilities are
// advertised and completion polls report true immediately.
func New(opts ...Option) *Device {
	d := &Device{
		caps: driver.Capabilities{
			AsyncCompile:      true,
			SeparablePrograms: true,
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	d.ctx = &contextState{dev: d}
	return d
}

// Name returns the driver identifier.
func (d *Device) Name() string { return driver.DriverNaga }

// Caps returns the device capability set.
func (d *Device) Caps() driver.Capabilities { return d.caps }

// ContextState returns the device's active context handle.
func (d *Device) ContextState() driver.ContextState { return d.ctx }

// CreateShader creates an empty shader object for the given stage.
func (d *Device) CreateShader(stage driver.Stage) (driver.Shader, error) {
	return &shaderObj{dev: d, stage: stage}, nil
}

// CreateProgram creates an empty program object.
func (d *Device) CreateProgram() (driver.Program, error) {
	return &programObj{dev: d}, nil
}
