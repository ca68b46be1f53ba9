// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glprog

// Option configures a Shader during creation.
// Use functional options to customize pipeline behavior.
//
// Example:
//
//	// Blocking compilation with default settings
//	sh, err := glprog.New(dev, src)
//
//	// Non-blocking compilation with a diagnostics buffer
//	sh, err := glprog.New(dev, src,
//	    glprog.WithAsyncCompile(),
//	    glprog.WithDiagnostics())
type Option func(*config)

// config holds optional configuration for Shader creation.
type config struct {
	async          bool
	diagnostics    bool
	bufferLayouts  bool
	deferredErrors bool
}

// WithAsyncCompile requests non-blocking compilation. It only takes effect
// when the device also advertises the async-compilation capability; when
// either side is missing, every progress poll short-circuits to complete
// and construction finishes synchronously.
func WithAsyncCompile() Option {
	return func(c *config) {
		c.async = true
	}
}

// WithDiagnostics requests a diagnostics buffer on failure: the compiler
// log followed by the full source text, retrievable via
// [Shader.Diagnostics]. Without it, failure logs go to the package logger
// together with a full source dump.
func WithDiagnostics() Option {
	return func(c *config) {
		c.diagnostics = true
	}
}

// WithBufferLayouts loads constant-buffer member layouts during reflection,
// making [Shader.ConstantBufferLayoutAt] return non-nil for uniform buffer
// resources.
func WithBufferLayouts() Option {
	return func(c *config) {
		c.bufferLayouts = true
	}
}

// WithDeferredErrors keeps blocking-mode compile and link failures out of
// [New]'s error return; failures are recorded, logged, and surfaced through
// [Shader.Status] and [Shader.Err] instead. Non-blocking mode always defers
// failures, with or without this option.
func WithDeferredErrors() Option {
	return func(c *config) {
		c.deferredErrors = true
	}
}
